package encode

import "shears/internal/media/ffprobe"

// EstimateParams holds the size-estimation heuristics. The defaults carry
// the constants the tool has always shipped; they are advisory and not
// calibrated against real encoder behaviour.
type EstimateParams struct {
	// QualitySlope scales the quality-derived bitrate linearly: quality 0
	// keeps 100% of the source bitrate, quality 51 keeps 1 - QualitySlope.
	QualitySlope float64
	Factor4K     float64
	Factor2K     float64
	Factor1080p  float64
	Factor720p   float64
}

// DefaultEstimateParams returns the stock heuristics.
func DefaultEstimateParams() EstimateParams {
	return EstimateParams{
		QualitySlope: 0.7,
		Factor4K:     1.0,
		Factor2K:     0.8,
		Factor1080p:  0.6,
		Factor720p:   0.4,
	}
}

func (p EstimateParams) resolutionFactor(res Resolution) float64 {
	switch res {
	case Resolution720p:
		return p.Factor720p
	case Resolution1080p:
		return p.Factor1080p
	case Resolution2K:
		return p.Factor2K
	case Resolution4K:
		return p.Factor4K
	default:
		return 1.0
	}
}

// EstimateSize predicts the output size in bytes for a job against a probed
// source. The estimate is advisory only; it never blocks execution.
//
// Units: bitrates are kilobits per second (1 kbit = 1000 bits), so
// bytes = kbps * 1000 / 8 * seconds.
func EstimateSize(job Job, info ffprobe.MediaInfo, params EstimateParams) int64 {
	seconds := job.EffectiveSeconds()
	if seconds <= 0 {
		return 0
	}

	bitrateKbps := info.BitrateKbps
	if job.Mode == ModeReencode {
		if job.BitrateKbps > 0 {
			bitrateKbps = float64(job.BitrateKbps)
		} else {
			bitrateKbps = info.BitrateKbps * (1 - float64(job.Quality)/float64(QualityMax)*params.QualitySlope)
		}
		bitrateKbps *= params.resolutionFactor(job.Resolution)
	}
	if bitrateKbps <= 0 {
		return 0
	}

	return int64(bitrateKbps * 1000 / 8 * seconds)
}
