package encode

import (
	"testing"

	"shears/internal/media/ffprobe"
)

func TestEstimateStreamCopy(t *testing.T) {
	job := baseJob()
	job.Mode = ModeStreamCopy
	job.StartSeconds, job.EndSeconds = 0, 60

	info := ffprobe.MediaInfo{BitrateKbps: 8000}
	// 8000 kbps over 60 seconds is 60000 kB.
	if got := EstimateSize(job, info, DefaultEstimateParams()); got != 60_000_000 {
		t.Fatalf("EstimateSize = %d, want 60000000", got)
	}
}

func TestEstimateEmptyRange(t *testing.T) {
	job := baseJob()
	job.StartSeconds, job.EndSeconds = 30, 30

	if got := EstimateSize(job, ffprobe.MediaInfo{BitrateKbps: 8000}, DefaultEstimateParams()); got != 0 {
		t.Fatalf("empty range must estimate 0, got %d", got)
	}
}

func TestEstimateMonotonicInQuality(t *testing.T) {
	info := ffprobe.MediaInfo{BitrateKbps: 8000}
	params := DefaultEstimateParams()

	prev := int64(-1)
	for quality := QualityMax; quality >= QualityLossless; quality-- {
		job := baseJob()
		job.Quality = quality
		got := EstimateSize(job, info, params)
		if got < prev {
			t.Fatalf("estimate must not shrink as quality improves: q=%d got %d, previous %d", quality, got, prev)
		}
		prev = got
	}
}

func TestEstimateExplicitBitrateWins(t *testing.T) {
	job := baseJob()
	job.StartSeconds, job.EndSeconds = 0, 10
	job.Quality = 51
	job.BitrateKbps = 4000

	info := ffprobe.MediaInfo{BitrateKbps: 20000}
	// 4000 kbps over 10 seconds: quality is ignored entirely.
	if got := EstimateSize(job, info, DefaultEstimateParams()); got != 5_000_000 {
		t.Fatalf("EstimateSize = %d, want 5000000", got)
	}
}

func TestEstimateResolutionDiscount(t *testing.T) {
	info := ffprobe.MediaInfo{BitrateKbps: 8000}
	params := DefaultEstimateParams()

	original := EstimateSize(baseJob(), info, params)
	downscaled := baseJob()
	downscaled.Resolution = Resolution720p
	smaller := EstimateSize(downscaled, info, params)

	if smaller >= original {
		t.Fatalf("720p estimate %d must be below original %d", smaller, original)
	}
	if want := int64(float64(original) * params.Factor720p); smaller != want {
		t.Fatalf("720p estimate = %d, want %d", smaller, want)
	}
}

func TestEstimateSpeedShortensOutput(t *testing.T) {
	job := baseJob()
	job.StartSeconds, job.EndSeconds = 0, 60
	job.Mode = ModeStreamCopy

	fast := baseJob()
	fast.StartSeconds, fast.EndSeconds = 0, 60
	fast.SpeedFactor = 2.0
	fast.BitrateKbps = 8000

	info := ffprobe.MediaInfo{BitrateKbps: 8000}
	params := DefaultEstimateParams()
	if slow, quick := EstimateSize(job, info, params), EstimateSize(fast, info, params); quick*2 != slow {
		t.Fatalf("2x speed must halve the estimate: %d vs %d", quick, slow)
	}
}

func TestEstimateUnknownBitrate(t *testing.T) {
	if got := EstimateSize(baseJob(), ffprobe.MediaInfo{}, DefaultEstimateParams()); got != 0 {
		t.Fatalf("unknown source bitrate must estimate 0, got %d", got)
	}
}
