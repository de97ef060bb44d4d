package encode

import (
	"fmt"
	"strconv"
	"strings"
)

// Planner maps a Job onto the ffmpeg argument list that realizes it. Plan is
// pure and deterministic; it performs no I/O.
type Planner struct {
	// AudioCodec and AudioBitrate apply to every re-encode; stream copy
	// carries audio through untouched.
	AudioCodec   string
	AudioBitrate string
}

// NewPlanner builds a planner, falling back to the stock audio settings when
// fields are blank.
func NewPlanner(audioCodec, audioBitrate string) Planner {
	if strings.TrimSpace(audioCodec) == "" {
		audioCodec = "aac"
	}
	if strings.TrimSpace(audioBitrate) == "" {
		audioBitrate = "192k"
	}
	return Planner{AudioCodec: audioCodec, AudioBitrate: audioBitrate}
}

// Plan validates the job and returns the ordered ffmpeg argument list.
// Flag ordering is part of the external-tool contract: the decode hint must
// precede the input, and explicit bitrate flags must follow any quality
// flags so they win at the command line.
func (p Planner) Plan(job Job) ([]string, error) {
	if err := job.Validate(0); err != nil {
		return nil, err
	}

	args := make([]string, 0, 32)

	var rc rateControl
	if job.Mode == ModeReencode {
		rc = rateControlFor(job.Accelerator, job.Quality, job.BitrateKbps > 0)
		args = append(args, rc.decodeHint...)
	}

	args = append(args,
		"-ss", formatSeconds(job.StartSeconds),
		"-i", job.SourcePath,
		"-t", formatSeconds(job.ClipSeconds()),
	)

	if job.Mode == ModeStreamCopy {
		args = append(args, "-c", "copy", "-y", job.OutputPath)
		return args, nil
	}

	args = append(args, rc.codec...)
	args = append(args, rc.quality...)

	if job.BitrateKbps > 0 {
		rate := strconv.Itoa(job.BitrateKbps) + "k"
		buffer := strconv.Itoa(job.BitrateKbps*2) + "k"
		args = append(args, "-b:v", rate, "-maxrate", rate, "-bufsize", buffer)
	}

	if chain := videoFilterChain(job); chain != "" {
		args = append(args, "-vf", chain)
	}

	args = append(args, "-c:a", p.AudioCodec, "-b:a", p.AudioBitrate)
	if speed := job.Speed(); speed != 1.0 {
		args = append(args, "-af", "atempo="+formatSpeed(clampSpeed(speed)))
	}

	if job.FPS > 0 {
		args = append(args, "-r", strconv.Itoa(job.FPS))
	}

	args = append(args, "-y", job.OutputPath)
	return args, nil
}

// videoFilterChain builds the combined -vf value: scale first, then the
// presentation-timestamp retime. Empty when neither applies.
func videoFilterChain(job Job) string {
	filters := make([]string, 0, 2)
	if width := job.Resolution.Width(); width > 0 {
		filters = append(filters, fmt.Sprintf("scale=%d:-1", width))
	}
	if speed := job.Speed(); speed != 1.0 {
		filters = append(filters, fmt.Sprintf("setpts=%s*PTS", formatSpeed(1/clampSpeed(speed))))
	}
	return strings.Join(filters, ",")
}

func clampSpeed(speed float64) float64 {
	if speed < SpeedMin {
		return SpeedMin
	}
	if speed > SpeedMax {
		return SpeedMax
	}
	return speed
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatSpeed(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
