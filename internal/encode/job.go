package encode

import (
	"fmt"
	"strings"

	"shears/internal/services"
)

// Mode selects between lossless stream copy and a full re-encode.
type Mode string

const (
	ModeStreamCopy Mode = "copy"
	ModeReencode   Mode = "reencode"
)

// Accelerator identifies the hardware encode/decode path.
type Accelerator string

const (
	AccelCPU    Accelerator = "cpu"
	AccelNVIDIA Accelerator = "nvidia"
	AccelAMD    Accelerator = "amd"
	AccelIntel  Accelerator = "intel"
)

// Accelerators returns the fixed vendor set in preference order.
func Accelerators() []Accelerator {
	return []Accelerator{AccelNVIDIA, AccelAMD, AccelIntel, AccelCPU}
}

// Resolution is the output resolution tier. Width is fixed per tier and
// height auto-scales to preserve aspect ratio.
type Resolution string

const (
	ResolutionOriginal Resolution = "original"
	Resolution4K       Resolution = "4k"
	Resolution2K       Resolution = "2k"
	Resolution1080p    Resolution = "1080p"
	Resolution720p     Resolution = "720p"
)

// Width returns the scale-filter target width for the tier, or 0 for
// ResolutionOriginal.
func (r Resolution) Width() int {
	switch r {
	case Resolution4K:
		return 3840
	case Resolution2K:
		return 2560
	case Resolution1080p:
		return 1920
	case Resolution720p:
		return 1280
	default:
		return 0
	}
}

// Container is the output container format.
type Container string

const (
	ContainerMP4 Container = "mp4"
	ContainerMKV Container = "mkv"
	ContainerAVI Container = "avi"
	ContainerMOV Container = "mov"
)

const (
	// QualityLossless is the quality knob value every vendor must honour
	// as lossless-equivalent.
	QualityLossless = 0
	// QualityMax is the worst quality value the knob accepts.
	QualityMax = 51

	// SpeedMin and SpeedMax bound the playback speed factor. The range
	// matches the valid multiplier range of ffmpeg's atempo filter, so
	// clamped values never produce an invalid audio filter.
	SpeedMin = 0.5
	SpeedMax = 2.0
)

// Job describes a single trim/transcode request. It is immutable once
// submitted to the supervisor.
type Job struct {
	SourcePath string
	OutputPath string

	StartSeconds float64
	EndSeconds   float64

	Mode        Mode
	Accelerator Accelerator

	// Quality is the encoder-neutral 0-51 knob; 0 is lossless. Ignored
	// when BitrateKbps is set.
	Quality int
	// BitrateKbps, when positive, overrides quality-derived rate control.
	BitrateKbps int
	// FPS, when positive, forces the output frame rate.
	FPS int

	Resolution  Resolution
	SpeedFactor float64
	Container   Container
}

// ClipSeconds returns the selected cut length.
func (j Job) ClipSeconds() float64 {
	return j.EndSeconds - j.StartSeconds
}

// Speed returns the effective speed factor: stream copy never retimes.
func (j Job) Speed() float64 {
	if j.Mode != ModeReencode || j.SpeedFactor == 0 {
		return 1.0
	}
	return j.SpeedFactor
}

// EffectiveSeconds returns the expected output duration after speed scaling.
func (j Job) EffectiveSeconds() float64 {
	seconds := j.ClipSeconds() / j.Speed()
	if seconds < 0 {
		return 0
	}
	return seconds
}

// Validate rejects invalid job descriptors before any planning or process
// spawn. sourceDuration bounds the cut range when positive; pass 0 to skip
// the upper-bound check.
func (j Job) Validate(sourceDuration float64) error {
	fail := func(message string) error {
		return services.Wrap(services.ErrPlanning, "job", "validate", message, nil)
	}
	if strings.TrimSpace(j.SourcePath) == "" {
		return fail("source path is required")
	}
	if strings.TrimSpace(j.OutputPath) == "" {
		return fail("output path is required")
	}
	if j.StartSeconds < 0 {
		return fail("start time must not be negative")
	}
	if j.StartSeconds >= j.EndSeconds {
		return fail("start time must be earlier than end time")
	}
	if sourceDuration > 0 && j.EndSeconds > sourceDuration {
		return fail(fmt.Sprintf("end time %.3fs exceeds source duration %.3fs", j.EndSeconds, sourceDuration))
	}
	switch j.Mode {
	case ModeStreamCopy, ModeReencode:
	default:
		return fail(fmt.Sprintf("unknown mode %q", j.Mode))
	}
	switch j.Container {
	case ContainerMP4, ContainerMKV, ContainerAVI, ContainerMOV:
	default:
		return fail(fmt.Sprintf("unknown container %q", j.Container))
	}
	if j.Mode == ModeStreamCopy {
		return nil
	}
	switch j.Accelerator {
	case AccelCPU, AccelNVIDIA, AccelAMD, AccelIntel:
	default:
		return fail(fmt.Sprintf("unknown accelerator %q", j.Accelerator))
	}
	if j.Quality < QualityLossless || j.Quality > QualityMax {
		return fail(fmt.Sprintf("quality %d outside 0-51", j.Quality))
	}
	if j.BitrateKbps < 0 {
		return fail("bitrate must not be negative")
	}
	if j.FPS < 0 {
		return fail("fps must not be negative")
	}
	switch j.Resolution {
	case "", ResolutionOriginal, Resolution4K, Resolution2K, Resolution1080p, Resolution720p:
	default:
		return fail(fmt.Sprintf("unknown resolution %q", j.Resolution))
	}
	if j.SpeedFactor != 0 && (j.SpeedFactor < SpeedMin || j.SpeedFactor > SpeedMax) {
		return fail(fmt.Sprintf("speed factor %.2f outside %.1f-%.1f", j.SpeedFactor, SpeedMin, SpeedMax))
	}
	return nil
}

// ParseMode converts CLI input into a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "copy", "streamcopy", "lossless":
		return ModeStreamCopy, nil
	case "reencode", "compress":
		return ModeReencode, nil
	default:
		return "", fmt.Errorf("unknown mode %q (use copy or reencode)", value)
	}
}

// ParseAccelerator converts CLI input into an Accelerator.
func ParseAccelerator(value string) (Accelerator, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "cpu":
		return AccelCPU, nil
	case "nvidia", "cuda":
		return AccelNVIDIA, nil
	case "amd":
		return AccelAMD, nil
	case "intel", "qsv":
		return AccelIntel, nil
	default:
		return "", fmt.Errorf("unknown accelerator %q (use cpu, nvidia, amd, or intel)", value)
	}
}

// ParseResolution converts CLI input into a Resolution tier.
func ParseResolution(value string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "original":
		return ResolutionOriginal, nil
	case "4k", "2160p":
		return Resolution4K, nil
	case "2k", "1440p":
		return Resolution2K, nil
	case "1080p":
		return Resolution1080p, nil
	case "720p":
		return Resolution720p, nil
	default:
		return "", fmt.Errorf("unknown resolution %q (use original, 4k, 2k, 1080p, or 720p)", value)
	}
}

// ParseContainer converts CLI input into a Container.
func ParseContainer(value string) (Container, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "mp4":
		return ContainerMP4, nil
	case "mkv":
		return ContainerMKV, nil
	case "avi":
		return ContainerAVI, nil
	case "mov":
		return ContainerMOV, nil
	default:
		return "", fmt.Errorf("unknown container %q (use mp4, mkv, avi, or mov)", value)
	}
}
