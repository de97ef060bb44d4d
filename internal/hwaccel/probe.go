package hwaccel

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"shears/internal/encode"
	"shears/internal/logging"
)

var commandContext = exec.CommandContext

// encoderFor maps a hardware vendor onto the encoder its probe exercises.
func encoderFor(accel encode.Accelerator) string {
	switch accel {
	case encode.AccelNVIDIA:
		return "h264_nvenc"
	case encode.AccelAMD:
		return "h264_amf"
	case encode.AccelIntel:
		return "h264_qsv"
	default:
		return "libx264"
	}
}

// Availability is the probe result for one vendor.
type Availability struct {
	Accelerator encode.Accelerator
	Encoder     string
	Available   bool
	// Detail carries the reason when unavailable: either the missing-device
	// advisory or the encoder's diagnostic output.
	Detail string
}

// Result aggregates per-vendor availability with the recommended default.
type Result struct {
	Availabilities []Availability
	Recommended    encode.Accelerator
}

// Available lists the usable accelerators in preference order.
func (r Result) Available() []encode.Accelerator {
	accels := make([]encode.Accelerator, 0, len(r.Availabilities))
	for _, availability := range r.Availabilities {
		if availability.Available {
			accels = append(accels, availability.Accelerator)
		}
	}
	return accels
}

// ReportLines renders the human-readable detection report.
func (r Result) ReportLines() []string {
	lines := make([]string, 0, len(r.Availabilities)+1)
	for _, availability := range r.Availabilities {
		name := vendorName(availability.Accelerator)
		switch {
		case availability.Available:
			lines = append(lines, fmt.Sprintf("%s (%s): available", name, availability.Encoder))
		case availability.Detail != "":
			lines = append(lines, fmt.Sprintf("%s (%s): unavailable (%s)", name, availability.Encoder, availability.Detail))
		default:
			lines = append(lines, fmt.Sprintf("%s (%s): unavailable", name, availability.Encoder))
		}
	}
	lines = append(lines, fmt.Sprintf("recommended: %s", r.Recommended))
	return lines
}

func vendorName(accel encode.Accelerator) string {
	switch accel {
	case encode.AccelNVIDIA:
		return "NVIDIA NVENC"
	case encode.AccelAMD:
		return "AMD AMF"
	case encode.AccelIntel:
		return "Intel Quick Sync"
	default:
		return "CPU x264"
	}
}

// Detect probes every hardware vendor by running a short synthetic encode
// against a generated test source and classifying the exit status. The CPU
// path is assumed present and is not probed. Detection never fails: a vendor
// whose probe cannot run is simply reported unavailable.
func Detect(ctx context.Context, ffmpegBinary string, logger *slog.Logger) Result {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldComponent, "hwaccel"))

	result := Result{Recommended: encode.AccelCPU}
	for _, accel := range encode.Accelerators() {
		availability := Availability{Accelerator: accel, Encoder: encoderFor(accel)}
		if accel == encode.AccelCPU {
			availability.Available = true
		} else {
			availability.Available, availability.Detail = probeEncoder(ctx, ffmpegBinary, availability.Encoder)
		}
		if availability.Available {
			logger.Info("encoder available", logging.String("encoder", availability.Encoder))
			if result.Recommended == encode.AccelCPU && accel != encode.AccelCPU {
				result.Recommended = accel
			}
		} else {
			logger.Debug("encoder unavailable",
				logging.String("encoder", availability.Encoder),
				logging.String("detail", availability.Detail))
		}
		result.Availabilities = append(result.Availabilities, availability)
	}
	return result
}

// probeEncoder runs the synthetic encode for one encoder. Exit status zero
// means the encoder initialized against real hardware; anything else is
// classified from the diagnostic output.
func probeEncoder(ctx context.Context, binary, encoder string) (bool, string) {
	cmd := commandContext(ctx, binary,
		"-y", "-v", "error",
		"-f", "lavfi", "-i", "color=s=1920x1080:d=1",
		"-c:v", encoder,
		"-f", "null", "-",
	) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err == nil {
		return true, ""
	}

	diagnostic := strings.TrimSpace(string(output))
	if strings.Contains(strings.ToLower(diagnostic), "device not found") {
		return false, "no such device"
	}
	if diagnostic == "" {
		return false, err.Error()
	}
	return false, firstLine(diagnostic)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
