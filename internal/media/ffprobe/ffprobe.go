package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"shears/internal/services"
)

var commandContext = exec.CommandContext

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	BitRate    string `json:"bit_rate"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// MediaInfo is the projection of a probe result the planner and estimator
// consume. It is created once per loaded source and read-only thereafter.
type MediaInfo struct {
	DurationSeconds float64
	BitrateKbps     float64
	Width           int
	Height          int
	FrameRate       float64
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, services.Wrap(services.ErrProbe, "ffprobe", "inspect", "empty path", nil)
	}

	cmd := commandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderrOf(err))
		return Result{}, services.Wrap(services.ErrProbe, "ffprobe", "inspect", detail, err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, services.Wrap(services.ErrProbe, "ffprobe", "parse", "output is not valid JSON", err)
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

// Probe inspects a source file and extracts the media info the rest of the
// pipeline needs. It fails when no video stream is present.
func Probe(ctx context.Context, binary string, path string) (MediaInfo, error) {
	result, err := Inspect(ctx, binary, path)
	if err != nil {
		return MediaInfo{}, err
	}
	return result.MediaInfo()
}

// MediaInfo builds the consumable projection from a parsed result.
func (r Result) MediaInfo() (MediaInfo, error) {
	video, ok := r.firstVideoStream()
	if !ok {
		return MediaInfo{}, services.Wrap(services.ErrProbe, "ffprobe", "media info", "no video stream present", nil)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil || duration < 0 {
		return MediaInfo{}, services.Wrap(services.ErrProbe, "ffprobe", "media info", fmt.Sprintf("invalid duration %q", r.Format.Duration), nil)
	}

	info := MediaInfo{
		DurationSeconds: duration,
		Width:           video.Width,
		Height:          video.Height,
	}

	if rate := strings.TrimSpace(r.Format.BitRate); rate != "" {
		bits, err := strconv.ParseFloat(rate, 64)
		if err != nil || bits < 0 {
			return MediaInfo{}, services.Wrap(services.ErrProbe, "ffprobe", "media info", fmt.Sprintf("invalid bit_rate %q", rate), nil)
		}
		info.BitrateKbps = bits / 1000
	}

	fps, err := parseRational(video.RFrameRate)
	if err != nil {
		return MediaInfo{}, services.Wrap(services.ErrProbe, "ffprobe", "media info", fmt.Sprintf("invalid r_frame_rate %q", video.RFrameRate), err)
	}
	info.FrameRate = fps

	return info, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or 0 when
// unavailable.
func (r Result) DurationSeconds() float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func (r Result) firstVideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// parseRational evaluates frame-rate strings like "30000/1001" or "30" with
// strict integer parsing of numerator and denominator. ffprobe output is
// untrusted, so nothing here evaluates expressions.
func parseRational(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	num, den, found := strings.Cut(value, "/")
	numerator, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("numerator: %w", err)
	}
	if !found {
		return float64(numerator), nil
	}
	denominator, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("denominator: %w", err)
	}
	if denominator == 0 {
		return 0, nil
	}
	return float64(numerator) / float64(denominator), nil
}

func stderrOf(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return string(exitErr.Stderr)
	}
	return err.Error()
}
