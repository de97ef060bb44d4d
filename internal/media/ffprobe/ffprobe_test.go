package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"shears/internal/services"
)

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080, "r_frame_rate": "30000/1001"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio"}
  ],
  "format": {"filename": "demo.mp4", "duration": "120.500000", "size": "98765432", "bit_rate": "8000000", "format_name": "mov,mp4"}
}`

func parseSample(t *testing.T) Result {
	t.Helper()
	var result Result
	if err := json.Unmarshal([]byte(sampleJSON), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return result
}

func TestMediaInfoExtraction(t *testing.T) {
	result := parseSample(t)
	info, err := result.MediaInfo()
	if err != nil {
		t.Fatalf("MediaInfo: %v", err)
	}
	if info.DurationSeconds != 120.5 {
		t.Fatalf("duration = %v", info.DurationSeconds)
	}
	if info.BitrateKbps != 8000 {
		t.Fatalf("bitrate = %v", info.BitrateKbps)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Fatalf("resolution = %dx%d", info.Width, info.Height)
	}
	want := 30000.0 / 1001.0
	if diff := info.FrameRate - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("frame rate = %v, want %v", info.FrameRate, want)
	}
}

func TestMediaInfoRequiresVideoStream(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "audio"}},
		Format:  Format{Duration: "10"},
	}
	if _, err := result.MediaInfo(); !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected ErrProbe, got %v", err)
	}
}

func TestParseRational(t *testing.T) {
	cases := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"30000/1001", 30000.0 / 1001.0, false},
		{"25/1", 25, false},
		{"30", 30, false},
		{"0/0", 0, false},
		{"", 0, false},
		{"abc/1", 0, true},
		{"1/xyz", 0, true},
		{"1+1", 0, true},
	}
	for _, tc := range cases {
		got, err := parseRational(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseRational(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseRational(%q): %v", tc.input, err)
			continue
		}
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("parseRational(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestInspectRunsBinary(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(payload, []byte(sampleJSON), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat " + payload + "\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), stub, "demo.mp4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("video streams = %d", result.VideoStreamCount())
	}
	if result.DurationSeconds() != 120.5 {
		t.Fatalf("duration = %v", result.DurationSeconds())
	}
	if len(result.RawJSON()) == 0 {
		t.Fatal("expected raw payload retained")
	}
}

func TestInspectNonZeroExit(t *testing.T) {
	restore := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "echo bad input >&2; exit 1")
	}
	t.Cleanup(func() { commandContext = restore })

	if _, err := Inspect(context.Background(), "ffprobe", "demo.mp4"); !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected ErrProbe, got %v", err)
	}
}

func TestInspectBadJSON(t *testing.T) {
	restore := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "echo not json")
	}
	t.Cleanup(func() { commandContext = restore })

	if _, err := Inspect(context.Background(), "ffprobe", "demo.mp4"); !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected ErrProbe, got %v", err)
	}
}
