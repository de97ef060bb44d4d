package main

import (
	"encoding/json"
	"testing"
)

func TestProbeCommandTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"probe", env.sourcePath}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, "Duration")
	requireContains(t, out, "00:02:00.00")
	requireContains(t, out, "1920x1080")
	requireContains(t, out, "29.970 fps")
	requireContains(t, out, "8000 kbps")
}

func TestProbeCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"probe", env.sourcePath, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("probe --json: %v", err)
	}

	var decoded struct {
		Streams []map[string]any `json:"streams"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(decoded.Streams) != 1 {
		t.Fatalf("expected one stream in raw output, got %d", len(decoded.Streams))
	}
}

func TestEstimateCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	// Stream copy of 60s at 8000 kbps: 60 MB.
	out, _, err := runCLI(t, []string{
		"estimate", env.sourcePath,
		"--start", "0", "--end", "60",
	}, env.configPath)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	requireContains(t, out, "(60000000 bytes)")
}

func TestDetectCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	// The stub ffmpeg exits 0 for every encoder, so everything reports
	// available and the preference order picks NVIDIA.
	out, _, err := runCLI(t, []string{"detect"}, env.configPath)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, out, "NVIDIA NVENC (h264_nvenc): available")
	requireContains(t, out, "recommended: nvidia")
}

func TestToolsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"tools"}, env.configPath)
	if err != nil {
		t.Fatalf("tools: %v", err)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, env.toolDir)
}

func TestHistoryCommandEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded yet")
}
