package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shears/internal/config"
)

const stubProbeJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264",
     "width": 1920, "height": 1080, "r_frame_rate": "30000/1001"}
  ],
  "format": {"duration": "120.000000", "bit_rate": "8000000"}
}`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	toolDir    string
	sourcePath string
}

// setupCLITestEnv builds an isolated config plus stub ffmpeg/ffprobe
// binaries resolved through the bundled-tool directory.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	toolDir := filepath.Join(base, "tools")
	if err := os.MkdirAll(toolDir, 0o755); err != nil {
		t.Fatalf("mkdir tools: %v", err)
	}
	writeStub(t, filepath.Join(toolDir, "ffprobe"), "#!/bin/sh\ncat <<'EOF'\n"+stubProbeJSON+"\nEOF\n")
	writeStub(t, filepath.Join(toolDir, "ffmpeg"), `#!/bin/sh
echo "frame=100 fps=30 time=00:00:30.00 bitrate=800kbits/s" >&2
echo "frame=200 fps=30 time=00:01:00.00 bitrate=800kbits/s" >&2
exit 0
`)

	sourcePath := filepath.Join(base, "input.mp4")
	if err := os.WriteFile(sourcePath, []byte("fake"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	stateDir := filepath.Join(base, "state")
	logDir := filepath.Join(base, "logs")
	configPath := filepath.Join(base, "config.toml")
	content := "[paths]\n" +
		"state_dir = \"" + stateDir + "\"\n" +
		"log_dir = \"" + logDir + "\"\n" +
		"tool_dir = \"" + toolDir + "\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load test config: %v", err)
	}

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		toolDir:    toolDir,
		sourcePath: sourcePath,
	}
}

func writeStub(t *testing.T, path, script string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
