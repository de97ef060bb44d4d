package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"shears/internal/services"
)

// Resolve locates an external tool binary. The lookup order is:
//
//  1. the configured bundled-tool directory
//  2. the directory containing the running executable
//  3. the system search path
//
// When every location misses, the literal command name is returned together
// with ErrToolNotFound so callers can decide whether to fail now or let the
// spawn fail later.
func Resolve(command, toolDir string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", services.Wrap(services.ErrToolNotFound, "deps", "resolve", "empty command", nil)
	}

	// Explicit paths bypass the search order.
	if strings.ContainsRune(command, os.PathSeparator) {
		if info, err := os.Stat(command); err == nil && isExecutable(info) {
			return command, nil
		}
		return command, services.Wrap(services.ErrToolNotFound, "deps", "resolve", command, nil)
	}

	name := command
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		name += ".exe"
	}

	if dir := strings.TrimSpace(toolDir); dir != "" {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return candidate, nil
		}
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(command); err == nil {
		return path, nil
	}

	return command, services.Wrap(services.ErrToolNotFound, "deps", "resolve", command, nil)
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
