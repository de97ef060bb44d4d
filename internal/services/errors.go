package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProbe marks failures while reading source metadata (prober exit,
	// unparseable output, missing video stream).
	ErrProbe = errors.New("probe error")
	// ErrPlanning marks invalid job descriptors rejected before any
	// process is spawned.
	ErrPlanning = errors.New("planning error")
	// ErrToolNotFound marks an encoder or prober binary missing from every
	// resolution location.
	ErrToolNotFound = errors.New("tool not found")
	// ErrProcess marks a spawn failure or nonzero exit of an external tool.
	ErrProcess = errors.New("process error")
	// ErrCancelled marks a deliberate interruption of a running job.
	ErrCancelled = errors.New("cancelled")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrProcess
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsTerminalFailure reports whether an error represents a genuine failure as
// opposed to a user-requested cancellation.
func IsTerminalFailure(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrCancelled)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
