package services_test

import (
	"errors"
	"strings"
	"testing"

	"shears/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrProcess, "encode", "run ffmpeg", "encode failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrProcess) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"encode", "run ffmpeg", "encode failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "probe", "inspect", "bad output", nil)
	if !errors.Is(err, services.ErrProcess) {
		t.Fatalf("expected nil marker to default to ErrProcess, got %v", err)
	}
}

func TestIsTerminalFailure(t *testing.T) {
	cancelErr := services.Wrap(services.ErrCancelled, "encode", "run", "stopped", nil)
	if services.IsTerminalFailure(cancelErr) {
		t.Fatal("cancellation should not count as terminal failure")
	}
	if services.IsTerminalFailure(nil) {
		t.Fatal("nil error should not count as terminal failure")
	}
	if !services.IsTerminalFailure(errors.New("io")) {
		t.Fatal("plain error should count as terminal failure")
	}
}
