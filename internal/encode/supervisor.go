package encode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"shears/internal/logging"
	"shears/internal/services"
)

var commandContext = exec.CommandContext

// Outcome is the terminal state of a supervised run.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// EventType distinguishes progress updates from the terminal event.
type EventType string

const (
	EventProgress EventType = "progress"
	EventFinished EventType = "finished"
)

// Event is published on a run's channel. Progress events carry Percent;
// the single finished event carries the Outcome and, for failures, a
// message with the process diagnostics.
type Event struct {
	Type    EventType
	Percent int
	Outcome Outcome
	Message string
}

// stopGrace bounds how long a cancelled ffmpeg gets to exit after SIGTERM
// before it is killed.
const stopGrace = 5 * time.Second

// diagnosticTailLines caps how many trailing stderr lines are kept for the
// failure message.
const diagnosticTailLines = 8

// Supervisor launches planned ffmpeg invocations and streams their
// progress. A supervisor allows one active run at a time.
type Supervisor struct {
	binary string
	logger *slog.Logger

	mu     sync.Mutex
	active bool
}

// NewSupervisor returns a supervisor that executes the given ffmpeg binary.
func NewSupervisor(binary string, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Supervisor{binary: binary, logger: logger.With(logging.String(logging.FieldComponent, "supervisor"))}
}

// Run is the handle for an in-flight transcode.
type Run struct {
	ID string

	events chan Event
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	percent int
	outcome Outcome
	err     error
}

// Events returns the run's event stream. The channel is closed after the
// terminal event has been delivered.
func (r *Run) Events() <-chan Event {
	return r.events
}

// Cancel requests termination of the underlying process. It is safe to call
// at any time, including after the run has finished.
func (r *Run) Cancel() {
	r.cancel()
}

// Wait blocks until the run reaches a terminal state and returns it. The
// error is nil for OutcomeSucceeded and OutcomeCancelled.
func (r *Run) Wait() (Outcome, error) {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome, r.err
}

// Start launches ffmpeg with the planned arguments and begins streaming
// progress against the job's effective output duration. It returns an error
// immediately when another run is still active; spawn failures after that
// point are delivered as a failed terminal event instead.
func (s *Supervisor) Start(ctx context.Context, job Job, args []string) (*Run, error) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil, services.Wrap(services.ErrPlanning, "supervisor", "start", "a transcode is already running", nil)
	}
	s.active = true
	s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		ID:     uuid.NewString(),
		events: make(chan Event, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go s.supervise(runCtx, run, job, args)
	return run, nil
}

func (s *Supervisor) supervise(ctx context.Context, run *Run, job Job, args []string) {
	outcome, err := s.execute(ctx, run, job, args)

	run.mu.Lock()
	run.outcome = outcome
	run.err = err
	run.mu.Unlock()

	// Release the slot before publishing the terminal event so a caller
	// that saw the event can immediately start the next run.
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()

	event := Event{Type: EventFinished, Outcome: outcome, Percent: run.lastPercent()}
	if outcome == OutcomeSucceeded {
		event.Percent = 100
	}
	if err != nil {
		event.Message = err.Error()
	}
	run.events <- event
	close(run.events)
	close(run.done)
}

func (r *Run) lastPercent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.percent
}

func (s *Supervisor) execute(ctx context.Context, run *Run, job Job, args []string) (Outcome, error) {
	cmd := commandContext(ctx, s.binary, args...) //nolint:gosec
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = stopGrace

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return OutcomeFailed, services.Wrap(services.ErrProcess, "supervisor", "start ffmpeg", "stderr pipe", err)
	}

	if err := cmd.Start(); err != nil {
		if ctx.Err() != nil {
			return OutcomeCancelled, nil
		}
		return OutcomeFailed, services.Wrap(services.ErrProcess, "supervisor", "start ffmpeg", fmt.Sprintf("launch %s", s.binary), err)
	}

	s.logger.Info("transcode started",
		logging.String("run_id", run.ID),
		logging.String("source", job.SourcePath),
		logging.String("output", job.OutputPath))

	tracker := newProgressTracker(job.EffectiveSeconds())
	tail := make([]string, 0, diagnosticTailLines)

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 512*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if percent, advanced := tracker.Observe(line); advanced {
			run.setPercent(percent)
			run.events <- Event{Type: EventProgress, Percent: percent}
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if len(tail) == diagnosticTailLines {
				copy(tail, tail[1:])
				tail = tail[:diagnosticTailLines-1]
			}
			tail = append(tail, trimmed)
		}
	}

	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		s.logger.Info("transcode cancelled", logging.String("run_id", run.ID))
		return OutcomeCancelled, nil
	}
	if waitErr != nil {
		message := "ffmpeg exited with an error"
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			message = fmt.Sprintf("ffmpeg exited with status %d", exitErr.ExitCode())
		}
		if len(tail) > 0 {
			message = fmt.Sprintf("%s: %s", message, strings.Join(tail, " | "))
		}
		s.logger.Error("transcode failed", logging.String("run_id", run.ID), logging.Error(waitErr))
		return OutcomeFailed, services.Wrap(services.ErrProcess, "supervisor", "transcode", message, waitErr)
	}

	s.logger.Info("transcode finished", logging.String("run_id", run.ID))
	return OutcomeSucceeded, nil
}

func (r *Run) setPercent(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.percent = percent
}
