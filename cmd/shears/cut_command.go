package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"shears/internal/encode"
	"shears/internal/history"
	"shears/internal/logging"
	"shears/internal/media/ffprobe"
	"shears/internal/services"
)

func newCutCommand(ctx *commandContext) *cobra.Command {
	flags := &jobFlags{}

	cmd := &cobra.Command{
		Use:   "cut SOURCE",
		Short: "Trim a video and optionally re-encode it",
		Long: `Cut extracts the selected time range from SOURCE and writes it to the
output file, either by lossless stream copy or by re-encoding with the
chosen accelerator. Progress streams live; Ctrl-C cancels the transcode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runCut(signalCtx, ctx, flags, args[0], cmd)
		},
	}

	flags.register(cmd)
	return cmd
}

func runCut(ctx context.Context, cmdCtx *commandContext, flags *jobFlags, source string, cmd *cobra.Command) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger := cmdCtx.ensureLogger()
	out := cmd.OutOrStdout()

	ffprobeBin, err := cmdCtx.ffprobePath()
	if err != nil {
		return err
	}
	ffmpegBin, err := cmdCtx.ffmpegPath()
	if err != nil {
		return err
	}

	info, err := ffprobe.Probe(ctx, ffprobeBin, source)
	if err != nil {
		return err
	}

	job, err := flags.job(source, info.DurationSeconds)
	if err != nil {
		return err
	}
	if err := job.Validate(info.DurationSeconds); err != nil {
		return err
	}

	planner := encode.NewPlanner(cfg.Audio.Codec, cfg.Audio.Bitrate)
	planned, err := planner.Plan(job)
	if err != nil {
		return err
	}

	// One transcode at a time across processes.
	lock := flock.New(cfg.LockFilePath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire transcode lock: %w", err)
	}
	if !locked {
		return services.Wrap(services.ErrPlanning, "cut", "lock", "another transcode is already running", nil)
	}
	defer func() { _ = lock.Unlock() }()

	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	supervisor := encode.NewSupervisor(ffmpegBin, logger)
	run, err := supervisor.Start(ctx, job, planned)
	if err != nil {
		return err
	}

	record := history.Run{
		ID:           run.ID,
		SourcePath:   job.SourcePath,
		OutputPath:   job.OutputPath,
		Mode:         string(job.Mode),
		Accelerator:  string(job.Accelerator),
		StartSeconds: job.StartSeconds,
		EndSeconds:   job.EndSeconds,
		Command:      ffmpegBin + " " + strings.Join(planned, " "),
	}
	if err := store.RecordStart(ctx, record); err != nil {
		logger.Warn("record run", logging.Error(err))
	}

	outcome := drainRun(ctx, run, store, out)

	status := history.StatusFailed
	message := ""
	switch outcome.Outcome {
	case encode.OutcomeSucceeded:
		status = history.StatusSucceeded
	case encode.OutcomeCancelled:
		status = history.StatusCancelled
	default:
		message = outcome.Message
	}
	if err := store.Finish(context.Background(), run.ID, status, message); err != nil {
		logger.Warn("finish run", logging.Error(err))
	}

	switch outcome.Outcome {
	case encode.OutcomeSucceeded:
		fmt.Fprintf(out, "Done: %s\n", job.OutputPath)
		return nil
	case encode.OutcomeCancelled:
		return services.Wrap(services.ErrCancelled, "cut", "transcode", "cancelled", nil)
	default:
		return services.Wrap(services.ErrProcess, "cut", "transcode", outcome.Message, nil)
	}
}

// drainRun consumes the run's event stream, mirroring progress to the
// terminal and the history store, and returns the terminal event.
func drainRun(ctx context.Context, run *encode.Run, store *history.Store, out io.Writer) encode.Event {
	var bar *progress.Tracker
	var pw progress.Writer
	if file, ok := out.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		pw = progress.NewWriter()
		pw.SetOutputWriter(file)
		pw.SetAutoStop(false)
		pw.SetTrackerLength(40)
		pw.SetUpdateFrequency(200 * time.Millisecond)
		bar = &progress.Tracker{Message: "transcoding", Total: 100}
		pw.AppendTracker(bar)
		go pw.Render()
	}

	var terminal encode.Event
	for event := range run.Events() {
		switch event.Type {
		case encode.EventProgress:
			if bar != nil {
				bar.SetValue(int64(event.Percent))
			}
			_ = store.UpdateProgress(ctx, run.ID, event.Percent)
		case encode.EventFinished:
			terminal = event
		}
	}

	if bar != nil {
		if terminal.Outcome == encode.OutcomeSucceeded {
			bar.SetValue(100)
			bar.MarkAsDone()
		} else {
			bar.MarkAsErrored()
		}
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(10 * time.Millisecond)
		}
	}
	return terminal
}
