package encode

import (
	"errors"
	"testing"

	"shears/internal/services"
)

func TestJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Job)
		wantErr bool
	}{
		{"valid reencode", func(j *Job) {}, false},
		{"valid copy", func(j *Job) { j.Mode = ModeStreamCopy }, false},
		{"missing source", func(j *Job) { j.SourcePath = "  " }, true},
		{"missing output", func(j *Job) { j.OutputPath = "" }, true},
		{"negative start", func(j *Job) { j.StartSeconds = -1 }, true},
		{"empty range", func(j *Job) { j.EndSeconds = j.StartSeconds }, true},
		{"inverted range", func(j *Job) { j.StartSeconds, j.EndSeconds = 30, 10 }, true},
		{"unknown mode", func(j *Job) { j.Mode = "fast" }, true},
		{"unknown container", func(j *Job) { j.Container = "webm" }, true},
		{"quality too high", func(j *Job) { j.Quality = 52 }, true},
		{"quality negative", func(j *Job) { j.Quality = -1 }, true},
		{"quality lossless", func(j *Job) { j.Quality = 0 }, false},
		{"negative bitrate", func(j *Job) { j.BitrateKbps = -100 }, true},
		{"negative fps", func(j *Job) { j.FPS = -24 }, true},
		{"unknown accelerator", func(j *Job) { j.Accelerator = "vulkan" }, true},
		{"unknown resolution", func(j *Job) { j.Resolution = "480p" }, true},
		{"speed too slow", func(j *Job) { j.SpeedFactor = 0.25 }, true},
		{"speed too fast", func(j *Job) { j.SpeedFactor = 3 }, true},
		{"speed in range", func(j *Job) { j.SpeedFactor = 1.5 }, false},
		{"copy skips encoder checks", func(j *Job) {
			j.Mode = ModeStreamCopy
			j.Accelerator = "vulkan"
			j.Quality = 99
		}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			job := baseJob()
			tc.mutate(&job)
			err := job.Validate(0)
			if tc.wantErr {
				if !errors.Is(err, services.ErrPlanning) {
					t.Fatalf("expected planning error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestJobValidateSourceBound(t *testing.T) {
	job := baseJob()
	job.EndSeconds = 70

	if err := job.Validate(60); !errors.Is(err, services.ErrPlanning) {
		t.Fatalf("end beyond source duration must fail, got %v", err)
	}
	if err := job.Validate(70); err != nil {
		t.Fatalf("end at source duration must pass, got %v", err)
	}
	if err := job.Validate(0); err != nil {
		t.Fatalf("zero duration skips bound check, got %v", err)
	}
}

func TestJobEffectiveSeconds(t *testing.T) {
	job := baseJob()
	job.StartSeconds, job.EndSeconds = 0, 60
	job.SpeedFactor = 2.0

	if got := job.EffectiveSeconds(); got != 30 {
		t.Fatalf("EffectiveSeconds = %v, want 30", got)
	}

	job.Mode = ModeStreamCopy
	if got := job.EffectiveSeconds(); got != 60 {
		t.Fatalf("stream copy must ignore speed, got %v", got)
	}
}

func TestParseHelpers(t *testing.T) {
	if mode, err := ParseMode("Copy"); err != nil || mode != ModeStreamCopy {
		t.Fatalf("ParseMode(Copy) = %v, %v", mode, err)
	}
	if _, err := ParseMode("turbo"); err == nil {
		t.Fatal("ParseMode must reject unknown values")
	}
	if accel, err := ParseAccelerator("cuda"); err != nil || accel != AccelNVIDIA {
		t.Fatalf("ParseAccelerator(cuda) = %v, %v", accel, err)
	}
	if accel, err := ParseAccelerator(""); err != nil || accel != AccelCPU {
		t.Fatalf("empty accelerator must default to cpu, got %v, %v", accel, err)
	}
	if res, err := ParseResolution("1440p"); err != nil || res != Resolution2K {
		t.Fatalf("ParseResolution(1440p) = %v, %v", res, err)
	}
	if c, err := ParseContainer("MKV"); err != nil || c != ContainerMKV {
		t.Fatalf("ParseContainer(MKV) = %v, %v", c, err)
	}
}
