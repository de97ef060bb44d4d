package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shears/internal/encode"
)

// jobFlags is the flag set shared by cut, plan, and estimate.
type jobFlags struct {
	start      string
	end        string
	mode       string
	accel      string
	quality    int
	bitrate    int
	fps        int
	resolution string
	speed      float64
	format     string
	output     string
}

func (f *jobFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.start, "start", "0", "Cut start (seconds or HH:MM:SS[.ms])")
	flags.StringVar(&f.end, "end", "", "Cut end (seconds or HH:MM:SS[.ms]); defaults to the source end")
	flags.StringVar(&f.mode, "mode", "copy", "Transcode mode: copy or reencode")
	flags.StringVar(&f.accel, "accel", "cpu", "Hardware accelerator: cpu, nvidia, amd, or intel")
	flags.IntVarP(&f.quality, "quality", "q", 23, "Quality 0-51 (0 is lossless)")
	flags.IntVar(&f.bitrate, "bitrate", 0, "Target video bitrate in kbps (overrides quality)")
	flags.IntVar(&f.fps, "fps", 0, "Force output frame rate")
	flags.StringVar(&f.resolution, "resolution", "original", "Output resolution: original, 4k, 2k, 1080p, or 720p")
	flags.Float64Var(&f.speed, "speed", 1.0, "Playback speed factor 0.5-2.0")
	flags.StringVarP(&f.format, "format", "f", "mp4", "Output container: mp4, mkv, avi, or mov")
	flags.StringVarP(&f.output, "output", "o", "", "Output file path")
}

// job converts the parsed flags into a validated-ready job descriptor.
// sourceDuration fills in a missing --end.
func (f *jobFlags) job(source string, sourceDuration float64) (encode.Job, error) {
	start, err := parseTimecode(f.start)
	if err != nil {
		return encode.Job{}, fmt.Errorf("invalid --start: %w", err)
	}

	end := sourceDuration
	if strings.TrimSpace(f.end) != "" {
		end, err = parseTimecode(f.end)
		if err != nil {
			return encode.Job{}, fmt.Errorf("invalid --end: %w", err)
		}
	}

	mode, err := encode.ParseMode(f.mode)
	if err != nil {
		return encode.Job{}, err
	}
	accel, err := encode.ParseAccelerator(f.accel)
	if err != nil {
		return encode.Job{}, err
	}
	resolution, err := encode.ParseResolution(f.resolution)
	if err != nil {
		return encode.Job{}, err
	}
	container, err := encode.ParseContainer(f.format)
	if err != nil {
		return encode.Job{}, err
	}

	output := strings.TrimSpace(f.output)
	if output == "" {
		output = defaultOutputPath(source, container)
	}

	return encode.Job{
		SourcePath:   source,
		OutputPath:   output,
		StartSeconds: start,
		EndSeconds:   end,
		Mode:         mode,
		Accelerator:  accel,
		Quality:      f.quality,
		BitrateKbps:  f.bitrate,
		FPS:          f.fps,
		Resolution:   resolution,
		SpeedFactor:  f.speed,
		Container:    container,
	}, nil
}

// defaultOutputPath derives an output name next to the source: input.mp4
// becomes input_cut.mkv for the chosen container.
func defaultOutputPath(source string, container encode.Container) string {
	dir := filepath.Dir(source)
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, base+"_cut."+string(container))
}
