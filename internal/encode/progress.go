package encode

import (
	"regexp"
	"strconv"
)

var progressTimePattern = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// parseProgressTime extracts the elapsed output timestamp from an ffmpeg
// status line. It returns false for lines without a well-formed time field;
// malformed fields are skipped rather than surfaced as errors.
func parseProgressTime(line string) (float64, bool) {
	match := progressTimePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(match[2])
	if err != nil || minutes > 59 {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(match[3], 64)
	if err != nil || seconds >= 60 {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

// progressTracker converts elapsed output time into a monotonic percentage
// against the expected output duration. ffmpeg occasionally reports
// timestamps that step backwards around seeks; the tracker clamps those so
// observers only ever see non-decreasing values.
type progressTracker struct {
	totalSeconds float64
	lastPercent  int
	seen         bool
}

func newProgressTracker(totalSeconds float64) *progressTracker {
	return &progressTracker{totalSeconds: totalSeconds}
}

// Observe feeds one stderr line to the tracker. It returns the current
// percentage and whether the line advanced it. The first well-formed
// timestamp always counts as an advance, even when it maps to 0%.
func (t *progressTracker) Observe(line string) (int, bool) {
	elapsed, ok := parseProgressTime(line)
	if !ok {
		return t.lastPercent, false
	}
	if t.totalSeconds <= 0 {
		return t.lastPercent, false
	}
	percent := int(elapsed / t.totalSeconds * 100)
	if percent > 100 {
		percent = 100
	}
	if t.seen && percent <= t.lastPercent {
		return t.lastPercent, false
	}
	t.seen = true
	t.lastPercent = percent
	return percent, true
}

// Percent returns the last reported value.
func (t *progressTracker) Percent() int {
	return t.lastPercent
}
