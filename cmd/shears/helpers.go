package main

import (
	"fmt"
	"strconv"
	"strings"

	"shears/internal/config"
	"shears/internal/encode"
)

// parseTimecode accepts plain seconds ("90.5") or HH:MM:SS[.ms] / MM:SS[.ms]
// timecodes and returns seconds.
func parseTimecode(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty time value")
	}

	parts := strings.Split(value, ":")
	if len(parts) == 1 {
		seconds, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || seconds < 0 {
			return 0, fmt.Errorf("malformed time %q", value)
		}
		return seconds, nil
	}
	if len(parts) > 3 {
		return 0, fmt.Errorf("malformed time %q", value)
	}

	seconds, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("malformed time %q", value)
	}
	total := seconds
	multiplier := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		unit, err := strconv.Atoi(parts[i])
		if err != nil || unit < 0 {
			return 0, fmt.Errorf("malformed time %q", value)
		}
		if i > 0 && unit > 59 {
			return 0, fmt.Errorf("malformed time %q", value)
		}
		total += float64(unit) * multiplier
		multiplier *= 60
	}
	return total, nil
}

func formatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := seconds - float64(hours*3600+minutes*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, secs)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGT"[exp])
}

func estimateParams(cfg *config.Config) encode.EstimateParams {
	return encode.EstimateParams{
		QualitySlope: cfg.Estimator.QualitySlope,
		Factor4K:     cfg.Estimator.Factor4K,
		Factor2K:     cfg.Estimator.Factor2K,
		Factor1080p:  cfg.Estimator.Factor1080p,
		Factor720p:   cfg.Estimator.Factor720p,
	}
}
