package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateEstimator(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Tools.FFmpeg == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	if c.Tools.FFprobe == "" {
		return errors.New("tools.ffprobe must be set")
	}
	return nil
}

func (c *Config) validateEstimator() error {
	if c.Estimator.QualitySlope < 0 || c.Estimator.QualitySlope > 1 {
		return errors.New("estimator.quality_slope must be between 0 and 1")
	}
	factors := map[string]float64{
		"estimator.factor_4k":    c.Estimator.Factor4K,
		"estimator.factor_2k":    c.Estimator.Factor2K,
		"estimator.factor_1080p": c.Estimator.Factor1080p,
		"estimator.factor_720p":  c.Estimator.Factor720p,
	}
	for key, value := range factors {
		if value <= 0 || value > 1 {
			return fmt.Errorf("%s must be in (0, 1]", key)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
