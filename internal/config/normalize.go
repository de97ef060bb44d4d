package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeAudio()
	c.normalizeEstimator()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ToolDir) != "" {
		if c.Paths.ToolDir, err = expandPath(c.Paths.ToolDir); err != nil {
			return fmt.Errorf("paths.tool_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = defaultFFprobe
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
}

func (c *Config) normalizeAudio() {
	if strings.TrimSpace(c.Audio.Codec) == "" {
		c.Audio.Codec = defaultAudioCodec
	}
	if strings.TrimSpace(c.Audio.Bitrate) == "" {
		c.Audio.Bitrate = defaultAudioBitrate
	}
}

func (c *Config) normalizeEstimator() {
	if c.Estimator.QualitySlope == 0 {
		c.Estimator.QualitySlope = defaultQualitySlope
	}
	if c.Estimator.Factor4K == 0 {
		c.Estimator.Factor4K = defaultFactor4K
	}
	if c.Estimator.Factor2K == 0 {
		c.Estimator.Factor2K = defaultFactor2K
	}
	if c.Estimator.Factor1080p == 0 {
		c.Estimator.Factor1080p = defaultFactor1080p
	}
	if c.Estimator.Factor720p == 0 {
		c.Estimator.Factor720p = defaultFactor720p
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
