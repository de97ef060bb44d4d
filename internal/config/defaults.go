package config

const (
	defaultStateDir     = "~/.local/share/shears"
	defaultLogDir       = "~/.local/share/shears/logs"
	defaultFFmpeg       = "ffmpeg"
	defaultFFprobe      = "ffprobe"
	defaultAudioCodec   = "aac"
	defaultAudioBitrate = "192k"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	// Empirical size-estimation constants carried over from the original
	// tool. quality_slope scales estimated bitrate linearly from 100% of
	// source at quality 0 down to 30% at quality 51.
	defaultQualitySlope = 0.7
	defaultFactor4K     = 1.0
	defaultFactor2K     = 0.8
	defaultFactor1080p  = 0.6
	defaultFactor720p   = 0.4
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Audio: Audio{
			Codec:   defaultAudioCodec,
			Bitrate: defaultAudioBitrate,
		},
		Estimator: Estimator{
			QualitySlope: defaultQualitySlope,
			Factor4K:     defaultFactor4K,
			Factor2K:     defaultFactor2K,
			Factor1080p:  defaultFactor1080p,
			Factor720p:   defaultFactor720p,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
