package config

const (
	defaultInputDir             = "~/Videos"
	defaultOutputDir            = "~/Videos/AutoFolder_Output"
	defaultLogDir               = "~/.local/share/autoreel/logs"
	defaultOrder                = "name"
	defaultImageDurationSeconds = 1.5
	defaultTargetMinutes        = 10
	maxTargetMinutes            = 24 * 60
	defaultWidth                = 1280
	defaultHeight               = 720
	defaultFPS                  = 30
	defaultVideoCodec           = "libx264"
	defaultPixelFormat          = "yuv420p"
	defaultFFmpeg               = "ffmpeg"
	defaultFFprobe              = "ffprobe"
	defaultWatchIntervalMS      = 3000
	minWatchIntervalMS          = 100
	defaultStaleScratchHours    = 24
	defaultNtfyTimeoutSeconds   = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Order policy names accepted in assembly.order.
const (
	OrderName       = "name"
	OrderDateNewest = "date_newest"
	OrderDateOldest = "date_oldest"
	OrderRandom     = "random"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:   defaultInputDir,
			OutputDir:  defaultOutputDir,
			ScratchDir: defaultScratchDir(),
			LogDir:     defaultLogDir,
		},
		Assembly: Assembly{
			Order:                defaultOrder,
			TargetMinutes:        defaultTargetMinutes,
			ImageDurationSeconds: defaultImageDurationSeconds,
		},
		Encoding: Encoding{
			Width:       defaultWidth,
			Height:      defaultHeight,
			FPS:         defaultFPS,
			VideoCodec:  defaultVideoCodec,
			PixelFormat: defaultPixelFormat,
		},
		Watch: Watch{
			IntervalMS:        defaultWatchIntervalMS,
			StaleScratchHours: defaultStaleScratchHours,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
