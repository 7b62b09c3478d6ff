package config

import (
	"github.com/spf13/viper"

	"mediapress/core/converter"
)

const defaultImageQuality = 85

// setDefaults registers every configuration default. Values here are the
// documented behavior when no config file exists.
func setDefaults(v *viper.Viper) {
	// Conversion defaults
	v.SetDefault("conversion.image_quality", defaultImageQuality)
	v.SetDefault("conversion.default_tier", string(converter.TierMedium))
	v.SetDefault("conversion.image_extensions", converter.DefaultImageExtensions)
	v.SetDefault("conversion.video_extensions", converter.DefaultVideoExtensions)

	// External tool defaults
	v.SetDefault("tools.ffmpeg_path", "ffmpeg")

	// Output defaults
	v.SetDefault("output.directory", "")
	v.SetDefault("output.generate_report", false)

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.db_path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.enable_file", true)
	v.SetDefault("logging.log_dir", "")
}
