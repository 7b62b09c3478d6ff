// Package config loads and validates the application configuration from
// defaults, an optional .mediapress yaml file and MEDIAPRESS_* environment
// variables.
package config

import (
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"mediapress/core/converter"
)

// Config is the full application configuration.
type Config struct {
	// Conversion settings
	Conversion ConversionConfig `mapstructure:"conversion"`

	// External tool paths
	Tools ToolsConfig `mapstructure:"tools"`

	// Output settings
	Output OutputConfig `mapstructure:"output"`

	// Run history settings
	History HistoryConfig `mapstructure:"history"`

	// Logging settings
	Logging LoggingConfig `mapstructure:"logging"`
}

// ConversionConfig holds the quality parameters and suffix allow-lists.
type ConversionConfig struct {
	// WebP quality scalar (1-100), passed to the encoder unmodified
	ImageQuality int `mapstructure:"image_quality"`

	// Default video tier when no --tier flag is given (high, medium, low)
	DefaultTier string `mapstructure:"default_tier"`

	// Image suffix allow-list
	ImageExtensions []string `mapstructure:"image_extensions"`

	// Video suffix allow-list
	VideoExtensions []string `mapstructure:"video_extensions"`
}

// ToolsConfig holds external tool locations.
type ToolsConfig struct {
	// FFmpeg binary, bare name (PATH lookup) or absolute path
	FFmpegPath string `mapstructure:"ffmpeg_path"`
}

// OutputConfig holds output placement settings.
type OutputConfig struct {
	// Default output directory; must already exist when a run starts
	Directory string `mapstructure:"directory"`

	// Write a JSON report next to the outputs after each run
	GenerateReport bool `mapstructure:"generate_report"`
}

// HistoryConfig holds the run history database settings.
type HistoryConfig struct {
	// Record completed runs in the history database
	Enabled bool `mapstructure:"enabled"`

	// bbolt database file path
	DBPath string `mapstructure:"db_path"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Log level for the console sink (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Also write a JSON log file
	EnableFile bool `mapstructure:"enable_file"`

	// Directory for log files
	LogDir string `mapstructure:"log_dir"`
}

// NewConfig loads a one-shot configuration snapshot. A missing config
// file is not an error; defaults and environment variables still apply.
func NewConfig(configFile string, logger *zap.Logger) (*Config, error) {
	m, err := NewManager(configFile, logger)
	if err != nil {
		return nil, err
	}
	return m.Config(), nil
}

// validateConfig repairs out-of-range values instead of failing startup,
// logging what it changed. CLI flags are still rejected strictly; this
// leniency applies to the config file only.
func validateConfig(cfg *Config, logger *zap.Logger) {
	if err := converter.ValidateImageQuality(cfg.Conversion.ImageQuality); err != nil {
		if logger != nil {
			logger.Warn("invalid image_quality in config, using default",
				zap.Int("value", cfg.Conversion.ImageQuality))
		}
		cfg.Conversion.ImageQuality = defaultImageQuality
	}

	if _, err := converter.ParseTier(cfg.Conversion.DefaultTier); err != nil {
		if logger != nil {
			logger.Warn("invalid default_tier in config, using medium",
				zap.String("value", cfg.Conversion.DefaultTier))
		}
		cfg.Conversion.DefaultTier = string(converter.TierMedium)
	}

	if cfg.Tools.FFmpegPath == "" {
		cfg.Tools.FFmpegPath = "ffmpeg"
	}
}

// Manager wraps a live viper instance and pushes reloaded configuration to
// a callback when the config file changes on disk.
type Manager struct {
	v      *viper.Viper
	logger *zap.Logger
	mu     sync.RWMutex
	cfg    *Config
}

// NewManager loads the configuration and keeps the viper instance around
// for hot reload.
func NewManager(configFile string, logger *zap.Logger) (*Manager, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName(".mediapress")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MEDIAPRESS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	validateConfig(&cfg, logger)

	return &Manager{v: v, logger: logger, cfg: &cfg}, nil
}

// Config returns the current configuration snapshot.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Watch re-unmarshals the configuration whenever the file changes and
// publishes the fresh snapshot through Config. onChange, if non-nil, runs
// on the watch goroutine; callers needing the new values from another
// goroutine read Config instead of capturing state in the callback.
func (m *Manager) Watch(onChange func(*Config)) {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		m.reload(e.Name, onChange)
	})
	m.v.WatchConfig()
}

// reload swaps in a freshly unmarshalled snapshot. Reload failures keep
// the previous snapshot.
func (m *Manager) reload(file string, onChange func(*Config)) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		m.logger.Warn("config reload failed, keeping previous settings",
			zap.String("file", file), zap.Error(err))
		return
	}
	validateConfig(&cfg, m.logger)

	m.mu.Lock()
	m.cfg = &cfg
	m.mu.Unlock()

	m.logger.Info("configuration reloaded", zap.String("file", file))
	if onChange != nil {
		onChange(&cfg)
	}
}
