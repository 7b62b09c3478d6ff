// Package logger builds the shared zap logger: a colored console sink for
// humans and an optional JSON file sink for diagnostics.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	Verbose    bool
	EnableFile bool
	LogDir     string
	Component  string
}

// DefaultOptions returns the standard logger setup: errors only on the
// console unless verbose, full debug log in the file sink.
func DefaultOptions() *Options {
	return &Options{
		Verbose:    false,
		EnableFile: true,
		LogDir:     defaultLogDir(),
		Component:  "mediapress",
	}
}

// NewLogger builds a logger with the default options, toggling console
// verbosity only.
func NewLogger(verbose bool) (*zap.Logger, error) {
	opts := DefaultOptions()
	opts.Verbose = verbose
	return NewLoggerWithOptions(opts)
}

// NewLoggerWithOptions builds the console/file tee. In non-verbose mode
// the console shows warnings and errors only, so progress rendering stays
// clean; the file sink always records everything.
func NewLoggerWithOptions(opts *Options) (*zap.Logger, error) {
	consoleLevel := zapcore.WarnLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}

	consoleEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), consoleLevel),
	}

	if opts.EnableFile {
		if file, err := openLogFile(opts); err == nil {
			fileEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
				TimeKey:        "time",
				LevelKey:       "level",
				NameKey:        "logger",
				CallerKey:      "caller",
				MessageKey:     "msg",
				StacktraceKey:  "stacktrace",
				LineEnding:     zapcore.DefaultLineEnding,
				EncodeLevel:    zapcore.LowercaseLevelEncoder,
				EncodeTime:     zapcore.ISO8601TimeEncoder,
				EncodeDuration: zapcore.StringDurationEncoder,
				EncodeCaller:   zapcore.ShortCallerEncoder,
			})
			cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(file), zapcore.DebugLevel))
		}
		// An unwritable log dir degrades to console-only logging.
	}

	core := zapcore.NewTee(cores...)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func openLogFile(opts *Options) (*os.File, error) {
	dir := opts.LogDir
	if dir == "" {
		dir = defaultLogDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	component := opts.Component
	if component == "" {
		component = "mediapress"
	}
	name := component + "_" + time.Now().Format("20060102") + ".log"
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func defaultLogDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".mediapress", "logs")
	}
	return "."
}

// colorLevelEncoder renders console levels with ANSI colors.
func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colored string
	switch level {
	case zapcore.DebugLevel:
		colored = color.CyanString("[DEBUG]")
	case zapcore.InfoLevel:
		colored = color.GreenString("[INFO] ")
	case zapcore.WarnLevel:
		colored = color.YellowString("[WARN] ")
	case zapcore.ErrorLevel:
		colored = color.RedString("[ERROR]")
	case zapcore.FatalLevel:
		colored = color.RedString("[FATAL]")
	default:
		colored = level.CapitalString()
	}
	enc.AppendString(colored)
}
