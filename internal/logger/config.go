package logger

import (
	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
)

// LoggerConfig is the resolved form of config.LogConfig
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
}

// LogFormat selects how records are rendered
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// NewLoggerConfig resolves the application log settings. Console output is always on;
// unset rotation limits and an unparsable level fall back to the application defaults.
func NewLoggerConfig(cfg config.LogConfig) LoggerConfig {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	resolved := LoggerConfig{
		Level:         level,
		Format:        ParseFormat(cfg.LogFormat),
		EnableConsole: true,
		EnableFile:    cfg.LogFile != "",
		FilePath:      cfg.LogFile,
		MaxSizeMB:     cfg.MaxLogSizeMB,
		MaxBackups:    cfg.MaxLogBackups,
	}
	if resolved.MaxSizeMB <= 0 {
		resolved.MaxSizeMB = config.DefaultMaxLogSizeMB
	}
	if resolved.MaxBackups <= 0 {
		resolved.MaxBackups = config.DefaultMaxLogBackups
	}
	return resolved
}

// DefaultLoggerConfig is NewLoggerConfig applied to config.NewDefaultLogConfig
func DefaultLoggerConfig() LoggerConfig {
	return NewLoggerConfig(config.NewDefaultLogConfig())
}
