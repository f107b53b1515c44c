package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// formatOutput wraps out for the given format. JSON passes through untouched;
// text is console layout without color.
func formatOutput(out io.Writer, format LogFormat, color bool) io.Writer {
	if format == FormatJSON {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color || format == FormatText,
	}
}

// rotatingOutput opens a size-rotated log file. Colors never go to files.
// The returned closer releases the file handle.
func rotatingOutput(cfg LoggerConfig) (io.Writer, io.Closer) {
	// lumberjack reports a missing directory only on first write
	_ = os.MkdirAll(filepath.Dir(cfg.FilePath), 0755)

	rotating := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: cfg.MaxBackups,
	}
	return formatOutput(rotating, cfg.Format, false), rotating
}
