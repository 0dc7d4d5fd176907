package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the application logger.
type Options struct {
	Level  string
	Format string // console or json
	File   string // optional rolling log file, always JSON
}

// Setup builds the logger, installs it as the zerolog global and returns it.
func Setup(opts Options, stderr io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var out io.Writer = stderr
	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	}
	if opts.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = l
	zerolog.SetGlobalLevel(level)
	return l, nil
}
