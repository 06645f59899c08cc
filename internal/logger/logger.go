// Package logger provides structured logging using zerolog.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/internal/config"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init configures the global logger from cfg. It returns a closer for the
// log file, if one was opened.
func Init(cfg *config.Config) io.Closer {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 30
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: milliTimeFormat,
		NoColor:    !cfg.Dev,
	}

	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, ferr := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr == nil {
			output = io.MultiWriter(output, f)
			closer = f
		}
	}

	log.Logger = log.Output(output).With().Timestamp().Caller().Logger()

	log.Info().
		Str("level", level.String()).
		Bool("dev", cfg.Dev).
		Msg("Logger initialized")
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ForSession returns a logger tagged with the session name.
func ForSession(session string) zerolog.Logger {
	if session == "" {
		return log.Logger
	}
	return log.Logger.With().Str("session", session).Logger()
}
