package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	// Sane default until InitLogging runs (tests, one-off commands).
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// InitLogging configures the process-wide logger. When filePath is non-empty
// the log is written both there and to the console.
func InitLogging(filePath string) {
	zerolog.TimeFieldFormat = time.RFC3339

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}}
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file %s: %v\n", filePath, err)
		} else {
			writers = append(writers, f)
		}
	}

	log = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
