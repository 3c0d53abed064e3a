// Package logger configures the global zerolog logger for the application
package logger

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/tensorplex-labs/datasynth/internal/config"
)

var (
	debugFlag = flag.Bool("debug", false, "sets log level to debug")
	traceFlag = flag.Bool("trace", false, "sets log level to trace")
)

// Init sets up the global logger to write to stderr and, when cfg.File is
// set, to that file as well. The returned closer releases the file.
// Example usage:
//
//	closer, err := logger.Init(cfg.LogEnvConfig) <- inside main()
//
// Then, `go run ./cmd/server --debug`
func Init(cfg config.LogEnvConfig) (io.Closer, error) {
	if !flag.Parsed() {
		flag.Parse()
	}
	return setup(cfg, os.Stderr, *debugFlag, *traceFlag)
}

func setup(cfg config.LogEnvConfig, console io.Writer, debug, trace bool) (io.Closer, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	writers := []io.Writer{zerolog.ConsoleWriter{Out: console}}
	var closer io.Closer = nopCloser{}
	if strings.TrimSpace(cfg.File) != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Caller().Logger()

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Level).Msg("unknown LOG_LEVEL - defaulting to info")
	}
	if debug {
		level = zerolog.DebugLevel
		log.Info().Msg("Debug flag detected - overriding configured log level")
	} else if trace {
		level = zerolog.TraceLevel
		log.Info().Msg("Trace flag detected - overriding configured log level")
	}

	zerolog.SetGlobalLevel(level)
	log.Info().
		Str("level", level.String()).
		Str("environment", cfg.Environment).
		Str("file", cfg.File).
		Msg("logger initialized")
	return closer, nil
}

// ParseLevel accepts zerolog names plus the WARNING/CRITICAL spellings used
// by LOG_LEVEL in older deployments. Unknown values yield info and an error.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	case "critical":
		return zerolog.FatalLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.InfoLevel, err
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
