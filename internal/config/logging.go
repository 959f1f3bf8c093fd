package config

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// GlobalConfig holds configuration that's shared across all commands
type GlobalConfig struct {
	LogLevel  string
	LogFormat string
}

// InitializeLogging configures the global zerolog logger from the global configuration
func InitializeLogging(cfg *GlobalConfig) error {
	return initializeLogging(cfg, os.Stderr)
}

func initializeLogging(cfg *GlobalConfig, out io.Writer) error {
	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return errors.Wrapf(err, "[InitializeLogging] invalid log level %q", cfg.LogLevel)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	switch cfg.LogFormat {
	case "", "json":
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	case "console":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	default:
		return errors.Errorf("[InitializeLogging] unknown log format %q", cfg.LogFormat)
	}
	return nil
}
