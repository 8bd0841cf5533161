package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global zerolog logger: human readable console
// output in development, JSON everywhere else.
func SetupLogger() {
	level, err := zerolog.ParseLevel(os.Getenv(LOG_LEVEL))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if os.Getenv(ENV) == ENV_DEVELOPMENT {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
		return
	}

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "crm").Logger()
}
