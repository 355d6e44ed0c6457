package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options for initializing the global logger. A nil Options uses defaults.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is "console" or "json".
	Format string

	// NoColor disables color in console output.
	NoColor bool
}

// InitDefault installs a sane console logger before flags are parsed, so
// early failures are still readable.
func InitDefault() {
	Init(nil)
}

// Init configures the process-wide zerolog logger.
func Init(opts *Options) {
	if opts == nil {
		opts = &Options{}
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		if parsed, err := zerolog.ParseLevel(opts.Level); err == nil {
			level = parsed
		}
	}

	if opts.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
		return
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}
	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
