package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Format "console" or "json" forces
// a writer; "auto" picks console output when w is a terminal.
func Init(level, format string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	out := w
	switch strings.ToLower(format) {
	case "json":
	case "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "", "auto":
		if IsTerminal(w) {
			out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		}
	default:
		return errors.Errorf("invalid log format %q", format)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

// IsTerminal reports whether stream is a file attached to a terminal.
func IsTerminal(stream interface{}) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
