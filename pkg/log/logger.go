package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger wraps a zerolog.Logger tagged with the owning service name.
type Logger struct {
	zerolog zerolog.Logger
}

// NewLogger builds a logger writing to stderr.
func NewLogger(service string, config *Config) (*Logger, error) {
	return newLogger(os.Stderr, service, config)
}

func newLogger(out io.Writer, service string, config *Config) (*Logger, error) {
	config.SetDefault()
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return nil, errors.Wrap(err, "parse level")
	}

	zerolog.SetGlobalLevel(level)
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	ctx := zerolog.New(buildLoggerOutput(out, config.HumanFriendly, config.NoColoredOutput)).
		With().
		Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}

	return &Logger{zerolog: ctx.Logger()}, nil
}

func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zerolog
}

func buildLoggerOutput(out io.Writer, isHumanFriendly, isNoColoredOutput bool) io.Writer {
	if !isHumanFriendly {
		return out
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    isNoColoredOutput,
		TimeFormat: time.RFC3339,
	}

	output.FormatLevel = func(i interface{}) string {
		ii, ok := i.(string)
		if !ok {
			return "| ????? |"
		}
		ii = strings.ToUpper(ii)
		if _, err := zerolog.ParseLevel(strings.ToLower(ii)); err == nil {
			ii = fmt.Sprintf("%-5s", ii)
		}
		return fmt.Sprintf("| %s |", ii)
	}

	return output
}
