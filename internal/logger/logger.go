// Package logger provides configured zerolog loggers.
package logger

import (
	"io"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// New returns a JSON zerolog.Logger writing to out, tagged with serviceName.
// Call sites should use .Stack() on error events to include stacks.
func New(serviceName string, out io.Writer) zerolog.Logger {
	installStackMarshalers()

	return zerolog.New(out).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// Console returns a human-readable logger for CLI use.
func Console(out io.Writer) zerolog.Logger {
	installStackMarshalers()

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    true,
	}).With().Timestamp().Logger()
}

// installStackMarshalers makes zerolog render github.com/pkg/errors stacks,
// attaching one to plain errors when .Stack() is used.
func installStackMarshalers() {
	type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		if _, ok := err.(stackTracer); ok {
			return err
		}
		return pkgerrors.WithStack(err)
	}
}
