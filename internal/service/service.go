// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates field sets, splits shows around "now", groups venues
//	Repository (Data layer)  → reads/writes the database
//
// Services take repository interfaces, never *sqlite.DB, so tests can hand
// them in-memory fakes (see the _test.go files).
//
// WHERE "NOW" COMES FROM:
// Every read that splits shows into past and upcoming asks the service clock
// once per call. Production uses time.Now; tests pass WithClock to pin it.
package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sakif/fyyur/internal/apperror"
)

type options struct {
	now func() time.Time
}

// Option configures a service at construction time.
type Option func(*options)

// WithClock replaces time.Now as the reference for past/upcoming splits.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// logFailure logs storage failures with their driver cause. NotFound and
// validation errors are normal outcomes and are not logged.
func logFailure(logger *slog.Logger, msg string, err error, attrs ...any) {
	if !errors.Is(err, apperror.ErrStorage) {
		return
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Cause != nil {
		attrs = append(attrs, slog.String("cause", appErr.Cause.Error()))
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	logger.Error(msg, attrs...)
}
