package gallery

import (
	"context"

	"github.com/nfrund/gallery/internal/logging"
)

// ErrorReporter receives every failure the synchronizer swallows.
type ErrorReporter interface {
	Report(ctx context.Context, op string, err error)
}

// ReporterFunc adapts a function to ErrorReporter.
type ReporterFunc func(ctx context.Context, op string, err error)

func (f ReporterFunc) Report(ctx context.Context, op string, err error) {
	f(ctx, op, err)
}

// SlogReporter logs failures with the request-scoped logger.
type SlogReporter struct{}

func (SlogReporter) Report(ctx context.Context, op string, err error) {
	logging.FromContext(ctx).Error("gallery action failed", "op", op, "error", err)
}

// MultiReporter fans a failure out to several reporters in order.
type MultiReporter []ErrorReporter

func (m MultiReporter) Report(ctx context.Context, op string, err error) {
	for _, r := range m {
		r.Report(ctx, op, err)
	}
}
