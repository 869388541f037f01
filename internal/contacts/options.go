package contacts

import (
	"io"
	"log/slog"
)

type options struct {
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Directory or a Pipeline.
type Option func(*options)

// WithLogger sets the logger. By default, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records lookup outcomes and directory reads in the provided Metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

func makeOptions(opts ...Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
