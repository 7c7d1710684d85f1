package basekit

import (
	"log/slog"

	"github.com/basementdev/basekit/pkg/basekit/observability"
)

// managerConfig holds the ambient collaborators of a manager.
type managerConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func defaultManagerConfig() managerConfig {
	return managerConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a manager at construction.
type Option func(*managerConfig)

// WithLogger attaches a structured logger. Operations log at debug level,
// failures at error level. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *managerConfig) {
		c.logger = logger
	}
}

// WithMetrics attaches a metrics recorder.
// Default: observability.NoopMetrics.
//
// Example:
//
//	mgr := basekit.New("widgets", store, recipes,
//	    basekit.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(recorder observability.MetricsRecorder) Option {
	return func(c *managerConfig) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

// WithSpans attaches a trace span manager.
// Default: observability.NoopSpanManager.
func WithSpans(spans observability.SpanManager) Option {
	return func(c *managerConfig) {
		if spans != nil {
			c.spans = spans
		}
	}
}
