package vecdb

import (
	"log/slog"

	"github.com/hupe1980/vecdb/metric"
	"github.com/hupe1980/vecdb/persistence"
)

// DefaultMaxVectors is the capacity used when none is configured.
const DefaultMaxVectors = 100000

type options struct {
	metric           metric.Metric
	indexStrategy    IndexStrategy
	maxVectors       int
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures DB construction.
type Option func(*options)

func applyOptions(optFns ...Option) *options {
	o := &options{
		metric:           metric.Euclidean,
		indexStrategy:    IndexStrategyLinear,
		maxVectors:       DefaultMaxVectors,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(o)
	}
	return o
}

// WithMetric sets the distance metric. The default is metric.Euclidean.
func WithMetric(m metric.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithIndexStrategy sets the index strategy. Only IndexStrategyLinear is
// implemented; constructing with another strategy fails.
func WithIndexStrategy(s IndexStrategy) Option {
	return func(o *options) {
		o.indexStrategy = s
	}
}

// WithMaxVectors sets the maximum number of vectors the store accepts.
// Values below 1 keep the default.
func WithMaxVectors(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxVectors = n
		}
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel enables text logging to stderr at the given level.
// Shorthand for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed,
// metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

type saveOptions struct {
	compression persistence.Compression
}

// SaveOption configures snapshot writes.
type SaveOption func(*saveOptions)

// WithCompression compresses the snapshot payload with the given codec.
// Loads auto-detect the codec, so no matching option exists on the read side.
func WithCompression(c persistence.Compression) SaveOption {
	return func(o *saveOptions) {
		o.compression = c
	}
}
