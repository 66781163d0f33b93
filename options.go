package nest

import (
	"log/slog"

	"github.com/AlexVanMeegen/nest-simulator/exchange"
)

type options struct {
	threads int
	comm    exchange.Communicator
	logger  *Logger
	metrics MetricsCollector
}

// Option configures Kernel construction.
type Option func(*options)

// WithThreads configures the number of worker threads per rank. Each thread
// exclusively hosts one VP per rank, so the total VP count is
// ranks * threads. Defaults to 1.
func WithThreads(threads int) Option {
	return func(o *options) {
		o.threads = threads
	}
}

// WithExchange configures the collective transport. The communicator
// determines both the rank count and the local rank of the kernel; every
// rank of a distributed run builds its own kernel over its own communicator
// of the same group.
//
// Defaults to the single-rank local transport.
func WithExchange(comm exchange.Communicator) Option {
	return func(o *options) {
		if comm != nil {
			o.comm = comm
		}
	}
}

// WithLogger configures structured logging for kernel operations. Pass nil
// to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		threads: 1,
		comm:    exchange.NewLocal(),
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
