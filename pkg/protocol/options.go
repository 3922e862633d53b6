package protocol

import "github.com/rs/zerolog"

// Option configures an execution.
type Option func(*config)

type config struct {
	log        zerolog.Logger
	metrics    *Metrics
	protocolID string
}

func newConfig(opts []Option) config {
	c := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger sets the logger used during the execution. By default nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithMetrics records the execution in m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithProtocolID adds an identifier for the protocol to every log line.
func WithProtocolID(id string) Option {
	return func(c *config) { c.protocolID = id }
}
