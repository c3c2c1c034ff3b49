package hashtable

import "go.uber.org/zap"

type config struct {
	logger *zap.Logger
}

type Option func(*config)

// WithLogger sets the logger used for debug diagnostics (collisions and
// failed inserts). A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	c := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
