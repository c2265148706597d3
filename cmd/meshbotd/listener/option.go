package listener

import (
	"errors"
	"time"
)

type config struct {
	pollInterval time.Duration
	minBackoff   time.Duration
	maxBackoff   time.Duration
}

var defaultConfig = config{
	pollInterval: time.Second * 15,
	minBackoff:   time.Second * 2,
	maxBackoff:   time.Minute,
}

// Option applies a configuration change.
type Option func(*config) error

// WithPollInterval configures how often new blocks are scanned for events when
// the endpoint can't push them.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		c.pollInterval = d
		return nil
	}
}

// WithResubscribeBackoff configures the delays between resubscription attempts.
func WithResubscribeBackoff(min, max time.Duration) Option {
	return func(c *config) error {
		if min <= 0 || max < min {
			return errors.New("invalid backoff range")
		}
		c.minBackoff = min
		c.maxBackoff = max
		return nil
	}
}
