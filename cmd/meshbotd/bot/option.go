package bot

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/params"
)

type config struct {
	checkInterval  time.Duration
	statsInterval  time.Duration
	requestTimeout time.Duration
	lowBalance     *big.Int
}

var defaultConfig = config{
	checkInterval:  time.Minute * 5,
	statsInterval:  time.Minute,
	requestTimeout: time.Second * 30,
	// 0.01 ETH.
	lowBalance: new(big.Int).Div(big.NewInt(params.Ether), big.NewInt(100)),
}

// Option applies a configuration change.
type Option func(*config) error

// WithCheckInterval configures the period between reconciliation ticks.
func WithCheckInterval(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.New("check interval must be positive")
		}
		c.checkInterval = d
		return nil
	}
}

// WithStatsInterval configures the period between stats log lines.
func WithStatsInterval(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.New("stats interval must be positive")
		}
		c.statsInterval = d
		return nil
	}
}

// WithRequestTimeout configures the timeout of initialization requests.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		c.requestTimeout = d
		return nil
	}
}

// WithLowBalanceThreshold configures the signer balance, in wei, below which a warning is logged.
func WithLowBalanceThreshold(wei *big.Int) Option {
	return func(c *config) error {
		if wei == nil || wei.Sign() < 0 {
			return errors.New("low balance threshold must be non-negative")
		}
		c.lowBalance = wei
		return nil
	}
}
