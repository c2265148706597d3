package reconciler

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/params"
)

type config struct {
	maxGasPrice    *big.Int
	requestTimeout time.Duration
	receiptTimeout time.Duration
}

var defaultConfig = config{
	requestTimeout: time.Second * 30,
	receiptTimeout: time.Minute * 2,
}

// Option applies a configuration change.
type Option func(*config) error

// WithMaxGasPrice configures the gas price ceiling in wei. A nil price disables the ceiling.
func WithMaxGasPrice(price *big.Int) Option {
	return func(c *config) error {
		if price != nil && price.Sign() <= 0 {
			return errors.New("max gas price must be positive")
		}
		c.maxGasPrice = price
		return nil
	}
}

// WithRequestTimeout configures the timeout of each contract read or submission.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		c.requestTimeout = d
		return nil
	}
}

// WithReceiptTimeout configures how long to wait for a submitted transaction to be mined.
func WithReceiptTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.New("receipt timeout must be positive")
		}
		c.receiptTimeout = d
		return nil
	}
}

// ParseGasPrice parses a gas price given in wei ("25000000000") or gwei ("25gwei", "1.5gwei").
// An empty string returns nil, meaning no ceiling.
func ParseGasPrice(s string) (*big.Int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	if strings.HasSuffix(s, "gwei") {
		f, ok := new(big.Float).SetPrec(256).SetString(strings.TrimSpace(strings.TrimSuffix(s, "gwei")))
		if !ok || f.Sign() <= 0 {
			return nil, fmt.Errorf("invalid gwei amount %q", s)
		}
		wei, _ := f.Mul(f, big.NewFloat(params.GWei)).Int(nil)
		if wei.Sign() <= 0 {
			return nil, fmt.Errorf("gas price %q is below 1 wei", s)
		}
		return wei, nil
	}
	wei, ok := new(big.Int).SetString(strings.TrimSuffix(s, "wei"), 10)
	if !ok || wei.Sign() <= 0 {
		return nil, fmt.Errorf("invalid wei amount %q", s)
	}
	return wei, nil
}
