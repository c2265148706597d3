package diagnostics

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/meshmind/meshbot/escrow"
	golog "github.com/textileio/go-log/v2"
)

var log = golog.Logger("meshbotd/diagnostics")

// Initializer prepares the bot for work.
type Initializer interface {
	Initialize(ctx context.Context) error
	CheckBalance(ctx context.Context) (*big.Int, error)
}

// StepResult is the result of a single diagnostic step.
type StepResult struct {
	Name   string
	Passed bool
	Detail string
}

// Harness runs operator diagnostics against the contract.
type Harness struct {
	gw      escrow.Gateway
	bot     Initializer
	out     io.Writer
	timeout time.Duration
}

// New returns a new Harness that prints to out.
func New(gw escrow.Gateway, bot Initializer, out io.Writer, timeout time.Duration) *Harness {
	return &Harness{gw: gw, bot: bot, out: out, timeout: timeout}
}

// RunTests checks initialization, balance, contract reachability, gas price and network
// info. Each step fails independently, except initialization which aborts the run.
func (h *Harness) RunTests(ctx context.Context) []StepResult {
	h.printf("running bot tests\n\n")

	var results []StepResult
	record := func(name string, detail string, err error) StepResult {
		r := StepResult{Name: name, Passed: err == nil, Detail: detail}
		if err != nil {
			r.Detail = err.Error()
		}
		results = append(results, r)
		if r.Passed {
			h.printf("[PASS] %s: %s\n", r.Name, r.Detail)
		} else {
			h.printf("[FAIL] %s: %s\n", r.Name, r.Detail)
		}
		return r
	}

	if r := record("initialization", "bot initialized", h.bot.Initialize(ctx)); !r.Passed {
		h.printf("cannot proceed with other tests\n")
		return results
	}

	bal, err := h.bot.CheckBalance(ctx)
	record("balance check", fmt.Sprintf("%s ETH", escrow.FormatEther(bal)), err)

	rctx, cancel := context.WithTimeout(ctx, h.timeout)
	ids, err := h.gw.ExpiredOrders(rctx)
	cancel()
	record("contract connection", fmt.Sprintf("found %d expired orders", len(ids)), err)

	rctx, cancel = context.WithTimeout(ctx, h.timeout)
	price, err := h.gw.GasPrice(rctx)
	cancel()
	record("gas price check", fmt.Sprintf("current gas price %s gwei", escrow.FormatGwei(price)), err)

	rctx, cancel = context.WithTimeout(ctx, h.timeout)
	ni, err := h.gw.NetworkInfo(rctx)
	cancel()
	record("network information", fmt.Sprintf("chain id %s, latest block %d", ni.ChainID, ni.BlockNumber), err)

	h.printf("\nall tests completed\n")
	return results
}

// Monitor prints the expired orders every interval until ctx is done.
func (h *Harness) Monitor(ctx context.Context, interval time.Duration) error {
	if err := h.bot.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing: %s", err)
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if err := h.MonitorOnce(ctx); err != nil {
			log.Errorf("monitoring orders: %s", err)
			h.printf("monitor error: %s\n", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

// MonitorOnce prints the expired orders and when they expired.
func (h *Harness) MonitorOnce(ctx context.Context) error {
	h.printf("%s - checking orders...\n", time.Now().Format(time.Kitchen))

	rctx, cancel := context.WithTimeout(ctx, h.timeout)
	ids, err := h.gw.ExpiredOrders(rctx)
	cancel()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		h.printf("no expired orders\n---\n")
		return nil
	}
	h.printf("found %d expired orders:\n", len(ids))
	for _, id := range ids {
		rctx, cancel := context.WithTimeout(ctx, h.timeout)
		o, err := h.gw.Order(rctx, id)
		cancel()
		if err != nil {
			return fmt.Errorf("getting order %d: %s", id, err)
		}
		h.printf("  - order %d: expired at %s\n", id, o.CompletionTimestamp.Format(time.RFC1123))
	}
	h.printf("---\n")
	return nil
}

// Simulate would create test orders, which the contract doesn't support.
func (h *Harness) Simulate() {
	h.printf("simulating order creation requires a test mode in the contract, which isn't available\n")
}

func (h *Harness) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(h.out, format, args...)
}
