package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/meshmind/meshbot/cmd/meshbotd/reconciler"
	"github.com/meshmind/meshbot/cmd/meshbotd/stats"
	"github.com/meshmind/meshbot/escrow"
	golog "github.com/textileio/go-log/v2"
)

var log = golog.Logger("meshbotd/bot")

// Reconciler runs reconciliation passes.
type Reconciler interface {
	Tick(ctx context.Context) reconciler.TickSummary
}

// EventListener follows contract events.
type EventListener interface {
	Start() error
	Close() error
}

// Bot schedules reconciliation passes over the escrow contract.
type Bot struct {
	gw       escrow.Gateway
	rec      Reconciler
	listener EventListener
	stats    *stats.Stats
	config   config

	lock       sync.Mutex
	running    bool
	stopping   bool
	stopped    chan struct{}
	cancelTick context.CancelFunc
	daemonWg   sync.WaitGroup

	onceShutdown sync.Once
	shutdownErr  error
}

// New returns a new stopped Bot.
func New(
	gw escrow.Gateway,
	rec Reconciler,
	listener EventListener,
	st *stats.Stats,
	opts ...Option) (*Bot, error) {
	if gw == nil || rec == nil || listener == nil || st == nil {
		return nil, errors.New("gateway, reconciler, listener and stats are required")
	}
	cfg := defaultConfig
	for _, op := range opts {
		if err := op(&cfg); err != nil {
			return nil, fmt.Errorf("applying option: %s", err)
		}
	}
	log.Infof("bot address: %s", gw.Address().Hex())
	return &Bot{
		gw:       gw,
		rec:      rec,
		listener: listener,
		stats:    st,
		config:   cfg,
	}, nil
}

// Initialize checks connectivity, reports the signer balance and starts the event listener.
// A failure to reach the network is returned as an error.
func (b *Bot) Initialize(ctx context.Context) error {
	rctx, cancel := context.WithTimeout(ctx, b.config.requestTimeout)
	ni, err := b.gw.NetworkInfo(rctx)
	cancel()
	if err != nil {
		return fmt.Errorf("getting network info: %s", err)
	}
	log.Infof("connected to chain id %s at block %d", ni.ChainID, ni.BlockNumber)

	if _, err := b.CheckBalance(ctx); err != nil {
		log.Errorf("checking balance: %s", err)
	}

	if err := b.listener.Start(); err != nil {
		return fmt.Errorf("starting event listener: %s", err)
	}
	log.Info("bot initialization complete")
	return nil
}

// CheckBalance logs the signer balance and warns if it's too low to pay for gas.
func (b *Bot) CheckBalance(ctx context.Context) (*big.Int, error) {
	rctx, cancel := context.WithTimeout(ctx, b.config.requestTimeout)
	defer cancel()
	bal, err := b.gw.Balance(rctx)
	if err != nil {
		return nil, err
	}
	log.Infof("signer balance: %s ETH", escrow.FormatEther(bal))
	if bal.Cmp(b.config.lowBalance) < 0 {
		log.Warnf("low balance, consider funding %s", b.gw.Address().Hex())
	}
	return bal, nil
}

// Start runs a reconciliation pass immediately and then every check interval, and starts
// logging stats periodically. It's a no-op if the bot is already running.
func (b *Bot) Start() {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.stopping {
		log.Info("bot is stopping")
		return
	}
	if b.running {
		log.Info("bot is already running")
		return
	}
	log.Infof("starting automated monitoring every %s", b.config.checkInterval)

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelTick = cancel
	b.running = true
	b.stats.SetRunning(true)

	b.daemonWg.Add(2)
	go b.daemonTicker(ctx)
	go b.daemonStats(ctx)
	log.Info("monitoring started")
}

// Stop cancels future passes and stats logging, and waits for the in-flight order to
// finish. It's a no-op if the bot isn't running. Concurrent calls all wait for the same stop.
// The lock isn't held while waiting, so Running and Start stay responsive during a long order.
func (b *Bot) Stop() {
	b.lock.Lock()
	if !b.running {
		b.lock.Unlock()
		log.Info("bot is not running")
		return
	}
	if b.stopping {
		stopped := b.stopped
		b.lock.Unlock()
		<-stopped
		return
	}
	log.Info("stopping automated monitoring")
	b.stopping = true
	stopped := make(chan struct{})
	b.stopped = stopped
	b.cancelTick()
	b.lock.Unlock()

	b.daemonWg.Wait()

	b.lock.Lock()
	b.running = false
	b.stopping = false
	b.stats.SetRunning(false)
	b.lock.Unlock()
	close(stopped)
	log.Info("monitoring stopped")
}

// Running returns true if the bot is running.
func (b *Bot) Running() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.running
}

// Shutdown stops the bot, deregisters the event listener and closes the gateway if it's closable.
func (b *Bot) Shutdown() error {
	b.onceShutdown.Do(func() {
		log.Info("shutting down bot")
		b.Stop()
		if err := b.listener.Close(); err != nil {
			b.shutdownErr = fmt.Errorf("closing event listener: %s", err)
		}
		if c, ok := b.gw.(io.Closer); ok {
			if err := c.Close(); err != nil && b.shutdownErr == nil {
				b.shutdownErr = fmt.Errorf("closing gateway: %s", err)
			}
		}
		log.Info("bot shutdown complete")
	})
	return b.shutdownErr
}

// daemonTicker owns every reconciliation pass, so passes never overlap. Ticker firings
// during a long pass are coalesced into a single pending one.
func (b *Bot) daemonTicker(ctx context.Context) {
	defer b.daemonWg.Done()

	t := time.NewTicker(b.config.checkInterval)
	defer t.Stop()

	b.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Debug("ticker daemon closed")
			return
		case <-t.C:
			// A firing can race with a stop request.
			if ctx.Err() != nil {
				return
			}
			b.tick(ctx)
		}
	}
}

func (b *Bot) tick(ctx context.Context) {
	start := time.Now()
	s := b.rec.Tick(ctx)
	log.Debugf(
		"tick %s took %dms: %d expired, %d settled, %d skipped, %d races, %d failed",
		s.ID, time.Since(start).Milliseconds(), s.Expired,
		s.Outcomes[reconciler.OutcomeSettled], s.Outcomes[reconciler.OutcomeSkipped],
		s.Outcomes[reconciler.OutcomeRace], s.Outcomes[reconciler.OutcomeFailed])
}

func (b *Bot) daemonStats(ctx context.Context) {
	defer b.daemonWg.Done()

	t := time.NewTicker(b.config.statsInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("stats daemon closed")
			return
		case <-t.C:
			b.stats.LogStats()
		}
	}
}
