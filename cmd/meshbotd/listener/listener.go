package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/meshmind/meshbot/cmd/meshbotd/stats"
	"github.com/meshmind/meshbot/escrow"
	golog "github.com/textileio/go-log/v2"
)

var log = golog.Logger("meshbotd/listener")

// Listener follows the escrow contract events and credits the settlements
// made by this bot to the stats.
type Listener struct {
	gw     escrow.Gateway
	stats  *stats.Stats
	self   common.Address
	config config

	lock    sync.Mutex
	started bool

	onceClose       sync.Once
	daemonCtx       context.Context
	daemonCancelCtx context.CancelFunc
	daemonClosed    chan struct{}
}

// New returns a new Listener. It doesn't receive events until Start is called.
func New(gw escrow.Gateway, st *stats.Stats, opts ...Option) (*Listener, error) {
	if gw == nil || st == nil {
		return nil, errors.New("gateway and stats are required")
	}
	cfg := defaultConfig
	for _, op := range opts {
		if err := op(&cfg); err != nil {
			return nil, fmt.Errorf("applying option: %s", err)
		}
	}
	ctx, cls := context.WithCancel(context.Background())
	return &Listener{
		gw:              gw,
		stats:           st,
		self:            gw.Address(),
		config:          cfg,
		daemonCtx:       ctx,
		daemonCancelCtx: cls,
		daemonClosed:    make(chan struct{}),
	}, nil
}

// Start registers the event handlers. It can only be called once.
func (l *Listener) Start() error {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.started {
		return errors.New("listener already started")
	}
	if l.daemonCtx.Err() != nil {
		return errors.New("listener is closed")
	}
	l.started = true
	go l.daemon()
	return nil
}

// Close deregisters every subscription and waits for the event loop to exit.
func (l *Listener) Close() error {
	l.onceClose.Do(func() {
		l.lock.Lock()
		started := l.started
		l.lock.Unlock()

		l.daemonCancelCtx()
		if started {
			<-l.daemonClosed
		}
		log.Info("event listener closed")
	})
	return nil
}

func (l *Listener) daemon() {
	defer close(l.daemonClosed)

	backoff := l.config.minBackoff
	for {
		subscribed, err := l.consume()
		if l.daemonCtx.Err() != nil {
			return
		}
		if errors.Is(err, escrow.ErrSubscriptionsUnsupported) {
			log.Infof("endpoint can't push events, polling every %s", l.config.pollInterval)
			l.poll()
			return
		}
		if subscribed {
			backoff = l.config.minBackoff
		}
		log.Warnf("event subscription failed: %s, resubscribing in %s", err, backoff)
		select {
		case <-l.daemonCtx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > l.config.maxBackoff {
			backoff = l.config.maxBackoff
		}
	}
}

// consume subscribes to both events and handles them until a subscription fails
// or the listener is closed.
func (l *Listener) consume() (bool, error) {
	autoCh := make(chan *escrow.AutoCompleted, 16)
	completedCh := make(chan *escrow.Completed, 16)

	autoSub, err := l.gw.WatchAutoCompleted(l.daemonCtx, autoCh)
	if err != nil {
		return false, err
	}
	defer autoSub.Unsubscribe()
	completedSub, err := l.gw.WatchCompleted(l.daemonCtx, completedCh)
	if err != nil {
		return false, err
	}
	defer completedSub.Unsubscribe()
	log.Info("subscribed to contract events")

	for {
		select {
		case ev := <-autoCh:
			l.handleAutoCompleted(ev)
		case ev := <-completedCh:
			l.handleCompleted(ev)
		case err := <-autoSub.Err():
			return true, subscriptionErr("OrderAutoCompleted", err)
		case err := <-completedSub.Err():
			return true, subscriptionErr("OrderCompleted", err)
		case <-l.daemonCtx.Done():
			return true, nil
		}
	}
}

// poll scans new blocks for events on every poll interval.
func (l *Listener) poll() {
	var (
		next        uint64
		initialized bool
	)
	t := time.NewTicker(l.config.pollInterval)
	defer t.Stop()
	for {
		if !initialized {
			// Only events emitted after start are of interest.
			ctx, cancel := context.WithTimeout(l.daemonCtx, l.config.pollInterval)
			latest, err := l.gw.BlockNumber(ctx)
			cancel()
			if err != nil {
				log.Warnf("getting latest block: %s", err)
			} else {
				next = latest + 1
				initialized = true
			}
		} else {
			next = l.pollOnce(next)
		}

		select {
		case <-l.daemonCtx.Done():
			return
		case <-t.C:
		}
	}
}

// pollOnce handles the events in [from, latest] and returns the next block to scan.
// On failure the same range is retried on the next call.
func (l *Listener) pollOnce(from uint64) uint64 {
	ctx, cancel := context.WithTimeout(l.daemonCtx, l.config.pollInterval)
	defer cancel()

	latest, err := l.gw.BlockNumber(ctx)
	if err != nil {
		log.Warnf("getting latest block: %s", err)
		return from
	}
	if latest < from {
		return from
	}
	autos, err := l.gw.FilterAutoCompleted(ctx, from, latest)
	if err != nil {
		log.Warnf("fetching OrderAutoCompleted events in [%d, %d]: %s", from, latest, err)
		return from
	}
	completed, err := l.gw.FilterCompleted(ctx, from, latest)
	if err != nil {
		log.Warnf("fetching OrderCompleted events in [%d, %d]: %s", from, latest, err)
		return from
	}
	for _, ev := range autos {
		l.handleAutoCompleted(ev)
	}
	for _, ev := range completed {
		l.handleCompleted(ev)
	}
	return latest + 1
}

func (l *Listener) handleAutoCompleted(ev *escrow.AutoCompleted) {
	if ev == nil {
		return
	}
	// Addresses are compared as bytes, so hex casing doesn't matter.
	if ev.Bot != l.self {
		log.Debugf("order %d auto-completed by %s", ev.OrderID, ev.Bot.Hex())
		return
	}
	l.stats.RecordSettlement(ev.Reward)
	log.Infof("successfully auto-completed order %d, reward: %s tokens", ev.OrderID, escrow.FormatTokens(ev.Reward))
}

func (l *Listener) handleCompleted(ev *escrow.Completed) {
	if ev == nil {
		return
	}
	log.Infof("order %d completed by device owner, payment: %s tokens", ev.OrderID, escrow.FormatTokens(ev.PaymentAmount))
}

func subscriptionErr(name string, err error) error {
	if err == nil {
		return fmt.Errorf("%s subscription closed", name)
	}
	return fmt.Errorf("%s subscription: %s", name, err)
}
