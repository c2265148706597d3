package stats

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/meshmind/meshbot/cmd/meshbotd/metrics"
	"github.com/meshmind/meshbot/escrow"
	golog "github.com/textileio/go-log/v2"
	"go.opentelemetry.io/otel/metric"
)

var log = golog.Logger("meshbotd/stats")

// Stats holds the process-lifetime counters of the bot. It's written by the
// reconciliation tick and the event listener, and read by the stats logger and
// the HTTP API, so every access goes through the lock.
type Stats struct {
	lock            sync.Mutex
	ordersProcessed uint64
	totalRewards    *big.Int
	errors          uint64
	lastRun         time.Time
	running         bool
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	OrdersProcessed uint64    `json:"orders_processed"`
	TotalRewards    *big.Int  `json:"total_rewards_wei"`
	Errors          uint64    `json:"errors"`
	LastRun         time.Time `json:"last_run"`
	Running         bool      `json:"running"`
}

// New returns zeroed Stats.
func New() *Stats {
	return &Stats{totalRewards: big.NewInt(0)}
}

// RecordSettlement counts an order settled by this bot and its reward.
func (s *Stats) RecordSettlement(reward *big.Int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.ordersProcessed++
	if reward != nil {
		s.totalRewards.Add(s.totalRewards, reward)
	}
}

// IncErrors increments the error counter.
func (s *Stats) IncErrors() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.errors++
}

// MarkRun sets the last run time.
func (s *Stats) MarkRun(t time.Time) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.lastRun = t
}

// SetRunning sets the running flag.
func (s *Stats) SetRunning(running bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.running = running
}

// Running returns the running flag.
func (s *Stats) Running() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.running
}

// Snapshot returns a copy of the counters.
func (s *Stats) Snapshot() Snapshot {
	s.lock.Lock()
	defer s.lock.Unlock()
	return Snapshot{
		OrdersProcessed: s.ordersProcessed,
		TotalRewards:    new(big.Int).Set(s.totalRewards),
		Errors:          s.errors,
		LastRun:         s.lastRun,
		Running:         s.running,
	}
}

// LogStats logs the current counters.
func (s *Stats) LogStats() {
	snap := s.Snapshot()
	lastRun := "Never"
	if !snap.LastRun.IsZero() {
		lastRun = snap.LastRun.Format(time.RFC1123) + " (" + humanize.Time(snap.LastRun) + ")"
	}
	status := "Stopped"
	if snap.Running {
		status = "Running"
	}
	log.Infof(
		"bot stats: orders processed: %d, total rewards: %s tokens, errors: %d, last run: %s, status: %s",
		snap.OrdersProcessed,
		escrow.FormatTokens(snap.TotalRewards),
		snap.Errors,
		lastRun,
		status,
	)
}

// ExportMetrics registers gauge observers reporting the counters.
func (s *Stats) ExportMetrics() {
	var (
		ordersProcessed metric.Int64GaugeObserver
		errorsCount     metric.Int64GaugeObserver
		lastRun         metric.Int64GaugeObserver
		running         metric.Int64GaugeObserver
	)
	batchObs := metrics.Meter.NewBatchObserver(func(ctx context.Context, result metric.BatchObserverResult) {
		snap := s.Snapshot()
		var lastRunEpoch, runningVal int64
		if !snap.LastRun.IsZero() {
			lastRunEpoch = snap.LastRun.Unix()
		}
		if snap.Running {
			runningVal = 1
		}
		result.Observe(
			nil,
			ordersProcessed.Observation(int64(snap.OrdersProcessed)),
			errorsCount.Observation(int64(snap.Errors)),
			lastRun.Observation(lastRunEpoch),
			running.Observation(runningVal),
		)
	})
	ordersProcessed = batchObs.NewInt64GaugeObserver(metrics.Prefix + ".orders_processed")
	errorsCount = batchObs.NewInt64GaugeObserver(metrics.Prefix + ".errors")
	lastRun = batchObs.NewInt64GaugeObserver(metrics.Prefix + ".last_run_epoch")
	running = batchObs.NewInt64GaugeObserver(metrics.Prefix + ".running")
}
