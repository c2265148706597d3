package reconciler

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/meshmind/meshbot/cmd/meshbotd/metrics"
	"github.com/meshmind/meshbot/cmd/meshbotd/stats"
	"github.com/meshmind/meshbot/escrow"
	metricshelper "github.com/meshmind/meshbot/metrics"
	"github.com/oklog/ulid/v2"
	golog "github.com/textileio/go-log/v2"
	"go.opentelemetry.io/otel/metric"
)

var log = golog.Logger("meshbotd/reconciler")

const (
	// gasLimitNum and gasLimitDen add a 20% buffer over the estimate.
	gasLimitNum = 120
	gasLimitDen = 100
)

// Outcome is how a settlement attempt ended.
type Outcome int

const (
	// OutcomeSettled means the autoCompleteOrder transaction was mined successfully.
	OutcomeSettled Outcome = iota
	// OutcomeSkipped means the gas price was above the ceiling.
	OutcomeSkipped
	// OutcomeRace means the order stopped being eligible before it could be settled.
	OutcomeRace
	// OutcomeFailed means the attempt failed and was counted as an error.
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSettled:
		return "settled"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRace:
		return "race"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TickSummary describes a single reconciliation pass.
type TickSummary struct {
	ID       ulid.ULID
	Expired  int
	Outcomes map[Outcome]int
	// Interrupted is true if a stop request prevented attempting every expired order.
	Interrupted bool
}

// Reconciler settles expired escrow orders.
type Reconciler struct {
	gw     escrow.Gateway
	stats  *stats.Stats
	config config

	metricSettlements              metric.Int64Counter
	metricSettlementDurationMillis metric.Int64Histogram
}

// New returns a new Reconciler.
func New(gw escrow.Gateway, st *stats.Stats, opts ...Option) (*Reconciler, error) {
	if gw == nil {
		return nil, errors.New("gateway is nil")
	}
	if st == nil {
		return nil, errors.New("stats is nil")
	}
	cfg := defaultConfig
	for _, op := range opts {
		if err := op(&cfg); err != nil {
			return nil, fmt.Errorf("applying option: %s", err)
		}
	}
	if cfg.maxGasPrice == nil {
		log.Warn("no max gas price configured, orders will be settled at any gas price")
	}
	return &Reconciler{
		gw:     gw,
		stats:  st,
		config: cfg,
		metricSettlements:              metrics.Meter.NewInt64Counter(metrics.Prefix + ".settlements_total"),
		metricSettlementDurationMillis: metrics.Meter.NewInt64Histogram(metrics.Prefix + ".settlement_duration_millis"),
	}, nil
}

// Tick records the run time, fetches the expired orders and settles them one at a time in the
// order the contract returned them. Cancelling ctx prevents further orders from being started,
// but never interrupts the order being settled.
func (r *Reconciler) Tick(ctx context.Context) TickSummary {
	summary := TickSummary{
		ID:       ulid.MustNew(ulid.Now(), rand.Reader),
		Outcomes: map[Outcome]int{},
	}
	r.stats.MarkRun(time.Now())
	log.Debugf("tick %s: checking for expired orders", summary.ID)

	rctx, cancel := context.WithTimeout(context.Background(), r.config.requestTimeout)
	ids, err := r.gw.ExpiredOrders(rctx)
	cancel()
	if err != nil {
		log.Errorf("tick %s: checking expired orders: %s", summary.ID, err)
		r.stats.IncErrors()
		return summary
	}
	summary.Expired = len(ids)
	if len(ids) == 0 {
		log.Infof("tick %s: no expired orders found", summary.ID)
		return summary
	}
	log.Infof("tick %s: found %d expired order(s): %v", summary.ID, len(ids), ids)

	for _, id := range ids {
		select {
		case <-ctx.Done():
			log.Infof("tick %s: stop requested, leaving remaining orders for a later tick", summary.ID)
			summary.Interrupted = true
			return summary
		default:
		}
		summary.Outcomes[r.SettleOrder(context.Background(), id)]++
	}
	return summary
}

// SettleOrder makes a single auto-completion attempt for the order. Failures are logged and
// classified, never returned. Every network call runs under its own timeout derived from ctx.
func (r *Reconciler) SettleOrder(ctx context.Context, id escrow.OrderID) Outcome {
	start := time.Now()
	outcome, err := r.settle(ctx, id)
	switch {
	case err == nil:
	case escrow.IsBenignRace(err):
		log.Infof("order %d is no longer eligible for auto-completion: %s", id, err)
		outcome = OutcomeRace
		err = nil
	default:
		log.Errorf("processing order %d: %s", id, err)
		r.stats.IncErrors()
		outcome = OutcomeFailed
	}
	attrOutcome := metricshelper.AttrOutcome(outcome.String())
	metricshelper.MetricIncrCounter(ctx, err, r.metricSettlements, attrOutcome)
	r.metricSettlementDurationMillis.Record(ctx, time.Since(start).Milliseconds(), attrOutcome)
	return outcome
}

func (r *Reconciler) settle(ctx context.Context, id escrow.OrderID) (Outcome, error) {
	log.Infof("processing expired order %d", id)

	rctx, cancel := context.WithTimeout(ctx, r.config.requestTimeout)
	order, err := r.gw.Order(rctx, id)
	cancel()
	if err != nil {
		return OutcomeFailed, fmt.Errorf("getting order: %s", err)
	}
	log.Infof(
		"order %d details: user %s, device %s, amount %s tokens, status %s",
		id, order.User.Hex(), order.DeviceID, escrow.FormatTokens(order.Amount), order.Status)
	if order.Status.Terminal() {
		log.Infof("order %d is already %s, skipping", id, order.Status)
		return OutcomeRace, nil
	}

	rctx, cancel = context.WithTimeout(ctx, r.config.requestTimeout)
	price, err := r.gw.GasPrice(rctx)
	cancel()
	if err != nil {
		return OutcomeFailed, fmt.Errorf("getting gas price: %s", err)
	}
	if r.config.maxGasPrice != nil && price.Cmp(r.config.maxGasPrice) > 0 {
		log.Warnf(
			"gas price too high: %s gwei (max %s gwei), skipping order %d",
			escrow.FormatGwei(price), escrow.FormatGwei(r.config.maxGasPrice), id)
		return OutcomeSkipped, nil
	}

	rctx, cancel = context.WithTimeout(ctx, r.config.requestTimeout)
	estimate, err := r.gw.EstimateAutoComplete(rctx, id)
	cancel()
	if err != nil {
		return OutcomeFailed, fmt.Errorf("estimating gas: %s", err)
	}
	quote := escrow.GasQuote{Estimate: estimate, Price: price}
	log.Infof(
		"order %d estimated gas: %d at %s gwei, transaction cost: %s ETH",
		id, quote.Estimate, escrow.FormatGwei(quote.Price), escrow.FormatEther(quote.Cost()))

	gasLimit := gasLimitFor(estimate)
	rctx, cancel = context.WithTimeout(ctx, r.config.requestTimeout)
	tx, err := r.gw.AutoComplete(rctx, id, gasLimit, price)
	cancel()
	if err != nil {
		return OutcomeFailed, fmt.Errorf("sending auto-complete transaction: %s", err)
	}
	txHash := tx.Hash()
	log.Infof("order %d auto-complete transaction sent: %s", id, txHash.Hex())

	rctx, cancel = context.WithTimeout(ctx, r.config.receiptTimeout)
	receipt, err := r.gw.WaitReceipt(rctx, tx)
	cancel()
	if err != nil {
		return OutcomeFailed, fmt.Errorf("waiting for transaction %s: %s", txHash.Hex(), err)
	}
	if !receipt.Successful {
		return OutcomeFailed, fmt.Errorf("transaction %s failed in block %d", txHash.Hex(), receipt.BlockNumber)
	}
	log.Infof("order %d auto-completed successfully, gas used: %d", id, receipt.GasUsed)
	return OutcomeSettled, nil
}

func gasLimitFor(estimate uint64) uint64 {
	l := new(big.Int).SetUint64(estimate)
	l.Mul(l, big.NewInt(gasLimitNum))
	l.Div(l, big.NewInt(gasLimitDen))
	if !l.IsUint64() {
		return estimate
	}
	return l.Uint64()
}
