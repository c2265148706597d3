package health

import (
	"context"
	"fmt"
	"time"

	"github.com/meshmind/meshbot/escrow"
	golog "github.com/textileio/go-log/v2"
)

var log = golog.Logger("meshbotd/health")

// ScanWindow is the number of recent blocks scanned for auto-completion events.
const ScanWindow = 1000

// Report is the result of a contract health check. AutoCompletions counts the
// OrderAutoCompleted events in [FromBlock, ToBlock] and is only meaningful if
// ScanErr is empty.
type Report struct {
	ExpiredOrders   int    `json:"expired_orders"`
	FromBlock       uint64 `json:"from_block"`
	ToBlock         uint64 `json:"to_block"`
	AutoCompletions int    `json:"auto_completions"`
	ScanErr         string `json:"scan_error,omitempty"`
}

// CheckContractHealth verifies the contract answers reads and counts the recent
// auto-completions. A failing event scan is logged and reported, not returned.
func CheckContractHealth(ctx context.Context, gw escrow.Gateway, timeout time.Duration) (Report, error) {
	var r Report

	rctx, cancel := context.WithTimeout(ctx, timeout)
	ids, err := gw.ExpiredOrders(rctx)
	cancel()
	if err != nil {
		return r, fmt.Errorf("contract not responsive: %s", err)
	}
	r.ExpiredOrders = len(ids)
	log.Infof("contract responsive, %d expired order(s)", r.ExpiredOrders)

	if err := scan(ctx, gw, timeout, &r); err != nil {
		r.ScanErr = err.Error()
		log.Warnf("couldn't fetch recent events: %s", err)
	} else {
		log.Infof("found %d auto-completion event(s) in blocks [%d, %d]", r.AutoCompletions, r.FromBlock, r.ToBlock)
	}
	log.Info("contract health check completed")
	return r, nil
}

func scan(ctx context.Context, gw escrow.Gateway, timeout time.Duration, r *Report) error {
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	latest, err := gw.BlockNumber(rctx)
	if err != nil {
		return err
	}
	r.ToBlock = latest
	if latest > ScanWindow {
		r.FromBlock = latest - ScanWindow
	}
	evs, err := gw.FilterAutoCompleted(rctx, r.FromBlock, r.ToBlock)
	if err != nil {
		return err
	}
	r.AutoCompletions = len(evs)
	return nil
}
