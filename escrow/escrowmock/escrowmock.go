package escrowmock

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/meshmind/meshbot/escrow"
	"github.com/stretchr/testify/mock"
)

// Gateway is a testify mock of escrow.Gateway.
type Gateway struct {
	mock.Mock
}

var _ escrow.Gateway = (*Gateway)(nil)

// Address implements escrow.Gateway.
func (g *Gateway) Address() common.Address {
	args := g.Called()
	return args.Get(0).(common.Address)
}

// ExpiredOrders implements escrow.Gateway.
func (g *Gateway) ExpiredOrders(ctx context.Context) ([]escrow.OrderID, error) {
	args := g.Called(ctx)
	ids, _ := args.Get(0).([]escrow.OrderID)
	return ids, args.Error(1)
}

// Order implements escrow.Gateway.
func (g *Gateway) Order(ctx context.Context, id escrow.OrderID) (escrow.Order, error) {
	args := g.Called(ctx, id)
	return args.Get(0).(escrow.Order), args.Error(1)
}

// GasPrice implements escrow.Gateway.
func (g *Gateway) GasPrice(ctx context.Context) (*big.Int, error) {
	args := g.Called(ctx)
	price, _ := args.Get(0).(*big.Int)
	return price, args.Error(1)
}

// EstimateAutoComplete implements escrow.Gateway.
func (g *Gateway) EstimateAutoComplete(ctx context.Context, id escrow.OrderID) (uint64, error) {
	args := g.Called(ctx, id)
	return args.Get(0).(uint64), args.Error(1)
}

// AutoComplete implements escrow.Gateway.
func (g *Gateway) AutoComplete(
	ctx context.Context,
	id escrow.OrderID,
	gasLimit uint64,
	gasPrice *big.Int) (*types.Transaction, error) {
	args := g.Called(ctx, id, gasLimit, gasPrice)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// WaitReceipt implements escrow.Gateway.
func (g *Gateway) WaitReceipt(ctx context.Context, tx *types.Transaction) (escrow.Receipt, error) {
	args := g.Called(ctx, tx)
	return args.Get(0).(escrow.Receipt), args.Error(1)
}

// WatchAutoCompleted implements escrow.Gateway.
func (g *Gateway) WatchAutoCompleted(
	ctx context.Context,
	sink chan<- *escrow.AutoCompleted) (event.Subscription, error) {
	args := g.Called(ctx, sink)
	sub, _ := args.Get(0).(event.Subscription)
	return sub, args.Error(1)
}

// WatchCompleted implements escrow.Gateway.
func (g *Gateway) WatchCompleted(ctx context.Context, sink chan<- *escrow.Completed) (event.Subscription, error) {
	args := g.Called(ctx, sink)
	sub, _ := args.Get(0).(event.Subscription)
	return sub, args.Error(1)
}

// FilterAutoCompleted implements escrow.Gateway.
func (g *Gateway) FilterAutoCompleted(ctx context.Context, from, to uint64) ([]*escrow.AutoCompleted, error) {
	args := g.Called(ctx, from, to)
	evs, _ := args.Get(0).([]*escrow.AutoCompleted)
	return evs, args.Error(1)
}

// FilterCompleted implements escrow.Gateway.
func (g *Gateway) FilterCompleted(ctx context.Context, from, to uint64) ([]*escrow.Completed, error) {
	args := g.Called(ctx, from, to)
	evs, _ := args.Get(0).([]*escrow.Completed)
	return evs, args.Error(1)
}

// BlockNumber implements escrow.Gateway.
func (g *Gateway) BlockNumber(ctx context.Context) (uint64, error) {
	args := g.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

// Balance implements escrow.Gateway.
func (g *Gateway) Balance(ctx context.Context) (*big.Int, error) {
	args := g.Called(ctx)
	bal, _ := args.Get(0).(*big.Int)
	return bal, args.Error(1)
}

// NetworkInfo implements escrow.Gateway.
func (g *Gateway) NetworkInfo(ctx context.Context) (escrow.NetworkInfo, error) {
	args := g.Called(ctx)
	return args.Get(0).(escrow.NetworkInfo), args.Error(1)
}
