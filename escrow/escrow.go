package escrow

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

const invalidStatus = "invalid"

var (
	// ErrOrderIDOverflow is returned when the contract reports an order id that doesn't fit an OrderID.
	ErrOrderIDOverflow = errors.New("order id overflows uint64")
	// ErrSubscriptionsUnsupported is returned by watch methods when the endpoint can't push events.
	ErrSubscriptionsUnsupported = errors.New("endpoint doesn't support subscriptions")

	// benignRaceReasons are revert reasons the contract returns when an expired order
	// stopped being eligible between discovery and settlement.
	benignRaceReasons = []string{
		"order not yet expired",
		"invalid order status",
	}
)

// Gateway is the subset of the MeshMind escrow contract surface the bot consumes.
type Gateway interface {
	// Address returns the address of the signing account.
	Address() common.Address

	// ExpiredOrders returns the ids of orders the contract considers expired and unprocessed.
	ExpiredOrders(ctx context.Context) ([]OrderID, error)
	// Order returns an order record.
	Order(ctx context.Context, id OrderID) (Order, error)
	// GasPrice returns the current network gas price in wei.
	GasPrice(ctx context.Context) (*big.Int, error)
	// EstimateAutoComplete estimates the gas units of an autoCompleteOrder call.
	EstimateAutoComplete(ctx context.Context, id OrderID) (uint64, error)
	// AutoComplete signs and broadcasts an autoCompleteOrder transaction.
	AutoComplete(ctx context.Context, id OrderID, gasLimit uint64, gasPrice *big.Int) (*types.Transaction, error)
	// WaitReceipt blocks until the transaction is included in a block.
	WaitReceipt(ctx context.Context, tx *types.Transaction) (Receipt, error)

	// WatchAutoCompleted subscribes to OrderAutoCompleted events.
	WatchAutoCompleted(ctx context.Context, sink chan<- *AutoCompleted) (event.Subscription, error)
	// WatchCompleted subscribes to OrderCompleted events.
	WatchCompleted(ctx context.Context, sink chan<- *Completed) (event.Subscription, error)
	// FilterAutoCompleted returns OrderAutoCompleted events in the inclusive block range.
	FilterAutoCompleted(ctx context.Context, from, to uint64) ([]*AutoCompleted, error)
	// FilterCompleted returns OrderCompleted events in the inclusive block range.
	FilterCompleted(ctx context.Context, from, to uint64) ([]*Completed, error)

	// BlockNumber returns the latest block number.
	BlockNumber(ctx context.Context) (uint64, error)
	// Balance returns the native balance of the signing account in wei.
	Balance(ctx context.Context) (*big.Int, error)
	// NetworkInfo returns the chain id and latest block of the connected network.
	NetworkInfo(ctx context.Context) (NetworkInfo, error)
}

// OrderID is the identifier of an order in the escrow contract.
type OrderID uint64

// OrderIDFromBig converts a contract uint256 into an OrderID.
func OrderIDFromBig(v *big.Int) (OrderID, error) {
	if v == nil || v.Sign() < 0 || !v.IsUint64() {
		return 0, ErrOrderIDOverflow
	}
	return OrderID(v.Uint64()), nil
}

// Big returns the id as a contract uint256.
func (id OrderID) Big() *big.Int {
	return new(big.Int).SetUint64(uint64(id))
}

// Order is a unit of work purchased against a device.
type Order struct {
	ID                  OrderID        `json:"id"`
	User                common.Address `json:"user"`
	Action              string         `json:"action"`
	DeviceID            *big.Int       `json:"device_id"`
	Amount              *big.Int       `json:"amount"`
	CreatedAt           time.Time      `json:"created_at"`
	Status              OrderStatus    `json:"status"`
	CompletionTimestamp time.Time      `json:"completion_timestamp"`
	DurationHours       uint64         `json:"duration_hours"`
	TaskDetails         string         `json:"task_details"`
}

// OrderStatus is the lifecycle status of an Order, as encoded by the contract.
type OrderStatus uint8

const (
	// OrderPending is an order that wasn't accepted by the device owner yet.
	OrderPending OrderStatus = iota
	// OrderAccepted is an order accepted by the device owner.
	OrderAccepted
	// OrderInProgress is an order being executed by the device.
	OrderInProgress
	// OrderCompleted is a settled order.
	OrderCompleted
	// OrderCancelled is a cancelled order.
	OrderCancelled
	// OrderDisputed is an order under dispute.
	OrderDisputed
)

// String returns a string-encoded status.
func (s OrderStatus) String() string {
	switch s {
	case OrderPending:
		return "pending"
	case OrderAccepted:
		return "accepted"
	case OrderInProgress:
		return "in-progress"
	case OrderCompleted:
		return "completed"
	case OrderCancelled:
		return "cancelled"
	case OrderDisputed:
		return "disputed"
	default:
		return invalidStatus
	}
}

// Terminal returns true if no further transition is possible from the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Receipt is the inclusion record of a submitted transaction.
type Receipt struct {
	TxHash      common.Hash
	Successful  bool
	GasUsed     uint64
	BlockNumber uint64
}

// AutoCompleted is an OrderAutoCompleted event emitted when a bot settles an expired order.
type AutoCompleted struct {
	OrderID     OrderID
	Bot         common.Address
	Reward      *big.Int
	BlockNumber uint64
	TxHash      common.Hash
}

// Completed is an OrderCompleted event emitted when a device owner completes an order.
type Completed struct {
	OrderID       OrderID
	PaymentAmount *big.Int
	BlockNumber   uint64
	TxHash        common.Hash
}

// NetworkInfo describes the network the gateway is connected to.
type NetworkInfo struct {
	ChainID     *big.Int
	BlockNumber uint64
}

// GasQuote is a fee snapshot used for a single settlement attempt.
type GasQuote struct {
	Estimate uint64
	Price    *big.Int
}

// Cost returns the advisory transaction cost in wei.
func (q GasQuote) Cost() *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(q.Estimate), q.Price)
}

// IsBenignRace returns true if err is a contract rejection meaning the order
// is no longer eligible for auto-completion, e.g. another actor completed it first.
func IsBenignRace(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, reason := range benignRaceReasons {
		if strings.Contains(msg, reason) {
			return true
		}
	}
	return false
}
