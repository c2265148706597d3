package ethgateway

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/meshmind/meshbot/cmd/meshbotd/contractclient"
	"github.com/meshmind/meshbot/escrow"
	"github.com/textileio/go-libp2p-pubsub-rpc/finalizer"
	golog "github.com/textileio/go-log/v2"
)

var log = golog.Logger("meshbotd/gateway")

// Backend is the set of node capabilities the gateway needs.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Gateway is an escrow.Gateway backed by an Ethereum JSON-RPC node.
type Gateway struct {
	backend      Backend
	contract     *contractclient.MeshMind
	contractAddr common.Address
	abi          abi.ABI
	key          *ecdsa.PrivateKey
	from         common.Address
	chainID      *big.Int

	finalizer *finalizer.Finalizer
}

var _ escrow.Gateway = (*Gateway)(nil)

// Dial connects to rpcURL and returns a Gateway that signs with the given hex-encoded private key.
func Dial(ctx context.Context, rpcURL string, contractAddr common.Address, privateKey string) (*Gateway, error) {
	key, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dialing endpoint: %s", err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("getting chain id: %s", err)
	}

	g, err := New(client, contractAddr, key, chainID)
	if err != nil {
		client.Close()
		return nil, err
	}
	g.finalizer.AddFn(client.Close)
	return g, nil
}

// New returns a Gateway over an existing backend.
func New(backend Backend, contractAddr common.Address, key *ecdsa.PrivateKey, chainID *big.Int) (*Gateway, error) {
	if key == nil {
		return nil, errors.New("private key is required")
	}
	if chainID == nil {
		return nil, errors.New("chain id is required")
	}
	contract, err := contractclient.NewMeshMind(contractAddr, backend)
	if err != nil {
		return nil, fmt.Errorf("creating contract client: %s", err)
	}
	parsed, err := abi.JSON(strings.NewReader(contractclient.MeshMindABI))
	if err != nil {
		return nil, fmt.Errorf("parsing contract abi: %s", err)
	}
	return &Gateway{
		backend:      backend,
		contract:     contract,
		contractAddr: contractAddr,
		abi:          parsed,
		key:          key,
		from:         crypto.PubkeyToAddress(key.PublicKey),
		chainID:      chainID,
		finalizer:    finalizer.NewFinalizer(),
	}, nil
}

// ParsePrivateKey parses a hex-encoded secp256k1 private key, with or without 0x prefix.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimSpace(hexKey)
	hexKey = strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X")
	if hexKey == "" {
		return nil, errors.New("private key is empty")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %s", err)
	}
	return key, nil
}

// Address returns the signer address.
func (g *Gateway) Address() common.Address {
	return g.from
}

// ExpiredOrders returns the ids of the orders the contract reports as expired.
func (g *Gateway) ExpiredOrders(ctx context.Context) ([]escrow.OrderID, error) {
	raw, err := g.contract.GetExpiredOrders(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, fmt.Errorf("calling getExpiredOrders: %s", err)
	}
	ids := make([]escrow.OrderID, 0, len(raw))
	for _, r := range raw {
		id, err := escrow.OrderIDFromBig(r)
		if err != nil {
			return nil, fmt.Errorf("converting order id %s: %w", r, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Order returns the order record.
func (g *Gateway) Order(ctx context.Context, id escrow.OrderID) (escrow.Order, error) {
	o, err := g.contract.GetOrder(&bind.CallOpts{Context: ctx}, id.Big())
	if err != nil {
		return escrow.Order{}, fmt.Errorf("calling getOrder(%d): %s", id, err)
	}
	return orderFromBinding(o)
}

// GasPrice returns the gas price suggested by the node.
func (g *Gateway) GasPrice(ctx context.Context) (*big.Int, error) {
	price, err := g.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting gas price: %s", err)
	}
	return price, nil
}

// EstimateAutoComplete estimates the gas needed by autoCompleteOrder(id) sent from the signer.
// A revert during estimation surfaces the contract's reason in the error.
func (g *Gateway) EstimateAutoComplete(ctx context.Context, id escrow.OrderID) (uint64, error) {
	data, err := g.abi.Pack("autoCompleteOrder", id.Big())
	if err != nil {
		return 0, fmt.Errorf("packing autoCompleteOrder: %s", err)
	}
	to := g.contractAddr
	gas, err := g.backend.EstimateGas(ctx, ethereum.CallMsg{
		From: g.from,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return 0, fmt.Errorf("estimating autoCompleteOrder(%d): %s", id, err)
	}
	return gas, nil
}

// AutoComplete signs and broadcasts autoCompleteOrder(id) with explicit gas parameters.
func (g *Gateway) AutoComplete(
	ctx context.Context,
	id escrow.OrderID,
	gasLimit uint64,
	gasPrice *big.Int) (*types.Transaction, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(g.key, g.chainID)
	if err != nil {
		return nil, fmt.Errorf("creating transactor: %s", err)
	}
	opts.Context = ctx
	opts.GasLimit = gasLimit
	opts.GasPrice = gasPrice

	tx, err := g.contract.AutoCompleteOrder(opts, id.Big())
	if err != nil {
		return nil, fmt.Errorf("sending autoCompleteOrder(%d): %s", id, err)
	}
	log.Debugf("sent autoCompleteOrder(%d) in tx %s with nonce %d", id, tx.Hash().Hex(), tx.Nonce())
	return tx, nil
}

// WaitReceipt waits until the transaction is mined or ctx is done.
func (g *Gateway) WaitReceipt(ctx context.Context, tx *types.Transaction) (escrow.Receipt, error) {
	r, err := bind.WaitMined(ctx, g.backend, tx)
	if err != nil {
		return escrow.Receipt{}, fmt.Errorf("waiting receipt of %s: %s", tx.Hash().Hex(), err)
	}
	var block uint64
	if r.BlockNumber != nil {
		block = r.BlockNumber.Uint64()
	}
	return escrow.Receipt{
		TxHash:      tx.Hash(),
		Successful:  r.Status == types.ReceiptStatusSuccessful,
		GasUsed:     r.GasUsed,
		BlockNumber: block,
	}, nil
}

// WatchAutoCompleted subscribes to OrderAutoCompleted events.
func (g *Gateway) WatchAutoCompleted(
	ctx context.Context,
	sink chan<- *escrow.AutoCompleted) (event.Subscription, error) {
	raw := make(chan *contractclient.MeshMindOrderAutoCompleted)
	sub, err := g.contract.WatchOrderAutoCompleted(&bind.WatchOpts{Context: ctx}, raw, nil, nil)
	if err != nil {
		return nil, watchErr("OrderAutoCompleted", err)
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case e := <-raw:
				ev, err := autoCompletedFromBinding(e)
				if err != nil {
					log.Warnf("discarding OrderAutoCompleted event: %s", err)
					continue
				}
				select {
				case sink <- ev:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

// WatchCompleted subscribes to OrderCompleted events.
func (g *Gateway) WatchCompleted(ctx context.Context, sink chan<- *escrow.Completed) (event.Subscription, error) {
	raw := make(chan *contractclient.MeshMindOrderCompleted)
	sub, err := g.contract.WatchOrderCompleted(&bind.WatchOpts{Context: ctx}, raw, nil)
	if err != nil {
		return nil, watchErr("OrderCompleted", err)
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case e := <-raw:
				ev, err := completedFromBinding(e)
				if err != nil {
					log.Warnf("discarding OrderCompleted event: %s", err)
					continue
				}
				select {
				case sink <- ev:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

// FilterAutoCompleted returns the OrderAutoCompleted events in [from, to].
func (g *Gateway) FilterAutoCompleted(ctx context.Context, from, to uint64) ([]*escrow.AutoCompleted, error) {
	it, err := g.contract.FilterOrderAutoCompleted(&bind.FilterOpts{Start: from, End: &to, Context: ctx}, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("filtering OrderAutoCompleted: %s", err)
	}
	defer func() { _ = it.Close() }()

	var evs []*escrow.AutoCompleted
	for it.Next() {
		ev, err := autoCompletedFromBinding(it.Event)
		if err != nil {
			return nil, err
		}
		evs = append(evs, ev)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterating OrderAutoCompleted: %s", err)
	}
	return evs, nil
}

// FilterCompleted returns the OrderCompleted events in [from, to].
func (g *Gateway) FilterCompleted(ctx context.Context, from, to uint64) ([]*escrow.Completed, error) {
	it, err := g.contract.FilterOrderCompleted(&bind.FilterOpts{Start: from, End: &to, Context: ctx}, nil)
	if err != nil {
		return nil, fmt.Errorf("filtering OrderCompleted: %s", err)
	}
	defer func() { _ = it.Close() }()

	var evs []*escrow.Completed
	for it.Next() {
		ev, err := completedFromBinding(it.Event)
		if err != nil {
			return nil, err
		}
		evs = append(evs, ev)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterating OrderCompleted: %s", err)
	}
	return evs, nil
}

// BlockNumber returns the latest block number.
func (g *Gateway) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := g.backend.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("getting block number: %s", err)
	}
	return n, nil
}

// Balance returns the signer balance at the latest block.
func (g *Gateway) Balance(ctx context.Context) (*big.Int, error) {
	bal, err := g.backend.BalanceAt(ctx, g.from, nil)
	if err != nil {
		return nil, fmt.Errorf("getting balance of %s: %s", g.from.Hex(), err)
	}
	return bal, nil
}

// NetworkInfo returns the chain id reported by the node and its latest block.
func (g *Gateway) NetworkInfo(ctx context.Context) (escrow.NetworkInfo, error) {
	chainID, err := g.backend.ChainID(ctx)
	if err != nil {
		return escrow.NetworkInfo{}, fmt.Errorf("getting chain id: %s", err)
	}
	n, err := g.BlockNumber(ctx)
	if err != nil {
		return escrow.NetworkInfo{}, err
	}
	return escrow.NetworkInfo{ChainID: chainID, BlockNumber: n}, nil
}

// Close releases the node connection.
func (g *Gateway) Close() error {
	return g.finalizer.Cleanup(nil)
}

func watchErr(name string, err error) error {
	if errors.Is(err, rpc.ErrNotificationsUnsupported) {
		return escrow.ErrSubscriptionsUnsupported
	}
	return fmt.Errorf("watching %s: %s", name, err)
}

func orderFromBinding(o contractclient.MeshMindOrder) (escrow.Order, error) {
	id, err := escrow.OrderIDFromBig(o.Id)
	if err != nil {
		return escrow.Order{}, err
	}
	return escrow.Order{
		ID:                  id,
		User:                o.User,
		Action:              o.Action,
		DeviceID:            o.DeviceId,
		Amount:              o.Amount,
		CreatedAt:           unixTime(o.Timestamp),
		Status:              escrow.OrderStatus(o.Status),
		CompletionTimestamp: unixTime(o.CompletionTimestamp),
		DurationHours:       bigUint64(o.DurationHours),
		TaskDetails:         o.TaskDetails,
	}, nil
}

func autoCompletedFromBinding(e *contractclient.MeshMindOrderAutoCompleted) (*escrow.AutoCompleted, error) {
	id, err := escrow.OrderIDFromBig(e.OrderId)
	if err != nil {
		return nil, err
	}
	return &escrow.AutoCompleted{
		OrderID:     id,
		Bot:         e.Bot,
		Reward:      e.BotReward,
		BlockNumber: e.Raw.BlockNumber,
		TxHash:      e.Raw.TxHash,
	}, nil
}

func completedFromBinding(e *contractclient.MeshMindOrderCompleted) (*escrow.Completed, error) {
	id, err := escrow.OrderIDFromBig(e.OrderId)
	if err != nil {
		return nil, err
	}
	return &escrow.Completed{
		OrderID:       id,
		PaymentAmount: e.PaymentAmount,
		BlockNumber:   e.Raw.BlockNumber,
		TxHash:        e.Raw.TxHash,
	}, nil
}

func unixTime(v *big.Int) time.Time {
	if v == nil || v.Sign() <= 0 || !v.IsInt64() {
		return time.Time{}
	}
	return time.Unix(v.Int64(), 0)
}

func bigUint64(v *big.Int) uint64 {
	if v == nil || v.Sign() < 0 || !v.IsUint64() {
		return 0
	}
	return v.Uint64()
}
