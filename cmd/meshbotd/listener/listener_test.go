package listener

import (
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/meshmind/meshbot/cmd/meshbotd/stats"
	"github.com/meshmind/meshbot/escrow"
	"github.com/meshmind/meshbot/escrow/escrowmock"
	"github.com/meshmind/meshbot/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	golog "github.com/textileio/go-log/v2"
	"go.uber.org/goleak"
)

var (
	self  = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	other = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestMain(m *testing.M) {
	if err := logging.SetLogLevels(map[string]golog.LogLevel{
		"meshbotd/listener": golog.LevelDebug,
	}); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}

func TestHandleAutoCompleted(t *testing.T) {
	t.Parallel()
	_, st, l := newListener(t)

	l.handleAutoCompleted(&escrow.AutoCompleted{OrderID: 1, Bot: self, Reward: big.NewInt(5e16)})
	l.handleAutoCompleted(&escrow.AutoCompleted{OrderID: 2, Bot: other, Reward: big.NewInt(5e16)})
	// Same address in a different hex casing.
	l.handleAutoCompleted(&escrow.AutoCompleted{
		OrderID: 3,
		Bot:     common.HexToAddress("0xF39FD6E51AAD88F6F4CE6AB8827279CFFFB92266"),
		Reward:  big.NewInt(5e16),
	})
	l.handleCompleted(&escrow.Completed{OrderID: 4, PaymentAmount: big.NewInt(1e18)})

	snap := st.Snapshot()
	require.Equal(t, uint64(2), snap.OrdersProcessed)
	require.Equal(t, "100000000000000000", snap.TotalRewards.String())
}

func TestSubscriptionDelivery(t *testing.T) {
	t.Parallel()
	gw, st, l := newListener(t)

	autoSub, completedSub := newFakeSub(), newFakeSub()
	autoSinks := make(chan chan<- *escrow.AutoCompleted, 1)
	gw.On("WatchAutoCompleted", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { autoSinks <- args.Get(1).(chan<- *escrow.AutoCompleted) }).
		Return(autoSub, nil).Once()
	gw.On("WatchCompleted", mock.Anything, mock.Anything).Return(completedSub, nil).Once()

	require.NoError(t, l.Start())
	require.Error(t, l.Start())

	sink := <-autoSinks
	sink <- &escrow.AutoCompleted{OrderID: 7, Bot: other, Reward: big.NewInt(1)}
	sink <- &escrow.AutoCompleted{OrderID: 8, Bot: self, Reward: big.NewInt(3e16)}
	require.Eventually(t, func() bool {
		return st.Snapshot().OrdersProcessed == 1
	}, time.Second, time.Millisecond*10)
	require.Equal(t, "30000000000000000", st.Snapshot().TotalRewards.String())

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	require.Equal(t, int32(1), atomic.LoadInt32(&autoSub.unsubscribed))
	require.Equal(t, int32(1), atomic.LoadInt32(&completedSub.unsubscribed))
	require.Error(t, l.Start())
}

func TestResubscribeAfterFailure(t *testing.T) {
	t.Parallel()
	gw, _, l := newListener(t, WithResubscribeBackoff(time.Millisecond*5, time.Millisecond*20))

	var watches int32
	countWatch := func(mock.Arguments) { atomic.AddInt32(&watches, 1) }
	failing := newFailingSub()
	gw.On("WatchAutoCompleted", mock.Anything, mock.Anything).
		Run(countWatch).Return(nil, errors.New("dial tcp: refused")).Once()
	gw.On("WatchAutoCompleted", mock.Anything, mock.Anything).Run(countWatch).Return(failing, nil).Once()
	gw.On("WatchAutoCompleted", mock.Anything, mock.Anything).Run(countWatch).Return(newFakeSub(), nil)
	gw.On("WatchCompleted", mock.Anything, mock.Anything).Return(newFakeSub(), nil).Once()
	gw.On("WatchCompleted", mock.Anything, mock.Anything).Return(newFakeSub(), nil)

	require.NoError(t, l.Start())
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&watches) == 2
	}, time.Second, time.Millisecond*5)
	failing.fail()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&watches) == 3
	}, time.Second, time.Millisecond*5)
	require.NoError(t, l.Close())
}

func TestPollingFallback(t *testing.T) {
	t.Parallel()
	gw, st, l := newListener(t, WithPollInterval(time.Millisecond*10))

	gw.On("WatchAutoCompleted", mock.Anything, mock.Anything).Return(nil, escrow.ErrSubscriptionsUnsupported)
	gw.On("BlockNumber", mock.Anything).Return(uint64(100), nil).Once()
	gw.On("BlockNumber", mock.Anything).Return(uint64(105), nil)
	gw.On("FilterAutoCompleted", mock.Anything, uint64(101), uint64(105)).Return([]*escrow.AutoCompleted{
		{OrderID: 1, Bot: self, Reward: big.NewInt(2)},
		{OrderID: 2, Bot: other, Reward: big.NewInt(2)},
	}, nil).Once()
	gw.On("FilterCompleted", mock.Anything, uint64(101), uint64(105)).Return([]*escrow.Completed{
		{OrderID: 3, PaymentAmount: big.NewInt(9)},
	}, nil).Once()

	require.NoError(t, l.Start())
	require.Eventually(t, func() bool {
		return st.Snapshot().OrdersProcessed == 1
	}, time.Second, time.Millisecond*10)

	// Later polls see no new blocks and don't filter again.
	time.Sleep(time.Millisecond * 50)
	require.NoError(t, l.Close())
	gw.AssertNumberOfCalls(t, "FilterAutoCompleted", 1)
	require.Equal(t, "2", st.Snapshot().TotalRewards.String())
}

func TestPollOnceRetriesRange(t *testing.T) {
	t.Parallel()
	gw, _, l := newListener(t)

	gw.On("BlockNumber", mock.Anything).Return(uint64(20), nil)
	gw.On("FilterAutoCompleted", mock.Anything, uint64(10), uint64(20)).Return(nil, errors.New("limit exceeded")).Once()
	gw.On("FilterAutoCompleted", mock.Anything, uint64(10), uint64(20)).Return(nil, nil).Once()
	gw.On("FilterCompleted", mock.Anything, uint64(10), uint64(20)).Return(nil, nil).Once()

	require.Equal(t, uint64(10), l.pollOnce(10))
	require.Equal(t, uint64(21), l.pollOnce(10))
	require.Equal(t, uint64(21), l.pollOnce(21))
	gw.AssertExpectations(t)
}

func TestCloseWithoutStart(t *testing.T) {
	t.Parallel()
	_, _, l := newListener(t)
	require.NoError(t, l.Close())
}

func newListener(t *testing.T, opts ...Option) (*escrowmock.Gateway, *stats.Stats, *Listener) {
	gw := &escrowmock.Gateway{}
	gw.On("Address").Return(self)
	st := stats.New()
	l, err := New(gw, st, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, l.Close()) })
	return gw, st, l
}

type fakeSub struct {
	event.Subscription
	unsubscribed int32
}

func newFakeSub() *fakeSub {
	return &fakeSub{
		Subscription: event.NewSubscription(func(quit <-chan struct{}) error {
			<-quit
			return nil
		}),
	}
}

func (s *fakeSub) Unsubscribe() {
	atomic.AddInt32(&s.unsubscribed, 1)
	s.Subscription.Unsubscribe()
}

type failingSub struct {
	event.Subscription
	failCh chan struct{}
}

func newFailingSub() *failingSub {
	failCh := make(chan struct{})
	return &failingSub{
		failCh: failCh,
		Subscription: event.NewSubscription(func(quit <-chan struct{}) error {
			select {
			case <-failCh:
				return errors.New("websocket closed")
			case <-quit:
				return nil
			}
		}),
	}
}

func (s *failingSub) fail() {
	close(s.failCh)
}
