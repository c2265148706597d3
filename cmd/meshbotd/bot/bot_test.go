package bot

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/meshmind/meshbot/cmd/meshbotd/reconciler"
	"github.com/meshmind/meshbot/cmd/meshbotd/stats"
	"github.com/meshmind/meshbot/escrow"
	"github.com/meshmind/meshbot/escrow/escrowmock"
	"github.com/meshmind/meshbot/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	golog "github.com/textileio/go-log/v2"
	"go.uber.org/goleak"
)

var botAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func TestMain(m *testing.M) {
	if err := logging.SetLogLevels(map[string]golog.LogLevel{
		"meshbotd/bot": golog.LevelDebug,
	}); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}

func TestStartRunsImmediately(t *testing.T) {
	t.Parallel()
	rec := newFakeReconciler()
	b, _, st := newBot(t, rec, WithCheckInterval(time.Hour))

	b.Start()
	require.True(t, b.Running())
	require.True(t, st.Snapshot().Running)
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, time.Millisecond*5)

	// Starting again doesn't spawn a second scheduler.
	b.Start()
	time.Sleep(time.Millisecond * 20)
	require.Equal(t, int32(1), rec.count())

	b.Stop()
	require.False(t, b.Running())
	require.False(t, st.Snapshot().Running)
}

func TestPeriodicTicksNeverOverlap(t *testing.T) {
	t.Parallel()
	rec := newFakeReconciler()
	rec.delay = time.Millisecond * 15
	b, _, _ := newBot(t, rec, WithCheckInterval(time.Millisecond*5))

	b.Start()
	require.Eventually(t, func() bool { return rec.count() >= 4 }, time.Second*2, time.Millisecond*5)
	b.Stop()

	require.Equal(t, int32(1), atomic.LoadInt32(&rec.maxActive))
	n := rec.count()
	time.Sleep(time.Millisecond * 30)
	require.Equal(t, n, rec.count())
}

func TestStopWaitsForInflightTick(t *testing.T) {
	t.Parallel()
	rec := newFakeReconciler()
	rec.release = make(chan struct{})
	b, _, _ := newBot(t, rec, WithCheckInterval(time.Hour))

	b.Start()
	ctx := <-rec.started

	stopped := make(chan struct{})
	go func() {
		b.Stop()
		close(stopped)
	}()

	// The pass sees the stop request, but isn't interrupted.
	require.Eventually(t, func() bool { return ctx.Err() != nil }, time.Second, time.Millisecond*5)
	select {
	case <-stopped:
		t.Fatal("stop returned before the in-flight tick finished")
	case <-time.After(time.Millisecond * 20):
	}
	close(rec.release)
	<-stopped
	require.False(t, b.Running())
}

func TestStopDoesNotBlockReaders(t *testing.T) {
	t.Parallel()
	rec := newFakeReconciler()
	rec.release = make(chan struct{})
	b, _, _ := newBot(t, rec, WithCheckInterval(time.Hour))

	b.Start()
	<-rec.started

	stopped := make(chan struct{})
	go func() {
		b.Stop()
		close(stopped)
	}()
	secondStopped := make(chan struct{})
	go func() {
		b.Stop()
		close(secondStopped)
	}()

	// While the in-flight order finishes, state reads and a start request answer immediately.
	readDone := make(chan bool)
	go func() {
		time.Sleep(time.Millisecond * 10)
		b.Start()
		readDone <- b.Running()
	}()
	select {
	case running := <-readDone:
		require.True(t, running)
	case <-time.After(time.Second):
		t.Fatal("Running blocked while stopping")
	}
	select {
	case <-secondStopped:
		t.Fatal("concurrent stop returned before the in-flight tick finished")
	default:
	}

	close(rec.release)
	<-stopped
	<-secondStopped
	require.False(t, b.Running())
	require.Equal(t, int32(1), rec.count())
}

func TestStopWhenStoppedAndRestart(t *testing.T) {
	t.Parallel()
	rec := newFakeReconciler()
	b, _, _ := newBot(t, rec, WithCheckInterval(time.Hour))

	b.Stop()
	require.False(t, b.Running())

	b.Start()
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, time.Millisecond*5)
	b.Stop()
	b.Start()
	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, time.Millisecond*5)
	b.Stop()
}

func TestStatsLogging(t *testing.T) {
	t.Parallel()
	rec := newFakeReconciler()
	b, _, _ := newBot(t, rec, WithCheckInterval(time.Hour), WithStatsInterval(time.Millisecond*5))

	b.Start()
	time.Sleep(time.Millisecond * 30)
	b.Stop()
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		b, gw, _ := newBot(t, newFakeReconciler())
		gw.On("NetworkInfo", mock.Anything).Return(escrow.NetworkInfo{ChainID: big.NewInt(1328), BlockNumber: 10}, nil)
		gw.On("Balance", mock.Anything).Return(big.NewInt(1e15), nil)

		require.NoError(t, b.Initialize(context.Background()))
		require.Equal(t, int32(1), atomic.LoadInt32(&b.listener.(*fakeListener).starts))
	})

	t.Run("network failure", func(t *testing.T) {
		t.Parallel()
		b, gw, _ := newBot(t, newFakeReconciler())
		gw.On("NetworkInfo", mock.Anything).Return(escrow.NetworkInfo{}, errors.New("no route to host"))

		require.Error(t, b.Initialize(context.Background()))
		gw.AssertNotCalled(t, "Balance", mock.Anything)
		require.Zero(t, atomic.LoadInt32(&b.listener.(*fakeListener).starts))
	})

	t.Run("balance failure isn't fatal", func(t *testing.T) {
		t.Parallel()
		b, gw, _ := newBot(t, newFakeReconciler())
		gw.On("NetworkInfo", mock.Anything).Return(escrow.NetworkInfo{ChainID: big.NewInt(1), BlockNumber: 1}, nil)
		gw.On("Balance", mock.Anything).Return(nil, errors.New("timeout"))

		require.NoError(t, b.Initialize(context.Background()))
	})
}

func TestCheckBalance(t *testing.T) {
	t.Parallel()
	b, gw, _ := newBot(t, newFakeReconciler(), WithLowBalanceThreshold(big.NewInt(100)))
	gw.On("Balance", mock.Anything).Return(big.NewInt(50), nil)

	bal, err := b.CheckBalance(context.Background())
	require.NoError(t, err)
	require.Equal(t, "50", bal.String())
}

func TestShutdown(t *testing.T) {
	t.Parallel()
	rec := newFakeReconciler()
	gw := &closableGateway{Gateway: &escrowmock.Gateway{}}
	gw.On("Address").Return(botAddr)
	l := &fakeListener{}
	b, err := New(gw, rec, l, stats.New(), WithCheckInterval(time.Hour))
	require.NoError(t, err)

	b.Start()
	require.NoError(t, b.Shutdown())
	require.NoError(t, b.Shutdown())
	require.False(t, b.Running())
	require.Equal(t, int32(1), atomic.LoadInt32(&l.closes))
	require.Equal(t, int32(1), atomic.LoadInt32(&gw.closes))
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Duration
		err  bool
	}{
		{in: "*/5 * * * *", want: time.Minute * 5},
		{in: "* * * * *", want: time.Minute},
		{in: "0 * * * *", want: time.Hour},
		{in: "@every 90s", want: time.Second * 90},
		{in: "5m", want: time.Minute * 5},
		{in: " 30s ", want: time.Second * 30},
		{in: "0s", err: true},
		{in: "", err: true},
		{in: "every five minutes", err: true},
		{in: "*/5 * * *", err: true},
	}
	for _, tc := range tests {
		got, err := ParseSchedule(tc.in)
		if tc.err {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func newBot(t *testing.T, rec Reconciler, opts ...Option) (*Bot, *escrowmock.Gateway, *stats.Stats) {
	gw := &escrowmock.Gateway{}
	gw.On("Address").Return(botAddr)
	st := stats.New()
	b, err := New(gw, rec, &fakeListener{}, st, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, b.Shutdown()) })
	return b, gw, st
}

type fakeReconciler struct {
	ticks     int32
	active    int32
	maxActive int32
	delay     time.Duration
	release   chan struct{}
	started   chan context.Context
}

func newFakeReconciler() *fakeReconciler {
	return &fakeReconciler{started: make(chan context.Context, 1)}
}

func (r *fakeReconciler) Tick(ctx context.Context) reconciler.TickSummary {
	active := atomic.AddInt32(&r.active, 1)
	defer atomic.AddInt32(&r.active, -1)
	for {
		max := atomic.LoadInt32(&r.maxActive)
		if active <= max || atomic.CompareAndSwapInt32(&r.maxActive, max, active) {
			break
		}
	}
	select {
	case r.started <- ctx:
	default:
	}
	if r.release != nil {
		<-r.release
	}
	time.Sleep(r.delay)
	atomic.AddInt32(&r.ticks, 1)
	return reconciler.TickSummary{Outcomes: map[reconciler.Outcome]int{}}
}

func (r *fakeReconciler) count() int32 {
	return atomic.LoadInt32(&r.ticks)
}

type fakeListener struct {
	starts int32
	closes int32
}

func (l *fakeListener) Start() error {
	atomic.AddInt32(&l.starts, 1)
	return nil
}

func (l *fakeListener) Close() error {
	atomic.AddInt32(&l.closes, 1)
	return nil
}

type closableGateway struct {
	*escrowmock.Gateway
	closes int32
}

func (g *closableGateway) Close() error {
	atomic.AddInt32(&g.closes, 1)
	return nil
}
