package syncer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testclock "k8s.io/utils/clock/testing"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (c *countingRefresher) Refresh(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestStartPoller_RefreshesImmediatelyThenEveryInterval(t *testing.T) {
	clk := testclock.NewFakeClock(time.Unix(1700000000, 0))
	r := &countingRefresher{}

	ctx, cancel := context.WithCancel(context.Background())
	done := StartPoller(ctx, r, 5*time.Second, clk, nil)

	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, time.Millisecond)

	clk.Step(4 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), r.calls.Load(), "no refresh before the interval elapses")

	clk.Step(time.Second)
	require.Eventually(t, func() bool { return r.calls.Load() == 2 }, time.Second, time.Millisecond)

	clk.Step(5 * time.Second)
	require.Eventually(t, func() bool { return r.calls.Load() == 3 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	assert.False(t, clk.HasWaiters(), "ticker should be stopped")
}

func TestStartPoller_FailuresDoNotStopLoop(t *testing.T) {
	clk := testclock.NewFakeClock(time.Unix(1700000000, 0))
	r := &countingRefresher{err: errors.New("server error")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoller(ctx, r, time.Second, clk, nil)

	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, time.Millisecond)
	for want := int32(2); want <= 4; want++ {
		clk.Step(time.Second)
		require.Eventually(t, func() bool { return r.calls.Load() == want }, time.Second, time.Millisecond)
	}
}

func TestStartPoller_DefaultInterval(t *testing.T) {
	clk := testclock.NewFakeClock(time.Unix(1700000000, 0))
	r := &countingRefresher{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoller(ctx, r, 0, clk, nil)

	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, time.Millisecond)
	clk.Step(DefaultInterval)
	require.Eventually(t, func() bool { return r.calls.Load() == 2 }, time.Second, time.Millisecond)
}
