package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerWidensAfterFirstSuccess(t *testing.T) {
	var calls int32
	s := NewScheduler("pool", Policy{Initial: 3 * time.Second, Steady: 30 * time.Second}, func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return errors.New("rpc down")
		}

		return nil
	})

	assert.Equal(t, 3*time.Second, s.Period())

	ctx := context.Background()
	s.tick(ctx)
	assert.Equal(t, 3*time.Second, s.Period(), "failed tick keeps the initial period")

	s.tick(ctx)
	assert.Equal(t, 30*time.Second, s.Period())

	s.tick(ctx)
	assert.Equal(t, 30*time.Second, s.Period())
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestSchedulerFixed(t *testing.T) {
	s := NewScheduler("balance", Fixed(5*time.Second), func(ctx context.Context) error {
		return nil
	})

	s.tick(context.Background())
	assert.Equal(t, 5*time.Second, s.Period())
	assert.False(t, s.widened)
}

func TestSchedulerFiresOnStart(t *testing.T) {
	var calls int32
	s := NewScheduler("pool", Policy{Initial: time.Hour, Steady: 2 * time.Hour}, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1 && s.Period() == 2*time.Hour
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerSkipsWhileBusy(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	s := NewScheduler("balance", Fixed(time.Hour), func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	})

	s.now = false
	s.Start(context.Background())

	done := make(chan struct{})
	go func() {
		s.runner.Run()
		close(done)
	}()

	<-started
	s.runner.Run()
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "overlapping tick is skipped")

	close(release)
	<-done
	s.Stop()
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestSchedulerRunStopsWithContext(t *testing.T) {
	s := NewScheduler("balance", Fixed(time.Hour), func(ctx context.Context) error {
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestNewCron(t *testing.T) {
	s, err := NewCron("pricehistory", "@hourly", nil, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), s.Period())

	_, err = NewCron("pricehistory", "every now and then", nil, nil)
	assert.Error(t, err)
}
