// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallsImmediately(t *testing.T) {
	calls := make(chan struct{}, 1)
	p := New(time.Hour, func(context.Context) { calls <- struct{}{} })
	p.Start(context.Background())
	defer p.Stop()

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("first call waited for a tick")
	}
}

func TestCallsOnTick(t *testing.T) {
	var total atomic.Int32
	p := New(5*time.Millisecond, func(context.Context) { total.Add(1) })
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return total.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestTrigger(t *testing.T) {
	calls := make(chan struct{}, 10)
	p := New(time.Hour, func(context.Context) { calls <- struct{}{} })
	p.Start(context.Background())
	defer p.Stop()

	<-calls
	p.Trigger()

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("trigger did not cause a call")
	}
}

func TestCallsNeverOverlap(t *testing.T) {
	var active, maxActive atomic.Int32
	var total atomic.Int32

	p := New(time.Millisecond, func(context.Context) {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		time.Sleep(2 * time.Millisecond)
		active.Add(-1)
		total.Add(1)
	})
	p.Start(context.Background())

	for i := 0; i < 20; i++ {
		p.Trigger()
		time.Sleep(time.Millisecond)
	}
	p.Stop()

	assert.Equal(t, int32(1), maxActive.Load())
	assert.Greater(t, total.Load(), int32(1))
}

func TestStopWaitsAndSilences(t *testing.T) {
	var total atomic.Int32
	p := New(time.Millisecond, func(context.Context) { total.Add(1) })
	p.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	after := total.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, total.Load())

	// Stopping twice is fine
	p.Stop()
}

func TestRunReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var seen atomic.Bool

	p := New(time.Hour, func(ctx context.Context) {
		seen.Store(true)
	})

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, seen.Load, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStartTwiceKeepsOneLoop(t *testing.T) {
	var total atomic.Int32
	p := New(time.Hour, func(context.Context) { total.Add(1) })
	p.Start(context.Background())
	p.Start(context.Background())

	require.Eventually(t, func() bool { return total.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int32(1), total.Load())
}
