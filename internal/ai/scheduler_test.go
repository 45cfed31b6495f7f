package ai

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

func always() bool { return true }

func TestSchedulerFiresAfterDelay(t *testing.T) {
	ctx := context.Background()
	mockClock := quartz.NewMock(t)
	sched := NewScheduler(mockClock, log.New(io.Discard))

	var fired atomic.Bool
	sched.Schedule(time.Second, always, func() { fired.Store(true) })

	mockClock.Advance(500 * time.Millisecond).MustWait(ctx)
	if fired.Load() {
		t.Fatal("Decision fired before the delay elapsed")
	}

	mockClock.Advance(500 * time.Millisecond).MustWait(ctx)
	if !fired.Load() {
		t.Fatal("Decision never fired")
	}
}

func TestSchedulerCancelDropsPending(t *testing.T) {
	ctx := context.Background()
	mockClock := quartz.NewMock(t)
	sched := NewScheduler(mockClock, log.New(io.Discard))

	var fired atomic.Bool
	sched.Schedule(time.Second, always, func() { fired.Store(true) })
	sched.Cancel()

	mockClock.Advance(2 * time.Second).MustWait(ctx)
	if fired.Load() {
		t.Fatal("Cancelled decision still fired")
	}
}

func TestSchedulerNewScheduleSupersedesOld(t *testing.T) {
	ctx := context.Background()
	mockClock := quartz.NewMock(t)
	sched := NewScheduler(mockClock, log.New(io.Discard))

	var first, second atomic.Bool
	sched.Schedule(time.Second, always, func() { first.Store(true) })
	sched.Schedule(time.Second, always, func() { second.Store(true) })

	mockClock.Advance(time.Second).MustWait(ctx)
	mockClock.Advance(time.Second).MustWait(ctx)
	if first.Load() {
		t.Error("Superseded decision fired")
	}
	if !second.Load() {
		t.Error("Replacement decision never fired")
	}
}

func TestSchedulerDropsInvalidatedDecision(t *testing.T) {
	ctx := context.Background()
	mockClock := quartz.NewMock(t)
	sched := NewScheduler(mockClock, log.New(io.Discard))

	var valid atomic.Bool
	valid.Store(true)

	var fired atomic.Bool
	sched.Schedule(time.Second, func() bool { return valid.Load() }, func() { fired.Store(true) })

	// The spot goes away before the timer fires.
	valid.Store(false)
	mockClock.Advance(time.Second).MustWait(ctx)

	if fired.Load() {
		t.Fatal("Decision fired for an invalidated spot")
	}
}

func TestSchedulerCancelWithNothingPending(t *testing.T) {
	sched := NewScheduler(quartz.NewMock(t), log.New(io.Discard))
	sched.Cancel() // must not panic
}
