package myschedule

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestScheduler(t *testing.T) {
	t.Run("Runs after initial delay and then every interval", func(t *testing.T) {
		// setup
		c := context.TODO()
		clock := clockwork.NewFakeClock()
		scheduler := New(clock)
		ticks := make(chan time.Time, 10)

		// given
		scheduler.Start(c, Task{
			Name:         "tick",
			InitialDelay: 5 * time.Second,
			Interval:     30 * time.Second,
			Run: func(c context.Context) {
				ticks <- clock.Now()
			},
		})
		defer scheduler.Stop()
		start := clock.Now()

		// when
		assert.NoError(t, clock.BlockUntilContext(c, 1))
		clock.Advance(4 * time.Second)

		// then
		assertNoTick(t, ticks)

		// when
		clock.Advance(1 * time.Second)

		// then
		assert.Equal(t, start.Add(5*time.Second), <-ticks)

		// when
		assert.NoError(t, clock.BlockUntilContext(c, 1))
		clock.Advance(30 * time.Second)

		// then
		assert.Equal(t, start.Add(35*time.Second), <-ticks)
	})

	t.Run("Tasks run independently", func(t *testing.T) {
		// setup
		c := context.TODO()
		clock := clockwork.NewFakeClock()
		scheduler := New(clock)
		ticks := make(chan string, 10)

		// given
		scheduler.Start(c,
			Task{Name: "fast", InitialDelay: time.Second, Interval: time.Second, Run: func(c context.Context) { ticks <- "fast" }},
			Task{Name: "slow", InitialDelay: 10 * time.Second, Interval: 10 * time.Second, Run: func(c context.Context) { ticks <- "slow" }},
		)
		defer scheduler.Stop()

		// when
		assert.NoError(t, clock.BlockUntilContext(c, 2))
		clock.Advance(time.Second)

		// then
		assert.Equal(t, "fast", <-ticks)
		assertNoTick(t, ticks)
	})

	t.Run("Stop prevents further runs", func(t *testing.T) {
		// setup
		c := context.TODO()
		clock := clockwork.NewFakeClock()
		scheduler := New(clock)
		ticks := make(chan time.Time, 10)

		// given
		scheduler.Start(c, Task{
			Name:         "tick",
			InitialDelay: time.Second,
			Interval:     time.Second,
			Run: func(c context.Context) {
				ticks <- clock.Now()
			},
		})
		assert.NoError(t, clock.BlockUntilContext(c, 1))

		// when
		scheduler.Stop()
		clock.Advance(time.Minute)

		// then
		assertNoTick(t, ticks)
	})
}

func assertNoTick[T any](t *testing.T, ticks chan T) {
	select {
	case tick := <-ticks:
		assert.Fail(t, "unexpected tick", "%v", tick)
	case <-time.After(50 * time.Millisecond):
	}
}
