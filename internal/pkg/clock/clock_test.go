//go:build unit

package clock_test

import (
	"testing"
	"time"

	"cinema-seat-hold/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClock_AfterFunc(t *testing.T) {
	base := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

	t.Run("fires once the deadline is reached", func(t *testing.T) {
		c := clock.NewMockClock(base)
		fired := 0
		c.AfterFunc(time.Minute, func() { fired++ })

		c.Add(59 * time.Second)
		assert.Equal(t, 0, fired)
		assert.Equal(t, 1, c.Pending())

		c.Add(time.Second)
		assert.Equal(t, 1, fired)
		assert.Equal(t, 0, c.Pending())

		c.Add(time.Hour)
		assert.Equal(t, 1, fired, "must not fire twice")
	})

	t.Run("stop before deadline prevents the call", func(t *testing.T) {
		c := clock.NewMockClock(base)
		fired := false
		tm := c.AfterFunc(time.Minute, func() { fired = true })

		require.True(t, tm.Stop())
		assert.False(t, tm.Stop(), "second stop reports nothing was prevented")

		c.Add(2 * time.Minute)
		assert.False(t, fired)
	})

	t.Run("stop after fire is a no-op", func(t *testing.T) {
		c := clock.NewMockClock(base)
		tm := c.AfterFunc(time.Second, func() {})
		c.Add(time.Second)
		assert.False(t, tm.Stop())
	})

	t.Run("due timers fire in deadline order", func(t *testing.T) {
		c := clock.NewMockClock(base)
		var order []string
		c.AfterFunc(3*time.Second, func() { order = append(order, "third") })
		c.AfterFunc(time.Second, func() { order = append(order, "first") })
		c.AfterFunc(2*time.Second, func() { order = append(order, "second") })

		c.Set(base.Add(10 * time.Second))
		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("callback may read the clock", func(t *testing.T) {
		c := clock.NewMockClock(base)
		var seen time.Time
		c.AfterFunc(time.Minute, func() { seen = c.Now() })
		c.Add(time.Minute)
		assert.Equal(t, base.Add(time.Minute), seen)
	})
}
