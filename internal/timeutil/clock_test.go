package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClockAdvance(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, time.Duration(0), clock.Since(start))

	clock.Advance(42 * time.Second)
	assert.Equal(t, 42*time.Second, clock.Since(start))

	clock.Set(start.Add(time.Hour))
	assert.Equal(t, time.Hour, clock.Since(start))
}

func TestMockTickerFiresOnAdvance(t *testing.T) {
	t.Parallel()
	clock := NewMockClock(time.Unix(1000, 0))
	ticker := clock.NewTicker(10 * time.Second)
	defer ticker.Stop()

	select {
	case <-ticker.C():
		t.Fatal("ticker fired before the interval elapsed")
	default:
	}

	clock.Advance(10 * time.Second)
	select {
	case tick := <-ticker.C():
		assert.Equal(t, time.Unix(1010, 0), tick)
	default:
		t.Fatal("ticker did not fire after the interval elapsed")
	}
}

func TestMockTickerStopped(t *testing.T) {
	t.Parallel()
	clock := NewMockClock(time.Unix(1000, 0))
	ticker := clock.NewTicker(time.Second)
	ticker.Stop()

	clock.Advance(5 * time.Second)
	select {
	case <-ticker.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestRealClock(t *testing.T) {
	t.Parallel()
	clock := RealClock{}

	before := time.Now()
	now := clock.Now()
	require.False(t, now.Before(before))
	assert.GreaterOrEqual(t, clock.Since(before), time.Duration(0))

	ticker := clock.NewTicker(time.Millisecond)
	defer ticker.Stop()
	select {
	case <-ticker.C():
	case <-time.After(time.Second):
		t.Fatal("real ticker never fired")
	}
}
