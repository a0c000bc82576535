package wilderness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func square(cx, cy, half int) []Coordinate {
	return []Coordinate{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}
}

func TestPointInRing(t *testing.T) {
	t.Parallel()

	ring := square(0, 0, 10)

	t.Run("interior point is inside", func(t *testing.T) {
		t.Parallel()
		assert.True(t, pointInRing(Coordinate{X: 0, Y: 0}, ring))
		assert.True(t, pointInRing(Coordinate{X: 9, Y: -9}, ring))
	})

	t.Run("exterior point is outside", func(t *testing.T) {
		t.Parallel()
		assert.False(t, pointInRing(Coordinate{X: 11, Y: 0}, ring))
		assert.False(t, pointInRing(Coordinate{X: 0, Y: -11}, ring))
		assert.False(t, pointInRing(Coordinate{X: 200, Y: 200}, ring))
	})

	t.Run("edge point is inside (boundary-inclusive)", func(t *testing.T) {
		t.Parallel()
		assert.True(t, pointInRing(Coordinate{X: 10, Y: 0}, ring))
		assert.True(t, pointInRing(Coordinate{X: 0, Y: 10}, ring))
		assert.True(t, pointInRing(Coordinate{X: -10, Y: 3}, ring))
	})

	t.Run("vertex is inside", func(t *testing.T) {
		t.Parallel()
		for _, v := range ring {
			assert.True(t, pointInRing(v, ring), "vertex %s", v)
		}
	})

	t.Run("concave polygon", func(t *testing.T) {
		t.Parallel()
		// L-shape: notch cut out of the top-right quadrant.
		l := []Coordinate{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5},
			{X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10},
		}
		assert.True(t, pointInRing(Coordinate{X: 2, Y: 8}, l))
		assert.True(t, pointInRing(Coordinate{X: 8, Y: 2}, l))
		assert.False(t, pointInRing(Coordinate{X: 8, Y: 8}, l), "point in the notch")
	})
}

func TestRingArea(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 400.0, ringArea(square(0, 0, 10)))
	assert.Equal(t, 0.0, ringArea([]Coordinate{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10}}), "collinear ring")
	assert.Equal(t, 0.0, ringArea([]Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}}))
}

func TestPointSegmentDistance(t *testing.T) {
	t.Parallel()

	a := r2.Vec{X: 0, Y: 0}
	b := r2.Vec{X: 10, Y: 0}

	require.Equal(t, 5.0, pointSegmentDistance(r2.Vec{X: 5, Y: 5}, a, b), "perpendicular projection")
	require.Equal(t, 5.0, pointSegmentDistance(r2.Vec{X: -5, Y: 0}, a, b), "clamped to start")
	require.Equal(t, 5.0, pointSegmentDistance(r2.Vec{X: 15, Y: 0}, a, b), "clamped to end")
	require.Equal(t, 0.0, pointSegmentDistance(r2.Vec{X: 3, Y: 0}, a, b), "on the segment")

	// Degenerate segment collapses to point distance.
	require.Equal(t, 5.0, pointSegmentDistance(r2.Vec{X: 3, Y: 4}, a, a))
}

func TestPointPolylineDistance(t *testing.T) {
	t.Parallel()

	pts := []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	segBounds := []bbox{boundsOf(pts[0:2]), boundsOf(pts[1:3])}

	assert.Equal(t, 2.0, pointPolylineDistance(r2.Vec{X: 4, Y: 2}, pts, segBounds, 5))
	assert.Equal(t, 3.0, pointPolylineDistance(r2.Vec{X: 13, Y: 7}, pts, segBounds, 5))

	// A tolerance that prunes every segment yields +Inf.
	d := pointPolylineDistance(r2.Vec{X: 100, Y: 100}, pts, segBounds, 5)
	assert.True(t, math.IsInf(d, 1))
}
