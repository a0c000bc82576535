package wilderness

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// bbox is an axis-aligned bounding box over float coordinates. Region and
// path boxes are precomputed at ingestion so batch queries can skip the exact
// containment/distance tests for most candidates.
type bbox struct {
	minX, minY, maxX, maxY float64
}

func (b bbox) contains(p r2.Vec) bool {
	return p.X >= b.minX && p.X <= b.maxX && p.Y >= b.minY && p.Y <= b.maxY
}

// expand grows the box by d on every side.
func (b bbox) expand(d float64) bbox {
	return bbox{minX: b.minX - d, minY: b.minY - d, maxX: b.maxX + d, maxY: b.maxY + d}
}

func boundsOf(pts []Coordinate) bbox {
	b := bbox{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
	for _, p := range pts {
		b.minX = math.Min(b.minX, float64(p.X))
		b.minY = math.Min(b.minY, float64(p.Y))
		b.maxX = math.Max(b.maxX, float64(p.X))
		b.maxY = math.Max(b.maxY, float64(p.Y))
	}
	return b
}

func vec(c Coordinate) r2.Vec {
	return r2.Vec{X: float64(c.X), Y: float64(c.Y)}
}

// ringArea returns the absolute shoelace area of the implicitly closed ring.
// A zero area marks a degenerate polygon, rejected at ingestion.
func ringArea(ring []Coordinate) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	j := len(ring) - 1
	for i := range ring {
		a, b := ring[j], ring[i]
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
		j = i
	}
	return math.Abs(sum) / 2
}

// onSegment reports whether p lies exactly on the segment a-b. Integer
// arithmetic keeps the collinearity test exact.
func onSegment(p, a, b Coordinate) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}

// pointInRing is the crossing-number point-in-polygon test over the
// implicitly closed ring. Points exactly on an edge are inside
// (boundary-inclusive) for determinism.
func pointInRing(p Coordinate, ring []Coordinate) bool {
	inside := false
	j := len(ring) - 1
	for i := range ring {
		a, b := ring[i], ring[j]
		if onSegment(p, a, b) {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xi := float64(b.X-a.X)*float64(p.Y-a.Y)/float64(b.Y-a.Y) + float64(a.X)
			if float64(p.X) < xi {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// pointSegmentDistance returns the distance from p to the segment a-b,
// clamping the projection to the segment endpoints.
func pointSegmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	ap := r2.Sub(p, a)
	l2 := r2.Dot(ab, ab)
	if l2 == 0 {
		return r2.Norm(ap)
	}
	t := r2.Dot(ap, ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(t, ab))))
}

// pointPolylineDistance returns the minimum distance from p to any segment of
// the polyline, using per-segment boxes (expanded by within) to skip distant
// segments. Returns +Inf when every segment is pruned.
func pointPolylineDistance(p r2.Vec, pts []Coordinate, segBounds []bbox, within float64) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(pts); i++ {
		if !segBounds[i].expand(within).contains(p) {
			continue
		}
		if d := pointSegmentDistance(p, vec(pts[i]), vec(pts[i+1])); d < best {
			best = d
		}
	}
	return best
}
