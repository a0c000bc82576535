package wilderness

import (
	"fmt"
	"sort"
)

// GeometryIndex answers containment and proximity queries over one immutable
// set of region and path overlays. Indexes are built once at ingestion and
// never mutated, so queries are safe from any number of concurrent batch
// workers without locking.
type GeometryIndex struct {
	regions []indexedRegion // sorted by kind ascending, insertion order within kind
	paths   []indexedPath   // insertion order
}

type indexedRegion struct {
	RegionOverlay
	bounds bbox
}

type indexedPath struct {
	PathOverlay
	bounds    bbox   // whole polyline, expanded by width
	segBounds []bbox // one per segment, unexpanded
}

// NewGeometryIndex validates and indexes one geometry snapshot. Degenerate
// polygons (fewer than 3 vertices or zero area), short polylines and negative
// widths are rejected here, not at query time.
func NewGeometryIndex(regions []RegionOverlay, paths []PathOverlay) (*GeometryIndex, error) {
	idx := &GeometryIndex{
		regions: make([]indexedRegion, 0, len(regions)),
		paths:   make([]indexedPath, 0, len(paths)),
	}

	for _, r := range regions {
		if !r.Kind.Valid() {
			return nil, fmt.Errorf("region %q: unknown kind %d", r.Name, int(r.Kind))
		}
		if len(r.Ring) < 3 {
			return nil, fmt.Errorf("region %q: polygon needs >=3 vertices, got %d", r.Name, len(r.Ring))
		}
		if ringArea(r.Ring) == 0 {
			return nil, fmt.Errorf("region %q: degenerate zero-area polygon", r.Name)
		}
		// Sector override targets are checked here so an unmapped sector id is
		// an ingestion failure, never a per-request surprise.
		if r.Kind == RegionSectorOverride && !SectorID(r.Props).Valid() {
			return nil, fmt.Errorf("region %q: sector override targets unknown sector id %d", r.Name, r.Props)
		}
		idx.regions = append(idx.regions, indexedRegion{
			RegionOverlay: r,
			bounds:        boundsOf(r.Ring),
		})
	}

	// Stable sort keeps insertion order within equal kind, which is the
	// tie-break for overlapping overlays of the same priority.
	sort.SliceStable(idx.regions, func(i, j int) bool {
		return idx.regions[i].Kind < idx.regions[j].Kind
	})

	for _, p := range paths {
		if !p.Kind.Valid() {
			return nil, fmt.Errorf("path %q: unknown kind %d", p.Name, int(p.Kind))
		}
		if len(p.Points) < 2 {
			return nil, fmt.Errorf("path %q: polyline needs >=2 vertices, got %d", p.Name, len(p.Points))
		}
		if p.Width < 0 {
			return nil, fmt.Errorf("path %q: negative width %f", p.Name, p.Width)
		}
		segBounds := make([]bbox, len(p.Points)-1)
		for i := range segBounds {
			segBounds[i] = boundsOf(p.Points[i : i+2])
		}
		idx.paths = append(idx.paths, indexedPath{
			PathOverlay: p,
			bounds:      boundsOf(p.Points).expand(p.Width),
			segBounds:   segBounds,
		})
	}

	return idx, nil
}

// RegionCount returns the number of indexed regions.
func (g *GeometryIndex) RegionCount() int { return len(g.regions) }

// PathCount returns the number of indexed paths.
func (g *GeometryIndex) PathCount() int { return len(g.paths) }

// RegionsContaining returns the regions containing p, ordered by kind
// ascending and, within equal kind, by insertion order. Points on a polygon
// edge count as inside.
func (g *GeometryIndex) RegionsContaining(p Coordinate) []RegionOverlay {
	var out []RegionOverlay
	pv := vec(p)
	for i := range g.regions {
		r := &g.regions[i]
		if !r.bounds.contains(pv) {
			continue
		}
		if pointInRing(p, r.Ring) {
			out = append(out, r.RegionOverlay)
		}
	}
	return out
}

// PathsNear returns the paths whose polyline passes within their width of p,
// ordered farthest-first by width-normalized distance so the closest path
// applies last and wins conflicts. Equal distances keep insertion order.
func (g *GeometryIndex) PathsNear(p Coordinate) []PathOverlay {
	type match struct {
		PathOverlay
		norm float64 // distance / width, in [0,1]
	}
	var matches []match
	pv := vec(p)
	for i := range g.paths {
		ip := &g.paths[i]
		if !ip.bounds.contains(pv) {
			continue
		}
		d := pointPolylineDistance(pv, ip.Points, ip.segBounds, ip.Width)
		if d > ip.Width {
			continue
		}
		norm := 0.0
		if ip.Width > 0 {
			norm = d / ip.Width
		}
		matches = append(matches, match{PathOverlay: ip.PathOverlay, norm: norm})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].norm > matches[j].norm
	})
	out := make([]PathOverlay, len(matches))
	for i, m := range matches {
		out[i] = m.PathOverlay
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
