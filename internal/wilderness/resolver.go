package wilderness

// ResolvedOverlay is one overlay in the application sequence for a point.
// Exactly one of Region or Path is set.
type ResolvedOverlay struct {
	Region *RegionOverlay
	Path   *PathOverlay
}

// Resolve turns raw containment/proximity results into the single ordered
// application sequence for p: regions by kind ascending (insertion order
// within equal kind), then all paths. Paths always apply last, so a road
// drawn through a forest region overrides the region's sector. An empty
// geometry set yields an empty sequence, which is a normal result.
func Resolve(idx *GeometryIndex, p Coordinate) []ResolvedOverlay {
	regions := idx.RegionsContaining(p)
	paths := idx.PathsNear(p)
	if len(regions) == 0 && len(paths) == 0 {
		return nil
	}

	out := make([]ResolvedOverlay, 0, len(regions)+len(paths))
	for i := range regions {
		out = append(out, ResolvedOverlay{Region: &regions[i]})
	}
	for i := range paths {
		out = append(out, ResolvedOverlay{Path: &paths[i]})
	}
	return out
}
