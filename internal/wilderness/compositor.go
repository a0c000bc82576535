package wilderness

import "fmt"

// Limits are the domain-defined legal ranges for the additive terrain fields.
// The compositor clamps after every modification; values never overflow
// silently.
type Limits struct {
	ElevationMin   int
	ElevationMax   int
	TemperatureMin int
	TemperatureMax int
}

// DefaultLimits returns the deployed wilderness ranges.
func DefaultLimits() Limits {
	return Limits{
		ElevationMin:   0,
		ElevationMax:   255,
		TemperatureMin: -30,
		TemperatureMax: 100,
	}
}

// Compositor folds base terrain and an ordered overlay sequence into one
// EffectiveTerrain record. It is purely functional: given the same base
// sample and the same geometry snapshot it produces byte-identical output on
// every call.
type Compositor struct {
	sectors SectorTable
	limits  Limits
}

// NewCompositor validates the sector table once at startup and returns a
// compositor. A partial table is a *ConfigurationError.
func NewCompositor(sectors SectorTable, limits Limits) (*Compositor, error) {
	if err := sectors.Validate(); err != nil {
		return nil, err
	}
	if limits.ElevationMin > limits.ElevationMax {
		return nil, &ConfigurationError{Detail: "elevation range inverted"}
	}
	if limits.TemperatureMin > limits.TemperatureMax {
		return nil, &ConfigurationError{Detail: "temperature range inverted"}
	}
	return &Compositor{sectors: sectors, limits: limits}, nil
}

// SectorName resolves a sector id through the validated table.
func (cp *Compositor) SectorName(id SectorID) string { return cp.sectors.Name(id) }

// Composite applies the resolved overlay sequence to the base sample at p.
func (cp *Compositor) Composite(p Coordinate, base BaseTerrainSample, overlays []ResolvedOverlay) EffectiveTerrain {
	out := EffectiveTerrain{
		X:           p.X,
		Y:           p.Y,
		Elevation:   clamp(base.Elevation, cp.limits.ElevationMin, cp.limits.ElevationMax),
		Temperature: clamp(base.Temperature, cp.limits.TemperatureMin, cp.limits.TemperatureMax),
		Moisture:    clamp(base.Moisture, MoistureMin, MoistureMax),
		Sector:      base.Sector,
		SectorName:  base.SectorName,
	}
	if out.SectorName == "" {
		out.SectorName = cp.sectors.Name(base.Sector)
	}

	for _, ov := range overlays {
		switch {
		case ov.Region != nil:
			cp.applyRegion(&out, ov.Region)
		case ov.Path != nil:
			cp.applyPath(&out, ov.Path)
		}
	}
	return out
}

func (cp *Compositor) applyRegion(t *EffectiveTerrain, r *RegionOverlay) {
	switch r.Kind {
	case RegionNaming:
		t.GeographicName = r.Name
		t.Modifications = append(t.Modifications, fmt.Sprintf("Named by %s", r.Name))
	case RegionEncounter:
		t.EncounterZone = r.Name
		t.SpawnTable = r.Props
		t.Modifications = append(t.Modifications, fmt.Sprintf("Encounter zone %s (table %d)", r.Name, r.Props))
	case RegionTransform:
		t.Elevation = clamp(t.Elevation+r.Props, cp.limits.ElevationMin, cp.limits.ElevationMax)
		t.Modifications = append(t.Modifications, fmt.Sprintf("Elevation adjusted by %+d by %s", r.Props, r.Name))
	case RegionSectorOverride:
		t.Sector = SectorID(r.Props)
		t.SectorName = cp.sectors.Name(t.Sector)
		t.Modifications = append(t.Modifications, fmt.Sprintf("Sector overridden by %s", r.Name))
	}
	t.Overlays = append(t.Overlays, AppliedOverlay{Name: r.Name, Kind: r.Kind.String()})
}

func (cp *Compositor) applyPath(t *EffectiveTerrain, p *PathOverlay) {
	t.Sector = p.Kind.Sector()
	t.SectorName = cp.sectors.Name(t.Sector)
	if p.Kind.RaisesMoisture() {
		t.Moisture = clamp(t.Moisture+MoistureBonus, MoistureMin, MoistureMax)
	}
	t.Modifications = append(t.Modifications, fmt.Sprintf("Sector overridden by %s", p.Name))
	t.Overlays = append(t.Overlays, AppliedOverlay{Name: p.Name, Kind: p.Kind.String()})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
