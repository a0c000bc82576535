// Package wilderness implements the terrain overlay composition engine: it
// layers procedurally generated base terrain with builder-authored region
// polygons and path polylines to produce the effective terrain at any
// wilderness coordinate.
package wilderness

import "fmt"

// Coordinate domain bounds (inclusive on both axes).
const (
	DomainMin = -1024
	DomainMax = 1024
)

// Coordinate is an integer (x, y) pair on the wilderness grid.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InDomain reports whether the coordinate lies inside the legal square.
func (c Coordinate) InDomain() bool {
	return c.X >= DomainMin && c.X <= DomainMax && c.Y >= DomainMin && c.Y <= DomainMax
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// SectorID is the enumerated terrain category driving movement and rendering
// rules downstream.
type SectorID int

const (
	SectorInside SectorID = iota
	SectorCity
	SectorField
	SectorForest
	SectorHills
	SectorMountain
	SectorWaterSwim
	SectorWaterNoSwim
	SectorDesert
	SectorMarshland
	SectorTundra
	SectorJungle
	SectorBeach
	SectorRoadPaved
	SectorRoadDirt

	sectorCount // keep last
)

// Valid reports whether id is one of the defined sector categories.
func (id SectorID) Valid() bool {
	return id >= 0 && id < sectorCount
}

// RegionKind is the priority key for region overlays. Lower kinds apply first;
// higher kinds apply last and win conflicts on the same field.
type RegionKind int

const (
	RegionNaming RegionKind = iota + 1
	RegionEncounter
	RegionTransform
	RegionSectorOverride
)

func (k RegionKind) String() string {
	switch k {
	case RegionNaming:
		return "naming"
	case RegionEncounter:
		return "encounter"
	case RegionTransform:
		return "transform"
	case RegionSectorOverride:
		return "sector_override"
	default:
		return fmt.Sprintf("region_kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the four defined region kinds.
func (k RegionKind) Valid() bool {
	return k >= RegionNaming && k <= RegionSectorOverride
}

// PathKind is the category of a path overlay. Each kind carries a fixed
// sector override and a fixed environmental side effect.
type PathKind int

const (
	PathPavedRoad PathKind = iota + 1
	PathDirtRoad
	PathRiver
	PathStream
	PathTrail
)

func (k PathKind) String() string {
	switch k {
	case PathPavedRoad:
		return "paved_road"
	case PathDirtRoad:
		return "dirt_road"
	case PathRiver:
		return "river"
	case PathStream:
		return "stream"
	case PathTrail:
		return "trail"
	default:
		return fmt.Sprintf("path_kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the defined path kinds.
func (k PathKind) Valid() bool {
	return k >= PathPavedRoad && k <= PathTrail
}

// Sector returns the fixed sector override for the path kind.
func (k PathKind) Sector() SectorID {
	switch k {
	case PathPavedRoad:
		return SectorRoadPaved
	case PathDirtRoad:
		return SectorRoadDirt
	case PathRiver, PathStream:
		return SectorWaterSwim
	case PathTrail:
		return SectorField
	default:
		return SectorField
	}
}

// RaisesMoisture reports whether the path kind carries the moisture side
// effect (rivers and streams soak the surrounding terrain).
func (k PathKind) RaisesMoisture() bool {
	return k == PathRiver || k == PathStream
}

// MoistureBonus is added to moisture for river/stream paths, capped at
// MoistureMax by the compositor.
const MoistureBonus = 20

// RegionOverlay is a builder-authored polygon that modifies terrain at the
// coordinates it contains. The ring is implicitly closed and must have at
// least three vertices enclosing a non-zero area.
type RegionOverlay struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Kind  RegionKind   `json:"kind"`
	Props int          `json:"props"` // sector id, elevation delta or spawn table depending on Kind
	Ring  []Coordinate `json:"ring"`
}

// PathOverlay is a builder-authored polyline with a proximity tolerance. A
// point is "on" the path when its distance to the nearest segment is within
// Width coordinate units.
type PathOverlay struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Kind   PathKind     `json:"kind"`
	Width  float64      `json:"width"`
	Points []Coordinate `json:"points"`
}

// BaseTerrainSample is the immutable per-query record produced by the
// upstream base terrain oracle. The engine never mutates it.
type BaseTerrainSample struct {
	Elevation   int      `json:"elevation"`
	Temperature int      `json:"temperature"`
	Moisture    int      `json:"moisture"` // 0..255
	Sector      SectorID `json:"sector"`
	SectorName  string   `json:"sector_name"`
}

// AppliedOverlay records one overlay that modified a point, in application
// order.
type AppliedOverlay struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// EffectiveTerrain is the engine's output per coordinate: the composited
// terrain fields plus provenance for every overlay that touched the point.
type EffectiveTerrain struct {
	X              int              `json:"x"`
	Y              int              `json:"y"`
	Elevation      int              `json:"elevation"`
	Temperature    int              `json:"temperature"`
	Moisture       int              `json:"moisture"`
	Sector         SectorID         `json:"sector"`
	SectorName     string           `json:"sector_name"`
	GeographicName string           `json:"geographic_name,omitempty"`
	EncounterZone  string           `json:"encounter_zone,omitempty"`
	SpawnTable     int              `json:"spawn_table,omitempty"`
	Overlays       []AppliedOverlay `json:"overlays_applied,omitempty"`
	Modifications  []string         `json:"modifications,omitempty"`
}

// Moisture legal range.
const (
	MoistureMin = 0
	MoistureMax = 255
)
