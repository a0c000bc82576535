package wilderness

import "fmt"

// SectorTable maps every legal sector id to its display name. The table must
// be total: an unmapped id is a configuration error caught at startup, not a
// per-request failure.
type SectorTable map[SectorID]string

// DefaultSectorTable returns the built-in sector naming.
func DefaultSectorTable() SectorTable {
	return SectorTable{
		SectorInside:      "Inside",
		SectorCity:        "City",
		SectorField:       "Field",
		SectorForest:      "Forest",
		SectorHills:       "Hills",
		SectorMountain:    "Mountain",
		SectorWaterSwim:   "Shallow Water",
		SectorWaterNoSwim: "Deep Water",
		SectorDesert:      "Desert",
		SectorMarshland:   "Marshland",
		SectorTundra:      "Tundra",
		SectorJungle:      "Jungle",
		SectorBeach:       "Beach",
		SectorRoadPaved:   "Paved Road",
		SectorRoadDirt:    "Dirt Road",
	}
}

// Validate checks that every legal sector id has a name.
func (t SectorTable) Validate() error {
	for id := SectorID(0); id < sectorCount; id++ {
		if name, ok := t[id]; !ok || name == "" {
			return &ConfigurationError{Detail: fmt.Sprintf("sector id %d has no name mapping", int(id))}
		}
	}
	return nil
}

// Name returns the display name for id, or a stable placeholder for ids
// outside the validated table. Override targets and path sectors are checked
// at ingestion and startup, so the placeholder marks a bug, not a data path.
func (t SectorTable) Name(id SectorID) string {
	if name, ok := t[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Sector %d", int(id))
}
