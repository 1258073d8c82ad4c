package model

// Layout modes. The mode selects which built-in cabinet catalog applies.
const (
	ModeIndoor  = "indoor"
	ModeOutdoor = "outdoor"
)

// IndoorTypes is the built-in catalog of indoor cabinet models.
var IndoorTypes = []CabinetType{
	{ID: "IC-500x500-P1.9", Name: "Indoor 500 P1.9", Width: 500, Height: 500, Pitch: 1.9},
	{ID: "IC-500x500-P2.6", Name: "Indoor 500 P2.6", Width: 500, Height: 500, Pitch: 2.6},
	{ID: "IC-500x1000-P2.6", Name: "Indoor 500x1000 P2.6", Width: 500, Height: 1000, Pitch: 2.6},
	{ID: "IC-500x500-P1.56", Name: "Indoor 500 P1.56", Width: 500, Height: 500, Pitch: 1.56},
	{ID: "IC-600x337-P1.56", Name: "Indoor 600x337 P1.56", Width: 600, Height: 337.5, Pitch: 1.56},
	{ID: "IC-1000x500-P2.6", Name: "Indoor 1000x500 P2.6", Width: 1000, Height: 500, Pitch: 2.6},
}

// OutdoorTypes is the built-in catalog of outdoor cabinet models.
var OutdoorTypes = []CabinetType{
	{ID: "OC-500x500-P3.9", Name: "Outdoor 500 P3.9", Width: 500, Height: 500, Pitch: 3.9},
	{ID: "OC-500x1000-P3.9", Name: "Outdoor 500x1000 P3.9", Width: 500, Height: 1000, Pitch: 3.9},
	{ID: "OC-960x960-P4.8", Name: "Outdoor 960 P4.8", Width: 960, Height: 960, Pitch: 4.8},
	{ID: "OC-1000x500-P4.8", Name: "Outdoor 1000x500 P4.8", Width: 1000, Height: 500, Pitch: 4.8},
}

// CatalogForMode returns the built-in type catalog for a layout mode.
// Unknown modes fall back to the indoor catalog.
func CatalogForMode(mode string) []CabinetType {
	if mode == ModeOutdoor {
		return OutdoorTypes
	}
	return IndoorTypes
}

// CatalogType looks a type up in both built-in catalogs.
func CatalogType(id string) (CabinetType, bool) {
	for _, t := range IndoorTypes {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range OutdoorTypes {
		if t.ID == id {
			return t, true
		}
	}
	return CabinetType{}, false
}
