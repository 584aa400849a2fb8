package osmspeed

// SurfaceType is an ordinal measure of surface quality, smoothest
// first. Ordering matters: speed heuristics compare against the
// rough-paved threshold
type SurfaceType uint16

const (
	SURFACE_PAVED_SMOOTH = SurfaceType(iota)
	SURFACE_PAVED
	SURFACE_PAVED_ROUGH
	SURFACE_COMPACTED
	SURFACE_DIRT
	SURFACE_GRAVEL
	SURFACE_PATH
	SURFACE_IMPASSABLE
)

func (iotaIdx SurfaceType) String() string {
	return [...]string{"paved_smooth", "paved", "paved_rough", "compacted", "dirt", "gravel", "path", "impassable"}[iotaIdx]
}

var (
	surfaceTypes = map[string]SurfaceType{
		"asphalt":            SURFACE_PAVED_SMOOTH,
		"concrete":           SURFACE_PAVED_SMOOTH,
		"concrete:plates":    SURFACE_PAVED,
		"concrete:lanes":     SURFACE_PAVED,
		"paved":              SURFACE_PAVED,
		"metal":              SURFACE_PAVED,
		"wood":               SURFACE_PAVED,
		"paving_stones":      SURFACE_PAVED_ROUGH,
		"cobblestone":        SURFACE_PAVED_ROUGH,
		"sett":               SURFACE_PAVED_ROUGH,
		"unhewn_cobblestone": SURFACE_PAVED_ROUGH,
		"bricks":             SURFACE_PAVED_ROUGH,
		"compacted":          SURFACE_COMPACTED,
		"fine_gravel":        SURFACE_COMPACTED,
		"dirt":               SURFACE_DIRT,
		"earth":              SURFACE_DIRT,
		"ground":             SURFACE_DIRT,
		"mud":                SURFACE_DIRT,
		"gravel":             SURFACE_GRAVEL,
		"pebblestone":        SURFACE_GRAVEL,
		"rock":               SURFACE_GRAVEL,
		"grass":              SURFACE_PATH,
		"sand":               SURFACE_PATH,
		"unpaved":            SURFACE_PATH,
		"impassable":         SURFACE_IMPASSABLE,
	}
)

// getSurfaceType resolves surface from the `surface` tag. Ways without
// the tag assume smooth pavement for the major classes and compacted
// surface for the minor ones
func getSurfaceType(str string, roadClass RoadClass) SurfaceType {
	if found, ok := surfaceTypes[str]; ok {
		return found
	}
	if roadClass <= ROAD_CLASS_TERTIARY {
		return SURFACE_PAVED_SMOOTH
	}
	return SURFACE_COMPACTED
}
