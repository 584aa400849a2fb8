package osmspeed

// RoadClass is an ordinal categorization of road functional capacity.
// Values are dense and start from zero on purpose: they are used as raw
// indices into fixed-size speed tables (both the built-in defaults and
// the region configuration document, see speed_table.go).
type RoadClass uint16

const (
	ROAD_CLASS_MOTORWAY = RoadClass(iota)
	ROAD_CLASS_TRUNK
	ROAD_CLASS_PRIMARY
	ROAD_CLASS_SECONDARY
	ROAD_CLASS_TERTIARY
	ROAD_CLASS_UNCLASSIFIED
	ROAD_CLASS_RESIDENTIAL
	ROAD_CLASS_SERVICE_OTHER
)

const (
	// Total number of road classes
	roadClassesNum = 8
	// Only the top five classes (motorway..tertiary) can carry ramps and turn channels
	linkRoadClassesNum = 5
)

func (iotaIdx RoadClass) String() string {
	return [...]string{"motorway", "trunk", "primary", "secondary", "tertiary", "unclassified", "residential", "service_other"}[iotaIdx]
}

// roadComposition couples functional class with the link (ramp/connector) marker
type roadComposition struct {
	roadClass RoadClass
	isLink    bool
}

var (
	roadClassByHighway = map[string]roadComposition{
		"motorway":         {ROAD_CLASS_MOTORWAY, false},
		"motorway_link":    {ROAD_CLASS_MOTORWAY, true},
		"trunk":            {ROAD_CLASS_TRUNK, false},
		"trunk_link":       {ROAD_CLASS_TRUNK, true},
		"primary":          {ROAD_CLASS_PRIMARY, false},
		"primary_link":     {ROAD_CLASS_PRIMARY, true},
		"secondary":        {ROAD_CLASS_SECONDARY, false},
		"secondary_link":   {ROAD_CLASS_SECONDARY, true},
		"tertiary":         {ROAD_CLASS_TERTIARY, false},
		"tertiary_link":    {ROAD_CLASS_TERTIARY, true},
		"unclassified":     {ROAD_CLASS_UNCLASSIFIED, false},
		"residential":      {ROAD_CLASS_RESIDENTIAL, false},
		"residential_link": {ROAD_CLASS_RESIDENTIAL, true},
		"living_street":    {ROAD_CLASS_SERVICE_OTHER, false},
		"service":          {ROAD_CLASS_SERVICE_OTHER, false},
		"services":         {ROAD_CLASS_SERVICE_OTHER, false},
		"track":            {ROAD_CLASS_SERVICE_OTHER, false},
	}

	// Seed speeds (km/h) for edges without `maxspeed` tag. The speed
	// assigner reads these as "current speed" before applying factors.
	defaultSpeedByRoadClass = map[RoadClass]uint32{
		ROAD_CLASS_MOTORWAY:      105,
		ROAD_CLASS_TRUNK:         90,
		ROAD_CLASS_PRIMARY:       65,
		ROAD_CLASS_SECONDARY:     55,
		ROAD_CLASS_TERTIARY:      45,
		ROAD_CLASS_UNCLASSIFIED:  35,
		ROAD_CLASS_RESIDENTIAL:   35,
		ROAD_CLASS_SERVICE_OTHER: 25,
	}
)

func getRoadComposition(highway string) (roadComposition, bool) {
	found, ok := roadClassByHighway[highway]
	return found, ok
}
