package osmspeed

// AccessMode is a travel mode bitmask carried on both directions of an edge
type AccessMode uint16

const (
	ACCESS_AUTO = AccessMode(1 << iota)
	ACCESS_BIKE
	ACCESS_FOOT
	ACCESS_NONE = AccessMode(0)
)

func (mode AccessMode) String() string {
	switch mode {
	case ACCESS_AUTO:
		return "auto"
	case ACCESS_BIKE:
		return "bike"
	case ACCESS_FOOT:
		return "foot"
	}
	return "none"
}

// AccessType enumerates OSM tag keys which restrict or grant access
type AccessType uint16

const (
	ACCESS_TAG_HIGHWAY = AccessType(iota + 1)
	ACCESS_TAG_MOTOR_VEHICLE
	ACCESS_TAG_MOTORCAR
	ACCESS_TAG_OSM_ACCESS
	ACCESS_TAG_BICYCLE
	ACCESS_TAG_FOOT
)

func (iotaIdx AccessType) String() string {
	return [...]string{"highway", "motor_vehicle", "motorcar", "access", "bicycle", "foot"}[iotaIdx-1]
}

var (
	modeFiltersInclude = map[AccessMode]map[AccessType]map[string]struct{}{
		ACCESS_AUTO: {
			ACCESS_TAG_MOTOR_VEHICLE: {
				"yes": struct{}{},
			},
			ACCESS_TAG_MOTORCAR: {
				"yes": struct{}{},
			},
		},
		ACCESS_BIKE: {
			ACCESS_TAG_BICYCLE: {
				"yes": struct{}{},
			},
		},
		ACCESS_FOOT: {
			ACCESS_TAG_FOOT: {
				"yes": struct{}{},
			},
		},
	}

	modeFiltersExclude = map[AccessMode]map[AccessType]map[string]struct{}{
		ACCESS_AUTO: {
			ACCESS_TAG_HIGHWAY: {
				"cycleway":   struct{}{},
				"footway":    struct{}{},
				"pedestrian": struct{}{},
				"steps":      struct{}{},
				"corridor":   struct{}{},
				"elevator":   struct{}{},
				"escalator":  struct{}{},
			},
			ACCESS_TAG_MOTOR_VEHICLE: {
				"no": struct{}{},
			},
			ACCESS_TAG_MOTORCAR: {
				"no": struct{}{},
			},
			ACCESS_TAG_OSM_ACCESS: {
				"no": struct{}{},
			},
		},
		ACCESS_BIKE: {
			ACCESS_TAG_HIGHWAY: {
				"footway":       struct{}{},
				"steps":         struct{}{},
				"corridor":      struct{}{},
				"elevator":      struct{}{},
				"escalator":     struct{}{},
				"motorway":      struct{}{},
				"motorway_link": struct{}{},
			},
			ACCESS_TAG_BICYCLE: {
				"no": struct{}{},
			},
			ACCESS_TAG_OSM_ACCESS: {
				"no": struct{}{},
			},
		},
		ACCESS_FOOT: {
			ACCESS_TAG_HIGHWAY: {
				"cycleway":      struct{}{},
				"motorway":      struct{}{},
				"motorway_link": struct{}{},
			},
			ACCESS_TAG_FOOT: {
				"no": struct{}{},
			},
			ACCESS_TAG_OSM_ACCESS: {
				"no": struct{}{},
			},
		},
	}

	accessModesAll = []AccessMode{ACCESS_AUTO, ACCESS_BIKE, ACCESS_FOOT}
)
