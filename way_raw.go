package osmspeed

import (
	"regexp"
	"strconv"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

const mphToKmh = 1.60934

// WayData is an OSM way with tags flattened into fields needed by
// classification and speed assignment
type WayData struct {
	ID     osm.WayID
	Nodes  []osm.NodeID
	TagMap osm.Tags

	name           string
	highway        string
	route          string
	junction       string
	area           string
	service        string
	surface        string
	access         string
	motorVehicle   string
	motorcar       string
	foot           string
	bicycle        string
	destination    string
	destinationRef string

	maxSpeed float64

	roadClass    RoadClass
	use          UseType
	surfaceType  SurfaceType
	isLink       bool
	isRoundabout bool
	hasExitSign  bool
	accessModes  AccessMode

	Oneway        bool
	OnewayDefault bool
	IsReversed    bool
}

var (
	mphRegExp = regexp.MustCompile(`\d+\.?\d* mph`)
	kmhRegExp = regexp.MustCompile(`\d+\.?\d*`)
)

func (way *WayData) processTags(logger *zap.Logger) {
	way.name = way.TagMap.Find("name")
	way.highway = way.TagMap.Find("highway")
	way.route = way.TagMap.Find("route")
	way.junction = way.TagMap.Find("junction")
	way.area = way.TagMap.Find("area")
	way.service = way.TagMap.Find("service")
	way.surface = way.TagMap.Find("surface")
	way.access = way.TagMap.Find("access")
	way.motorVehicle = way.TagMap.Find("motor_vehicle")
	way.motorcar = way.TagMap.Find("motorcar")
	way.foot = way.TagMap.Find("foot")
	way.bicycle = way.TagMap.Find("bicycle")
	way.destination = way.TagMap.Find("destination")
	way.destinationRef = way.TagMap.Find("destination:ref")

	maxSpeed := way.TagMap.Find("maxspeed")
	if maxSpeed != "" {
		maxSpeedValue := -1.0
		var err error
		if mphMaxSpeed := mphRegExp.FindString(maxSpeed); mphMaxSpeed != "" {
			maxSpeedValue, err = strconv.ParseFloat(kmhRegExp.FindString(mphMaxSpeed), 64)
			if err != nil {
				maxSpeedValue = -1
				logger.Warn("Provided `maxspeed` tag value (mph) should be a number", zap.String("maxspeed", maxSpeed), zap.Int64("way_id", int64(way.ID)))
			} else {
				maxSpeedValue *= mphToKmh
			}
		} else if kmhMaxSpeed := kmhRegExp.FindString(maxSpeed); kmhMaxSpeed != "" {
			maxSpeedValue, err = strconv.ParseFloat(kmhMaxSpeed, 64)
			if err != nil {
				maxSpeedValue = -1
				logger.Warn("Provided `maxspeed` tag value should be a number", zap.String("maxspeed", maxSpeed), zap.Int64("way_id", int64(way.ID)))
			}
		}
		way.maxSpeed = maxSpeedValue
	}
}

func (way *WayData) isHighway() bool {
	return way.highway != ""
}

func (way *WayData) isFerry() bool {
	_, ok := ferryUses[way.route]
	return ok
}

func (way *WayData) isHighwayNegligible() bool {
	_, ok := negligibleHighwayTags[way.highway]
	return ok
}

func (way *WayData) hasTaggedSpeed() bool {
	return way.maxSpeed > 0
}

// findIncludedMode reports whether way tags explicitly grant given mode
func (way *WayData) findIncludedMode(mode AccessMode) bool {
	accessType, ok := modeFiltersInclude[mode]
	if !ok {
		return false
	}
	switch mode {
	case ACCESS_AUTO:
		// Check `motor_vehicle`
		if _, ok := accessType[ACCESS_TAG_MOTOR_VEHICLE][way.motorVehicle]; ok {
			return true
		}
		// Check `motorcar`
		if _, ok := accessType[ACCESS_TAG_MOTORCAR][way.motorcar]; ok {
			return true
		}
	case ACCESS_BIKE:
		// Check `bicycle`
		if _, ok := accessType[ACCESS_TAG_BICYCLE][way.bicycle]; ok {
			return true
		}
	case ACCESS_FOOT:
		// Check `foot`
		if _, ok := accessType[ACCESS_TAG_FOOT][way.foot]; ok {
			return true
		}
	}
	return false
}

// findExcludedMode reports whether way tags keep given mode allowed
// (returns false when tags forbid the mode)
func (way *WayData) findExcludedMode(mode AccessMode) bool {
	accessType, ok := modeFiltersExclude[mode]
	if !ok {
		return true
	}
	// Check `highway`
	if _, ok := accessType[ACCESS_TAG_HIGHWAY][way.highway]; ok {
		return false
	}
	// Check `access`
	if _, ok := accessType[ACCESS_TAG_OSM_ACCESS][way.access]; ok {
		return false
	}
	switch mode {
	case ACCESS_AUTO:
		// Check `motor_vehicle`
		if _, ok := accessType[ACCESS_TAG_MOTOR_VEHICLE][way.motorVehicle]; ok {
			return false
		}
		// Check `motorcar`
		if _, ok := accessType[ACCESS_TAG_MOTORCAR][way.motorcar]; ok {
			return false
		}
	case ACCESS_BIKE:
		// Check `bicycle`
		if _, ok := accessType[ACCESS_TAG_BICYCLE][way.bicycle]; ok {
			return false
		}
	case ACCESS_FOOT:
		// Check `foot`
		if _, ok := accessType[ACCESS_TAG_FOOT][way.foot]; ok {
			return false
		}
	}
	return true
}

// getAllowableModes collects the access bitmask for the way
func (way *WayData) getAllowableModes() AccessMode {
	allowed := ACCESS_NONE
	for _, mode := range accessModesAll {
		if way.findIncludedMode(mode) {
			allowed |= mode
			continue
		}
		if way.findExcludedMode(mode) {
			allowed |= mode
		}
	}
	return allowed
}

// classify resolves road class, use, surface, roundabout and signage
// markers once tags have been flattened
func (way *WayData) classify() bool {
	if way.isFerry() {
		way.roadClass = ROAD_CLASS_UNCLASSIFIED
		way.use = ferryUses[way.route]
		way.surfaceType = SURFACE_PAVED_SMOOTH
		way.accessModes = ACCESS_AUTO | ACCESS_BIKE | ACCESS_FOOT
		return true
	}
	composition, ok := getRoadComposition(way.highway)
	if !ok {
		return false
	}
	way.roadClass = composition.roadClass
	way.isLink = composition.isLink
	if _, ok := junctionTypes[way.junction]; ok {
		way.isRoundabout = true
	}
	// Motorways without an explicit `oneway` tag are assumed oneway
	if way.OnewayDefault && way.roadClass == ROAD_CLASS_MOTORWAY && !way.isLink {
		way.Oneway = true
	}
	way.use = getUseType(way.highway, way.service, way.route, way.junction, way.isLink)
	// Turn channels are connectors even when the way carries no link suffix
	if way.use == USE_TURN_CHANNEL {
		way.isLink = true
	}
	way.surfaceType = getSurfaceType(way.surface, way.roadClass)
	way.hasExitSign = way.isLink && (way.destination != "" || way.destinationRef != "")
	way.accessModes = way.getAllowableModes()
	return true
}
