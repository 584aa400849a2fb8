package osmspeed

import (
	"go.uber.org/zap"
)

// Factors used to adjust speed assignments
const (
	turnChannelFactor = 1.25
	rampDensityFactor = 0.8
	rampFactor        = 0.85
	roundaboutFactor  = 0.5
)

// Relative density above this value is considered urban by the
// heuristic branch of UpdateSpeed. FromConfig picks the urban table on
// the opposite side of the same threshold.
// TODO: the two branches disagree on which side of the threshold is urban; needs a product decision before unifying.
const urbanDensity = 8

// Fixed speeds (km/h) for destination-only service uses
const (
	drivewaySpeed     = 10
	parkingAisleSpeed = 15
	driveThroughSpeed = 10
)

// Ferry speeds (km/h) tiered by edge length: longer crossings are
// assumed to use faster boats
const (
	railFerrySpeed = 65 // ~40 mph

	shortFerrySpeed  = 10 // ~5 knots
	mediumFerrySpeed = 20 // ~10 knots
	longFerrySpeed   = 30 // ~15 knots

	shortFerryMeters  = 2000.0
	mediumFerryMeters = 8000.0
)

// Urban default speeds (km/h) by road class, used when the caller does
// not supply its own table
var DefaultUrbanSpeeds = [roadClassesNum]uint32{89, 73, 57, 49, 40, 35, 30, 20}

// SpeedAssigner decides the default speed of an edge in two tiers. The
// primary tier is an optional json configuration allowing geography
// specific assignment by country/state, urban/rural density, road
// class, road use and link type. When no configuration entry governs an
// edge, a fixed chain of numeric heuristics takes over.
//
// An assigner is built once, is immutable afterwards and may be shared
// by any number of concurrent workers: per-edge calls only mutate the
// caller-owned edge.
type SpeedAssigner struct {
	tables RegionIndex
	logger *zap.Logger
}

// NewSpeedAssigner builds an assigner from an optional configuration
// file. An empty file name disables configuration-driven assignment.
// Any load error does the same: partial results are discarded, a
// warning names the cause and the assigner proceeds in heuristic-only
// mode.
func NewSpeedAssigner(configFileName string, logger *zap.Logger) *SpeedAssigner {
	assigner := &SpeedAssigner{
		tables: RegionIndex{},
		logger: logger,
	}
	if configFileName == "" {
		logger.Info("Disabled default speeds assignment from config")
		return assigner
	}
	index, err := loadRegionIndex(configFileName)
	if err != nil {
		logger.Warn("Disabled default speeds assignment from config", zap.Error(err))
		return assigner
	}
	assigner.tables = index
	logger.Info("Enabled default speeds assignment from config", zap.String("filename", configFileName))
	return assigner
}

// HasTables reports whether any regional configuration is loaded
func (assigner *SpeedAssigner) HasTables() bool {
	return len(assigner.tables) != 0
}

// roundSpeed implements the module-wide rounding contract: multiply,
// add 0.5, truncate toward zero
func roundSpeed(speed float64) uint32 {
	return uint32(speed + 0.5)
}

// FromConfig assigns the edge speed from the regional configuration.
// It returns false and leaves the edge untouched when configuration
// cannot govern the edge: ferries and edges without motor vehicle
// access are never handled here, unknown regions fall through, and so
// do links of classes the link tables cannot represent. The caller is
// expected to continue with the heuristic chain in that case.
func (assigner *SpeedAssigner) FromConfig(edge *DirectedEdge, density uint32, country, state string) bool {
	// Let the heuristics handle ferry stuff or anything not motor vehicle
	if edge.Use == USE_FERRY || edge.Use == USE_RAIL_FERRY || !edge.Vehicular() {
		return false
	}

	// Try the country+state combo first, then country only, then the global entry, then bail
	tables, ok := assigner.tables.lookup(country, state)
	if !ok {
		return false
	}

	// Urban or rural
	table := &tables[1]
	if density <= urbanDensity {
		table = &tables[0]
	}
	rc := int(edge.RoadClass)

	// Some kind of special use
	switch edge.Use {
	case USE_DRIVEWAY:
		edge.Speed = table.Service[0]
		return true
	case USE_ALLEY:
		edge.Speed = table.Service[1]
		return true
	case USE_PARKING_AISLE:
		edge.Speed = table.Service[2]
		return true
	case USE_DRIVE_THROUGH:
		edge.Speed = table.Service[3]
		return true
	}

	// Exit ramp / turn channel
	if edge.Link {
		// These classes don't have links
		if rc >= len(table.LinkExiting) {
			return false
		}
		// Signage tells an exit from a plain link/ramp/turn channel
		if edge.ExitSign {
			edge.Speed = table.LinkExiting[rc]
		} else {
			edge.Speed = table.LinkTurning[rc]
		}
		return true
	}

	// Roundabout
	if edge.Roundabout {
		edge.Speed = table.Roundabout[rc]
		return true
	}

	// Non-special use, just use the road class
	edge.Speed = table.Way[rc]
	return true
}

// UpdateSpeed rewrites the edge speed based on density, surface type
// and other edge parameters. The configuration tier wins outright when
// it applies; otherwise the first matching heuristic branch terminates
// processing for the edge.
func (assigner *SpeedAssigner) UpdateSpeed(edge *DirectedEdge, density uint32, urbanSpeeds [roadClassesNum]uint32, inferTurnChannels bool, countryCode, stateCode string) {
	// If we have config loaded we'll use that
	if len(assigner.tables) != 0 && assigner.FromConfig(edge, density, countryCode, stateCode) {
		return
	}

	// Update speed on ramps (if not a tagged speed) and turn channels
	if edge.Link {
		speed := edge.Speed
		if edge.Use == USE_TURN_CHANNEL && inferTurnChannels {
			speed = roundSpeed(float64(speed) * turnChannelFactor)
		} else if edge.Use == USE_RAMP && edge.SpeedType != SPEED_TAGGED {
			// No tagged speed, so set ramp speed slightly lower than
			// the speed for roads of this classification
			rc := edge.RoadClass
			if rc == ROAD_CLASS_MOTORWAY || rc == ROAD_CLASS_TRUNK || rc == ROAD_CLASS_PRIMARY {
				if density > urbanDensity {
					speed = roundSpeed(float64(speed) * rampDensityFactor)
				} else {
					speed = roundSpeed(float64(speed) * rampFactor)
				}
			} else {
				speed = roundSpeed(float64(speed) * rampFactor)
			}
		}
		edge.Speed = speed

		// Done processing links so return...
		return
	}

	// If speed comes from a maxspeed tag we only adjust it for rough surfaces
	if edge.SpeedType == SPEED_TAGGED {
		if edge.Surface >= SURFACE_PAVED_ROUGH {
			if edge.Speed >= 50 {
				edge.Speed -= 10
			} else if edge.Speed > 15 {
				edge.Speed -= 5
			}
		}
		return
	}

	// Ferries get their speed from the crossing length
	if edge.Use == USE_RAIL_FERRY {
		edge.Speed = railFerrySpeed
		return
	} else if edge.Use == USE_FERRY {
		// Edges leaving the current extract are resolved by a later
		// pass, keep whatever is set
		if edge.LeavesTile {
			return
		} else if edge.LengthMeters < shortFerryMeters {
			edge.Speed = shortFerrySpeed
		} else if edge.LengthMeters < mediumFerryMeters {
			edge.Speed = mediumFerrySpeed
		} else {
			edge.Speed = longFerrySpeed
		}
		return
	}

	// Roads in urban regions get the urban default for their class
	if density > urbanDensity {
		edge.Speed = urbanSpeeds[edge.RoadClass]
	}

	if edge.Roundabout {
		// Could be default or urban speed at this point
		edge.Speed = roundSpeed(float64(edge.Speed) * roundaboutFactor)
	}

	// Reduce speeds on parking aisles, driveways and drive-throughs
	switch edge.Use {
	case USE_PARKING_AISLE:
		edge.Speed = parkingAisleSpeed
	case USE_DRIVEWAY:
		edge.Speed = drivewaySpeed
	case USE_DRIVE_THROUGH:
		edge.Speed = driveThroughSpeed
	}

	// Halve speed on rough surfaces
	if edge.Surface >= SURFACE_PAVED_ROUGH {
		edge.Speed = edge.Speed / 2
	}
}
