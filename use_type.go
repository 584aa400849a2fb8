package osmspeed

// UseType distinguishes ordinary travel ways from special cases which
// get dedicated speed handling (ramps, service uses, ferries and so on)
type UseType uint16

const (
	USE_ROAD = UseType(iota)
	USE_RAMP
	USE_TURN_CHANNEL
	USE_TRACK
	USE_LIVING_STREET
	USE_SERVICE_ROAD
	USE_CUL_DE_SAC
	USE_DRIVEWAY
	USE_ALLEY
	USE_PARKING_AISLE
	USE_DRIVE_THROUGH
	USE_FERRY
	USE_RAIL_FERRY
)

func (iotaIdx UseType) String() string {
	return [...]string{"road", "ramp", "turn_channel", "track", "living_street", "service_road", "cul_de_sac", "driveway", "alley", "parking_aisle", "drive_through", "ferry", "rail_ferry"}[iotaIdx]
}

var (
	// `service` tag values which refine a service way into a concrete use
	serviceUses = map[string]UseType{
		"driveway":      USE_DRIVEWAY,
		"alley":         USE_ALLEY,
		"parking_aisle": USE_PARKING_AISLE,
		"drive-through": USE_DRIVE_THROUGH,
		"drive_through": USE_DRIVE_THROUGH,
	}

	// `route` tag values turning a way into a ferry edge
	ferryUses = map[string]UseType{
		"ferry":         USE_FERRY,
		"shuttle_train": USE_RAIL_FERRY,
	}
)

// getUseType resolves use from flattened way tags. Jughandle junctions
// mark turn channels regardless of the link suffix; any other link way
// is a ramp.
func getUseType(highway, service, route, junction string, isLink bool) UseType {
	if use, ok := ferryUses[route]; ok {
		return use
	}
	if junction == "jughandle" {
		return USE_TURN_CHANNEL
	}
	if isLink {
		return USE_RAMP
	}
	switch highway {
	case "track":
		return USE_TRACK
	case "living_street":
		return USE_LIVING_STREET
	case "service", "services":
		if use, ok := serviceUses[service]; ok {
			return use
		}
		return USE_SERVICE_ROAD
	}
	return USE_ROAD
}
