package osmspeed

import (
	"testing"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

func wayFromTags(tags map[string]string) *WayData {
	way := &WayData{
		ID:       osm.WayID(1),
		TagMap:   osm.Tags{},
		maxSpeed: -1.0,
	}
	for key, value := range tags {
		way.TagMap = append(way.TagMap, osm.Tag{Key: key, Value: value})
	}
	way.processTags(zap.NewNop())
	return way
}

func TestMaxSpeedParsing(t *testing.T) {
	cases := []struct {
		maxspeed string
		expected float64
	}{
		{"60", 60.0},
		{"55 mph", 55.0 * mphToKmh},
		{"12.5", 12.5},
		{"none", -1.0},
	}
	for _, tc := range cases {
		way := wayFromTags(map[string]string{"highway": "residential", "maxspeed": tc.maxspeed})
		if way.maxSpeed != tc.expected {
			t.Errorf("Maxspeed '%s' should give %f, but got %f", tc.maxspeed, tc.expected, way.maxSpeed)
		}
	}
}

func TestClassifyOrdinaryRoad(t *testing.T) {
	way := wayFromTags(map[string]string{"highway": "secondary", "surface": "asphalt"})
	if !way.classify() {
		t.Error("Way should be classified")
	}
	if way.roadClass != ROAD_CLASS_SECONDARY {
		t.Errorf("Road class should be %s, but got %s", ROAD_CLASS_SECONDARY, way.roadClass)
	}
	if way.use != USE_ROAD {
		t.Errorf("Use should be %s, but got %s", USE_ROAD, way.use)
	}
	if way.isLink || way.isRoundabout || way.hasExitSign {
		t.Error("Plain road should carry no link/roundabout/signage markers")
	}
	if way.surfaceType != SURFACE_PAVED_SMOOTH {
		t.Errorf("Surface should be %s, but got %s", SURFACE_PAVED_SMOOTH, way.surfaceType)
	}
	if way.accessModes&ACCESS_AUTO == 0 {
		t.Error("Secondary road should allow motor vehicles")
	}
}

func TestClassifySignedRamp(t *testing.T) {
	way := wayFromTags(map[string]string{"highway": "motorway_link", "destination": "Springfield"})
	if !way.classify() {
		t.Error("Way should be classified")
	}
	if way.roadClass != ROAD_CLASS_MOTORWAY {
		t.Errorf("Road class should be %s, but got %s", ROAD_CLASS_MOTORWAY, way.roadClass)
	}
	if !way.isLink {
		t.Error("Motorway link should be a link")
	}
	if way.use != USE_RAMP {
		t.Errorf("Use should be %s, but got %s", USE_RAMP, way.use)
	}
	if !way.hasExitSign {
		t.Error("Link with destination signage should have exit sign marker")
	}

	unsigned := wayFromTags(map[string]string{"highway": "motorway_link"})
	if !unsigned.classify() {
		t.Error("Way should be classified")
	}
	if unsigned.hasExitSign {
		t.Error("Link without destination signage should have no exit sign marker")
	}
}

func TestClassifyTurnChannel(t *testing.T) {
	// Jughandle on a link way wins over the ramp default
	linked := wayFromTags(map[string]string{"highway": "motorway_link", "junction": "jughandle"})
	if !linked.classify() {
		t.Error("Way should be classified")
	}
	if linked.use != USE_TURN_CHANNEL {
		t.Errorf("Use should be %s, but got %s", USE_TURN_CHANNEL, linked.use)
	}
	if !linked.isLink {
		t.Error("Turn channel should keep the link marker")
	}

	// Jughandle without a link suffix still makes a link turn channel
	plain := wayFromTags(map[string]string{"highway": "residential", "junction": "jughandle"})
	if !plain.classify() {
		t.Error("Way should be classified")
	}
	if plain.use != USE_TURN_CHANNEL {
		t.Errorf("Use should be %s, but got %s", USE_TURN_CHANNEL, plain.use)
	}
	if !plain.isLink {
		t.Error("Turn channel should be marked as a link")
	}
}

func TestImpliedOnewayMotorway(t *testing.T) {
	motorway := wayFromTags(map[string]string{"highway": "motorway"})
	motorway.OnewayDefault = true
	motorway.classify()
	if !motorway.Oneway {
		t.Error("Motorway without `oneway` tag should be implied oneway")
	}

	link := wayFromTags(map[string]string{"highway": "motorway_link"})
	link.OnewayDefault = true
	link.classify()
	if link.Oneway {
		t.Error("Motorway link should not get the implied oneway")
	}

	residential := wayFromTags(map[string]string{"highway": "residential"})
	residential.OnewayDefault = true
	residential.classify()
	if residential.Oneway {
		t.Error("Residential road should not get the implied oneway")
	}
}

func TestClassifyRoundabout(t *testing.T) {
	way := wayFromTags(map[string]string{"highway": "tertiary", "junction": "roundabout"})
	if !way.classify() {
		t.Error("Way should be classified")
	}
	if !way.isRoundabout {
		t.Error("Junction=roundabout should mark the way as roundabout")
	}
}

func TestClassifyServiceWays(t *testing.T) {
	cases := []struct {
		service  string
		expected UseType
	}{
		{"driveway", USE_DRIVEWAY},
		{"alley", USE_ALLEY},
		{"parking_aisle", USE_PARKING_AISLE},
		{"drive-through", USE_DRIVE_THROUGH},
		{"drive_through", USE_DRIVE_THROUGH},
	}
	for _, tc := range cases {
		way := wayFromTags(map[string]string{"highway": "service", "service": tc.service})
		if !way.classify() {
			t.Errorf("Way with service '%s' should be classified", tc.service)
			continue
		}
		if way.use != tc.expected {
			t.Errorf("Service '%s' should give use %s, but got %s", tc.service, tc.expected, way.use)
		}
		if way.roadClass != ROAD_CLASS_SERVICE_OTHER {
			t.Errorf("Service way should have class %s, but got %s", ROAD_CLASS_SERVICE_OTHER, way.roadClass)
		}
	}
}

func TestClassifyFerry(t *testing.T) {
	ferry := wayFromTags(map[string]string{"route": "ferry", "name": "Crossing"})
	if !ferry.classify() {
		t.Error("Ferry way should be classified")
	}
	if ferry.use != USE_FERRY {
		t.Errorf("Use should be %s, but got %s", USE_FERRY, ferry.use)
	}
	if ferry.roadClass != ROAD_CLASS_UNCLASSIFIED {
		t.Errorf("Ferry class should be %s, but got %s", ROAD_CLASS_UNCLASSIFIED, ferry.roadClass)
	}
	if ferry.accessModes&ACCESS_AUTO == 0 {
		t.Error("Ferry should allow motor vehicles")
	}

	railFerry := wayFromTags(map[string]string{"route": "shuttle_train"})
	if !railFerry.classify() {
		t.Error("Rail ferry way should be classified")
	}
	if railFerry.use != USE_RAIL_FERRY {
		t.Errorf("Use should be %s, but got %s", USE_RAIL_FERRY, railFerry.use)
	}
}

func TestClassifyUnknownHighway(t *testing.T) {
	way := wayFromTags(map[string]string{"highway": "corridor"})
	if way.classify() {
		t.Error("Unknown highway value should not be classified")
	}
}

func TestAccessModes(t *testing.T) {
	restricted := wayFromTags(map[string]string{"highway": "residential", "motor_vehicle": "no"})
	restricted.classify()
	if restricted.accessModes&ACCESS_AUTO != 0 {
		t.Error("motor_vehicle=no should forbid motor vehicles")
	}
	if restricted.accessModes&ACCESS_FOOT == 0 {
		t.Error("motor_vehicle=no should keep pedestrians allowed")
	}

	closed := wayFromTags(map[string]string{"highway": "service", "access": "no"})
	closed.classify()
	if closed.accessModes != ACCESS_NONE {
		t.Errorf("access=no should forbid all modes, but got %s", closed.accessModes)
	}

	// Explicit grant overrides the blanket restriction
	granted := wayFromTags(map[string]string{"highway": "service", "access": "no", "motor_vehicle": "yes"})
	granted.classify()
	if granted.accessModes&ACCESS_AUTO == 0 {
		t.Error("motor_vehicle=yes should grant motor vehicles despite access=no")
	}
}
