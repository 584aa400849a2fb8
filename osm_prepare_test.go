package osmspeed

import (
	"testing"
)

func jughandleEdge(t *testing.T) *DirectedEdge {
	t.Helper()
	way := wayFromTags(map[string]string{"highway": "residential", "junction": "jughandle"})
	if !way.classify() {
		t.Fatal("Jughandle way should be classified")
	}
	geom := []GeoPoint{
		{Lon: 37.396747, Lat: 55.8321},
		{Lon: 37.397222, Lat: 55.831927},
	}
	return newDirectedEdge(0, way, 1, 2, geom, false)
}

func TestTurnChannelInference(t *testing.T) {
	edge := jughandleEdge(t)
	if edge.Use != USE_TURN_CHANNEL {
		t.Errorf("Use should be %s, but got %s", USE_TURN_CHANNEL, edge.Use)
	}
	if !edge.Link {
		t.Error("Turn channel edge should carry the link marker")
	}
	if edge.Speed != 35 || edge.SpeedType != SPEED_CLASSIFIED {
		t.Errorf("Edge should be seeded with classified speed 35, but got %d (%s)", edge.Speed, edge.SpeedType)
	}

	assigner := testAssigner(RegionIndex{})
	assigner.UpdateSpeed(edge, 0, DefaultUrbanSpeeds, true, "", "")
	if edge.Speed != 44 {
		t.Errorf("Inferred turn channel speed should be 44, but got %d", edge.Speed) // 35 * 1.25 = 43.75
	}

	plain := jughandleEdge(t)
	assigner.UpdateSpeed(plain, 0, DefaultUrbanSpeeds, false, "", "")
	if plain.Speed != 35 {
		t.Errorf("Turn channel speed should stay 35 without inference, but got %d", plain.Speed)
	}
}

func TestSeedSpeed(t *testing.T) {
	classified := wayFromTags(map[string]string{"highway": "trunk"})
	if !classified.classify() {
		t.Fatal("Way should be classified")
	}
	edge := &DirectedEdge{}
	seedSpeed(classified, edge)
	if edge.Speed != 90 || edge.SpeedType != SPEED_CLASSIFIED {
		t.Errorf("Trunk should be seeded with classified 90, but got %d (%s)", edge.Speed, edge.SpeedType)
	}

	tagged := wayFromTags(map[string]string{"highway": "trunk", "maxspeed": "70"})
	if !tagged.classify() {
		t.Fatal("Way should be classified")
	}
	edge = &DirectedEdge{}
	seedSpeed(tagged, edge)
	if edge.Speed != 70 || edge.SpeedType != SPEED_TAGGED {
		t.Errorf("Tagged trunk should be seeded with 70, but got %d (%s)", edge.Speed, edge.SpeedType)
	}
}
