package osmspeed

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAssignSpeedsSharded(t *testing.T) {
	edges := make([]*DirectedEdge, 0, 100)
	for i := 0; i < 100; i++ {
		edge := classifiedEdge(ROAD_CLASS_SECONDARY, 65)
		edge.ID = EdgeID(i)
		edge.Geom = []GeoPoint{{Lon: 37.6, Lat: 55.7}, {Lon: 37.61, Lat: 55.71}}
		edges = append(edges, edge)
	}
	net := &Network{edges: edges}

	assigner := NewSpeedAssigner("", zap.NewNop())
	err := net.AssignSpeeds(assigner, StaticDensity(9), StaticAdmin{}, DefaultUrbanSpeeds, false, 4, zap.NewNop())
	require.NoError(t, err)

	for _, edge := range net.Edges() {
		assert.Equal(t, DefaultUrbanSpeeds[ROAD_CLASS_SECONDARY], edge.Speed, fmt.Sprintf("edge %d", edge.ID))
	}
}

func TestAssignSpeedsRegional(t *testing.T) {
	fname := writeTempConfig(t, validRegionJSON)
	assigner := NewSpeedAssigner(fname, zap.NewNop())
	require.True(t, assigner.HasTables())

	governed := classifiedEdge(ROAD_CLASS_TERTIARY, 55)
	governed.Geom = []GeoPoint{{Lon: -75.16, Lat: 39.95}}
	ferry := classifiedEdge(ROAD_CLASS_UNCLASSIFIED, 0)
	ferry.Use = USE_FERRY
	ferry.LengthMeters = 500.0
	ferry.Geom = []GeoPoint{{Lon: -75.14, Lat: 39.95}}
	net := &Network{edges: []*DirectedEdge{governed, ferry}}

	err := net.AssignSpeeds(assigner, StaticDensity(5), StaticAdmin{Country: "us", State: "pa"}, DefaultUrbanSpeeds, false, 2, zap.NewNop())
	require.NoError(t, err)

	// Regional urban table governs the ordinary road, ferry stays heuristic
	assert.Equal(t, uint32(55), governed.Speed)
	assert.Equal(t, uint32(10), ferry.Speed)
}
