package osmspeed

import (
	"time"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

// prepareWays filters raw ways down to the drivable network and
// classifies each survivor (road class, use, surface, access)
func (data *OSMDataRaw) prepareWays(logger *zap.Logger) error {
	st := time.Now()

	data.waysGood = make([]*WayData, 0, len(data.waysRaw))
	for _, way := range data.waysRaw {
		if len(way.Nodes) < 2 {
			logger.Warn("Way with less than 2 nodes met", zap.Int("nodes", len(way.Nodes)), zap.Int64("way_id", int64(way.ID)))
			continue
		}
		if !way.isHighway() && !way.isFerry() {
			continue
		}
		// Ignore ways with `area` tag provided
		if way.area != "" && way.area != "no" {
			continue
		}
		// Ignore ways of negligible types
		if way.isHighwayNegligible() {
			continue
		}
		if !way.classify() {
			if way.isHighway() {
				logger.Warn("Unhandled `highway` tag value", zap.String("highway", way.highway), zap.Int64("way_id", int64(way.ID)))
			}
			continue
		}
		if way.accessModes == ACCESS_NONE {
			continue
		}
		for _, nodeID := range way.Nodes {
			if node, ok := data.nodes[nodeID]; ok {
				node.useCount++
			}
		}
		if first, ok := data.nodes[way.Nodes[0]]; ok {
			first.isCrossing = true
		}
		if last, ok := data.nodes[way.Nodes[len(way.Nodes)-1]]; ok {
			last.isCrossing = true
		}
		data.waysGood = append(data.waysGood, way)
	}
	logger.Info("Prepared ways", zap.Int("ways", len(data.waysGood)), zap.Duration("elapsed", time.Since(st)))
	return nil
}

// prepareNodes marks junction nodes: every node shared by several ways
// or carrying a traffic signal splits ways into separate edges
func (data *OSMDataRaw) prepareNodes(logger *zap.Logger) {
	st := time.Now()
	crossings := 0
	for _, node := range data.nodes {
		if node.useCount >= 2 || node.controlType == IS_SIGNAL {
			node.isCrossing = true
		}
		if node.isCrossing {
			crossings++
		}
	}
	logger.Info("Prepared nodes", zap.Int("crossings", crossings), zap.Duration("elapsed", time.Since(st)))
}

// seedSpeed gives an edge its pre-assignment speed: the tagged maxspeed
// when present, the class default otherwise
func seedSpeed(way *WayData, edge *DirectedEdge) {
	if way.hasTaggedSpeed() {
		edge.Speed = roundSpeed(way.maxSpeed)
		edge.SpeedType = SPEED_TAGGED
		return
	}
	edge.Speed = defaultSpeedByRoadClass[way.roadClass]
	edge.SpeedType = SPEED_CLASSIFIED
}

func newDirectedEdge(id EdgeID, way *WayData, source, target osm.NodeID, geom []GeoPoint, reversed bool) *DirectedEdge {
	edge := &DirectedEdge{
		ID:           id,
		WayID:        way.ID,
		SourceNodeID: source,
		TargetNodeID: target,

		RoadClass:  way.roadClass,
		Use:        way.use,
		Link:       way.isLink,
		Roundabout: way.isRoundabout,
		ExitSign:   way.hasExitSign,

		Surface:      way.surfaceType,
		LengthMeters: getSphericalLength(geom) * 1000.0,

		WasOneway: way.Oneway,
		Name:      way.name,
	}
	if reversed {
		edge.Geom = reverseLine(geom)
		edge.SourceNodeID, edge.TargetNodeID = target, source
	} else {
		edge.Geom = geom
	}
	if way.Oneway {
		edge.ForwardAccess = way.accessModes
		edge.ReverseAccess = ACCESS_NONE
	} else {
		edge.ForwardAccess = way.accessModes
		edge.ReverseAccess = way.accessModes
	}
	seedSpeed(way, edge)
	return edge
}

// buildEdges splits every prepared way at crossing nodes and emits a
// directed edge per segment and direction. Ferry ways referencing nodes
// outside the extract are kept but marked as leaving the tile.
func (data *OSMDataRaw) buildEdges(logger *zap.Logger) ([]*DirectedEdge, error) {
	st := time.Now()
	edges := []*DirectedEdge{}
	lastEdgeID := EdgeID(0)

	for _, way := range data.waysGood {
		nodesIDs := way.Nodes
		if way.IsReversed {
			reversed := make([]osm.NodeID, len(nodesIDs))
			for i, nodeID := range nodesIDs {
				reversed[len(nodesIDs)-i-1] = nodeID
			}
			nodesIDs = reversed
		}

		leavesTile := false
		var source osm.NodeID
		geometry := []GeoPoint{}
		for i, nodeID := range nodesIDs {
			node, ok := data.nodes[nodeID]
			if !ok {
				if way.isFerry() {
					// Opposite ferry terminal is outside of the extract
					leavesTile = true
					continue
				}
				logger.Warn("Missing node for way, skipping the rest of it", zap.Int64("node_id", int64(nodeID)), zap.Int64("way_id", int64(way.ID)))
				break
			}
			if i == 0 {
				source = nodeID
				geometry = append(geometry, node.GeoPoint())
				continue
			}
			geometry = append(geometry, node.GeoPoint())
			if !node.isCrossing && i != len(nodesIDs)-1 {
				continue
			}
			// Crossing node (or way end) terminates the current segment
			forward := newDirectedEdge(lastEdgeID, way, source, nodeID, copyLine(geometry), false)
			forward.LeavesTile = leavesTile
			edges = append(edges, forward)
			lastEdgeID++
			if !way.Oneway {
				backward := newDirectedEdge(lastEdgeID, way, source, nodeID, copyLine(geometry), true)
				backward.LeavesTile = leavesTile
				edges = append(edges, backward)
				lastEdgeID++
			}
			source = nodeID
			geometry = []GeoPoint{node.GeoPoint()}
		}
	}
	logger.Info("Prepared edges", zap.Int("edges", len(edges)), zap.Duration("elapsed", time.Since(st)))
	return edges, nil
}

// copyLine returns a new slice with the same points
func copyLine(pts []GeoPoint) []GeoPoint {
	output := make([]GeoPoint, len(pts))
	copy(output, pts)
	return output
}
