package osmspeed

import (
	"github.com/paulmach/osm"
)

type EdgeID int64

// DirectedEdge is a single directed road segment of the output graph.
// It is created once by the preparation step and mutated exactly once
// afterwards: the speed assignment pass rewrites Speed and nothing else.
type DirectedEdge struct {
	ID           EdgeID
	WayID        osm.WayID
	SourceNodeID osm.NodeID
	TargetNodeID osm.NodeID

	RoadClass  RoadClass
	Use        UseType
	Link       bool
	Roundabout bool
	ExitSign   bool

	ForwardAccess AccessMode
	ReverseAccess AccessMode

	// Speed in km/h. Seeded by the preparation step (tagged maxspeed or
	// class default), rewritten by the speed assigner.
	Speed     uint32
	SpeedType SpeedType

	Surface      SurfaceType
	LengthMeters float64

	// LeavesTile marks ferry edges whose opposite end is outside the
	// currently built extract. Such edges keep their seeded speed and
	// are resolved by a later pass.
	LeavesTile bool

	WasOneway bool
	Name      string
	Geom      []GeoPoint
}

// Vehicular reports whether any direction of the edge carries motor vehicles
func (edge *DirectedEdge) Vehicular() bool {
	return (edge.ForwardAccess|edge.ReverseAccess)&ACCESS_AUTO != 0
}
