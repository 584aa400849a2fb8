package osmspeed

import (
	"encoding/csv"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DensityResolver supplies the relative road density around a point.
// Density computation itself lives outside of this module, workers only
// consume the value as an urban/rural proxy.
type DensityResolver interface {
	Density(pt GeoPoint) uint32
}

// AdminResolver supplies ISO 3166-1/3166-2 codes for a point. Admin
// region computation lives outside of this module.
type AdminResolver interface {
	AdminCodes(pt GeoPoint) (countryCode string, stateCode string)
}

// StaticDensity resolves every point to the same density value
type StaticDensity uint32

func (density StaticDensity) Density(GeoPoint) uint32 {
	return uint32(density)
}

// StaticAdmin resolves every point to the same country/state pair
type StaticAdmin struct {
	Country string
	State   string
}

func (admin StaticAdmin) AdminCodes(GeoPoint) (string, string) {
	return admin.Country, admin.State
}

// Network is the prepared road network: directed edges split at
// crossings plus the nodes they reference
type Network struct {
	edges []*DirectedEdge
	nodes map[osm.NodeID]*Node
}

// Edges returns all directed edges of the network
func (net *Network) Edges() []*DirectedEdge {
	return net.edges
}

// AssignSpeeds runs the speed assigner over every edge. Edges are
// independent so the pass is sharded across workers; the assigner is
// shared read-only and each edge is owned by exactly one worker.
func (net *Network) AssignSpeeds(assigner *SpeedAssigner, density DensityResolver, admin AdminResolver, urbanSpeeds [roadClassesNum]uint32, inferTurnChannels bool, workersNum int, logger *zap.Logger) error {
	st := time.Now()
	if workersNum <= 0 {
		workersNum = runtime.NumCPU()
	}
	chunkSize := (len(net.edges) + workersNum - 1) / workersNum
	if chunkSize == 0 {
		chunkSize = 1
	}
	group := errgroup.Group{}
	group.SetLimit(workersNum)
	for start := 0; start < len(net.edges); start += chunkSize {
		end := start + chunkSize
		if end > len(net.edges) {
			end = len(net.edges)
		}
		chunk := net.edges[start:end]
		group.Go(func() error {
			for _, edge := range chunk {
				// Density and admin region are taken at the edge's centroid
				pt := findCentroid(edge.Geom)
				countryCode, stateCode := admin.AdminCodes(pt)
				assigner.UpdateSpeed(edge, density.Density(pt), urbanSpeeds, inferTurnChannels, countryCode, stateCode)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return errors.Wrap(err, "Can't assign speeds")
	}
	logger.Info("Assigned speeds", zap.Int("edges", len(net.edges)), zap.Int("workers", workersNum), zap.Duration("elapsed", time.Since(st)))
	return nil
}

// ExportToCSV writes edges and vertices files next to given file name
func (net *Network) ExportToCSV(fname string, geomFormat string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameEdges := fmt.Sprintf(fnameParts[0] + ".csv")
	fnameVertices := fmt.Sprintf(fnameParts[0] + "_vertices.csv")

	err := net.exportEdgesToCSV(fnameEdges, geomFormat)
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}

	err = net.exportVerticesToCSV(fnameVertices, geomFormat)
	if err != nil {
		return errors.Wrap(err, "Can't export vertices")
	}

	return nil
}

func (net *Network) exportEdgesToCSV(fname string, geomFormat string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "source_node", "target_node", "osm_way_id", "road_class", "use", "is_link", "is_roundabout", "speed_kmh", "speed_type", "surface", "length_meters", "was_oneway", "name", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, edge := range net.edges {
		geomStr := ""
		if strings.ToLower(geomFormat) == "geojson" {
			geomStr = PrepareGeoJSONLinestring(edge.Geom)
		} else {
			geomStr = PrepareWKTLinestring(edge.Geom)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.ID),
			fmt.Sprintf("%d", edge.SourceNodeID),
			fmt.Sprintf("%d", edge.TargetNodeID),
			fmt.Sprintf("%d", edge.WayID),
			fmt.Sprintf("%s", edge.RoadClass),
			fmt.Sprintf("%s", edge.Use),
			fmt.Sprintf("%t", edge.Link),
			fmt.Sprintf("%t", edge.Roundabout),
			fmt.Sprintf("%d", edge.Speed),
			fmt.Sprintf("%s", edge.SpeedType),
			fmt.Sprintf("%s", edge.Surface),
			fmt.Sprintf("%f", edge.LengthMeters),
			fmt.Sprintf("%t", edge.WasOneway),
			edge.Name,
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	return nil
}

func (net *Network) exportVerticesToCSV(fname string, geomFormat string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "control_type", "name", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, node := range net.nodes {
		if !node.isCrossing {
			continue
		}
		geomStr := ""
		if strings.ToLower(geomFormat) == "geojson" {
			geomStr = PrepareGeoJSONPoint(node.GeoPoint())
		} else {
			geomStr = PrepareWKTPoint(node.GeoPoint())
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			fmt.Sprintf("%s", node.controlType),
			node.name,
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}
	return nil
}
