package osmspeed

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

type OSMDataRaw struct {
	nodes    map[osm.NodeID]*Node
	waysRaw  []*WayData
	waysGood []*WayData
}

func prepareScanner(filename string, file *os.File) (OSMScanner, error) {
	// Guess file extension and prepare correct scanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), file), nil
	case ".pbf", ".osm.pbf":
		return osmpbf.New(context.Background(), file, 4), nil
	}
	return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
}

func readOSM(filename string, logger *zap.Logger) (*OSMDataRaw, error) {
	logger.Info("Opening file", zap.String("filename", filename))
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	/* Process ways */
	st := time.Now()
	ways := []*WayData{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := prepareScanner(filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()

		// Scan ways
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != "way" {
				continue
			}
			way := obj.(*osm.Way)
			oneway := false
			onewayDefault := false
			isReversed := false
			onewayText := way.Tags.Find("oneway")
			if onewayText != "" {
				if onewayText == "yes" || onewayText == "1" {
					oneway = true
				} else if onewayText == "no" || onewayText == "0" {
					oneway = false
				} else if onewayText == "-1" {
					oneway = true
					isReversed = true
				} else {
					// Reversible or alternating ways depend on time
					// conditions, keep them bidirectional
					if _, found := onewayReversible[onewayText]; found {
						oneway = false
					} else {
						logger.Warn("Unhandled `oneway` tag value", zap.String("oneway", onewayText), zap.Int64("way_id", int64(way.ID)))
					}
				}
			} else {
				junctionText := way.Tags.Find("junction")
				if _, ok := junctionTypes[junctionText]; ok {
					oneway = true
				} else {
					oneway = false
					onewayDefault = true
				}
			}
			preparedWay := &WayData{
				ID:            way.ID,
				Oneway:        oneway,
				OnewayDefault: onewayDefault,
				IsReversed:    isReversed,
				Nodes:         make([]osm.NodeID, 0, len(way.Nodes)),
				TagMap:        make(osm.Tags, len(way.Tags)),

				maxSpeed: -1.0,
			}
			copy(preparedWay.TagMap, way.Tags)
			// Mark way's nodes as seen to drop isolated nodes later
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				preparedWay.Nodes = append(preparedWay.Nodes, node.ID)
			}
			// Flatten tags to make further processing easier
			preparedWay.processTags(logger)
			ways = append(ways, preparedWay)
		}
		err = scannerWays.Err()
		if err != nil {
			return nil, err
		}
	}
	logger.Info("Scanned ways", zap.Int("ways", len(ways)), zap.Duration("elapsed", time.Since(st)))

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	st = time.Now()
	nodes := make(map[osm.NodeID]*Node)
	{
		scannerNodes, err := prepareScanner(filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()

		// Scan nodes
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != "node" {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; ok {
				delete(nodesSeen, node.ID)
				nameText := node.Tags.Find("name")
				highwayText := node.Tags.Find("highway")
				controlType := NOT_SIGNAL
				if highwayText == "traffic_signals" {
					controlType = IS_SIGNAL
				}
				nodes[node.ID] = &Node{
					name:        nameText,
					node:        *node,
					ID:          node.ID,
					useCount:    0,
					isCrossing:  false,
					controlType: controlType,
				}
			}
		}
		err = scannerNodes.Err()
		if err != nil {
			return nil, err
		}
	}
	logger.Info("Scanned nodes", zap.Int("nodes", len(nodes)), zap.Duration("elapsed", time.Since(st)))

	data := OSMDataRaw{
		waysRaw: ways,
		nodes:   nodes,
	}
	return &data, nil
}
