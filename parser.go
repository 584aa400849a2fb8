package osmspeed

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Parser struct {
	filename          string
	geomFormat        string
	speedsConfig      string
	inferTurnChannels bool
	urbanSpeeds       [roadClassesNum]uint32
	density           DensityResolver
	admin             AdminResolver
	workersNum        int
}

func (parser *Parser) String() string {
	return fmt.Sprintf(`
Network parser parameters:
	filename: '%s'
	geometry_format: '%s'
	default_speeds_config: '%s'
	infer_turn_channels: %t
	urban_speeds: %v
	workers_num: %d
	`,
		parser.filename,
		parser.geomFormat,
		parser.speedsConfig,
		parser.inferTurnChannels,
		parser.urbanSpeeds,
		parser.workersNum,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename:    fileName,
		geomFormat:  "wkt",
		urbanSpeeds: DefaultUrbanSpeeds,
		density:     StaticDensity(0),
		admin:       StaticAdmin{},
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

func WithGeomFormat(geomFormat string) func(*Parser) {
	return func(parser *Parser) {
		parser.geomFormat = geomFormat
	}
}

// WithSpeedsConfig sets path to the regional default speeds document.
// Empty path keeps configuration-driven assignment disabled.
func WithSpeedsConfig(speedsConfig string) func(*Parser) {
	return func(parser *Parser) {
		parser.speedsConfig = speedsConfig
	}
}

func WithInferTurnChannels(inferTurnChannels bool) func(*Parser) {
	return func(parser *Parser) {
		parser.inferTurnChannels = inferTurnChannels
	}
}

func WithUrbanSpeeds(urbanSpeeds [roadClassesNum]uint32) func(*Parser) {
	return func(parser *Parser) {
		parser.urbanSpeeds = urbanSpeeds
	}
}

func WithDensityResolver(density DensityResolver) func(*Parser) {
	return func(parser *Parser) {
		parser.density = density
	}
}

func WithAdminResolver(admin AdminResolver) func(*Parser) {
	return func(parser *Parser) {
		parser.admin = admin
	}
}

func WithWorkersNum(workersNum int) func(*Parser) {
	return func(parser *Parser) {
		parser.workersNum = workersNum
	}
}

// CreateNetwork runs the whole pipeline: scan OSM data, prepare ways
// and nodes, split ways into directed edges and assign speeds
func (parser *Parser) CreateNetwork(logger *zap.Logger) (*Network, error) {
	dataOSM, err := readOSM(parser.filename, logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse OSM data")
	}
	if err := dataOSM.prepareWays(logger); err != nil {
		return nil, errors.Wrap(err, "Can't preprocess ways")
	}
	dataOSM.prepareNodes(logger)
	edges, err := dataOSM.buildEdges(logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare edges")
	}
	net := &Network{
		edges: edges,
		nodes: dataOSM.nodes,
	}
	assigner := NewSpeedAssigner(parser.speedsConfig, logger)
	err = net.AssignSpeeds(assigner, parser.density, parser.admin, parser.urbanSpeeds, parser.inferTurnChannels, parser.workersNum, logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't assign speeds")
	}
	return net, nil
}
