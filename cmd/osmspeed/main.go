package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/LdDl/ch"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	osmspeed "github.com/openroutemap/osmspeed"
)

var (
	osmFileName   = flag.String("file", "my_graph.osm.pbf", "Filename of *.osm / *.osm.pbf file")
	out           = flag.String("out", "my_graph.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file. E.g.: if file name is 'map.csv' then files 'map.csv' (edges) and 'map_vertices.csv' will be produced")
	geomFormat    = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	speedsConf    = flag.String("speeds", "", "Filename of json file with default speeds per country/state (optional)")
	inferTC       = flag.Bool("infertc", false, "Infer speed on turn channels?")
	densityVal    = flag.Uint("density", 0, "Relative road density applied to every edge")
	country       = flag.String("country", "", "ISO 3166-1 country code applied to every edge")
	state         = flag.String("state", "", "ISO 3166-2 subdivision code applied to every edge")
	workers       = flag.Int("workers", 0, "Number of workers for speed assignment (0 = number of CPUs)")
	doContraction = flag.Bool("contract", false, "Prepare contraction hierarchies?")
	confFile      = flag.String("conf", "", "Filename of yaml file with parameters overriding flags (optional)")
)

// applyConf overrides flag values with ones from the configuration file
func applyConf(fname string) error {
	viper.SetConfigFile(fname)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	if viper.IsSet("file") {
		*osmFileName = viper.GetString("file")
	}
	if viper.IsSet("out") {
		*out = viper.GetString("out")
	}
	if viper.IsSet("geomf") {
		*geomFormat = viper.GetString("geomf")
	}
	if viper.IsSet("speeds") {
		*speedsConf = viper.GetString("speeds")
	}
	if viper.IsSet("infertc") {
		*inferTC = viper.GetBool("infertc")
	}
	if viper.IsSet("density") {
		*densityVal = viper.GetUint("density")
	}
	if viper.IsSet("country") {
		*country = viper.GetString("country")
	}
	if viper.IsSet("state") {
		*state = viper.GetString("state")
	}
	if viper.IsSet("workers") {
		*workers = viper.GetInt("workers")
	}
	if viper.IsSet("contract") {
		*doContraction = viper.GetBool("contract")
	}
	return nil
}

func main() {
	flag.Parse()

	logger, err := osmspeed.NewLogger()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer logger.Sync()

	if *confFile != "" {
		if err := applyConf(*confFile); err != nil {
			logger.Error("Can't read configuration file", zap.String("filename", *confFile), zap.Error(err))
			return
		}
	}

	parser := osmspeed.NewParser(*osmFileName,
		osmspeed.WithGeomFormat(*geomFormat),
		osmspeed.WithSpeedsConfig(*speedsConf),
		osmspeed.WithInferTurnChannels(*inferTC),
		osmspeed.WithDensityResolver(osmspeed.StaticDensity(*densityVal)),
		osmspeed.WithAdminResolver(osmspeed.StaticAdmin{Country: *country, State: *state}),
		osmspeed.WithWorkersNum(*workers),
	)
	logger.Sugar().Info(parser)

	net, err := parser.CreateNetwork(logger)
	if err != nil {
		logger.Error("Can't create road network", zap.Error(err))
		return
	}

	if err := net.ExportToCSV(*out, *geomFormat); err != nil {
		logger.Error("Can't export road network", zap.Error(err))
		return
	}

	if *doContraction {
		st := time.Now()
		graph := ch.Graph{}
		for _, edge := range net.Edges() {
			if edge.Speed == 0 {
				continue
			}
			source := int64(edge.SourceNodeID)
			target := int64(edge.TargetNodeID)
			if err := graph.CreateVertex(source); err != nil {
				logger.Error("Can't create source vertex", zap.Error(err))
				return
			}
			if err := graph.CreateVertex(target); err != nil {
				logger.Error("Can't create target vertex", zap.Error(err))
				return
			}
			// Weight is travel time in seconds
			weight := edge.LengthMeters / (float64(edge.Speed) / 3.6)
			if err := graph.AddEdge(source, target, weight); err != nil {
				logger.Error("Can't wrap source and target vertices as edge", zap.Error(err))
				return
			}
		}
		graph.PrepareContractionHierarchies()
		logger.Info("Done contraction process", zap.Duration("elapsed", time.Since(st)))

		fnameParts := strings.Split(*out, ".csv")
		if err := graph.ExportShortcutsToFile(fnameParts[0] + "_shortcuts.csv"); err != nil {
			logger.Error("Can't export shortcuts", zap.Error(err))
			return
		}
	}
}
