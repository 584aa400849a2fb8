package osmspeed

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// SpeedTable carries default speeds (km/h) for one region and one
// density side (urban or rural). Arrays are indexed by road class
// ordinal, so positions must be preserved exactly as they appear in the
// configuration document.
type SpeedTable struct {
	// no special uses
	Way [roadClassesNum]uint32
	// ramps with exit signage
	LinkExiting [linkRoadClassesNum]uint32
	// turn channels and unsigned ramps
	LinkTurning [linkRoadClassesNum]uint32
	// roundabout members
	Roundabout [roadClassesNum]uint32
	// driveway, alley, parking_aisle, drive-through
	Service [4]uint32
}

// RegionIndex maps a region code ("<iso3166-1>.<iso3166-2>") to a pair
// of speed tables: index 0 is urban, index 1 is rural. Built once at
// load time and never mutated afterwards, so concurrent readers need no
// locking.
type RegionIndex map[string][2]SpeedTable

/*
The configuration document is a json array:

[{
  "iso3166-1": "us",
  "iso3166-2": "pa",
  "urban": {
    "way": [1,2,3,4,5,6,7,8],
    "link_exiting": [9,10,11,12,13],
    "link_turning": [15,16,17,18,19],
    "roundabout": [21,22,23,24,25,26,27,28],
    "driveway": 29,
    "alley": 30,
    "parking_aisle": 31,
    "drive-through": 32
  },
  "rural": { ...same shape... }
}]
*/

type speedTableDocument struct {
	Way          []uint32 `json:"way"`
	LinkExiting  []uint32 `json:"link_exiting"`
	LinkTurning  []uint32 `json:"link_turning"`
	Roundabout   []uint32 `json:"roundabout"`
	Driveway     *uint32  `json:"driveway"`
	Alley        *uint32  `json:"alley"`
	ParkingAisle *uint32  `json:"parking_aisle"`
	DriveThrough *uint32  `json:"drive-through"`
}

type speedRegionDocument struct {
	Country     *string             `json:"iso3166-1"`
	Subdivision *string             `json:"iso3166-2"`
	Urban       *speedTableDocument `json:"urban"`
	Rural       *speedTableDocument `json:"rural"`
}

func buildSpeedTable(doc *speedTableDocument) (SpeedTable, error) {
	table := SpeedTable{}
	if doc == nil {
		return table, errors.New("speed table is missing")
	}
	if len(doc.Way) != len(table.Way) {
		return table, errors.Errorf("way must have %d speeds", len(table.Way))
	}
	if len(doc.LinkExiting) != len(table.LinkExiting) {
		return table, errors.Errorf("link_exiting must have %d speeds", len(table.LinkExiting))
	}
	if len(doc.LinkTurning) != len(table.LinkTurning) {
		return table, errors.Errorf("link_turning must have %d speeds", len(table.LinkTurning))
	}
	if len(doc.Roundabout) != len(table.Roundabout) {
		return table, errors.Errorf("roundabout must have %d speeds", len(table.Roundabout))
	}
	if doc.Driveway == nil || doc.Alley == nil || doc.ParkingAisle == nil || doc.DriveThrough == nil {
		return table, errors.New("service speeds must be provided")
	}
	copy(table.Way[:], doc.Way)
	copy(table.LinkExiting[:], doc.LinkExiting)
	copy(table.LinkTurning[:], doc.LinkTurning)
	copy(table.Roundabout[:], doc.Roundabout)
	table.Service[0] = *doc.Driveway
	table.Service[1] = *doc.Alley
	table.Service[2] = *doc.ParkingAisle
	table.Service[3] = *doc.DriveThrough
	return table, nil
}

// loadRegionIndex reads and validates the default speeds configuration.
// Validation is all-or-nothing: a single malformed region record (or a
// single wrong-length array inside one) fails the whole load so the
// caller can disable configuration-driven assignment entirely.
func loadRegionIndex(fileName string) (RegionIndex, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read default speeds file")
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("top level value must be a json array")
	}
	regions := []speedRegionDocument{}
	if err := json.Unmarshal(trimmed, &regions); err != nil {
		return nil, errors.Wrap(err, "malformed json")
	}
	index := make(RegionIndex, len(regions))
	for _, region := range regions {
		if region.Country == nil || region.Subdivision == nil {
			return nil, errors.New("iso3166-1 and iso3166-2 codes must be provided")
		}
		urban, err := buildSpeedTable(region.Urban)
		if err != nil {
			return nil, errors.Wrap(err, "urban")
		}
		rural, err := buildSpeedTable(region.Rural)
		if err != nil {
			return nil, errors.Wrap(err, "rural")
		}
		index[*region.Country+"."+*region.Subdivision] = [2]SpeedTable{urban, rural}
	}
	return index, nil
}

// lookup resolves the table pair for given admin codes with ordered
// fallback: exact country+subdivision, country only, then the global
// entry. Note the global entry key is the empty string while region
// code construction always yields at least ".", so under the current
// loader it stays unreachable.
// TODO: decide whether the global entry should be loadable (key "" vs ".") or dropped.
func (index RegionIndex) lookup(country, state string) ([2]SpeedTable, bool) {
	if found, ok := index[country+"."+state]; ok {
		return found, true
	}
	if found, ok := index[country+"."]; ok {
		return found, true
	}
	if found, ok := index[""]; ok {
		return found, true
	}
	return [2]SpeedTable{}, false
}
