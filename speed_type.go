package osmspeed

// SpeedType tracks speed provenance: values coming straight from a
// `maxspeed` tag are treated differently by the assignment heuristics
// than values inferred from road class
type SpeedType uint8

const (
	SPEED_CLASSIFIED = SpeedType(iota)
	SPEED_TAGGED
)

func (iotaIdx SpeedType) String() string {
	return [...]string{"classified", "tagged"}[iotaIdx]
}
