package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSeatMap CachePrefix = "SEATMAP_"
)

// Key joins a cache prefix with an entity id.
func (p CachePrefix) Key(id string) string { return string(p) + id }

const (
	// MaxPassengersPerBooking is the hard ceiling; config may lower it.
	MaxPassengersPerBooking = 10
	// DefaultSeatAssignAttempts bounds the optimistic seat assignment loop.
	DefaultSeatAssignAttempts = 5
	// AirplaneIDMaxAttempts bounds random suffix regeneration on collision.
	AirplaneIDMaxAttempts = 10
	// SequenceWidth is the zero padded width of flight and booking sequences.
	SequenceWidth = 3
)
