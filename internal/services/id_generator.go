package services

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"airline-ops/flightcore/internal/constants"
)

const airplaneSuffixLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// IDGenerator derives human readable ids from their parent's id
type IDGenerator struct {
	letters func(n int) string
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{letters: randomLetters}
}

// AirplaneID returns a candidate "{airlineId}-XYZ"; callers check collisions
func (g *IDGenerator) AirplaneID(airlineID string) string {
	return fmt.Sprintf("%s-%s", airlineID, g.letters(3))
}

// FlightID returns "{airplaneId}-{seq}" given every id already using the prefix
func (g *IDGenerator) FlightID(airplaneID string, existing []string) string {
	prefix := FlightIDPrefix(airplaneID)
	return formatSequence(prefix, nextSequence(prefix, existing))
}

// BookingID returns "{flightId}-{origin}-{dest}-{seq}"
func (g *IDGenerator) BookingID(flightID, origin, destination string, existing []string) string {
	prefix := BookingIDPrefix(flightID, origin, destination)
	return formatSequence(prefix, nextSequence(prefix, existing))
}

func FlightIDPrefix(airplaneID string) string {
	return airplaneID + "-"
}

func BookingIDPrefix(flightID, origin, destination string) string {
	return fmt.Sprintf("%s-%s-%s-", flightID, origin, destination)
}

// nextSequence is 1 + the largest numeric suffix among ids carrying prefix.
// Ids whose remainder is not a plain number are ignored.
func nextSequence(prefix string, ids []string) int {
	highest := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		rest := id[len(prefix):]
		if rest == "" || strings.ContainsAny(rest, "+-") {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

func formatSequence(prefix string, seq int) string {
	return fmt.Sprintf("%s%0*d", prefix, constants.SequenceWidth, seq)
}

func randomLetters(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(airplaneSuffixLetters[rand.IntN(len(airplaneSuffixLetters))])
	}
	return b.String()
}
