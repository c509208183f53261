package gorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatRowOf(t *testing.T) {
	tests := map[string]int{
		"1A":   1,
		"10A":  10,
		"2":    2,
		"32K":  32,
		"A1":   0,
		"":     0,
		"007C": 7,
	}
	for seat, want := range tests {
		assert.Equal(t, want, SeatRowOf(seat), seat)
	}
}
