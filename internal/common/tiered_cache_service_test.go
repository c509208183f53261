package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTiers(shared *CacheService) (*CacheService, *TieredCacheService) {
	local := NewCacheService(time.Minute, time.Minute)
	return local, NewTieredCacheService(local, shared)
}

func TestTieredCacheService_GetFillsLocalFromShared(t *testing.T) {
	shared := NewCacheService(time.Minute, time.Minute)
	local, tiered := newTiers(shared)

	shared.Set("SEATMAP_1", "map-v1", 0)

	val, ok := tiered.Get("SEATMAP_1")
	require.True(t, ok)
	assert.Equal(t, "map-v1", val)

	cached, ok := local.Get("SEATMAP_1")
	require.True(t, ok)
	assert.Equal(t, "map-v1", cached)

	_, ok = tiered.Get("SEATMAP_2")
	assert.False(t, ok)
}

func TestTieredCacheService_DeleteOnlyClearsOwnLocalLayer(t *testing.T) {
	shared := NewCacheService(time.Minute, time.Minute)
	_, replicaA := newTiers(shared)
	_, replicaB := newTiers(shared)

	replicaA.Set("SEATMAP_1", "map-v1", 0)
	_, ok := replicaB.Get("SEATMAP_1")
	require.True(t, ok)

	// replica A commits a seat change
	replicaA.Delete("SEATMAP_1")

	_, ok = replicaA.Get("SEATMAP_1")
	assert.False(t, ok)
	_, ok = shared.Get("SEATMAP_1")
	assert.False(t, ok)

	val, ok := replicaB.Get("SEATMAP_1")
	require.True(t, ok, "replica B still holds its local copy")
	assert.Equal(t, "map-v1", val)

	replicaB.EvictLocal("SEATMAP_1")
	_, ok = replicaB.Get("SEATMAP_1")
	assert.False(t, ok)
}

func TestTieredCacheService_GetOrSet(t *testing.T) {
	shared := NewCacheService(time.Minute, time.Minute)
	_, tiered := newTiers(shared)

	calls := 0
	loader := func() (any, error) {
		calls++
		return "loaded", nil
	}

	val, err := tiered.GetOrSet("k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "loaded", val)

	val, err = tiered.GetOrSet("k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "loaded", val)
	assert.Equal(t, 1, calls)

	_, ok := shared.Get("k")
	assert.True(t, ok)

	_, err = tiered.GetOrSet("broken", time.Minute, func() (any, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	_, ok = tiered.Get("broken")
	assert.False(t, ok)
}
