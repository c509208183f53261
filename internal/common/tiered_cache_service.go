package common

import (
	"time"
)

// TieredCacheService keeps a per-instance in-memory layer in front of a
// shared cache. Delete clears both layers, but only on the instance that
// made the change; other instances drop their local copy through EvictLocal
// when the booking event reaches them.
type TieredCacheService struct {
	local  *CacheService
	shared CacheInterface
}

var _ CacheInterface = (*TieredCacheService)(nil)

func NewTieredCacheService(local *CacheService, shared CacheInterface) *TieredCacheService {
	return &TieredCacheService{local: local, shared: shared}
}

func (t *TieredCacheService) Set(key string, value interface{}, duration time.Duration) {
	t.local.Set(key, value, duration)
	t.shared.Set(key, value, duration)
}

// Get serves the local copy first and refills it from the shared layer
func (t *TieredCacheService) Get(key string) (interface{}, bool) {
	if val, ok := t.local.Get(key); ok {
		return val, true
	}
	val, ok := t.shared.Get(key)
	if ok {
		t.local.Set(key, val, 0)
	}
	return val, ok
}

func (t *TieredCacheService) Delete(key string) {
	t.local.Delete(key)
	t.shared.Delete(key)
}

func (t *TieredCacheService) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, ok := t.Get(key); ok {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	t.Set(key, val, duration)
	return val, nil
}

// EvictLocal drops only this instance's copy. The shared entry was already
// removed by whichever instance committed the change.
func (t *TieredCacheService) EvictLocal(key string) {
	t.local.Delete(key)
}

// Close closes the shared backend
func (t *TieredCacheService) Close() error {
	return t.shared.Close()
}
