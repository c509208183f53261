package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db"
	gormModels "airline-ops/flightcore/internal/models/gorm"
	"airline-ops/flightcore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// fakeStream hands out queued events, then reports an empty read
type fakeStream struct {
	mu        sync.Mutex
	queue     []*common.BookingEvent
	acked     []string
	groups    []string
	destroyed []string

	pending int64
	trimmed []int64
}

func (s *fakeStream) Consume(ctx context.Context, _, _ string, _ time.Duration) (*common.BookingEvent, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		time.Sleep(5 * time.Millisecond)
		return nil, "", nil
	}
	event := s.queue[0]
	s.queue = s.queue[1:]
	return event, "msg-" + event.ID, nil
}

func (s *fakeStream) Ack(_ context.Context, _, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acked = append(s.acked, messageID)
	return nil
}

func (s *fakeStream) CreateConsumerGroup(_ context.Context, group string) error {
	s.groups = append(s.groups, group)
	return nil
}

func (s *fakeStream) DestroyConsumerGroup(_ context.Context, group string) error {
	s.destroyed = append(s.destroyed, group)
	return nil
}

func (s *fakeStream) PendingCount(context.Context, string) (int64, error) { return s.pending, nil }

func (s *fakeStream) Trim(_ context.Context, maxLen int64) error {
	s.trimmed = append(s.trimmed, maxLen)
	return nil
}

func (s *fakeStream) ackCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.acked)
}

func seedClasses(t *testing.T, gdb *gorm.DB, flightID string, types ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(types))
	for _, ct := range types {
		c := &gormModels.ClassFlight{FlightID: flightID, ClassType: ct, SeatCapacity: 5, Price: 10}
		require.NoError(t, gdb.Create(c).Error)
		ids = append(ids, c.ID)
	}
	return ids
}

// replica returns an instance's tiered cache over the shared store
func replica(shared *common.CacheService) *common.TieredCacheService {
	return common.NewTieredCacheService(common.NewCacheService(time.Minute, time.Minute), shared)
}

func TestBookingEventWorker_Handle(t *testing.T) {
	gdb := setupTestDB(t)
	shared := common.NewCacheService(time.Minute, time.Minute)
	cache := replica(shared)
	worker := NewBookingEventWorker("test", "group", gdb, &fakeStream{}, cache)
	ctx := context.Background()

	classes := seedClasses(t, gdb, "GA-ABC-001", "Economy", "Business")
	other := seedClasses(t, gdb, "GA-ABC-002", "Economy")
	for _, id := range append(classes, other...) {
		cache.Set(services.SeatMapCacheKey(id), "cached", 0)
		// the committing instance already cleared the shared layer
		shared.Delete(services.SeatMapCacheKey(id))
	}

	booked := common.NewBookingEvent(constants.EventBookingCreated)
	booked.ClassFlightID = classes[0]
	require.NoError(t, worker.Handle(ctx, booked))

	_, found := cache.Get(services.SeatMapCacheKey(classes[0]))
	assert.False(t, found)
	_, found = cache.Get(services.SeatMapCacheKey(classes[1]))
	assert.True(t, found)

	cancelled := common.NewBookingEvent(constants.EventFlightCancelled)
	cancelled.FlightID = "GA-ABC-001"
	require.NoError(t, worker.Handle(ctx, cancelled))

	_, found = cache.Get(services.SeatMapCacheKey(classes[1]))
	assert.False(t, found)
	_, found = cache.Get(services.SeatMapCacheKey(other[0]))
	assert.True(t, found, "classes of other flights stay cached")
}

func TestBookingEventWorker_EvictsStaleSeatMapOnOtherReplica(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	classes := seedClasses(t, gdb, "GA-ABC-001", "Economy")
	key := services.SeatMapCacheKey(classes[0])

	shared := common.NewCacheService(time.Minute, time.Minute)
	replicaA, replicaB := replica(shared), replica(shared)
	workerB := NewBookingEventWorker("b", "group-b", gdb, &fakeStream{}, replicaB)

	replicaA.Set(key, "map-before-booking", 0)
	cached, found := replicaB.Get(key)
	require.True(t, found)
	require.Equal(t, "map-before-booking", cached)

	// replica A books a seat and evicts its own and the shared entry
	replicaA.Delete(key)

	cached, found = replicaB.Get(key)
	require.True(t, found)
	assert.Equal(t, "map-before-booking", cached, "stale until the event arrives")

	event := common.NewBookingEvent(constants.EventBookingCreated)
	event.ClassFlightID = classes[0]
	require.NoError(t, workerB.Handle(ctx, event))

	_, found = replicaB.Get(key)
	assert.False(t, found)
}

func TestBookingEventWorker_StartAcksEveryEvent(t *testing.T) {
	gdb := setupTestDB(t)
	shared := common.NewCacheService(time.Minute, time.Minute)
	cache := replica(shared)
	classes := seedClasses(t, gdb, "GA-ABC-001", "Economy")
	key := services.SeatMapCacheKey(classes[0])
	cache.Set(key, "cached", 0)
	shared.Delete(key)

	event := common.NewBookingEvent(constants.EventBookingCancelled)
	event.ClassFlightID = classes[0]
	stream := &fakeStream{queue: []*common.BookingEvent{event}}
	group := constants.BookingEventGroupFor("abc123")
	worker := NewBookingEventWorker("test", group, gdb, stream, cache)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Start(ctx, 1) }()

	require.Eventually(t, func() bool { return stream.ackCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []string{"seatmap-invalidators:abc123"}, stream.groups)
	assert.Equal(t, []string{group}, stream.destroyed)
	assert.Equal(t, "msg-"+event.ID, stream.acked[0])
	_, found := cache.Get(key)
	assert.False(t, found)
}

func TestBookingStreamMonitor_TrimsStream(t *testing.T) {
	stream := &fakeStream{pending: 5000}
	NewBookingStreamMonitor(stream, "group", 100).check(context.Background())
	assert.Equal(t, []int64{100}, stream.trimmed)

	stream = &fakeStream{}
	NewBookingStreamMonitor(stream, "group", 0).check(context.Background())
	assert.Empty(t, stream.trimmed)
}
