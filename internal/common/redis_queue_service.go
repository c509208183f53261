package common

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueueService publishes and consumes booking events using Redis Streams
type RedisQueueService struct {
	client *redis.Client
	stream string
}

var _ EventPublisher = (*RedisQueueService)(nil)

// NewRedisQueueService creates a queue bound to one stream
func NewRedisQueueService(client *redis.Client, stream string) *RedisQueueService {
	return &RedisQueueService{
		client: client,
		stream: stream,
	}
}

// Publish adds an event to the stream
// XADD stream * data <json>
func (s *RedisQueueService) Publish(ctx context.Context, event *BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"type": event.Type,
			"data": string(data),
		},
	}

	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// Consume reads the next event for a consumer group member.
// Returns (nil, "", nil) when the block time elapses without messages.
func (s *RedisQueueService) Consume(ctx context.Context, groupName, consumerName string, blockTime time.Duration) (*BookingEvent, string, error) {
	// XREADGROUP GROUP group consumer BLOCK ms COUNT 1 STREAMS stream >
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{s.stream, ">"},
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]
	event, err := decodeEvent(msg)
	if err != nil {
		return nil, msg.ID, err
	}
	return event, msg.ID, nil
}

// Ack acknowledges successful processing of a message
func (s *RedisQueueService) Ack(ctx context.Context, groupName, messageID string) error {
	return s.client.XAck(ctx, s.stream, groupName, messageID).Err()
}

// CreateConsumerGroup creates the group if it doesn't exist yet
// XGROUP CREATE stream group $ MKSTREAM
func (s *RedisQueueService) CreateConsumerGroup(ctx context.Context, groupName string) error {
	err := s.client.XGroupCreateMkStream(ctx, s.stream, groupName, "$").Err()
	if err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil
	}
	return err
}

// DestroyConsumerGroup removes a group and its pending entries
// XGROUP DESTROY stream group
func (s *RedisQueueService) DestroyConsumerGroup(ctx context.Context, groupName string) error {
	return s.client.XGroupDestroy(ctx, s.stream, groupName).Err()
}

// PendingCount returns unacknowledged messages for a consumer group
func (s *RedisQueueService) PendingCount(ctx context.Context, groupName string) (int64, error) {
	pending, err := s.client.XPending(ctx, s.stream, groupName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get pending count: %w", err)
	}
	return pending.Count, nil
}

// Trim keeps only the most recent maxLen events
func (s *RedisQueueService) Trim(ctx context.Context, maxLen int64) error {
	return s.client.XTrimMaxLen(ctx, s.stream, maxLen).Err()
}

func decodeEvent(msg redis.XMessage) (*BookingEvent, error) {
	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid message format: data field missing")
	}

	var event BookingEvent
	if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking event: %w", err)
	}
	return &event, nil
}
