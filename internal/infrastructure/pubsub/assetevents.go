package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/infrastructure/metrics"
	"github.com/assetdesk/assetdesk/internal/shared/biztime"
	"github.com/assetdesk/assetdesk/internal/shared/goroutine"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// DefaultAssetEventChannel is used when events.channel is not configured.
const DefaultAssetEventChannel = "assetdesk:asset:events"

// RedisAssetEventBus fans committed asset events out over Redis Pub/Sub.
// Publishing never fails the caller: the change is already committed, so a
// lost event is logged and counted.
type RedisAssetEventBus struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

func NewRedisAssetEventBus(client *redis.Client, channel string, logger logger.Interface) *RedisAssetEventBus {
	if channel == "" {
		channel = DefaultAssetEventChannel
	}
	return &RedisAssetEventBus{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

func (b *RedisAssetEventBus) Publish(ctx context.Context, events ...asset.Event) {
	for _, event := range events {
		data, err := encodeEvent(event)
		if err != nil {
			metrics.EventPublishErrorCount.WithLabelValues(string(event.Type)).Inc()
			b.logger.Errorw("failed to marshal asset event", "type", event.Type, "asset_id", event.AssetID, "error", err)
			continue
		}

		if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
			metrics.EventPublishErrorCount.WithLabelValues(string(event.Type)).Inc()
			b.logger.Errorw("failed to publish asset event",
				"type", event.Type,
				"asset_id", event.AssetID,
				"error", err,
			)
			continue
		}

		b.logger.Debugw("asset event published",
			"type", event.Type,
			"asset_id", event.AssetID,
		)
	}
}

// Subscribe delivers events until ctx is cancelled, reconnecting with
// exponential backoff when the connection drops.
func (b *RedisAssetEventBus) Subscribe(ctx context.Context, handler func(event asset.Event)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("asset event subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisAssetEventBus) subscribe(ctx context.Context, handler func(event asset.Event)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}
	b.logger.Infow("subscribed to asset events", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			event, err := decodeEvent(msg.Payload)
			if err != nil {
				b.logger.Warnw("failed to unmarshal asset event", "payload", msg.Payload, "error", err)
				continue
			}
			func() {
				defer goroutine.Recover(b.logger, "asset-event-handler")
				handler(event)
			}()
		}
	}
}

func encodeEvent(event asset.Event) ([]byte, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = biztime.NowUTC()
	}
	return json.Marshal(event)
}

func decodeEvent(payload string) (asset.Event, error) {
	var event asset.Event
	err := json.Unmarshal([]byte(payload), &event)
	return event, err
}

// LogPublisher writes events to the log when Redis is disabled.
type LogPublisher struct {
	logger logger.Interface
}

func NewLogPublisher(logger logger.Interface) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, events ...asset.Event) {
	for _, event := range events {
		p.logger.Infow("asset event",
			"type", event.Type,
			"asset_id", event.AssetID,
			"asset_number", event.AssetNumber,
			"attachment_id", event.AttachmentID,
			"approval_id", event.ApprovalID,
			"actor_id", event.ActorID,
		)
	}
}
