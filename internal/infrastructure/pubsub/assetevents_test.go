package pubsub

import (
	"context"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/infrastructure/metrics"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

type recordingLogger struct {
	logger.Interface
	infos  []string
	errors []string
}

func (l *recordingLogger) Infow(msg string, _ ...any)  { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Errorw(msg string, _ ...any) { l.errors = append(l.errors, msg) }
func (l *recordingLogger) Debugw(string, ...any)       {}

func TestEncodeEvent_StampsMissingTime(t *testing.T) {
	data, err := encodeEvent(asset.Event{Type: asset.EventRetired, AssetID: 3, AssetClass: asset.ClassDevice})
	require.NoError(t, err)

	event, err := decodeEvent(string(data))
	require.NoError(t, err)
	assert.Equal(t, asset.EventRetired, event.Type)
	assert.Equal(t, asset.ClassDevice, event.AssetClass)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestDecodeEvent_RejectsGarbage(t *testing.T) {
	_, err := decodeEvent("not json")
	assert.Error(t, err)
}

func TestRedisAssetEventBus_PublishFailureIsCounted(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	log := &recordingLogger{}
	bus := NewRedisAssetEventBus(client, "", log)
	assert.Equal(t, DefaultAssetEventChannel, bus.channel)

	counter := metrics.EventPublishErrorCount.WithLabelValues(string(asset.EventDetached))
	before := promtestutil.ToFloat64(counter)

	bus.Publish(context.Background(),
		asset.Event{Type: asset.EventDetached, AssetID: 1},
		asset.Event{Type: asset.EventDetached, AssetID: 2},
	)

	assert.Equal(t, before+2, promtestutil.ToFloat64(counter))
	assert.Len(t, log.errors, 2)
}

func TestLogPublisher(t *testing.T) {
	log := &recordingLogger{}
	NewLogPublisher(log).Publish(context.Background(),
		asset.Event{Type: asset.EventAttached, AssetID: 1},
		asset.Event{Type: asset.EventRetired, AssetID: 1},
	)
	assert.Len(t, log.infos, 2)
}
