package events

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
)

func TestPrinter_FiltersByType(t *testing.T) {
	var buf bytes.Buffer
	emit := printer(&buf, asset.EventRetired)

	emit(asset.Event{Type: asset.EventAttached, AssetID: 1})
	emit(asset.Event{Type: asset.EventRetired, AssetID: 2, ApprovalID: "a-1"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var got asset.Event
	require.NoError(t, json.Unmarshal(lines[0], &got))
	assert.Equal(t, uint(2), got.AssetID)
	assert.Equal(t, "a-1", got.ApprovalID)
}

func TestPrinter_NoFilter(t *testing.T) {
	var buf bytes.Buffer
	emit := printer(&buf, "")

	emit(asset.Event{Type: asset.EventAttached})
	emit(asset.Event{Type: asset.EventDetached})

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}
