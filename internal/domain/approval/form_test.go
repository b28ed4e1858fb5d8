package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm(t *testing.T) {
	flow := ReconstructFlow(4, "Device retirement", "", time.Now(), time.Now())

	_, err := NewForm(flow, " ", 1, "", Payload{})
	assert.ErrorIs(t, err, ErrInvalidFormName)

	f, err := NewForm(flow, "Device retirement - PC-0001", 1, "broken screen", Payload{AssetID: 9, AssetClass: "device", AssetNumber: "PC-0001"})
	require.NoError(t, err)
	assert.Len(t, f.UUID(), 36)
	assert.Equal(t, uint(4), f.FlowID())
	assert.Equal(t, "Device retirement", f.FlowName())
	assert.Equal(t, StatusPending, f.Status())
	assert.Equal(t, "PC-0001", f.Payload().AssetNumber)
}

func TestForm_Resolve(t *testing.T) {
	flow := ReconstructFlow(4, "Device retirement", "", time.Now(), time.Now())
	f, err := NewForm(flow, "Device retirement - PC-0001", 1, "", Payload{AssetID: 9})
	require.NoError(t, err)

	assert.ErrorIs(t, f.Resolve("maybe", 2, "", time.Now()), ErrInvalidOutcome)

	require.NoError(t, f.Resolve(OutcomeRejected, 2, "still usable", time.Now()))
	assert.Equal(t, StatusRejected, f.Status())
	assert.True(t, f.IsFinished())
	assert.Equal(t, "still usable", f.ResolveComment())

	assert.ErrorIs(t, f.Resolve(OutcomeApproved, 2, "", time.Now()), ErrFormAlreadyResolved)
	assert.Equal(t, StatusRejected, f.Status())
}
