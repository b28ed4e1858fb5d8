package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

func TestAttachmentLedger_LicenseScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d1 := f.newAsset(t, asset.ClassDevice, "PC-0001", 0)
	d2 := f.newAsset(t, asset.ClassDevice, "PC-0002", 0)
	s1 := f.newAsset(t, asset.ClassSoftware, "SW-0001", 1)

	first := f.attach(t, d1, attachment.TargetSoftware, s1.ID())
	used, err := f.licenses.UsedCount(ctx, s1.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), used)

	_, err = f.ledger.Attach(ctx, AttachCommand{DeviceID: d2.ID(), TargetKind: attachment.TargetSoftware, TargetID: s1.ID(), RequesterID: 1})
	assert.ErrorIs(t, err, attachment.ErrLicenseExhausted)

	_, err = f.ledger.Detach(ctx, first.ID(), 1, "moved")
	require.NoError(t, err)
	used, err = f.licenses.UsedCount(ctx, s1.ID())
	require.NoError(t, err)
	assert.Zero(t, used)

	f.attach(t, d2, attachment.TargetSoftware, s1.ID())
	used, max, err := f.licenses.Usage(ctx, s1.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), used)
	assert.Equal(t, 1, max)
}

func TestAttachmentLedger_UnboundedSoftwareNeverExhausts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sw := f.newAsset(t, asset.ClassSoftware, "SW-FREE", 0)

	for i := 0; i < 5; i++ {
		d := f.newAsset(t, asset.ClassDevice, fmt.Sprintf("PC-%04d", i), 0)
		f.attach(t, d, attachment.TargetSoftware, sw.ID())
	}
	ok, err := f.licenses.HasCapacity(ctx, sw.ID())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAttachmentLedger_ConcurrentAttachRespectsSeatLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const seats, devices = 3, 10
	sw := f.newAsset(t, asset.ClassSoftware, "SW-0001", seats)

	deviceIDs := make([]uint, devices)
	for i := range deviceIDs {
		deviceIDs[i] = f.newAsset(t, asset.ClassDevice, fmt.Sprintf("PC-%04d", i), 0).ID()
	}

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		exhausted atomic.Int32
	)
	for _, id := range deviceIDs {
		wg.Add(1)
		go func(deviceID uint) {
			defer wg.Done()
			_, err := f.ledger.Attach(ctx, AttachCommand{DeviceID: deviceID, TargetKind: attachment.TargetSoftware, TargetID: sw.ID(), RequesterID: 1})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, attachment.ErrLicenseExhausted):
				exhausted.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(seats), succeeded.Load())
	assert.Equal(t, int32(devices-seats), exhausted.Load())
	used, err := f.licenses.UsedCount(ctx, sw.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(seats), used)
}

type orderedAssets struct {
	asset.Repository
	calls *[]string
}

func (r orderedAssets) GetByIDForUpdate(ctx context.Context, id uint) (*asset.Asset, error) {
	*r.calls = append(*r.calls, fmt.Sprintf("lock asset %d", id))
	return r.Repository.GetByIDForUpdate(ctx, id)
}

type orderedAttachments struct {
	attachment.Repository
	calls *[]string
}

func (r orderedAttachments) ExistsActive(ctx context.Context, deviceID uint, kind attachment.TargetKind, targetID uint) (bool, error) {
	*r.calls = append(*r.calls, "read active pair")
	return r.Repository.ExistsActive(ctx, deviceID, kind, targetID)
}

func (r orderedAttachments) CountActiveByTarget(ctx context.Context, kind attachment.TargetKind, targetID uint) (int64, error) {
	*r.calls = append(*r.calls, "count seats")
	return r.Repository.CountActiveByTarget(ctx, kind, targetID)
}

func TestAttachmentLedger_LocksRowsBeforeReadingRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.newAsset(t, asset.ClassDevice, "PC-0001", 0)
	sw := f.newAsset(t, asset.ClassSoftware, "SW-0001", 1)

	var calls []string
	assets := orderedAssets{Repository: f.assets, calls: &calls}
	attachments := orderedAttachments{Repository: f.attachments, calls: &calls}
	licenses := NewLicenseCounter(assets, attachments)
	ledger := NewAttachmentLedger(f.tm, assets, attachments, f.attachments, licenses, NopPublisher(), logger.NewNopLogger())

	_, err := ledger.Attach(ctx, AttachCommand{DeviceID: d.ID(), TargetKind: attachment.TargetSoftware, TargetID: sw.ID(), RequesterID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{
		fmt.Sprintf("lock asset %d", d.ID()),
		fmt.Sprintf("lock asset %d", sw.ID()),
		"read active pair",
		"count seats",
	}, calls)

	// the only seat is taken by this very pair
	_, err = ledger.Attach(ctx, AttachCommand{DeviceID: d.ID(), TargetKind: attachment.TargetSoftware, TargetID: sw.ID(), RequesterID: 1})
	assert.ErrorIs(t, err, attachment.ErrDuplicateAttachment)
}

func TestAttachmentLedger_DuplicateAndReattach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.newAsset(t, asset.ClassDevice, "PC-0001", 0)
	p := f.newAsset(t, asset.ClassPart, "PT-0001", 0)

	first := f.attach(t, d, attachment.TargetPart, p.ID())
	_, err := f.ledger.Attach(ctx, AttachCommand{DeviceID: d.ID(), TargetKind: attachment.TargetPart, TargetID: p.ID()})
	assert.ErrorIs(t, err, attachment.ErrDuplicateAttachment)

	_, err = f.ledger.Detach(ctx, first.ID(), 2, "swap")
	require.NoError(t, err)
	_, err = f.ledger.Detach(ctx, first.ID(), 2, "again")
	assert.ErrorIs(t, err, attachment.ErrAttachmentAlreadyDetached)

	second := f.attach(t, d, attachment.TargetPart, p.ID())
	assert.NotEqual(t, first.ID(), second.ID())

	all, err := f.ledger.ListByDevice(ctx, d.ID(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	active, err := f.ledger.ListByDevice(ctx, d.ID(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	history, err := f.ledger.History(ctx, first.ID())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, attachment.ActionAttached, history[0].Action)
	assert.Equal(t, attachment.ActionDetached, history[1].Action)
	assert.Equal(t, uint(2), history[1].ActorID)
}

func TestAttachmentLedger_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d1 := f.newAsset(t, asset.ClassDevice, "PC-0001", 0)
	d2 := f.newAsset(t, asset.ClassDevice, "PC-0002", 0)
	part := f.newAsset(t, asset.ClassPart, "PT-0001", 0)
	sw := f.newAsset(t, asset.ClassSoftware, "SW-0001", 0)

	f.attach(t, d1, attachment.TargetPart, part.ID())
	f.attach(t, d1, attachment.TargetUser, 42)

	tests := []struct {
		name string
		cmd  AttachCommand
		want error
	}{
		{"invalid kind", AttachCommand{DeviceID: d1.ID(), TargetKind: "printer", TargetID: 1}, attachment.ErrInvalidTargetKind},
		{"missing target", AttachCommand{DeviceID: d1.ID(), TargetKind: attachment.TargetSoftware}, attachment.ErrInvalidTarget},
		{"unknown device", AttachCommand{DeviceID: 9999, TargetKind: attachment.TargetSoftware, TargetID: sw.ID()}, asset.ErrDeviceNotFound},
		{"target is not a device", AttachCommand{DeviceID: sw.ID(), TargetKind: attachment.TargetUser, TargetID: 7}, attachment.ErrNotADevice},
		{"unknown software", AttachCommand{DeviceID: d1.ID(), TargetKind: attachment.TargetSoftware, TargetID: 9999}, asset.ErrSoftwareNotFound},
		{"software id of a part", AttachCommand{DeviceID: d1.ID(), TargetKind: attachment.TargetSoftware, TargetID: part.ID()}, asset.ErrSoftwareNotFound},
		{"unknown part", AttachCommand{DeviceID: d1.ID(), TargetKind: attachment.TargetPart, TargetID: 9999}, asset.ErrPartNotFound},
		{"part on another device", AttachCommand{DeviceID: d2.ID(), TargetKind: attachment.TargetPart, TargetID: part.ID()}, attachment.ErrPartInUse},
		{"second user", AttachCommand{DeviceID: d1.ID(), TargetKind: attachment.TargetUser, TargetID: 43}, attachment.ErrDeviceAlreadyAssigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.Attach(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAttachmentLedger_RetiredAssetsAreImmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.newAsset(t, asset.ClassDevice, "PC-0001", 0)
	sw := f.newAsset(t, asset.ClassSoftware, "SW-0001", 0)

	_, err := f.coordinator.ForceRetire(ctx, sw.ID(), 1, "expired")
	require.NoError(t, err)
	_, err = f.ledger.Attach(ctx, AttachCommand{DeviceID: d.ID(), TargetKind: attachment.TargetSoftware, TargetID: sw.ID()})
	assert.ErrorIs(t, err, asset.ErrAssetAlreadyRetired)

	_, err = f.coordinator.ForceRetire(ctx, d.ID(), 1, "broken")
	require.NoError(t, err)
	_, err = f.ledger.Attach(ctx, AttachCommand{DeviceID: d.ID(), TargetKind: attachment.TargetUser, TargetID: 5})
	assert.ErrorIs(t, err, asset.ErrAssetAlreadyRetired)
}

func TestAttachmentLedger_PublishesAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.newAsset(t, asset.ClassDevice, "PC-0001", 0)
	sw := f.newAsset(t, asset.ClassSoftware, "SW-0001", 1)

	a := f.attach(t, d, attachment.TargetSoftware, sw.ID())
	_, err := f.ledger.Attach(ctx, AttachCommand{DeviceID: d.ID(), TargetKind: attachment.TargetSoftware, TargetID: sw.ID()})
	require.Error(t, err)
	_, err = f.ledger.Detach(ctx, a.ID(), 1, "")
	require.NoError(t, err)

	assert.Equal(t, []asset.EventType{asset.EventAttached, asset.EventDetached}, f.publisher.types())
	f.publisher.mu.Lock()
	defer f.publisher.mu.Unlock()
	assert.Equal(t, "PC-0001", f.publisher.events[0].AssetNumber)
	assert.Equal(t, sw.ID(), f.publisher.events[0].TargetID)
}
