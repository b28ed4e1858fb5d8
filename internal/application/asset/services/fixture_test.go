package services

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	approvalservices "github.com/assetdesk/assetdesk/internal/application/approval/services"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/domain/setting"
	"github.com/assetdesk/assetdesk/internal/infrastructure/database/dbtest"
	"github.com/assetdesk/assetdesk/internal/infrastructure/repository"
	"github.com/assetdesk/assetdesk/internal/shared/constants"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []asset.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...asset.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) types() []asset.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]asset.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	tm          *db.TransactionManager
	assets      asset.Repository
	attachments *repository.AttachmentRepository
	rules       asset.NumberRuleRepository
	settings    setting.Repository
	flows       approval.FlowRepository
	forms       approval.FormRepository
	publisher   *recordingPublisher

	allocator   *NumberAllocator
	licenses    *LicenseCounter
	ledger      *AttachmentLedger
	coordinator *RetirementCoordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := dbtest.New(t)
	log := logger.NewNopLogger()

	f := &fixture{
		tm:          db.NewTransactionManager(gdb),
		assets:      repository.NewAssetRepository(gdb, log),
		attachments: repository.NewAttachmentRepository(gdb, log),
		rules:       repository.NewNumberRuleRepository(gdb, log),
		settings:    repository.NewSystemSettingRepository(gdb, log),
		flows:       repository.NewFlowRepository(gdb, log),
		forms:       repository.NewFormRepository(gdb, log),
		publisher:   &recordingPublisher{},
	}
	f.allocator = NewNumberAllocator(f.tm, f.rules, repository.NewNumberTrackRepository(gdb), f.assets, log)
	f.licenses = NewLicenseCounter(f.assets, f.attachments)
	f.ledger = NewAttachmentLedger(f.tm, f.assets, f.attachments, f.attachments, f.licenses, f.publisher, log)
	gateway := approvalservices.NewGateway(f.settings, f.flows, f.forms, log)
	f.coordinator = NewRetirementCoordinator(f.tm, f.assets, f.attachments, f.ledger, gateway, f.publisher, log)
	return f
}

func (f *fixture) newAsset(t *testing.T, class asset.Class, number string, maxLicense int) *asset.Asset {
	t.Helper()
	a, err := asset.NewAsset(asset.NewAssetParams{
		Class:           class,
		AssetNumber:     number,
		Name:            number,
		MaxLicenseCount: maxLicense,
		CreatorID:       1,
	})
	require.NoError(t, err)
	require.NoError(t, f.assets.Create(context.Background(), a))
	return a
}

func (f *fixture) attach(t *testing.T, device *asset.Asset, kind attachment.TargetKind, targetID uint) *attachment.Attachment {
	t.Helper()
	a, err := f.ledger.Attach(context.Background(), AttachCommand{
		DeviceID:    device.ID(),
		TargetKind:  kind,
		TargetID:    targetID,
		RequesterID: 1,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) configureRetireFlow(t *testing.T, class asset.Class, flowID uint) {
	t.Helper()
	s, err := setting.NewSystemSetting(constants.SettingCategoryAsset, approvalservices.RetireFlowKey(class), setting.ValueTypeInt, "")
	require.NoError(t, err)
	require.NoError(t, s.SetValue(strconv.FormatUint(uint64(flowID), 10), 1))
	require.NoError(t, f.settings.Upsert(context.Background(), s))
}

func (f *fixture) newFlow(t *testing.T, name string) *approval.Flow {
	t.Helper()
	flow, err := approval.NewFlow(name, "")
	require.NoError(t, err)
	require.NoError(t, f.flows.Create(context.Background(), flow))
	return flow
}

func (f *fixture) reload(t *testing.T, a *asset.Asset) *asset.Asset {
	t.Helper()
	got, err := f.assets.GetByID(context.Background(), a.ID())
	require.NoError(t, err)
	return got
}

func (f *fixture) activeCount(t *testing.T, deviceID uint) int {
	t.Helper()
	list, err := f.attachments.ListActiveByDevice(context.Background(), deviceID)
	require.NoError(t, err)
	return len(list)
}
