package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	appcommon "github.com/assetdesk/assetdesk/internal/application/common"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/infrastructure/database/dbtest"
	"github.com/assetdesk/assetdesk/internal/infrastructure/repository"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

type env struct {
	gdb       *gorm.DB
	tm        *db.TransactionManager
	assets    asset.Repository
	rules     asset.NumberRuleRepository
	allocator *services.NumberAllocator
	ledger    *services.AttachmentLedger
	licenses  *services.LicenseCounter
	create    *CreateAssetUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gdb := dbtest.New(t)
	log := logger.NewNopLogger()
	e := &env{
		gdb:    gdb,
		tm:     db.NewTransactionManager(gdb),
		assets: repository.NewAssetRepository(gdb, log),
		rules:  repository.NewNumberRuleRepository(gdb, log),
	}
	attachments := repository.NewAttachmentRepository(gdb, log)
	e.allocator = services.NewNumberAllocator(e.tm, e.rules, repository.NewNumberTrackRepository(gdb), e.assets, log)
	e.licenses = services.NewLicenseCounter(e.assets, attachments)
	e.ledger = services.NewAttachmentLedger(e.tm, e.assets, attachments, attachments, e.licenses, services.NopPublisher(), log)
	e.create = NewCreateAssetUseCase(e.tm, e.assets, e.allocator, log)
	return e
}

func (e *env) mustCreate(t *testing.T, class asset.Class, number string, maxLicense int) uint {
	t.Helper()
	a, err := e.create.Execute(context.Background(), CreateAssetCommand{
		Class:           string(class),
		AssetNumber:     number,
		Name:            "asset " + number,
		MaxLicenseCount: maxLicense,
		CreatorID:       1,
	})
	require.NoError(t, err)
	return a.ID
}

func TestCreateAssetUseCase_AutoNumbering(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	now := time.Now().UTC()
	rule := asset.ReconstructNumberRule(0, "Devices", "PC-{number}", 4, 5, nil, false, now, now)
	require.NoError(t, e.rules.Create(ctx, rule))
	_, err := NewBindNumberRuleUseCase(e.allocator).Execute(ctx, BindNumberRuleCommand{Class: "device", RuleID: rule.ID(), IsAuto: true})
	require.NoError(t, err)

	first, err := e.create.Execute(ctx, CreateAssetCommand{Class: "device", Name: "Laptop", CreatorID: 1})
	require.NoError(t, err)
	second, err := e.create.Execute(ctx, CreateAssetCommand{Class: "device", Name: "Laptop", CreatorID: 1})
	require.NoError(t, err)

	assert.Equal(t, "PC-0006", first.AssetNumber)
	assert.Equal(t, "PC-0007", second.AssetNumber)
	stored, err := e.rules.GetByID(ctx, rule.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.AutoIncrementCount())

	_, err = e.create.Execute(ctx, CreateAssetCommand{Class: "device", AssetNumber: "PC-9999", Name: "Laptop"})
	assert.ErrorIs(t, err, asset.ErrAssetNumberManaged)

	rules, err := NewListNumberRulesUseCase(e.rules, e.allocator).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "PC-0008", rules[0].Preview)
	require.NotNil(t, rules[0].Class)
	assert.Equal(t, "device", *rules[0].Class)
}

func TestCreateAssetUseCase_ManualNumbering(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.create.Execute(ctx, CreateAssetCommand{Class: "software", AssetNumber: " SW-1 ", Name: "Office", MaxLicenseCount: 10})
	require.NoError(t, err)
	assert.Equal(t, "SW-1", created.AssetNumber)
	assert.Equal(t, 10, created.MaxLicenseCount)
	assert.Equal(t, "active", created.State)

	tests := []struct {
		name string
		cmd  CreateAssetCommand
		want error
	}{
		{"duplicate number", CreateAssetCommand{Class: "software", AssetNumber: "SW-1", Name: "Office"}, asset.ErrDuplicateAssetNumber},
		{"missing number", CreateAssetCommand{Class: "software", Name: "Office"}, asset.ErrInvalidAssetNumber},
		{"unknown class", CreateAssetCommand{Class: "vehicle", AssetNumber: "V-1", Name: "Van"}, asset.ErrInvalidClass},
		{"negative seats", CreateAssetCommand{Class: "software", AssetNumber: "SW-2", Name: "Office", MaxLicenseCount: -1}, asset.ErrInvalidLicenseCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.create.Execute(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = e.create.Execute(ctx, CreateAssetCommand{Class: "device", AssetNumber: "SW-1", Name: "Same number, other class"})
	assert.NoError(t, err)
}

func TestAttachSoftwareUseCase_AllOrNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sw := e.mustCreate(t, asset.ClassSoftware, "SW-1", 2)
	d1 := e.mustCreate(t, asset.ClassDevice, "PC-1", 0)
	d2 := e.mustCreate(t, asset.ClassDevice, "PC-2", 0)
	d3 := e.mustCreate(t, asset.ClassDevice, "PC-3", 0)
	uc := NewAttachSoftwareUseCase(e.tm, e.ledger, logger.NewNopLogger())

	_, err := uc.Execute(ctx, AttachSoftwareCommand{SoftwareID: sw, DeviceIDs: []uint{d1, d2, d3}, RequesterID: 1})
	require.ErrorIs(t, err, attachment.ErrLicenseExhausted)
	used, err := e.licenses.UsedCount(ctx, sw)
	require.NoError(t, err)
	assert.Zero(t, used)

	created, err := uc.Execute(ctx, AttachSoftwareCommand{SoftwareID: sw, DeviceIDs: []uint{d1, d2, d1}, RequesterID: 1})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	usage, err := NewLicenseUsageUseCase(e.licenses).Execute(ctx, sw)
	require.NoError(t, err)
	assert.Equal(t, int64(2), usage.Used)
	assert.Zero(t, usage.Available)
}

func TestBatchDetachUseCase_ReportsPerItem(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d := e.mustCreate(t, asset.ClassDevice, "PC-1", 0)
	p := e.mustCreate(t, asset.ClassPart, "PT-1", 0)

	attached, err := NewAttachUseCase(e.ledger).Execute(ctx, AttachCommand{DeviceID: d, TargetKind: "part", TargetID: p, RequesterID: 1, Comment: "<b>new</b> disk"})
	require.NoError(t, err)
	assert.Equal(t, "new disk", attached.Comment)

	results, err := NewBatchDetachUseCase(e.ledger, logger.NewNopLogger()).Execute(ctx, BatchDetachCommand{
		AttachmentIDs: []uint{attached.ID, attached.ID, 999},
		RequesterID:   1,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Equal(t, attachment.ErrAttachmentAlreadyDetached.Error(), results[1].Error)
	assert.False(t, results[2].OK)

	history, err := NewAttachmentHistoryUseCase(e.ledger).Execute(ctx, attached.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	list, err := NewListAttachmentsUseCase(e.ledger).Execute(ctx, d, false)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBatchDetachUseCase_HidesStorageErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	d := e.mustCreate(t, asset.ClassDevice, "PC-1", 0)
	p := e.mustCreate(t, asset.ClassPart, "PT-1", 0)
	attached, err := NewAttachUseCase(e.ledger).Execute(ctx, AttachCommand{DeviceID: d, TargetKind: "part", TargetID: p, RequesterID: 1})
	require.NoError(t, err)

	require.NoError(t, e.gdb.Exec("DROP TABLE attachments").Error)

	results, err := NewBatchDetachUseCase(e.ledger, logger.NewNopLogger()).Execute(ctx, BatchDetachCommand{
		AttachmentIDs: []uint{attached.ID},
		RequesterID:   1,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Equal(t, appcommon.InternalErrorMessage, results[0].Error)
	assert.NotContains(t, results[0].Error, "attachments")
}

func TestListAssetsUseCase_Filters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreate(t, asset.ClassDevice, "PC-1", 0)
	e.mustCreate(t, asset.ClassDevice, "PC-2", 0)
	e.mustCreate(t, asset.ClassPart, "PT-1", 0)
	uc := NewListAssetsUseCase(e.assets)

	result, err := uc.Execute(ctx, ListAssetsQuery{Class: "device", PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.Page)

	_, err = uc.Execute(ctx, ListAssetsQuery{Class: "vehicle"})
	assert.ErrorIs(t, err, asset.ErrInvalidClass)
}
