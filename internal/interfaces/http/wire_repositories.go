package http

import (
	"gorm.io/gorm"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/setting"
	"github.com/assetdesk/assetdesk/internal/infrastructure/repository"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	assetRepo       asset.Repository
	attachmentRepo  *repository.AttachmentRepository
	numberRuleRepo  asset.NumberRuleRepository
	numberTrackRepo asset.NumberTrackRepository
	flowRepo        approval.FlowRepository
	formRepo        approval.FormRepository
	settingRepo     setting.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		assetRepo:       repository.NewAssetRepository(db, log),
		attachmentRepo:  repository.NewAttachmentRepository(db, log),
		numberRuleRepo:  repository.NewNumberRuleRepository(db, log),
		numberTrackRepo: repository.NewNumberTrackRepository(db),
		flowRepo:        repository.NewFlowRepository(db, log),
		formRepo:        repository.NewFormRepository(db, log),
		settingRepo:     repository.NewSystemSettingRepository(db, log),
	}
}
