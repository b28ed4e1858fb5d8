package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/models"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the persistence models. It
// is used for SQLite, where the MySQL scripts do not apply.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.AllModels()
	s.logger.Infow("starting auto migration", "models_count", len(all))
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
