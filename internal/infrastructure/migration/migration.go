package migration

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// ErrUnsupported is returned for versioned operations on a driver that is
// migrated from the models.
var ErrUnsupported = errors.New("operation requires the mysql driver")

// Manager picks the migration strategy for a database driver: versioned
// goose scripts on MySQL, model auto-migration on SQLite.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

func NewManager(driver string, log logger.Interface) *Manager {
	var strategy Strategy
	if driver == "sqlite" {
		strategy = NewGormAutoMigrateStrategy(log)
	} else {
		strategy = NewGooseStrategy(log)
	}
	return NewManagerWithStrategy(strategy, log)
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{strategy: strategy, logger: log.With("component", "migration.manager")}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())
	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Down(db *gorm.DB, steps int) error {
	g, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return ErrUnsupported
	}
	return g.MigrateDown(db, steps)
}

func (m *Manager) Status(db *gorm.DB) error {
	g, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return ErrUnsupported
	}
	return g.Status(db)
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
