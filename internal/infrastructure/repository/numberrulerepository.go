package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/mappers"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/models"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// NumberRuleRepository implements asset.NumberRuleRepository.
type NumberRuleRepository struct {
	db     *gorm.DB
	mapper mappers.NumberRuleMapper
	logger logger.Interface
}

func NewNumberRuleRepository(gdb *gorm.DB, logger logger.Interface) asset.NumberRuleRepository {
	return &NumberRuleRepository{db: gdb, mapper: mappers.NewNumberRuleMapper(), logger: logger}
}

func (r *NumberRuleRepository) Create(ctx context.Context, rule *asset.NumberRule) error {
	model := r.mapper.ToModel(rule)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create asset number rule", "name", rule.Name(), "error", err)
		return fmt.Errorf("failed to create asset number rule: %w", err)
	}
	rule.SetID(model.ID)
	return nil
}

func (r *NumberRuleRepository) GetByID(ctx context.Context, id uint) (*asset.NumberRule, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id), asset.ErrRuleNotFound)
}

func (r *NumberRuleRepository) GetByIDForUpdate(ctx context.Context, id uint) (*asset.NumberRule, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()).Where("id = ?", id), asset.ErrRuleNotFound)
}

func (r *NumberRuleRepository) GetByClass(ctx context.Context, class asset.Class) (*asset.NumberRule, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("class_name = ?", class.String()), asset.ErrRuleNotBound)
}

func (r *NumberRuleRepository) GetByClassForUpdate(ctx context.Context, class asset.Class) (*asset.NumberRule, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()).Where("class_name = ?", class.String()), asset.ErrRuleNotBound)
}

func (r *NumberRuleRepository) first(q *gorm.DB, notFound error) (*asset.NumberRule, error) {
	var model models.AssetNumberRuleModel
	if err := q.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get asset number rule: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *NumberRuleRepository) List(ctx context.Context) ([]*asset.NumberRule, error) {
	var modelList []*models.AssetNumberRuleModel
	if err := db.GetTxFromContext(ctx, r.db).Order("id ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset number rules: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}

func (r *NumberRuleRepository) Update(ctx context.Context, rule *asset.NumberRule) error {
	model := r.mapper.ToModel(rule)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AssetNumberRuleModel{}).
		Where("id = ?", rule.ID()).
		Updates(map[string]any{
			"name":                  model.Name,
			"formula":               model.Formula,
			"auto_increment_length": model.AutoIncrementLength,
			"auto_increment_count":  model.AutoIncrementCount,
			"class_name":            model.ClassName,
			"is_auto":               model.IsAuto,
			"updated_at":            model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update asset number rule", "rule_id", rule.ID(), "error", result.Error)
		return fmt.Errorf("failed to update asset number rule: %w", result.Error)
	}
	return nil
}

// NumberTrackRepository implements asset.NumberTrackRepository.
type NumberTrackRepository struct {
	db *gorm.DB
}

func NewNumberTrackRepository(gdb *gorm.DB) asset.NumberTrackRepository {
	return &NumberTrackRepository{db: gdb}
}

func (r *NumberTrackRepository) Create(ctx context.Context, t *asset.NumberTrack) error {
	model := &models.AssetNumberTrackModel{
		AssetNumber: t.AssetNumber,
		AssetID:     t.AssetID,
		Class:       t.Class.String(),
		RuleID:      t.RuleID,
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create asset number track: %w", err)
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	return nil
}

func (r *NumberTrackRepository) ListByAsset(ctx context.Context, assetID uint) ([]*asset.NumberTrack, error) {
	var modelList []*models.AssetNumberTrackModel
	if err := db.GetTxFromContext(ctx, r.db).Where("asset_id = ?", assetID).Order("id ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset number tracks: %w", err)
	}
	tracks := make([]*asset.NumberTrack, 0, len(modelList))
	for _, m := range modelList {
		tracks = append(tracks, &asset.NumberTrack{
			ID:          m.ID,
			AssetNumber: m.AssetNumber,
			AssetID:     m.AssetID,
			Class:       asset.Class(m.Class),
			RuleID:      m.RuleID,
			CreatedAt:   m.CreatedAt,
		})
	}
	return tracks, nil
}
