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
	sharedErrors "github.com/assetdesk/assetdesk/internal/shared/errors"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// AssetRepository implements asset.Repository.
type AssetRepository struct {
	db     *gorm.DB
	mapper mappers.AssetMapper
	logger logger.Interface
}

func NewAssetRepository(gdb *gorm.DB, logger logger.Interface) asset.Repository {
	return &AssetRepository{
		db:     gdb,
		mapper: mappers.NewAssetMapper(),
		logger: logger,
	}
}

func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	model := r.mapper.ToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if sharedErrors.IsDuplicateError(err) {
			return asset.ErrDuplicateAssetNumber
		}
		r.logger.Errorw("failed to create asset", "asset_number", a.AssetNumber(), "error", err)
		return fmt.Errorf("failed to create asset: %w", err)
	}
	a.SetID(model.ID)
	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

func (r *AssetRepository) GetByIDForUpdate(ctx context.Context, id uint) (*asset.Asset, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *AssetRepository) GetByPendingApprovalForUpdate(ctx context.Context, approvalID string) (*asset.Asset, error) {
	if approvalID == "" {
		return nil, asset.ErrAssetNotFound
	}
	var model models.AssetModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForUpdate()).
		Where("pending_approval_id = ?", approvalID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, asset.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by approval: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *AssetRepository) get(q *gorm.DB, id uint) (*asset.Asset, error) {
	var model models.AssetModel
	if err := q.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, asset.ErrAssetNotFound
		}
		r.logger.Errorw("failed to get asset", "asset_id", id, "error", err)
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *AssetRepository) ListByIDs(ctx context.Context, ids []uint) ([]*asset.Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var modelList []*models.AssetModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets by ids: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}

// Update writes the mutable columns. The stored version must be one behind
// the in-memory version, otherwise ErrConcurrentModification is returned.
func (r *AssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AssetModel{}).
		Where("id = ? AND version = ?", a.ID(), a.Version()-1).
		Updates(map[string]any{
			"name":                a.Name(),
			"state":               string(a.State()),
			"pending_approval_id": a.PendingApprovalID(),
			"retired_at":          a.RetiredAt(),
			"version":             a.Version(),
			"updated_at":          a.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update asset", "asset_id", a.ID(), "error", result.Error)
		return fmt.Errorf("failed to update asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return asset.ErrConcurrentModification
	}
	return nil
}

func (r *AssetRepository) ExistsByNumber(ctx context.Context, class asset.Class, assetNumber string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.AssetModel{}).
		Where("class = ? AND asset_number = ?", class.String(), assetNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check asset number: %w", err)
	}
	return count > 0, nil
}

func (r *AssetRepository) List(ctx context.Context, filter asset.ListFilter) ([]*asset.Asset, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.AssetModel{})
	if filter.Class != "" {
		q = q.Where("class = ?", filter.Class.String())
	}
	if filter.State != "" {
		q = q.Where("state = ?", string(filter.State))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	var modelList []*models.AssetModel
	if err := q.Order("id DESC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}
	return r.mapper.ToDomainList(modelList), total, nil
}
