package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/mappers"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/models"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// FlowRepository implements approval.FlowRepository. Deleted flows are
// soft-deleted and no longer resolve.
type FlowRepository struct {
	db     *gorm.DB
	mapper mappers.ApprovalMapper
	logger logger.Interface
}

func NewFlowRepository(gdb *gorm.DB, logger logger.Interface) approval.FlowRepository {
	return &FlowRepository{db: gdb, mapper: mappers.NewApprovalMapper(), logger: logger}
}

func (r *FlowRepository) Create(ctx context.Context, f *approval.Flow) error {
	model := r.mapper.FlowToModel(f)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create flow", "name", f.Name(), "error", err)
		return fmt.Errorf("failed to create flow: %w", err)
	}
	f.SetID(model.ID)
	return nil
}

func (r *FlowRepository) GetByID(ctx context.Context, id uint) (*approval.Flow, error) {
	var model models.FlowModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, approval.ErrFlowNotFound
		}
		return nil, fmt.Errorf("failed to get flow: %w", err)
	}
	return r.mapper.FlowToDomain(&model), nil
}

func (r *FlowRepository) List(ctx context.Context) ([]*approval.Flow, error) {
	var modelList []*models.FlowModel
	if err := db.GetTxFromContext(ctx, r.db).Order("id ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}
	flows := make([]*approval.Flow, 0, len(modelList))
	for _, m := range modelList {
		flows = append(flows, r.mapper.FlowToDomain(m))
	}
	return flows, nil
}

func (r *FlowRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.FlowModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete flow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return approval.ErrFlowNotFound
	}
	return nil
}

// FormRepository implements approval.FormRepository.
type FormRepository struct {
	db     *gorm.DB
	mapper mappers.ApprovalMapper
	logger logger.Interface
}

func NewFormRepository(gdb *gorm.DB, logger logger.Interface) approval.FormRepository {
	return &FormRepository{db: gdb, mapper: mappers.NewApprovalMapper(), logger: logger}
}

func (r *FormRepository) Create(ctx context.Context, f *approval.Form) error {
	model := r.mapper.FormToModel(f)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create approval form", "flow_id", f.FlowID(), "error", err)
		return fmt.Errorf("failed to create approval form: %w", err)
	}
	f.SetID(model.ID)
	return nil
}

func (r *FormRepository) GetByUUID(ctx context.Context, formUUID string) (*approval.Form, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), formUUID)
}

func (r *FormRepository) GetByUUIDForUpdate(ctx context.Context, formUUID string) (*approval.Form, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), formUUID)
}

func (r *FormRepository) get(q *gorm.DB, formUUID string) (*approval.Form, error) {
	var model models.ApprovalFormModel
	if err := q.Where("uuid = ?", formUUID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, approval.ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get approval form: %w", err)
	}
	return r.mapper.FormToDomain(&model), nil
}

func (r *FormRepository) Update(ctx context.Context, f *approval.Form) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ApprovalFormModel{}).
		Where("id = ?", f.ID()).
		Updates(map[string]any{
			"status":          string(f.Status()),
			"resolved_by":     f.ResolvedBy(),
			"resolve_comment": f.ResolveComment(),
			"resolved_at":     f.ResolvedAt(),
			"updated_at":      f.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update approval form", "uuid", f.UUID(), "error", result.Error)
		return fmt.Errorf("failed to update approval form: %w", result.Error)
	}
	return nil
}
