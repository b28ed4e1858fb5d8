package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/mappers"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/models"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	sharedErrors "github.com/assetdesk/assetdesk/internal/shared/errors"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// AttachmentRepository implements attachment.Repository and
// attachment.HistoryRepository. Nothing here deletes rows.
type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.AttachmentMapper
	logger logger.Interface
}

func NewAttachmentRepository(gdb *gorm.DB, logger logger.Interface) *AttachmentRepository {
	return &AttachmentRepository{db: gdb, mapper: mappers.NewAttachmentMapper(), logger: logger}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *attachment.Attachment) error {
	model := r.mapper.ToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if sharedErrors.IsDuplicateError(err) {
			return attachment.ErrDuplicateAttachment
		}
		r.logger.Errorw("failed to create attachment",
			"device_id", a.DeviceID(),
			"target_kind", a.TargetKind(),
			"target_id", a.TargetID(),
			"error", err,
		)
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	a.SetID(model.ID)
	return nil
}

func (r *AttachmentRepository) GetByID(ctx context.Context, id uint) (*attachment.Attachment, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

func (r *AttachmentRepository) GetByIDForUpdate(ctx context.Context, id uint) (*attachment.Attachment, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *AttachmentRepository) get(q *gorm.DB, id uint) (*attachment.Attachment, error) {
	var model models.AttachmentModel
	if err := q.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attachment.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *AttachmentRepository) Update(ctx context.Context, a *attachment.Attachment) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AttachmentModel{}).
		Where("id = ?", a.ID()).
		Updates(map[string]any{
			"status":         string(a.Status()),
			"active_key":     a.ActiveKey(),
			"detached_by":    a.DetachedBy(),
			"detach_comment": a.DetachComment(),
			"detached_at":    a.DetachedAt(),
			"updated_at":     a.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update attachment", "attachment_id", a.ID(), "error", result.Error)
		return fmt.Errorf("failed to update attachment: %w", result.Error)
	}
	return nil
}

func (r *AttachmentRepository) ExistsActive(ctx context.Context, deviceID uint, kind attachment.TargetKind, targetID uint) (bool, error) {
	var count int64
	err := r.guardQuery(ctx).
		Model(&models.AttachmentModel{}).
		Where("active_key = ?", attachment.ActiveKey(deviceID, kind, targetID)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check active attachment: %w", err)
	}
	return count > 0, nil
}

func (r *AttachmentRepository) ListActiveByDevice(ctx context.Context, deviceID uint, kinds ...attachment.TargetKind) ([]*attachment.Attachment, error) {
	q := r.guardQuery(ctx).
		Where("device_id = ? AND status = ?", deviceID, string(attachment.StatusAttached))
	if len(kinds) > 0 {
		names := make([]string, 0, len(kinds))
		for _, k := range kinds {
			names = append(names, string(k))
		}
		q = q.Where("target_kind IN ?", names)
	}
	return r.find(q)
}

func (r *AttachmentRepository) ListActiveByTarget(ctx context.Context, kind attachment.TargetKind, targetID uint) ([]*attachment.Attachment, error) {
	return r.find(r.guardQuery(ctx).
		Where("target_kind = ? AND target_id = ? AND status = ?", string(kind), targetID, string(attachment.StatusAttached)))
}

func (r *AttachmentRepository) ListByDevice(ctx context.Context, deviceID uint, includeDetached bool) ([]*attachment.Attachment, error) {
	q := db.GetTxFromContext(ctx, r.db).Where("device_id = ?", deviceID)
	if !includeDetached {
		q = q.Where("status = ?", string(attachment.StatusAttached))
	}
	return r.find(q)
}

func (r *AttachmentRepository) find(q *gorm.DB) ([]*attachment.Attachment, error) {
	var modelList []*models.AttachmentModel
	if err := q.Order("id ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}

func (r *AttachmentRepository) CountActiveByTarget(ctx context.Context, kind attachment.TargetKind, targetID uint) (int64, error) {
	var count int64
	err := r.guardQuery(ctx).
		Model(&models.AttachmentModel{}).
		Where("target_kind = ? AND target_id = ? AND status = ?", string(kind), targetID, string(attachment.StatusAttached)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active attachments: %w", err)
	}
	return count, nil
}

// guardQuery is used by the active-relation checks behind seat and part
// limits. Inside a transaction they are locking reads; a plain read on MySQL
// would come from the snapshot taken before the target row lock was granted.
func (r *AttachmentRepository) guardQuery(ctx context.Context) *gorm.DB {
	q := db.GetTxFromContext(ctx, r.db)
	if db.InTransaction(ctx) {
		q = q.Scopes(db.ForShare())
	}
	return q
}

func (r *AttachmentRepository) Append(ctx context.Context, entry *attachment.HistoryEntry) error {
	model := r.mapper.HistoryToModel(entry)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append attachment history: %w", err)
	}
	entry.ID = model.ID
	return nil
}

func (r *AttachmentRepository) ListByAttachment(ctx context.Context, attachmentID uint) ([]*attachment.HistoryEntry, error) {
	var modelList []*models.AttachmentHistoryModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("attachment_id = ?", attachmentID).
		Order("id ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attachment history: %w", err)
	}
	entries := make([]*attachment.HistoryEntry, 0, len(modelList))
	for _, m := range modelList {
		entries = append(entries, r.mapper.HistoryToDomain(m))
	}
	return entries, nil
}
