package mappers

import (
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/models"
)

type AttachmentMapper interface {
	ToDomain(model *models.AttachmentModel) *attachment.Attachment
	ToModel(domain *attachment.Attachment) *models.AttachmentModel
	ToDomainList(modelList []*models.AttachmentModel) []*attachment.Attachment
	HistoryToDomain(model *models.AttachmentHistoryModel) *attachment.HistoryEntry
	HistoryToModel(entry *attachment.HistoryEntry) *models.AttachmentHistoryModel
}

type AttachmentMapperImpl struct{}

func NewAttachmentMapper() AttachmentMapper {
	return &AttachmentMapperImpl{}
}

func (m *AttachmentMapperImpl) ToDomain(model *models.AttachmentModel) *attachment.Attachment {
	if model == nil {
		return nil
	}
	return attachment.ReconstructAttachment(
		model.ID,
		model.DeviceID,
		attachment.TargetKind(model.TargetKind),
		model.TargetID,
		attachment.Status(model.Status),
		model.ActiveKey,
		model.CreatorID,
		model.Comment,
		model.DetachedBy,
		model.DetachComment,
		model.DetachedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *AttachmentMapperImpl) ToModel(domain *attachment.Attachment) *models.AttachmentModel {
	if domain == nil {
		return nil
	}
	return &models.AttachmentModel{
		ID:            domain.ID(),
		DeviceID:      domain.DeviceID(),
		TargetKind:    string(domain.TargetKind()),
		TargetID:      domain.TargetID(),
		Status:        string(domain.Status()),
		ActiveKey:     domain.ActiveKey(),
		CreatorID:     domain.CreatorID(),
		Comment:       domain.Comment(),
		DetachedBy:    domain.DetachedBy(),
		DetachComment: domain.DetachComment(),
		DetachedAt:    domain.DetachedAt(),
		CreatedAt:     domain.CreatedAt(),
		UpdatedAt:     domain.UpdatedAt(),
	}
}

func (m *AttachmentMapperImpl) ToDomainList(modelList []*models.AttachmentModel) []*attachment.Attachment {
	domains := make([]*attachment.Attachment, 0, len(modelList))
	for _, model := range modelList {
		if d := m.ToDomain(model); d != nil {
			domains = append(domains, d)
		}
	}
	return domains
}

func (m *AttachmentMapperImpl) HistoryToDomain(model *models.AttachmentHistoryModel) *attachment.HistoryEntry {
	if model == nil {
		return nil
	}
	return &attachment.HistoryEntry{
		ID:           model.ID,
		AttachmentID: model.AttachmentID,
		DeviceID:     model.DeviceID,
		TargetKind:   attachment.TargetKind(model.TargetKind),
		TargetID:     model.TargetID,
		Action:       attachment.Action(model.Action),
		ActorID:      model.ActorID,
		Comment:      model.Comment,
		CreatedAt:    model.CreatedAt,
	}
}

func (m *AttachmentMapperImpl) HistoryToModel(entry *attachment.HistoryEntry) *models.AttachmentHistoryModel {
	if entry == nil {
		return nil
	}
	return &models.AttachmentHistoryModel{
		ID:           entry.ID,
		AttachmentID: entry.AttachmentID,
		DeviceID:     entry.DeviceID,
		TargetKind:   string(entry.TargetKind),
		TargetID:     entry.TargetID,
		Action:       string(entry.Action),
		ActorID:      entry.ActorID,
		Comment:      entry.Comment,
		CreatedAt:    entry.CreatedAt,
	}
}
