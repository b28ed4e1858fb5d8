package mappers

import (
	"gorm.io/datatypes"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/models"
)

type ApprovalMapper interface {
	FlowToDomain(model *models.FlowModel) *approval.Flow
	FlowToModel(domain *approval.Flow) *models.FlowModel
	FormToDomain(model *models.ApprovalFormModel) *approval.Form
	FormToModel(domain *approval.Form) *models.ApprovalFormModel
}

type ApprovalMapperImpl struct{}

func NewApprovalMapper() ApprovalMapper {
	return &ApprovalMapperImpl{}
}

func (m *ApprovalMapperImpl) FlowToDomain(model *models.FlowModel) *approval.Flow {
	if model == nil {
		return nil
	}
	return approval.ReconstructFlow(model.ID, model.Name, model.Description, model.CreatedAt, model.UpdatedAt)
}

func (m *ApprovalMapperImpl) FlowToModel(domain *approval.Flow) *models.FlowModel {
	if domain == nil {
		return nil
	}
	return &models.FlowModel{
		ID:          domain.ID(),
		Name:        domain.Name(),
		Description: domain.Description(),
		CreatedAt:   domain.CreatedAt(),
		UpdatedAt:   domain.UpdatedAt(),
	}
}

func (m *ApprovalMapperImpl) FormToDomain(model *models.ApprovalFormModel) *approval.Form {
	if model == nil {
		return nil
	}
	p := model.Payload.Data()
	return approval.ReconstructForm(
		model.ID,
		model.UUID,
		model.FlowID,
		model.FlowName,
		model.Name,
		model.ApplicantID,
		model.Comment,
		approval.Payload{AssetID: p.AssetID, AssetClass: p.AssetClass, AssetNumber: p.AssetNumber},
		approval.Status(model.Status),
		model.ResolvedBy,
		model.ResolveComment,
		model.ResolvedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ApprovalMapperImpl) FormToModel(domain *approval.Form) *models.ApprovalFormModel {
	if domain == nil {
		return nil
	}
	p := domain.Payload()
	return &models.ApprovalFormModel{
		ID:          domain.ID(),
		UUID:        domain.UUID(),
		FlowID:      domain.FlowID(),
		FlowName:    domain.FlowName(),
		Name:        domain.Name(),
		ApplicantID: domain.ApplicantID(),
		Comment:     domain.Comment(),
		Payload: datatypes.NewJSONType(models.ApprovalFormPayload{
			AssetID:     p.AssetID,
			AssetClass:  p.AssetClass,
			AssetNumber: p.AssetNumber,
		}),
		Status:         string(domain.Status()),
		ResolvedBy:     domain.ResolvedBy(),
		ResolveComment: domain.ResolveComment(),
		ResolvedAt:     domain.ResolvedAt(),
		CreatedAt:      domain.CreatedAt(),
		UpdatedAt:      domain.UpdatedAt(),
	}
}
