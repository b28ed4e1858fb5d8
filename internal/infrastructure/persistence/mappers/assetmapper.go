package mappers

import (
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/infrastructure/persistence/models"
)

type AssetMapper interface {
	ToDomain(model *models.AssetModel) *asset.Asset
	ToModel(domain *asset.Asset) *models.AssetModel
	ToDomainList(modelList []*models.AssetModel) []*asset.Asset
}

type AssetMapperImpl struct{}

func NewAssetMapper() AssetMapper {
	return &AssetMapperImpl{}
}

func (m *AssetMapperImpl) ToDomain(model *models.AssetModel) *asset.Asset {
	if model == nil {
		return nil
	}
	return asset.ReconstructAsset(
		model.ID,
		asset.Class(model.Class),
		model.AssetNumber,
		model.Name,
		model.CategoryID,
		model.BrandID,
		model.SerialNumber,
		model.Specification,
		model.MaxLicenseCount,
		asset.State(model.State),
		model.PendingApprovalID,
		model.CreatorID,
		model.RetiredAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *AssetMapperImpl) ToModel(domain *asset.Asset) *models.AssetModel {
	if domain == nil {
		return nil
	}
	return &models.AssetModel{
		ID:                domain.ID(),
		Class:             domain.Class().String(),
		AssetNumber:       domain.AssetNumber(),
		Name:              domain.Name(),
		CategoryID:        domain.CategoryID(),
		BrandID:           domain.BrandID(),
		SerialNumber:      domain.SerialNumber(),
		Specification:     domain.Specification(),
		MaxLicenseCount:   domain.MaxLicenseCount(),
		State:             string(domain.State()),
		PendingApprovalID: domain.PendingApprovalID(),
		CreatorID:         domain.CreatorID(),
		RetiredAt:         domain.RetiredAt(),
		Version:           domain.Version(),
		CreatedAt:         domain.CreatedAt(),
		UpdatedAt:         domain.UpdatedAt(),
	}
}

func (m *AssetMapperImpl) ToDomainList(modelList []*models.AssetModel) []*asset.Asset {
	domains := make([]*asset.Asset, 0, len(modelList))
	for _, model := range modelList {
		if d := m.ToDomain(model); d != nil {
			domains = append(domains, d)
		}
	}
	return domains
}

type NumberRuleMapper interface {
	ToDomain(model *models.AssetNumberRuleModel) *asset.NumberRule
	ToModel(domain *asset.NumberRule) *models.AssetNumberRuleModel
	ToDomainList(modelList []*models.AssetNumberRuleModel) []*asset.NumberRule
}

type NumberRuleMapperImpl struct{}

func NewNumberRuleMapper() NumberRuleMapper {
	return &NumberRuleMapperImpl{}
}

func (m *NumberRuleMapperImpl) ToDomain(model *models.AssetNumberRuleModel) *asset.NumberRule {
	if model == nil {
		return nil
	}
	var class *asset.Class
	if model.ClassName != nil {
		c := asset.Class(*model.ClassName)
		class = &c
	}
	return asset.ReconstructNumberRule(
		model.ID,
		model.Name,
		model.Formula,
		model.AutoIncrementLength,
		model.AutoIncrementCount,
		class,
		model.IsAuto,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *NumberRuleMapperImpl) ToModel(domain *asset.NumberRule) *models.AssetNumberRuleModel {
	if domain == nil {
		return nil
	}
	var className *string
	if c := domain.BoundClass(); c != nil {
		s := c.String()
		className = &s
	}
	return &models.AssetNumberRuleModel{
		ID:                  domain.ID(),
		Name:                domain.Name(),
		Formula:             domain.Formula(),
		AutoIncrementLength: domain.AutoIncrementLength(),
		AutoIncrementCount:  domain.AutoIncrementCount(),
		ClassName:           className,
		IsAuto:              domain.IsAuto(),
		CreatedAt:           domain.CreatedAt(),
		UpdatedAt:           domain.UpdatedAt(),
	}
}

func (m *NumberRuleMapperImpl) ToDomainList(modelList []*models.AssetNumberRuleModel) []*asset.NumberRule {
	domains := make([]*asset.NumberRule, 0, len(modelList))
	for _, model := range modelList {
		if d := m.ToDomain(model); d != nil {
			domains = append(domains, d)
		}
	}
	return domains
}
