package asset

import (
	"github.com/assetdesk/assetdesk/internal/application/asset/usecases"
)

type CreateAssetRequest struct {
	Class string `json:"class" binding:"required,oneof=device part software"`
	// AssetNumber is required unless the class is auto-numbered.
	AssetNumber     string `json:"asset_number" binding:"max=64"`
	Name            string `json:"name" binding:"required,max=128"`
	CategoryID      uint   `json:"category_id"`
	BrandID         uint   `json:"brand_id"`
	SerialNumber    string `json:"serial_number" binding:"max=128"`
	Specification   string `json:"specification" binding:"max=1000"`
	MaxLicenseCount int    `json:"max_license_count" binding:"min=0"`
}

func (r *CreateAssetRequest) ToCommand(creatorID uint) usecases.CreateAssetCommand {
	return usecases.CreateAssetCommand{
		Class:           r.Class,
		AssetNumber:     r.AssetNumber,
		Name:            r.Name,
		CategoryID:      r.CategoryID,
		BrandID:         r.BrandID,
		SerialNumber:    r.SerialNumber,
		Specification:   r.Specification,
		MaxLicenseCount: r.MaxLicenseCount,
		CreatorID:       creatorID,
	}
}

type AttachRequest struct {
	TargetKind string `json:"target_kind" binding:"required,oneof=part software user"`
	TargetID   uint   `json:"target_id" binding:"required"`
	Comment    string `json:"comment" binding:"max=500"`
}

type AttachSoftwareRequest struct {
	DeviceIDs []uint `json:"device_ids" binding:"required,min=1,max=200,dive,required"`
	Comment   string `json:"comment" binding:"max=500"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"max=500"`
}

type BatchDetachRequest struct {
	AttachmentIDs []uint `json:"attachment_ids" binding:"required,min=1,max=200,dive,required"`
	Comment       string `json:"comment" binding:"max=500"`
}

type CreateNumberRuleRequest struct {
	Name                string `json:"name" binding:"required,max=64"`
	Formula             string `json:"formula" binding:"required,max=128"`
	AutoIncrementLength int    `json:"auto_increment_length" binding:"required,min=1,max=12"`
}

type BindNumberRuleRequest struct {
	RuleID uint `json:"rule_id" binding:"required"`
	IsAuto bool `json:"is_auto"`
}
