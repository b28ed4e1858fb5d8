package dto

import (
	"time"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
)

type AssetDTO struct {
	ID                uint       `json:"id"`
	Class             string     `json:"class"`
	AssetNumber       string     `json:"asset_number"`
	Name              string     `json:"name"`
	CategoryID        uint       `json:"category_id,omitempty"`
	BrandID           uint       `json:"brand_id,omitempty"`
	SerialNumber      string     `json:"serial_number,omitempty"`
	Specification     string     `json:"specification,omitempty"`
	MaxLicenseCount   int        `json:"max_license_count"`
	State             string     `json:"state"`
	PendingApprovalID string     `json:"pending_approval_id,omitempty"`
	CreatorID         uint       `json:"creator_id"`
	RetiredAt         *time.Time `json:"retired_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type AttachmentDTO struct {
	ID            uint       `json:"id"`
	DeviceID      uint       `json:"device_id"`
	TargetKind    string     `json:"target_kind"`
	TargetID      uint       `json:"target_id"`
	Status        string     `json:"status"`
	CreatorID     uint       `json:"creator_id"`
	Comment       string     `json:"comment,omitempty"`
	DetachedBy    *uint      `json:"detached_by,omitempty"`
	DetachComment string     `json:"detach_comment,omitempty"`
	DetachedAt    *time.Time `json:"detached_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type HistoryEntryDTO struct {
	ID           uint      `json:"id"`
	AttachmentID uint      `json:"attachment_id"`
	DeviceID     uint      `json:"device_id"`
	TargetKind   string    `json:"target_kind"`
	TargetID     uint      `json:"target_id"`
	Action       string    `json:"action"`
	ActorID      uint      `json:"actor_id"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type LicenseUsageDTO struct {
	SoftwareID      uint  `json:"software_id"`
	Used            int64 `json:"used"`
	MaxLicenseCount int   `json:"max_license_count"`
	// Available is -1 for unbounded software.
	Available int64 `json:"available"`
}

type NumberRuleDTO struct {
	ID                  uint      `json:"id"`
	Name                string    `json:"name"`
	Formula             string    `json:"formula"`
	AutoIncrementLength int       `json:"auto_increment_length"`
	AutoIncrementCount  int64     `json:"auto_increment_count"`
	Class               *string   `json:"class,omitempty"`
	IsAuto              bool      `json:"is_auto"`
	Preview             string    `json:"preview"`
	CreatedAt           time.Time `json:"created_at"`
}

type RetirementRequestDTO struct {
	ApprovalID string `json:"approval_id"`
	AssetID    uint   `json:"asset_id"`
	FlowID     uint   `json:"flow_id"`
	FlowName   string `json:"flow_name"`
}

type BatchItemResultDTO struct {
	ID    uint   `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func ToAssetDTO(a *asset.Asset) *AssetDTO {
	if a == nil {
		return nil
	}
	return &AssetDTO{
		ID:                a.ID(),
		Class:             a.Class().String(),
		AssetNumber:       a.AssetNumber(),
		Name:              a.Name(),
		CategoryID:        a.CategoryID(),
		BrandID:           a.BrandID(),
		SerialNumber:      a.SerialNumber(),
		Specification:     a.Specification(),
		MaxLicenseCount:   a.MaxLicenseCount(),
		State:             string(a.State()),
		PendingApprovalID: a.PendingApprovalID(),
		CreatorID:         a.CreatorID(),
		RetiredAt:         a.RetiredAt(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}

func ToAssetDTOs(list []*asset.Asset) []*AssetDTO {
	out := make([]*AssetDTO, 0, len(list))
	for _, a := range list {
		out = append(out, ToAssetDTO(a))
	}
	return out
}

func ToAttachmentDTO(a *attachment.Attachment) *AttachmentDTO {
	if a == nil {
		return nil
	}
	return &AttachmentDTO{
		ID:            a.ID(),
		DeviceID:      a.DeviceID(),
		TargetKind:    string(a.TargetKind()),
		TargetID:      a.TargetID(),
		Status:        string(a.Status()),
		CreatorID:     a.CreatorID(),
		Comment:       a.Comment(),
		DetachedBy:    a.DetachedBy(),
		DetachComment: a.DetachComment(),
		DetachedAt:    a.DetachedAt(),
		CreatedAt:     a.CreatedAt(),
	}
}

func ToAttachmentDTOs(list []*attachment.Attachment) []*AttachmentDTO {
	out := make([]*AttachmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, ToAttachmentDTO(a))
	}
	return out
}

func ToHistoryDTOs(list []*attachment.HistoryEntry) []*HistoryEntryDTO {
	out := make([]*HistoryEntryDTO, 0, len(list))
	for _, h := range list {
		out = append(out, &HistoryEntryDTO{
			ID:           h.ID,
			AttachmentID: h.AttachmentID,
			DeviceID:     h.DeviceID,
			TargetKind:   string(h.TargetKind),
			TargetID:     h.TargetID,
			Action:       string(h.Action),
			ActorID:      h.ActorID,
			Comment:      h.Comment,
			CreatedAt:    h.CreatedAt,
		})
	}
	return out
}

func ToNumberRuleDTO(r *asset.NumberRule, preview string) *NumberRuleDTO {
	if r == nil {
		return nil
	}
	out := &NumberRuleDTO{
		ID:                  r.ID(),
		Name:                r.Name(),
		Formula:             r.Formula(),
		AutoIncrementLength: r.AutoIncrementLength(),
		AutoIncrementCount:  r.AutoIncrementCount(),
		IsAuto:              r.IsAuto(),
		Preview:             preview,
		CreatedAt:           r.CreatedAt(),
	}
	if c := r.BoundClass(); c != nil {
		s := c.String()
		out.Class = &s
	}
	return out
}
