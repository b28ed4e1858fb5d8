package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FlowModel is soft-deleted so that forms keep resolving their flow id while
// the flow itself stops being selectable.
type FlowModel struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	Name        string         `gorm:"column:name;type:varchar(100);not null"`
	Description string         `gorm:"column:description;type:varchar(500)"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (FlowModel) TableName() string {
	return "flows"
}

type ApprovalFormPayload struct {
	AssetID     uint   `json:"asset_id"`
	AssetClass  string `json:"asset_class"`
	AssetNumber string `json:"asset_number"`
}

type ApprovalFormModel struct {
	ID             uint                                   `gorm:"primaryKey;autoIncrement"`
	UUID           string                                 `gorm:"column:uuid;type:varchar(36);not null;uniqueIndex"`
	FlowID         uint                                   `gorm:"column:flow_id;not null;index"`
	FlowName       string                                 `gorm:"column:flow_name;type:varchar(100);not null"`
	Name           string                                 `gorm:"column:name;type:varchar(200);not null"`
	ApplicantID    uint                                   `gorm:"column:applicant_id;not null;index"`
	Comment        string                                 `gorm:"column:comment;type:varchar(500)"`
	Payload        datatypes.JSONType[ApprovalFormPayload] `gorm:"column:payload;type:json"`
	Status         string                                 `gorm:"column:status;type:varchar(20);not null;index"`
	ResolvedBy     *uint                                  `gorm:"column:resolved_by"`
	ResolveComment string                                 `gorm:"column:resolve_comment;type:varchar(500)"`
	ResolvedAt     *time.Time                             `gorm:"column:resolved_at"`
	CreatedAt      time.Time                              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                              `gorm:"column:updated_at;autoUpdateTime"`
}

func (ApprovalFormModel) TableName() string {
	return "approval_forms"
}
