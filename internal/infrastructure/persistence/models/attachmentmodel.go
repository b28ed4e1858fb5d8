package models

import "time"

// AttachmentModel is the GORM model for the attachments table. ActiveKey is
// non-NULL only while attached; uk_attachments_active therefore allows a single
// live row per (device, target) and any number of detached ones.
type AttachmentModel struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"`
	DeviceID      uint       `gorm:"column:device_id;not null;index:idx_attachments_device_status,priority:1"`
	TargetKind    string     `gorm:"column:target_kind;type:varchar(20);not null;index:idx_attachments_target,priority:1"`
	TargetID      uint       `gorm:"column:target_id;not null;index:idx_attachments_target,priority:2"`
	Status        string     `gorm:"column:status;type:varchar(20);not null;index:idx_attachments_device_status,priority:2"`
	ActiveKey     *string    `gorm:"column:active_key;type:varchar(100);uniqueIndex:uk_attachments_active"`
	CreatorID     uint       `gorm:"column:creator_id;not null"`
	Comment       string     `gorm:"column:comment;type:varchar(500)"`
	DetachedBy    *uint      `gorm:"column:detached_by"`
	DetachComment string     `gorm:"column:detach_comment;type:varchar(500)"`
	DetachedAt    *time.Time `gorm:"column:detached_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (AttachmentModel) TableName() string {
	return "attachments"
}

type AttachmentHistoryModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	AttachmentID uint      `gorm:"column:attachment_id;not null;index"`
	DeviceID     uint      `gorm:"column:device_id;not null;index"`
	TargetKind   string    `gorm:"column:target_kind;type:varchar(20);not null"`
	TargetID     uint      `gorm:"column:target_id;not null"`
	Action       string    `gorm:"column:action;type:varchar(20);not null"`
	ActorID      uint      `gorm:"column:actor_id;not null"`
	Comment      string    `gorm:"column:comment;type:varchar(500)"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (AttachmentHistoryModel) TableName() string {
	return "attachment_history"
}
