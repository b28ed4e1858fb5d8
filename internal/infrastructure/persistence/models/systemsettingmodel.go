package models

import "time"

type SystemSettingModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Category    string    `gorm:"column:category;type:varchar(100);not null;uniqueIndex:uk_system_settings_category_key,priority:1"`
	SettingKey  string    `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex:uk_system_settings_category_key,priority:2"`
	Value       string    `gorm:"column:value;type:text"`
	ValueType   string    `gorm:"column:value_type;type:varchar(20);not null;default:'string'"`
	Description string    `gorm:"column:description;type:varchar(500)"`
	UpdatedBy   uint      `gorm:"column:updated_by"`
	Version     int       `gorm:"column:version;default:1"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SystemSettingModel) TableName() string {
	return "system_settings"
}

// AllModels lists every table managed by auto-migration.
func AllModels() []any {
	return []any{
		&AssetModel{},
		&AssetNumberRuleModel{},
		&AssetNumberTrackModel{},
		&AttachmentModel{},
		&AttachmentHistoryModel{},
		&FlowModel{},
		&ApprovalFormModel{},
		&SystemSettingModel{},
	}
}
