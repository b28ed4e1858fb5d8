package models

import "time"

// AssetModel is the GORM model for the assets table.
type AssetModel struct {
	ID                uint       `gorm:"primaryKey;autoIncrement"`
	Class             string     `gorm:"column:class;type:varchar(20);not null;uniqueIndex:uk_assets_class_number,priority:1;index:idx_assets_class_state,priority:1"`
	AssetNumber       string     `gorm:"column:asset_number;type:varchar(100);not null;uniqueIndex:uk_assets_class_number,priority:2"`
	Name              string     `gorm:"column:name;type:varchar(200);not null"`
	CategoryID        uint       `gorm:"column:category_id;not null;default:0"`
	BrandID           uint       `gorm:"column:brand_id;not null;default:0"`
	SerialNumber      string     `gorm:"column:serial_number;type:varchar(100)"`
	Specification     string     `gorm:"column:specification;type:text"`
	MaxLicenseCount   int        `gorm:"column:max_license_count;not null;default:0"`
	State             string     `gorm:"column:state;type:varchar(30);not null;index:idx_assets_class_state,priority:2"`
	PendingApprovalID string     `gorm:"column:pending_approval_id;type:varchar(36);not null;default:'';index"`
	CreatorID         uint       `gorm:"column:creator_id;not null"`
	RetiredAt         *time.Time `gorm:"column:retired_at"`
	Version           int        `gorm:"column:version;not null;default:1"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (AssetModel) TableName() string {
	return "assets"
}

// AssetNumberRuleModel is the GORM model for asset_number_rules. ClassName is
// NULL while the rule is unbound; the unique index allows one rule per class.
type AssetNumberRuleModel struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement"`
	Name                string    `gorm:"column:name;type:varchar(100);not null"`
	Formula             string    `gorm:"column:formula;type:varchar(200);not null"`
	AutoIncrementLength int       `gorm:"column:auto_increment_length;not null;default:4"`
	AutoIncrementCount  int64     `gorm:"column:auto_increment_count;not null;default:0"`
	ClassName           *string   `gorm:"column:class_name;type:varchar(20);uniqueIndex:uk_asset_number_rules_class"`
	IsAuto              bool      `gorm:"column:is_auto;not null;default:false"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AssetNumberRuleModel) TableName() string {
	return "asset_number_rules"
}

type AssetNumberTrackModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	AssetNumber string    `gorm:"column:asset_number;type:varchar(100);not null"`
	AssetID     uint      `gorm:"column:asset_id;not null;index"`
	Class       string    `gorm:"column:class;type:varchar(20);not null"`
	RuleID      *uint     `gorm:"column:rule_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AssetNumberTrackModel) TableName() string {
	return "asset_number_tracks"
}
