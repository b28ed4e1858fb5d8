package setting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/assetdesk/assetdesk/internal/shared/biztime"
)

type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
)

// SystemSetting is a typed key/value pair grouped by category.
type SystemSetting struct {
	id          uint
	category    string
	key         string
	value       string
	valueType   ValueType
	description string
	updatedBy   uint
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSystemSetting(category, key string, valueType ValueType, description string) (*SystemSetting, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if key == "" {
		return nil, ErrInvalidSettingKey
	}
	if !isValidValueType(valueType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}

	now := biztime.NowUTC()
	return &SystemSetting{
		category:    category,
		key:         key,
		valueType:   valueType,
		description: description,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructSystemSetting rebuilds a setting from persistence.
func ReconstructSystemSetting(
	id uint,
	category, key, value string,
	valueType ValueType,
	description string,
	updatedBy uint,
	version int,
	createdAt, updatedAt time.Time,
) *SystemSetting {
	return &SystemSetting{
		id:          id,
		category:    category,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		updatedBy:   updatedBy,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *SystemSetting) ID() uint             { return s.id }
func (s *SystemSetting) Category() string     { return s.category }
func (s *SystemSetting) Key() string          { return s.key }
func (s *SystemSetting) Value() string        { return s.value }
func (s *SystemSetting) ValueType() ValueType { return s.valueType }
func (s *SystemSetting) Description() string  { return s.description }
func (s *SystemSetting) UpdatedBy() uint      { return s.updatedBy }
func (s *SystemSetting) Version() int         { return s.version }
func (s *SystemSetting) CreatedAt() time.Time { return s.createdAt }
func (s *SystemSetting) UpdatedAt() time.Time { return s.updatedAt }

func (s *SystemSetting) SetID(id uint) {
	s.id = id
}

func (s *SystemSetting) HasValue() bool {
	return s.value != ""
}

func (s *SystemSetting) GetUintValue() (uint, error) {
	if s.value == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s.value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidValueType, err)
	}
	return uint(n), nil
}

// SetValue validates value against the declared type and bumps the version.
func (s *SystemSetting) SetValue(value string, updatedBy uint) error {
	switch s.valueType {
	case ValueTypeInt:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil && value != "" {
			return fmt.Errorf("%w: %q is not an int", ErrInvalidValueType, value)
		}
	case ValueTypeBool:
		if _, err := strconv.ParseBool(value); err != nil && value != "" {
			return fmt.Errorf("%w: %q is not a bool", ErrInvalidValueType, value)
		}
	}
	s.value = value
	s.updatedBy = updatedBy
	s.version++
	s.updatedAt = biztime.NowUTC()
	return nil
}

func isValidValueType(vt ValueType) bool {
	switch vt {
	case ValueTypeString, ValueTypeInt, ValueTypeBool:
		return true
	}
	return false
}
