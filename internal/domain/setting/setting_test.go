package setting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemSetting(t *testing.T) {
	_, err := NewSystemSetting("asset", "", ValueTypeInt, "")
	assert.ErrorIs(t, err, ErrInvalidSettingKey)

	_, err = NewSystemSetting("asset", "device_retire_flow_id", "float", "")
	assert.ErrorIs(t, err, ErrInvalidValueType)

	s, err := NewSystemSetting("asset", "device_retire_flow_id", ValueTypeInt, "retire flow for devices")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Version())
	assert.False(t, s.HasValue())
}

func TestSystemSetting_SetValue(t *testing.T) {
	s, err := NewSystemSetting("asset", "software_retire_flow_id", ValueTypeInt, "")
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetValue("abc", 1), ErrInvalidValueType)

	require.NoError(t, s.SetValue("42", 9))
	v, err := s.GetUintValue()
	require.NoError(t, err)
	assert.Equal(t, uint(42), v)
	assert.Equal(t, uint(9), s.UpdatedBy())
	assert.Equal(t, 2, s.Version())
}
