package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	conflict := NewConflictError("asset already attached", "device 3")
	assert.Equal(t, http.StatusConflict, conflict.Code)
	assert.Equal(t, "conflict: asset already attached (device 3)", conflict.Error())

	notFound := NewNotFoundError("software not found")
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.Empty(t, notFound.Details)
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewValidationError("bad class"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsValidationError(wrapped))
	assert.False(t, IsConflictError(wrapped))
	assert.Nil(t, GetAppError(errors.New("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Error 1062 (23000): Duplicate entry 'd:1:software:2' for key 'uk_attachments_active'", true},
		{"UNIQUE constraint failed: attachments.active_key", true},
		{"ERROR: duplicate key value violates unique constraint", true},
		{"connection refused", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDuplicateError(errors.New(tt.msg)), tt.msg)
	}
	assert.False(t, IsDuplicateError(nil))
}
