package common

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/testutil"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		errType  string
		contains string
	}{
		{"conflict", attachment.ErrLicenseExhausted, http.StatusConflict, "conflict", attachment.ErrLicenseExhausted.Error()},
		{"not found", fmt.Errorf("asset 9: %w", asset.ErrAssetNotFound), http.StatusNotFound, "not_found", "asset 9"},
		{"validation", asset.ErrRetireFlowMissing, http.StatusBadRequest, "validation_error", asset.ErrRetireFlowMissing.Error()},
		{"storage", fmt.Errorf("failed to get asset: no such table: assets"), http.StatusInternalServerError, "internal_error", "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodGet, "/assets/9", nil)
			RespondError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.errType, resp.Error.Type)
			assert.Contains(t, resp.Error.Message, tt.contains)
			assert.NotContains(t, resp.Error.Message, "no such table")
		})
	}
}
