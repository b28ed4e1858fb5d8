package common

import (
	"github.com/gin-gonic/gin"

	appcommon "github.com/assetdesk/assetdesk/internal/application/common"
	"github.com/assetdesk/assetdesk/internal/shared/constants"
	"github.com/assetdesk/assetdesk/internal/shared/errors"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

// RespondError writes err with the status its domain meaning implies. Errors
// outside the domain vocabulary end up as a generic 500.
func RespondError(c *gin.Context, err error) {
	if appErr := appcommon.ToAppError(err); errors.IsAppError(appErr) {
		utils.ErrorResponseWithError(c, appErr)
		return
	}
	_ = c.Error(err)
	utils.ErrorResponseWithError(c, err)
}

// BindJSON decodes the body into req and answers 400 on failure.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return false
	}
	return true
}

// CurrentUserID returns the authenticated operator, answering 401 when the
// request carries none.
func CurrentUserID(c *gin.Context) (uint, bool) {
	id := c.GetUint(constants.ContextKeyUserID)
	if id == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return 0, false
	}
	return id, true
}
