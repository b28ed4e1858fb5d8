package asset

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assetdesk/assetdesk/internal/application/asset/usecases"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/common"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type NumberRuleHandler struct {
	createUC usecases.CreateNumberRuleExecutor
	listUC   usecases.ListNumberRulesExecutor
	bindUC   usecases.BindNumberRuleExecutor
	unbindUC usecases.UnbindNumberRuleExecutor
}

func NewNumberRuleHandler(
	createUC usecases.CreateNumberRuleExecutor,
	listUC usecases.ListNumberRulesExecutor,
	bindUC usecases.BindNumberRuleExecutor,
	unbindUC usecases.UnbindNumberRuleExecutor,
) *NumberRuleHandler {
	return &NumberRuleHandler{createUC: createUC, listUC: listUC, bindUC: bindUC, unbindUC: unbindUC}
}

// CreateRule handles POST /number-rules
func (h *NumberRuleHandler) CreateRule(c *gin.Context) {
	var req CreateNumberRuleRequest
	if !common.BindJSON(c, &req) {
		return
	}
	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateNumberRuleCommand{
		Name:                req.Name,
		Formula:             req.Formula,
		AutoIncrementLength: req.AutoIncrementLength,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Number rule created successfully")
}

// ListRules handles GET /number-rules
func (h *NumberRuleHandler) ListRules(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// BindRule handles PUT /number-rules/bindings/:class
func (h *NumberRuleHandler) BindRule(c *gin.Context) {
	var req BindNumberRuleRequest
	if !common.BindJSON(c, &req) {
		return
	}
	result, err := h.bindUC.Execute(c.Request.Context(), usecases.BindNumberRuleCommand{
		Class:  c.Param("class"),
		RuleID: req.RuleID,
		IsAuto: req.IsAuto,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Number rule bound", result)
}

// UnbindRule handles DELETE /number-rules/bindings/:class
func (h *NumberRuleHandler) UnbindRule(c *gin.Context) {
	if err := h.unbindUC.Execute(c.Request.Context(), c.Param("class")); err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Number rule unbound", nil)
}
