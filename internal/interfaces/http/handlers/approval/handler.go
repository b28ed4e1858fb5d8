package approval

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assetdesk/assetdesk/internal/application/approval/usecases"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/common"
	"github.com/assetdesk/assetdesk/internal/shared/errors"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

// Handler serves flow configuration and the workflow engine callback.
type Handler struct {
	createFlowUC    usecases.CreateFlowExecutor
	listFlowsUC     usecases.ListFlowsExecutor
	deleteFlowUC    usecases.DeleteFlowExecutor
	setRetireFlowUC usecases.SetRetireFlowExecutor
	getRetireFlowUC usecases.GetRetireFlowExecutor
	getFormUC       usecases.GetFormExecutor
	resolveFormUC   usecases.ResolveFormExecutor
}

func NewHandler(
	createFlowUC usecases.CreateFlowExecutor,
	listFlowsUC usecases.ListFlowsExecutor,
	deleteFlowUC usecases.DeleteFlowExecutor,
	setRetireFlowUC usecases.SetRetireFlowExecutor,
	getRetireFlowUC usecases.GetRetireFlowExecutor,
	getFormUC usecases.GetFormExecutor,
	resolveFormUC usecases.ResolveFormExecutor,
) *Handler {
	return &Handler{
		createFlowUC:    createFlowUC,
		listFlowsUC:     listFlowsUC,
		deleteFlowUC:    deleteFlowUC,
		setRetireFlowUC: setRetireFlowUC,
		getRetireFlowUC: getRetireFlowUC,
		getFormUC:       getFormUC,
		resolveFormUC:   resolveFormUC,
	}
}

// CreateFlow handles POST /flows
func (h *Handler) CreateFlow(c *gin.Context) {
	var req CreateFlowRequest
	if !common.BindJSON(c, &req) {
		return
	}
	result, err := h.createFlowUC.Execute(c.Request.Context(), usecases.CreateFlowCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Flow created successfully")
}

// ListFlows handles GET /flows
func (h *Handler) ListFlows(c *gin.Context) {
	result, err := h.listFlowsUC.Execute(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteFlow handles DELETE /flows/:id
func (h *Handler) DeleteFlow(c *gin.Context) {
	flowID, err := utils.ParseIDParam(c, "id", "flow")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.deleteFlowUC.Execute(c.Request.Context(), flowID); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetRetireFlow handles PUT /retire-flows/:class
func (h *Handler) SetRetireFlow(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		return
	}
	var req SetRetireFlowRequest
	if !common.BindJSON(c, &req) {
		return
	}
	result, err := h.setRetireFlowUC.Execute(c.Request.Context(), usecases.SetRetireFlowCommand{
		Class:     c.Param("class"),
		FlowID:    req.FlowID,
		UpdatedBy: userID,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Retire flow updated", result)
}

// GetRetireFlow handles GET /retire-flows/:class
func (h *Handler) GetRetireFlow(c *gin.Context) {
	result, err := h.getRetireFlowUC.Execute(c.Request.Context(), c.Param("class"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetForm handles GET /approvals/:uuid
func (h *Handler) GetForm(c *gin.Context) {
	formUUID, ok := formUUIDParam(c)
	if !ok {
		return
	}
	result, err := h.getFormUC.Execute(c.Request.Context(), formUUID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ResolveForm handles POST /approvals/:uuid/resolve
func (h *Handler) ResolveForm(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		return
	}
	formUUID, ok := formUUIDParam(c)
	if !ok {
		return
	}
	var req ResolveFormRequest
	if !common.BindJSON(c, &req) {
		return
	}
	result, err := h.resolveFormUC.Execute(c.Request.Context(), usecases.ResolveFormCommand{
		FormUUID: formUUID,
		Outcome:  req.Outcome,
		ActorID:  userID,
		Comment:  req.Comment,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Approval resolved", result)
}

func formUUIDParam(c *gin.Context) (string, bool) {
	formUUID := c.Param("uuid")
	if formUUID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("approval id is required"))
		return "", false
	}
	return formUUID, true
}
