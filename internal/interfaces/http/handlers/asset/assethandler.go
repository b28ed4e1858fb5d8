package asset

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/assetdesk/assetdesk/internal/application/asset/usecases"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/common"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type AssetHandler struct {
	createUC         usecases.CreateAssetExecutor
	getUC            usecases.GetAssetExecutor
	listUC           usecases.ListAssetsExecutor
	attachUC         usecases.AttachExecutor
	attachSoftwareUC usecases.AttachSoftwareExecutor
	detachUC         usecases.DetachExecutor
	batchDetachUC    usecases.BatchDetachExecutor
	listAttachUC     usecases.ListAttachmentsExecutor
	historyUC        usecases.AttachmentHistoryExecutor
	licenseUC        usecases.LicenseUsageExecutor
	forceRetireUC    usecases.ForceRetireExecutor
	requestRetireUC  usecases.RequestRetireExecutor
	logger           logger.Interface
}

func NewAssetHandler(
	createUC usecases.CreateAssetExecutor,
	getUC usecases.GetAssetExecutor,
	listUC usecases.ListAssetsExecutor,
	attachUC usecases.AttachExecutor,
	attachSoftwareUC usecases.AttachSoftwareExecutor,
	detachUC usecases.DetachExecutor,
	batchDetachUC usecases.BatchDetachExecutor,
	listAttachUC usecases.ListAttachmentsExecutor,
	historyUC usecases.AttachmentHistoryExecutor,
	licenseUC usecases.LicenseUsageExecutor,
	forceRetireUC usecases.ForceRetireExecutor,
	requestRetireUC usecases.RequestRetireExecutor,
	logger logger.Interface,
) *AssetHandler {
	return &AssetHandler{
		createUC:         createUC,
		getUC:            getUC,
		listUC:           listUC,
		attachUC:         attachUC,
		attachSoftwareUC: attachSoftwareUC,
		detachUC:         detachUC,
		batchDetachUC:    batchDetachUC,
		listAttachUC:     listAttachUC,
		historyUC:        historyUC,
		licenseUC:        licenseUC,
		forceRetireUC:    forceRetireUC,
		requestRetireUC:  requestRetireUC,
		logger:           logger,
	}
}

// CreateAsset handles POST /assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		return
	}
	var req CreateAssetRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Asset created successfully")
}

// GetAsset handles GET /assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "asset")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListAssets handles GET /assets?class=&state=&page=&page_size=
func (h *AssetHandler) ListAssets(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAssetsQuery{
		Class:    c.Query("class"),
		State:    c.Query("state"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Attach handles POST /assets/:id/attachments
func (h *AssetHandler) Attach(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		return
	}
	deviceID, err := utils.ParseIDParam(c, "id", "device")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req AttachRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.attachUC.Execute(c.Request.Context(), usecases.AttachCommand{
		DeviceID:    deviceID,
		TargetKind:  req.TargetKind,
		TargetID:    req.TargetID,
		RequesterID: userID,
		Comment:     req.Comment,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Attached successfully")
}

// ListAttachments handles GET /assets/:id/attachments?history=true
func (h *AssetHandler) ListAttachments(c *gin.Context) {
	deviceID, err := utils.ParseIDParam(c, "id", "device")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	includeDetached, _ := strconv.ParseBool(c.Query("history"))

	result, err := h.listAttachUC.Execute(c.Request.Context(), deviceID, includeDetached)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AttachSoftware handles POST /software/:id/devices
func (h *AssetHandler) AttachSoftware(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		return
	}
	softwareID, err := utils.ParseIDParam(c, "id", "software")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req AttachSoftwareRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.attachSoftwareUC.Execute(c.Request.Context(), usecases.AttachSoftwareCommand{
		SoftwareID:  softwareID,
		DeviceIDs:   req.DeviceIDs,
		RequesterID: userID,
		Comment:     req.Comment,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Software attached successfully")
}

// Detach handles POST /attachments/:id/detach
func (h *AssetHandler) Detach(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		return
	}
	attachmentID, err := utils.ParseIDParam(c, "id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req CommentRequest
	if c.Request.ContentLength > 0 && !common.BindJSON(c, &req) {
		return
	}

	result, err := h.detachUC.Execute(c.Request.Context(), usecases.DetachCommand{
		AttachmentID: attachmentID,
		RequesterID:  userID,
		Comment:      req.Comment,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Detached successfully", result)
}

// BatchDetach handles POST /attachments/batch-detach
func (h *AssetHandler) BatchDetach(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		return
	}
	var req BatchDetachRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.batchDetachUC.Execute(c.Request.Context(), usecases.BatchDetachCommand{
		AttachmentIDs: req.AttachmentIDs,
		RequesterID:   userID,
		Comment:       req.Comment,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AttachmentHistory handles GET /attachments/:id/history
func (h *AssetHandler) AttachmentHistory(c *gin.Context) {
	attachmentID, err := utils.ParseIDParam(c, "id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.historyUC.Execute(c.Request.Context(), attachmentID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// LicenseUsage handles GET /assets/:id/license
func (h *AssetHandler) LicenseUsage(c *gin.Context) {
	softwareID, err := utils.ParseIDParam(c, "id", "software")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.licenseUC.Execute(c.Request.Context(), softwareID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ForceRetire handles POST /assets/:id/retire
func (h *AssetHandler) ForceRetire(c *gin.Context) {
	cmd, ok := h.retireCommand(c)
	if !ok {
		return
	}
	result, err := h.forceRetireUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Asset retired", result)
}

// RequestRetire handles POST /assets/:id/retire-requests
func (h *AssetHandler) RequestRetire(c *gin.Context) {
	cmd, ok := h.retireCommand(c)
	if !ok {
		return
	}
	result, err := h.requestRetireUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusAccepted, "Retirement submitted for approval", result)
}

func (h *AssetHandler) retireCommand(c *gin.Context) (usecases.RetireCommand, bool) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		return usecases.RetireCommand{}, false
	}
	assetID, err := utils.ParseIDParam(c, "id", "asset")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return usecases.RetireCommand{}, false
	}
	var req CommentRequest
	if c.Request.ContentLength > 0 && !common.BindJSON(c, &req) {
		return usecases.RetireCommand{}, false
	}
	return usecases.RetireCommand{AssetID: assetID, ActorID: userID, Comment: req.Comment}, true
}
