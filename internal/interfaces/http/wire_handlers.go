package http

import (
	"github.com/assetdesk/assetdesk/internal/infrastructure/auth"
	"github.com/assetdesk/assetdesk/internal/infrastructure/ratelimit"
	approvalHandlers "github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/approval"
	assetHandlers "github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/asset"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	assetHandler      *assetHandlers.AssetHandler
	numberRuleHandler *assetHandlers.NumberRuleHandler
	approvalHandler   *approvalHandlers.Handler
}

// ============================================================
// Section 4: Handlers and middlewares
// ============================================================

func (c *Container) initHandlers() {
	u := c.ucs
	cfg := c.cfg

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)

	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}
	c.rateLimiter = middleware.NewRateLimiter(limiter, ratelimit.Limits{PerMinute: cfg.Server.RateLimitPerMinute}, c.log)

	c.hdlrs = &allHandlers{
		assetHandler: assetHandlers.NewAssetHandler(
			u.createAssetUC, u.getAssetUC, u.listAssetsUC,
			u.attachUC, u.attachSoftwareUC, u.detachUC, u.batchDetachUC,
			u.listAttachmentsUC, u.attachmentHistoryUC, u.licenseUsageUC,
			u.forceRetireUC, u.requestRetireUC, c.log,
		),
		numberRuleHandler: assetHandlers.NewNumberRuleHandler(
			u.createNumberRuleUC, u.listNumberRulesUC, u.bindNumberRuleUC, u.unbindNumberRuleUC,
		),
		approvalHandler: approvalHandlers.NewHandler(
			u.createFlowUC, u.listFlowsUC, u.deleteFlowUC,
			u.setRetireFlowUC, u.getRetireFlowUC, u.getFormUC, u.resolveFormUC,
		),
	}
}
