package routes

import (
	"github.com/gin-gonic/gin"

	assethandlers "github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/asset"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/middleware"
)

type AssetRouteConfig struct {
	AssetHandler      *assethandlers.AssetHandler
	NumberRuleHandler *assethandlers.NumberRuleHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RateLimiter       *middleware.RateLimiter
}

func SetupAssetRoutes(engine *gin.Engine, config *AssetRouteConfig) {
	auth := config.AuthMiddleware.RequireAuth()
	limit := config.RateLimiter.Limit()

	assets := engine.Group("/assets")
	assets.Use(auth)
	{
		assets.POST("", limit, config.AssetHandler.CreateAsset)
		assets.GET("", config.AssetHandler.ListAssets)

		assets.GET("/:id/attachments", config.AssetHandler.ListAttachments)
		assets.POST("/:id/attachments", limit, config.AssetHandler.Attach)
		assets.POST("/:id/retire", limit, config.AssetHandler.ForceRetire)
		assets.POST("/:id/retire-requests", limit, config.AssetHandler.RequestRetire)
		assets.GET("/:id/license", config.AssetHandler.LicenseUsage)

		assets.GET("/:id", config.AssetHandler.GetAsset)
	}

	software := engine.Group("/software")
	software.Use(auth)
	{
		software.POST("/:id/devices", limit, config.AssetHandler.AttachSoftware)
	}

	attachments := engine.Group("/attachments")
	attachments.Use(auth)
	{
		// batch-detach must be registered before /:id routes
		attachments.POST("/batch-detach", limit, config.AssetHandler.BatchDetach)
		attachments.POST("/:id/detach", limit, config.AssetHandler.Detach)
		attachments.GET("/:id/history", config.AssetHandler.AttachmentHistory)
	}

	rules := engine.Group("/number-rules")
	rules.Use(auth)
	{
		rules.POST("", config.NumberRuleHandler.CreateRule)
		rules.GET("", config.NumberRuleHandler.ListRules)
		rules.PUT("/bindings/:class", config.NumberRuleHandler.BindRule)
		rules.DELETE("/bindings/:class", config.NumberRuleHandler.UnbindRule)
	}
}
