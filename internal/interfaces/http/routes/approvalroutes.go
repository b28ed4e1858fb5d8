package routes

import (
	"github.com/gin-gonic/gin"

	approvalhandlers "github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/approval"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/middleware"
)

type ApprovalRouteConfig struct {
	Handler        *approvalhandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupApprovalRoutes(engine *gin.Engine, config *ApprovalRouteConfig) {
	auth := config.AuthMiddleware.RequireAuth()

	flows := engine.Group("/flows")
	flows.Use(auth)
	{
		flows.POST("", config.Handler.CreateFlow)
		flows.GET("", config.Handler.ListFlows)
		flows.DELETE("/:id", config.Handler.DeleteFlow)
	}

	retireFlows := engine.Group("/retire-flows")
	retireFlows.Use(auth)
	{
		retireFlows.PUT("/:class", config.Handler.SetRetireFlow)
		retireFlows.GET("/:class", config.Handler.GetRetireFlow)
	}

	approvals := engine.Group("/approvals")
	approvals.Use(auth)
	{
		approvals.POST("/:uuid/resolve", config.Handler.ResolveForm)
		approvals.GET("/:uuid", config.Handler.GetForm)
	}
}
