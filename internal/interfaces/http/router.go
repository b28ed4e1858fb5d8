package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/assetdesk/assetdesk/internal/infrastructure/config"
	"github.com/assetdesk/assetdesk/internal/infrastructure/metrics"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/middleware"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/routes"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.health)
	if cfg.Metrics.Enabled {
		r.engine.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	r.setupAssetRoutes()
	r.setupApprovalRoutes()
}

func (r *Router) setupAssetRoutes() {
	routes.SetupAssetRoutes(r.engine, &routes.AssetRouteConfig{
		AssetHandler:      r.hdlrs.assetHandler,
		NumberRuleHandler: r.hdlrs.numberRuleHandler,
		AuthMiddleware:    r.authMiddleware,
		RateLimiter:       r.rateLimiter,
	})
}

func (r *Router) setupApprovalRoutes() {
	routes.SetupApprovalRoutes(r.engine, &routes.ApprovalRouteConfig{
		Handler:        r.hdlrs.approvalHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

// health reports liveness plus database and Redis reachability.
func (r *Router) health(c *gin.Context) {
	status := gin.H{"status": "ok", "database": "ok"}
	code := http.StatusOK

	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		r.log.Warnw("health check: database unreachable", "error", err)
		status["status"] = "degraded"
		status["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	}

	if r.redis != nil {
		status["redis"] = "ok"
		if err := r.redis.Ping(c.Request.Context()).Err(); err != nil {
			r.log.Warnw("health check: redis unreachable", "error", err)
			status["redis"] = "unreachable"
		}
	}

	utils.SuccessResponse(c, code, "", status)
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
