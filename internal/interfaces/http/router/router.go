// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foligo-api/internal/config"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/infrastructure/persistence/redis"
	"foligo-api/internal/interfaces/http/handler"
	"foligo-api/internal/interfaces/http/middleware"
)

// RouterHandlers 路由所需的全部处理器
type RouterHandlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Project   *handler.ProjectHandler
	Content   *handler.ContentHandler
	Taxonomy  *handler.TaxonomyHandler
	Media     *handler.MediaHandler
	Assistant *handler.AssistantHandler
	Webhook   *handler.WebhookHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers *RouterHandlers
	txMgr    repository.Transactor
	redis    *redis.Client
}

// New 创建新的路由器
func New(cfg *config.Config, handlers *RouterHandlers, txMgr repository.Transactor, redisClient *redis.Client) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		cfg:      cfg,
		handlers: handlers,
		txMgr:    txMgr,
		redis:    redisClient,
	}

	r.setupMiddleware()
	r.setupRoutes()
	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.Use(middleware.Audit())
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.engine.Group("/v1")

	// 认证中间件：公开路径豁免
	v1.Use(middleware.Auth(middleware.AuthConfig{
		Secret:  r.cfg.Security.JWT.Secret,
		Issuer:  r.cfg.Security.JWT.Issuer,
		Enabled: true,
		SkipPaths: []string{
			"/v1/auth",
			"/v1/sites",
			"/v1/webhooks",
		},
	}))
	v1.Use(middleware.UserContext())

	v1.Use(middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
		Enabled:           r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
		Burst:             r.cfg.Security.RateLimit.Burst,
	}, r.redis.Redis()))

	// 请求级事务（助手与 Webhook 路径在中间件内豁免）
	v1.Use(middleware.DBTransaction(r.txMgr))

	RegisterV1Routes(v1, r.handlers)
}
