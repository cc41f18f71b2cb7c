package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/albert-jeong/auto-class/config"
	"github.com/albert-jeong/auto-class/internal/api/handler"
	"github.com/albert-jeong/auto-class/internal/api/middleware"
)

// uploadOverheadBytes multipart 边界与表单字段的额外余量
const uploadOverheadBytes = 64 << 10

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时限流中间件直接放行（Redis 未启用或不可用）
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rateLimit := middleware.RateLimit(limiter, cfg.Redis.RateLimit, cfg.Redis.RateWindow, logger)
	jsonLimit := middleware.BodyLimit(cfg.Server.MaxBodyBytes)
	uploadLimit := middleware.BodyLimit(cfg.Catalog.MaxUploadBytes + uploadOverheadBytes)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程目录模块
		catalogs := v1.Group("/catalogs")
		{
			catalogs.POST("", uploadLimit, rateLimit, h.Catalog.ImportCatalog)
			catalogs.GET("", h.Catalog.ListCatalogs)
			catalogs.GET("/:id", h.Catalog.GetCatalog)
			catalogs.DELETE("/:id", h.Catalog.DeleteCatalog)
			catalogs.GET("/:id/subjects", h.Catalog.ListSubjects)
			catalogs.GET("/:id/recommendations", h.Recommendation.ListByCatalog)
		}

		// 排课推荐模块
		recommendations := v1.Group("/recommendations")
		{
			recommendations.POST("", jsonLimit, rateLimit, h.Recommendation.CreateRecommendation)
			recommendations.GET("/:id", h.Recommendation.GetRecommendation)

			// 导出模块
			recommendations.GET("/:id/export.xlsx", h.Export.ExportWorkbook)
			recommendations.GET("/:id/export.ics", h.Export.ExportCalendar)
		}
	}

	return r
}
