package handler

import (
	"github.com/albert-jeong/auto-class/config"
	"github.com/albert-jeong/auto-class/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Catalog        *CatalogHandler
	Recommendation *RecommendationHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Catalog:        NewCatalogHandler(svc.Catalog, cfg.Catalog.MaxUploadBytes),
		Recommendation: NewRecommendationHandler(svc.Recommendation),
		Export:         NewExportHandler(svc.Export),
	}
}
