package service

import (
	"go.uber.org/zap"

	"github.com/albert-jeong/auto-class/config"
	"github.com/albert-jeong/auto-class/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Catalog        CatalogService
	Recommendation RecommendationService
	Export         ExportService
}

// NewService 创建 Service 聚合；cache 为 nil 时推荐结果不缓存
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache RecommendationCache,
	logger *zap.Logger,
) *Service {
	return &Service{
		Catalog:        NewCatalogService(cfg, repo, cache, logger),
		Recommendation: NewRecommendationService(cfg, repo, cache, logger),
		Export:         NewExportService(cfg, repo, logger),
	}
}
