package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/albert-jeong/auto-class/internal/model"
)

// RecommendationRepository 排课推荐数据访问接口
type RecommendationRepository interface {
	Create(ctx context.Context, rec *model.Recommendation) error
	GetByID(ctx context.Context, id string) (*model.Recommendation, error)
	ListByCatalog(ctx context.Context, catalogID string, offset, limit int) ([]model.Recommendation, int64, error)
}

type recommendationRepo struct {
	db *gorm.DB
}

// NewRecommendationRepo 创建 RecommendationRepository 实例
func NewRecommendationRepo(db *gorm.DB) RecommendationRepository {
	return &recommendationRepo{db: db}
}

func (r *recommendationRepo) Create(ctx context.Context, rec *model.Recommendation) error {
	return r.db.WithContext(ctx).Omit("Catalog").Create(rec).Error
}

func (r *recommendationRepo) GetByID(ctx context.Context, id string) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := r.db.WithContext(ctx).
		Where("recommendation_id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByCatalog 列表不加载结果快照，避免大 JSON 列的开销
func (r *recommendationRepo) ListByCatalog(ctx context.Context, catalogID string, offset, limit int) ([]model.Recommendation, int64, error) {
	var recs []model.Recommendation
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Recommendation{}).Where("catalog_id = ?", catalogID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Omit("result").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&recs).Error; err != nil {
		return nil, 0, err
	}

	return recs, total, nil
}
