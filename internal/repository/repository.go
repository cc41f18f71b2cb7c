package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db             *gorm.DB
	Catalog        CatalogRepository
	Offering       OfferingRepository
	Recommendation RecommendationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		Catalog:        NewCatalogRepo(db),
		Offering:       NewOfferingRepo(db),
		Recommendation: NewRecommendationRepo(db),
	}
}

// Transaction 在单个事务内执行 fn，fn 返回错误时回滚
//
// 未绑定数据库（单元测试中的 mock 聚合）时直接以当前聚合执行 fn。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
