package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/albert-jeong/auto-class/internal/model"
)

// CatalogRepository 课程目录数据访问接口
type CatalogRepository interface {
	Create(ctx context.Context, catalog *model.Catalog) error
	GetByID(ctx context.Context, id string) (*model.Catalog, error)
	List(ctx context.Context, offset, limit int) ([]model.Catalog, int64, error)
	Delete(ctx context.Context, id string) error
}

type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepo 创建 CatalogRepository 实例
func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

// Create 仅写入目录行，开课班由 OfferingRepository 批量写入
func (r *catalogRepo) Create(ctx context.Context, catalog *model.Catalog) error {
	return r.db.WithContext(ctx).Omit("Offerings").Create(catalog).Error
}

func (r *catalogRepo) GetByID(ctx context.Context, id string) (*model.Catalog, error) {
	var catalog model.Catalog
	err := r.db.WithContext(ctx).
		Where("catalog_id = ?", id).
		First(&catalog).Error
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *catalogRepo) List(ctx context.Context, offset, limit int) ([]model.Catalog, int64, error) {
	var catalogs []model.Catalog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Catalog{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&catalogs).Error; err != nil {
		return nil, 0, err
	}

	return catalogs, total, nil
}

// Delete 软删除目录；不存在时返回 gorm.ErrRecordNotFound
func (r *catalogRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("catalog_id = ?", id).
		Delete(&model.Catalog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
