package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/albert-jeong/auto-class/internal/model"
)

const offeringBatchSize = 500

// OfferingRepository 开课班数据访问接口
type OfferingRepository interface {
	CreateBatch(ctx context.Context, offerings []model.CatalogOffering) error
	// ListByCatalog 按目录原始行序返回，保证排课的稳定平局顺序
	ListByCatalog(ctx context.Context, catalogID string) ([]model.CatalogOffering, error)
	// ListSubjects 某类别下的去重科目名，按首次出现顺序
	ListSubjects(ctx context.Context, catalogID, category string) ([]string, error)
}

type offeringRepo struct {
	db *gorm.DB
}

// NewOfferingRepo 创建 OfferingRepository 实例
func NewOfferingRepo(db *gorm.DB) OfferingRepository {
	return &offeringRepo{db: db}
}

func (r *offeringRepo) CreateBatch(ctx context.Context, offerings []model.CatalogOffering) error {
	if len(offerings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(offerings, offeringBatchSize).Error
}

func (r *offeringRepo) ListByCatalog(ctx context.Context, catalogID string) ([]model.CatalogOffering, error) {
	var offerings []model.CatalogOffering
	err := r.db.WithContext(ctx).
		Where("catalog_id = ?", catalogID).
		Order("seq ASC").
		Find(&offerings).Error
	return offerings, err
}

func (r *offeringRepo) ListSubjects(ctx context.Context, catalogID, category string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.CatalogOffering{}).
		Select("subject_name").
		Where("catalog_id = ? AND category = ?", catalogID, category).
		Group("subject_name").
		Order("MIN(seq) ASC").
		Pluck("subject_name", &names).Error
	return names, err
}
