package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/albert-jeong/auto-class/config"
	"github.com/albert-jeong/auto-class/internal/catalog"
	"github.com/albert-jeong/auto-class/internal/dto"
	"github.com/albert-jeong/auto-class/internal/model"
	"github.com/albert-jeong/auto-class/internal/planner"
	"github.com/albert-jeong/auto-class/internal/repository"
)

// ── 目录模块业务错误 ──

var (
	ErrCatalogNotFound          = errors.New("课程目录不存在")
	ErrCatalogEmpty             = errors.New("课程目录中没有开课班")
	ErrCatalogUnsupportedFormat = errors.New("不支持的目录文件格式，仅支持 .txt/.tsv/.csv/.xlsx")
	ErrCatalogUnknownEncoding   = errors.New("不支持的文本编码")
	ErrCatalogBadHeader         = errors.New("目录表头缺少必需列（类别、科目名称、班级代码、上课时间）")
	ErrCatalogParseFail         = errors.New("目录文件解析失败")
)

// CatalogService 课程目录业务接口
type CatalogService interface {
	// Import 解析上传的目录文件并持久化
	Import(ctx context.Context, r io.Reader, filename string, req *dto.ImportCatalogRequest) (*dto.CatalogResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CatalogResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.CatalogResponse, int64, error)
	// Delete 软删除目录并清除其推荐缓存
	Delete(ctx context.Context, id string) error
	// ListSubjects 某类别下的去重科目名（默认 elective，供选课界面使用）
	ListSubjects(ctx context.Context, id, category string) ([]string, error)
}

type catalogService struct {
	cfg    *config.Config
	repo   *repository.Repository
	cache  RecommendationCache
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例；cache 可为 nil
func NewCatalogService(cfg *config.Config, repo *repository.Repository, cache RecommendationCache, logger *zap.Logger) CatalogService {
	return &catalogService{cfg: cfg, repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Import ──────────────────────

func (s *catalogService) Import(ctx context.Context, r io.Reader, filename string, req *dto.ImportCatalogRequest) (*dto.CatalogResponse, error) {
	format, err := catalog.FormatFromFilename(filename)
	if err != nil {
		return nil, ErrCatalogUnsupportedFormat
	}

	encoding := req.Encoding
	if encoding == "" {
		encoding = s.cfg.Catalog.DefaultEncoding
	}

	offerings, err := catalog.Load(r, format, catalog.Options{Encoding: encoding})
	if err != nil {
		return nil, translateLoadError(err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	c := &model.Catalog{
		Name:           name,
		SourceFilename: filepath.Base(filename),
		Format:         string(format),
		OfferingCount:  len(offerings),
		GlobalMean:     planner.GlobalMeanRating(offerings),
	}
	for _, o := range offerings {
		switch o.Category {
		case planner.CategoryMandatory:
			c.MandatoryCount++
		case planner.CategoryElective:
			c.ElectiveCount++
		case planner.CategoryGeneral:
			c.GeneralCount++
		}
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Catalog.Create(ctx, c); err != nil {
			return err
		}
		rows := make([]model.CatalogOffering, 0, len(offerings))
		for _, o := range offerings {
			rows = append(rows, model.NewCatalogOffering(c.CatalogID, o))
		}
		return tx.Offering.CreateBatch(ctx, rows)
	})
	if err != nil {
		s.logger.Error("保存课程目录失败", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程目录已导入",
		zap.String("catalog_id", c.CatalogID),
		zap.Int("offerings", c.OfferingCount),
		zap.Float64("global_mean", c.GlobalMean),
	)
	return toCatalogResponse(c), nil
}

func translateLoadError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrUnsupportedFormat):
		return ErrCatalogUnsupportedFormat
	case errors.Is(err, catalog.ErrUnknownEncoding):
		return ErrCatalogUnknownEncoding
	case errors.Is(err, catalog.ErrBadHeader):
		return ErrCatalogBadHeader
	case errors.Is(err, catalog.ErrEmpty):
		return ErrCatalogEmpty
	default:
		return fmt.Errorf("%w: %v", ErrCatalogParseFail, err)
	}
}

// ────────────────────── Query ──────────────────────

func (s *catalogService) GetByID(ctx context.Context, id string) (*dto.CatalogResponse, error) {
	c, err := s.getCatalog(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCatalogResponse(c), nil
}

func (s *catalogService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.CatalogResponse, int64, error) {
	catalogs, total, err := s.repo.Catalog.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询目录列表失败", zap.Error(err))
		return nil, 0, err
	}
	list := make([]dto.CatalogResponse, 0, len(catalogs))
	for i := range catalogs {
		list = append(list, *toCatalogResponse(&catalogs[i]))
	}
	return list, total, nil
}

func (s *catalogService) ListSubjects(ctx context.Context, id, category string) ([]string, error) {
	if _, err := s.getCatalog(ctx, id); err != nil {
		return nil, err
	}
	if category == "" {
		category = string(planner.CategoryElective)
	}
	names, err := s.repo.Offering.ListSubjects(ctx, id, category)
	if err != nil {
		s.logger.Error("查询科目列表失败", zap.String("catalog_id", id), zap.Error(err))
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ────────────────────── Delete ──────────────────────

func (s *catalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCatalogNotFound
		}
		s.logger.Error("删除目录失败", zap.String("catalog_id", id), zap.Error(err))
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateCatalog(ctx, id); err != nil {
			s.logger.Warn("清除推荐缓存失败", zap.String("catalog_id", id), zap.Error(err))
		}
	}
	return nil
}

// ── 辅助函数 ──

func (s *catalogService) getCatalog(ctx context.Context, id string) (*model.Catalog, error) {
	c, err := s.repo.Catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogNotFound
		}
		s.logger.Error("查询目录失败", zap.String("catalog_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func toCatalogResponse(c *model.Catalog) *dto.CatalogResponse {
	return &dto.CatalogResponse{
		ID:             c.CatalogID,
		Name:           c.Name,
		SourceFilename: c.SourceFilename,
		Format:         c.Format,
		OfferingCount:  c.OfferingCount,
		MandatoryCount: c.MandatoryCount,
		ElectiveCount:  c.ElectiveCount,
		GeneralCount:   c.GeneralCount,
		GlobalMean:     c.GlobalMean,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}
