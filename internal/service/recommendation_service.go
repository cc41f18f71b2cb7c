package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/albert-jeong/auto-class/config"
	"github.com/albert-jeong/auto-class/internal/dto"
	"github.com/albert-jeong/auto-class/internal/model"
	"github.com/albert-jeong/auto-class/internal/planner"
	"github.com/albert-jeong/auto-class/internal/repository"
	apperrors "github.com/albert-jeong/auto-class/pkg/errors"
	"github.com/albert-jeong/auto-class/pkg/redis"
)

// ── 推荐模块业务错误 ──

var (
	ErrRecommendationNotFound = errors.New("推荐记录不存在")
	ErrGeneralCountOutOfRange = errors.New("通识课数量超出允许范围")
	ErrRecommendationCorrupt  = errors.New("推荐结果快照损坏")
)

// RecommendationCache 推荐结果缓存，由 pkg/redis.Client 实现
type RecommendationCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	InvalidateCatalog(ctx context.Context, catalogID string) error
}

// RecommendationService 排课推荐业务接口
type RecommendationService interface {
	// Recommend 对指定目录运行排课并保存结果；相同输入命中缓存时直接返回
	Recommend(ctx context.Context, req *dto.CreateRecommendationRequest) (*dto.RecommendationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RecommendationResponse, error)
	ListByCatalog(ctx context.Context, catalogID string, page *dto.PaginationRequest) ([]dto.RecommendationSummary, int64, error)
}

type recommendationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	cache  RecommendationCache
	logger *zap.Logger
}

// NewRecommendationService 创建 RecommendationService 实例；cache 为 nil 时不缓存
func NewRecommendationService(cfg *config.Config, repo *repository.Repository, cache RecommendationCache, logger *zap.Logger) RecommendationService {
	return &recommendationService{cfg: cfg, repo: repo, cache: cache, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Recommend — 排课主流程
// ═══════════════════════════════════════════════════════════
//
//  1. 校验通识数量 → 2. 目录存在性 → 3. 查缓存
//  4. 按 seq 加载开课班并排课 → 5. 保存快照 → 6. 写缓存

func (s *recommendationService) Recommend(ctx context.Context, req *dto.CreateRecommendationRequest) (*dto.RecommendationResponse, error) {
	if req.GeneralCount < 1 || req.GeneralCount > s.cfg.Planner.MaxGeneralCount {
		return nil, fmt.Errorf("%w: 1..%d", ErrGeneralCountOutOfRange, s.cfg.Planner.MaxGeneralCount)
	}

	if _, err := s.repo.Catalog.GetByID(ctx, req.CatalogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogNotFound
		}
		s.logger.Error("查询目录失败", zap.String("catalog_id", req.CatalogID), zap.Error(err))
		return nil, err
	}

	electives := req.Electives
	if electives == nil {
		electives = []string{}
	}
	k := s.cfg.Planner.ShrinkageK
	hash := inputHash(electives, req.GeneralCount, k)
	key := redis.RecommendationKey(req.CatalogID, hash)

	if resp, ok := s.fromCache(ctx, key); ok {
		return resp, nil
	}

	rows, err := s.repo.Offering.ListByCatalog(ctx, req.CatalogID)
	if err != nil {
		s.logger.Error("加载开课班失败", zap.String("catalog_id", req.CatalogID), zap.Error(err))
		return nil, err
	}
	offerings := make([]planner.Offering, 0, len(rows))
	for _, row := range rows {
		offerings = append(offerings, row.ToPlanner())
	}

	result := planner.Build(offerings, electives, req.GeneralCount, planner.WithShrinkageK(k))

	electivesJSON, _ := json.Marshal(electives)
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("序列化推荐结果失败: %w", err)
	}
	rec := &model.Recommendation{
		CatalogID:    req.CatalogID,
		InputHash:    hash,
		Electives:    datatypes.JSON(electivesJSON),
		GeneralCount: req.GeneralCount,
		ShrinkageK:   k,
		Satisfiable:  result.Satisfiable(),
		PrimaryCount: len(result.Primaries),
		TotalCredits: result.TotalCredits,
		Result:       datatypes.JSON(resultJSON),
	}
	if err := s.repo.Recommendation.Create(ctx, rec); err != nil {
		s.logger.Error("保存推荐结果失败", zap.String("catalog_id", req.CatalogID), zap.Error(err))
		return nil, err
	}

	resp := toRecommendationResponse(rec, electives, result)
	s.toCache(ctx, key, resp)
	return resp, nil
}

func (s *recommendationService) fromCache(ctx context.Context, key string) (*dto.RecommendationResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCacheMiss) {
			s.logger.Warn("读取推荐缓存失败", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var resp dto.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		s.logger.Warn("推荐缓存内容无效", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	resp.Cached = true
	return &resp, true
}

func (s *recommendationService) toCache(ctx context.Context, key string, resp *dto.RecommendationResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.Redis.CacheTTL); err != nil {
		s.logger.Warn("写入推荐缓存失败", zap.String("key", key), zap.Error(err))
	}
}

// inputHash 排课输入的摘要：选修顺序有意义，因此不排序
func inputHash(electives []string, generalCount int, k float64) string {
	payload, _ := json.Marshal(struct {
		Electives    []string `json:"electives"`
		GeneralCount int      `json:"general_count"`
		K            float64  `json:"k"`
	}{electives, generalCount, k})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// ────────────────────── Query ──────────────────────

func (s *recommendationService) GetByID(ctx context.Context, id string) (*dto.RecommendationResponse, error) {
	rec, result, err := loadRecommendation(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}
	var electives []string
	_ = json.Unmarshal(rec.Electives, &electives)
	return toRecommendationResponse(rec, electives, result), nil
}

func (s *recommendationService) ListByCatalog(ctx context.Context, catalogID string, page *dto.PaginationRequest) ([]dto.RecommendationSummary, int64, error) {
	if _, err := s.repo.Catalog.GetByID(ctx, catalogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCatalogNotFound
		}
		s.logger.Error("查询目录失败", zap.String("catalog_id", catalogID), zap.Error(err))
		return nil, 0, err
	}

	recs, total, err := s.repo.Recommendation.ListByCatalog(ctx, catalogID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询推荐列表失败", zap.String("catalog_id", catalogID), zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.RecommendationSummary, 0, len(recs))
	for _, rec := range recs {
		var electives []string
		_ = json.Unmarshal(rec.Electives, &electives)
		list = append(list, dto.RecommendationSummary{
			ID:           rec.RecommendationID,
			Electives:    electives,
			GeneralCount: rec.GeneralCount,
			Satisfiable:  rec.Satisfiable,
			PrimaryCount: rec.PrimaryCount,
			TotalCredits: rec.TotalCredits.String(),
			CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
		})
	}
	return list, total, nil
}

// ── 辅助函数 ──

// loadRecommendation 读取推荐记录并还原排课结果快照，供查询与导出共用
func loadRecommendation(ctx context.Context, repo *repository.Repository, logger *zap.Logger, id string) (*model.Recommendation, planner.Result, error) {
	rec, err := repo.Recommendation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, planner.Result{}, ErrRecommendationNotFound
		}
		logger.Error("查询推荐记录失败", zap.String("id", id), zap.Error(err))
		return nil, planner.Result{}, err
	}
	var result planner.Result
	if err := json.Unmarshal(rec.Result, &result); err != nil {
		logger.Error("解析推荐结果快照失败", zap.String("id", id), zap.Error(err))
		return nil, planner.Result{}, ErrRecommendationCorrupt
	}
	return rec, result, nil
}

func toRecommendationResponse(rec *model.Recommendation, electives []string, result planner.Result) *dto.RecommendationResponse {
	if electives == nil {
		electives = []string{}
	}
	return &dto.RecommendationResponse{
		ID:             rec.RecommendationID,
		CatalogID:      rec.CatalogID,
		Electives:      electives,
		GeneralCount:   rec.GeneralCount,
		ShrinkageK:     rec.ShrinkageK,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
		ScheduleTables: dto.NewScheduleTables(result),
	}
}
