package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/albert-jeong/auto-class/internal/dto"
	"github.com/albert-jeong/auto-class/internal/service"
	"github.com/albert-jeong/auto-class/pkg/response"
)

// RecommendationHandler 排课推荐模块 HTTP 处理器
type RecommendationHandler struct {
	recommendationSvc service.RecommendationService
}

// NewRecommendationHandler 创建 RecommendationHandler
func NewRecommendationHandler(recommendationSvc service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationSvc: recommendationSvc}
}

// CreateRecommendation 生成排课推荐
// POST /api/v1/recommendations
func (h *RecommendationHandler) CreateRecommendation(c *gin.Context) {
	var req dto.CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}

	rec, err := h.recommendationSvc.Recommend(c.Request.Context(), &req)
	if err != nil {
		h.handleRecommendationError(c, err)
		return
	}

	if rec.Cached {
		response.OK(c, rec)
		return
	}
	response.Created(c, rec)
}

// GetRecommendation 推荐详情
// GET /api/v1/recommendations/:id
func (h *RecommendationHandler) GetRecommendation(c *gin.Context) {
	rec, err := h.recommendationSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRecommendationError(c, err)
		return
	}

	response.OK(c, rec)
}

// ListByCatalog 某目录下的推荐历史
// GET /api/v1/catalogs/:id/recommendations?page=&page_size=
func (h *RecommendationHandler) ListByCatalog(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}

	list, total, err := h.recommendationSvc.ListByCatalog(c.Request.Context(), c.Param("id"), &page)
	if err != nil {
		h.handleRecommendationError(c, err)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

func (h *RecommendationHandler) handleRecommendationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogNotFound):
		response.NotFound(c, 21001, "课程目录不存在")
	case errors.Is(err, service.ErrRecommendationNotFound):
		response.NotFound(c, 22001, "推荐记录不存在")
	case errors.Is(err, service.ErrGeneralCountOutOfRange):
		response.BadRequest(c, 22002, err.Error())
	default:
		response.InternalError(c)
	}
}
