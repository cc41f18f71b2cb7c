package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/albert-jeong/auto-class/internal/dto"
	"github.com/albert-jeong/auto-class/internal/service"
	"github.com/albert-jeong/auto-class/pkg/response"
)

// CatalogHandler 课程目录模块 HTTP 处理器
type CatalogHandler struct {
	catalogSvc     service.CatalogService
	maxUploadBytes int64
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService, maxUploadBytes int64) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc, maxUploadBytes: maxUploadBytes}
}

// ImportCatalog 上传课程目录
// POST /api/v1/catalogs  (multipart: file, name, encoding)
func (h *CatalogHandler) ImportCatalog(c *gin.Context) {
	var req dto.ImportCatalogRequest
	if err := c.ShouldBind(&req); err != nil {
		if isBodyTooLarge(err) {
			response.RequestTooLarge(c, 21006, "目录文件过大")
			return
		}
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			response.RequestTooLarge(c, 21006, "目录文件过大")
			return
		}
		response.BadRequest(c, 10001, "请上传目录文件（字段 file）")
		return
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		response.RequestTooLarge(c, 21006, "目录文件过大")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, 10001, "无法读取上传文件")
		return
	}
	defer f.Close()

	catalog, err := h.catalogSvc.Import(c.Request.Context(), f, fh.Filename, &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.Created(c, catalog)
}

// ListCatalogs 目录列表
// GET /api/v1/catalogs?page=&page_size=
func (h *CatalogHandler) ListCatalogs(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}

	list, total, err := h.catalogSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// GetCatalog 目录详情
// GET /api/v1/catalogs/:id
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.catalogSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, catalog)
}

// DeleteCatalog 删除目录
// DELETE /api/v1/catalogs/:id
func (h *CatalogHandler) DeleteCatalog(c *gin.Context) {
	if err := h.catalogSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListSubjects 目录中某类别的科目名
// GET /api/v1/catalogs/:id/subjects?category=elective
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	var req dto.ListSubjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "category 仅支持 mandatory / elective / general")
		return
	}

	names, err := h.catalogSvc.ListSubjects(c.Request.Context(), c.Param("id"), req.Category)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, gin.H{"list": names})
}

func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogNotFound):
		response.NotFound(c, 21001, "课程目录不存在")
	case errors.Is(err, service.ErrCatalogUnsupportedFormat):
		response.BadRequest(c, 21002, err.Error())
	case errors.Is(err, service.ErrCatalogUnknownEncoding):
		response.BadRequest(c, 21003, err.Error())
	case errors.Is(err, service.ErrCatalogBadHeader):
		response.UnprocessableEntity(c, 21004, err.Error())
	case errors.Is(err, service.ErrCatalogEmpty):
		response.UnprocessableEntity(c, 21005, err.Error())
	case errors.Is(err, service.ErrCatalogParseFail):
		response.UnprocessableEntity(c, 21007, "目录文件解析失败")
	default:
		response.InternalError(c)
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
