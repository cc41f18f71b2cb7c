package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/albert-jeong/auto-class/internal/dto"
	"github.com/albert-jeong/auto-class/internal/service"
	"github.com/albert-jeong/auto-class/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWorkbook 导出 Excel 课表
// GET /api/v1/recommendations/:id/export.xlsx
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportWorkbook(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportCalendar 导出 iCalendar 周课表
// GET /api/v1/recommendations/:id/export.ics?term_start=2026-03-02&weeks=16
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	var req dto.ExportCalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "term_start 必填，weeks 取值 1-52")
		return
	}

	data, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, contentTypeICS, filename, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecommendationNotFound):
		response.NotFound(c, 22001, "推荐记录不存在")
	case errors.Is(err, service.ErrExportTermInvalid):
		response.BadRequest(c, 23001, err.Error())
	case errors.Is(err, service.ErrExportNoPrimaries):
		response.UnprocessableEntity(c, 23002, err.Error())
	default:
		response.InternalError(c)
	}
}
