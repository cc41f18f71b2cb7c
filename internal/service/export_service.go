package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/albert-jeong/auto-class/config"
	"github.com/albert-jeong/auto-class/internal/dto"
	"github.com/albert-jeong/auto-class/internal/export"
	"github.com/albert-jeong/auto-class/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoPrimaries  = errors.New("该推荐没有主选班，无法导出日历")
	ErrExportTermInvalid  = errors.New("学期开始日期格式应为 YYYY-MM-DD")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 导出内容以字节返回，由 Handler 层设置响应头后写入。
type ExportService interface {
	// ExportWorkbook 导出 Excel：主选课表 + 推荐明细两张表
	ExportWorkbook(ctx context.Context, recommendationID string) (*bytes.Buffer, string, error)
	// ExportCalendar 导出 iCalendar：每个主选时段一个按周重复的事件
	ExportCalendar(ctx context.Context, recommendationID string, req *dto.ExportCalendarRequest) ([]byte, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

func (s *exportService) ExportWorkbook(ctx context.Context, recommendationID string) (*bytes.Buffer, string, error) {
	_, result, err := loadRecommendation(ctx, s.repo, s.logger, recommendationID)
	if err != nil {
		return nil, "", err
	}

	buf, err := export.Workbook(result)
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.String("id", recommendationID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("课表_%s.xlsx", shortID(recommendationID)), nil
}

func (s *exportService) ExportCalendar(ctx context.Context, recommendationID string, req *dto.ExportCalendarRequest) ([]byte, string, error) {
	loc, err := time.LoadLocation(s.cfg.Planner.Timezone)
	if err != nil {
		loc = time.UTC
	}
	termStart, err := time.ParseInLocation("2006-01-02", req.TermStart, loc)
	if err != nil {
		return nil, "", ErrExportTermInvalid
	}
	weeks := req.Weeks
	if weeks <= 0 {
		weeks = s.cfg.Planner.TermWeeks
	}

	_, result, err := loadRecommendation(ctx, s.repo, s.logger, recommendationID)
	if err != nil {
		return nil, "", err
	}
	if !result.Satisfiable() {
		return nil, "", ErrExportNoPrimaries
	}

	out, err := export.Calendar(result, termStart, weeks)
	if err != nil {
		s.logger.Error("生成日历失败", zap.String("id", recommendationID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return []byte(out), fmt.Sprintf("课表_%s.ics", shortID(recommendationID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
