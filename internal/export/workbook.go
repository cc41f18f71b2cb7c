// Package export 将排课结果渲染为 Excel 工作簿与 iCalendar 周课表
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/albert-jeong/auto-class/internal/planner"
)

const (
	SheetPrimaries       = "主选课表"
	SheetRecommendations = "推荐明细"
)

var primaryHeader = []interface{}{"班级代码", "科目名称", "类别", "教师", "上课时间", "学分", "评分", "评价数"}

var recommendationHeader = []interface{}{
	"类别", "科目名称",
	"主选代码", "主选时间", "主选教师", "主选评分",
	"备选代码", "备选时间", "备选教师", "备选评分",
}

// Workbook 生成包含两张表的 .xlsx：主选班列表 与 逐科目主选/备选推荐表
func Workbook(r planner.Result) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetPrimaries)
	if err != nil {
		return nil, fmt.Errorf("创建工作表失败: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	if _, err := f.NewSheet(SheetRecommendations); err != nil {
		return nil, fmt.Errorf("创建工作表失败: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Sheet 1: 主选班 ──
	rows := make([][]interface{}, 0, len(r.Primaries)+1)
	rows = append(rows, primaryHeader)
	for _, o := range r.Primaries {
		credit, _ := o.Credit.Float64()
		rows = append(rows, []interface{}{
			o.SubjectCode, o.SubjectName, string(o.Category), o.Instructor, o.TimeField,
			credit, optionalFloat(o.Rating), optionalInt(o.ReviewCount),
		})
	}
	if err := writeSheet(f, SheetPrimaries, rows, headerStyle); err != nil {
		return nil, err
	}
	f.SetColWidth(SheetPrimaries, "A", "D", 14)
	f.SetColWidth(SheetPrimaries, "E", "E", 48)

	// ── Sheet 2: 推荐明细 ──
	rows = make([][]interface{}, 0, len(r.Recommendations)+1)
	rows = append(rows, recommendationHeader)
	for _, rec := range r.Recommendations {
		rows = append(rows, []interface{}{
			string(rec.Category), rec.SubjectName,
			rec.PrimaryCode, rec.PrimaryTime, rec.PrimaryInstructor, optionalFloat(rec.PrimaryRating),
			rec.BackupCode, rec.BackupTime, rec.BackupInstructor, optionalFloat(rec.BackupRating),
		})
	}
	if err := writeSheet(f, SheetRecommendations, rows, headerStyle); err != nil {
		return nil, err
	}
	f.SetColWidth(SheetRecommendations, "A", "C", 14)
	f.SetColWidth(SheetRecommendations, "D", "D", 40)
	f.SetColWidth(SheetRecommendations, "H", "H", 40)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("写入 Excel 失败: %w", err)
	}
	return buf, nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("写入 %s 第 %d 行失败: %w", sheet, i+1, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}

// 缺失值写为空单元格
func optionalFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
