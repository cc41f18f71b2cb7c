package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/albert-jeong/auto-class/internal/dto"
)

// NoScheduleNotice 主选课表为空时输出的提示
const NoScheduleNotice = "当前条件下没有满足要求的课表，请调整选修科目或通识数量。"

const emptyCell = "-"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#059669"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// renderTables 以终端表格输出主选课表与推荐表
func renderTables(w io.Writer, t dto.ScheduleTables) {
	if !t.Satisfiable {
		fmt.Fprintln(w, warnStyle.Render(NoScheduleNotice))
		return
	}

	primaries := newTable("类别", "课程代码", "科目", "教授", "上课时间", "学分", "评分", "评价数")
	for _, p := range t.Primaries {
		primaries.Row(p.Category, p.SubjectCode, p.SubjectName, p.Instructor, p.Time, p.Credit,
			formatRating(p.Rating), formatCount(p.ReviewCount))
	}

	recs := newTable("类别", "科目", "主选", "主选时间", "主选评分", "备选", "备选时间", "备选评分")
	for _, r := range t.Recommendations {
		recs.Row(append([]string{r.Category, r.SubjectName}, append(sectionCells(r.Primary), sectionCells(r.Backup)...)...)...)
	}

	fmt.Fprintln(w, titleStyle.Render("主选课表"))
	fmt.Fprintln(w, primaries.Render())
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("总学分 %s · 全局平均评分 %.2f", t.TotalCredits, t.GlobalMean)))

	fmt.Fprintln(w, titleStyle.Render("推荐明细"))
	fmt.Fprintln(w, recs.Render())

	for _, warning := range t.Warnings {
		fmt.Fprintln(w, warnStyle.Render("! "+warning))
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func sectionCells(s *dto.SectionRef) []string {
	if s == nil {
		return []string{emptyCell, emptyCell, emptyCell}
	}
	return []string{s.Code, s.Time, formatRating(s.Rating)}
}

func formatRating(v *float64) string {
	if v == nil {
		return emptyCell
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatCount(v *int) string {
	if v == nil {
		return emptyCell
	}
	return strconv.Itoa(*v)
}
