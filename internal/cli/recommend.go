package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/albert-jeong/auto-class/internal/catalog"
	"github.com/albert-jeong/auto-class/internal/dto"
	"github.com/albert-jeong/auto-class/internal/export"
	"github.com/albert-jeong/auto-class/internal/planner"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type recommendFlags struct {
	catalogPath  string
	electives    []string
	generalCount int
	k            float64
	encoding     string
	format       string
	xlsxPath     string
	icsPath      string
	termStart    string
	weeks        int
}

func newRecommendCmd(opts *options) *cobra.Command {
	f := &recommendFlags{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "生成主选课表与每科目的备选班",
		Example: `  planner recommend --catalog courses.txt --elective 운영체제 --elective 네트워크 --general 2
  planner recommend --catalog courses.xlsx --format yaml --ics term.ics --term-start 2026-03-02`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, opts, f)
		},
	}

	cmd.Flags().StringVar(&f.catalogPath, "catalog", "", "课程目录文件（.txt / .tsv / .csv / .xlsx）")
	cmd.Flags().StringArrayVarP(&f.electives, "elective", "e", nil, "选修科目名，可重复指定；顺序即优先级")
	cmd.Flags().IntVarP(&f.generalCount, "general", "g", 1, "通识科目数量")
	cmd.Flags().Float64Var(&f.k, "k", 0, "评分收缩强度（默认取配置 planner.shrinkage_k）")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "文本编码：auto | utf-8 | utf-16 | euc-kr")
	cmd.Flags().StringVarP(&f.format, "format", "o", formatTable, "输出格式：table | json | yaml")
	cmd.Flags().StringVar(&f.xlsxPath, "xlsx", "", "同时导出 Excel 课表到该路径")
	cmd.Flags().StringVar(&f.icsPath, "ics", "", "同时导出 iCalendar 课表到该路径")
	cmd.Flags().StringVar(&f.termStart, "term-start", "", "学期第一周的日期（YYYY-MM-DD），--ics 时必填")
	cmd.Flags().IntVar(&f.weeks, "weeks", 0, "学期周数（默认取配置 planner.term_weeks）")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func runRecommend(cmd *cobra.Command, opts *options, f *recommendFlags) error {
	cfg := opts.cfg
	if f.generalCount < 1 || f.generalCount > cfg.Planner.MaxGeneralCount {
		return fmt.Errorf("--general 必须在 1-%d 之间", cfg.Planner.MaxGeneralCount)
	}
	if f.k == 0 {
		f.k = cfg.Planner.ShrinkageK
	}
	if f.k < 0 {
		return fmt.Errorf("--k 必须大于 0")
	}
	if f.encoding == "" {
		f.encoding = cfg.Catalog.DefaultEncoding
	}
	if !catalog.ValidEncoding(f.encoding) {
		return fmt.Errorf("--encoding 仅支持 auto / utf-8 / utf-16 / euc-kr，收到 %q", f.encoding)
	}
	if f.weeks == 0 {
		f.weeks = cfg.Planner.TermWeeks
	}
	switch f.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("--format 仅支持 table / json / yaml，收到 %q", f.format)
	}

	var termStart time.Time
	if f.icsPath != "" {
		if f.termStart == "" {
			return fmt.Errorf("导出 --ics 时必须提供 --term-start")
		}
		loc, err := time.LoadLocation(cfg.Planner.Timezone)
		if err != nil {
			return err
		}
		termStart, err = time.ParseInLocation(time.DateOnly, f.termStart, loc)
		if err != nil {
			return fmt.Errorf("--term-start 格式应为 YYYY-MM-DD: %w", err)
		}
	}

	offerings, err := loadCatalogFile(f.catalogPath, f.encoding)
	if err != nil {
		return err
	}

	result := planner.Build(offerings, f.electives, f.generalCount, planner.WithShrinkageK(f.k))
	tables := dto.NewScheduleTables(result)

	out := cmd.OutOrStdout()
	switch f.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tables); err != nil {
			return err
		}
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(tables); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		renderTables(out, tables)
	}

	if !result.Satisfiable() {
		return nil
	}

	if f.xlsxPath != "" {
		buf, err := export.Workbook(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(f.xlsxPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", f.xlsxPath, err)
		}
		notice(cmd.ErrOrStderr(), "已导出 Excel 课表: "+f.xlsxPath)
	}
	if f.icsPath != "" {
		ics, err := export.Calendar(result, termStart, f.weeks)
		if err != nil {
			return err
		}
		if err := os.WriteFile(f.icsPath, []byte(ics), 0o644); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", f.icsPath, err)
		}
		notice(cmd.ErrOrStderr(), "已导出日历: "+f.icsPath)
	}
	return nil
}

func notice(w io.Writer, msg string) {
	fmt.Fprintln(w, noticeStyle.Render(msg))
}
