// Package catalog 将上传的课程目录（制表符文本 / CSV / Excel）解析为 planner.Offering 列表
package catalog

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/albert-jeong/auto-class/internal/planner"
)

// ── 目录解析错误 ──

var (
	ErrUnsupportedFormat = errors.New("不支持的目录文件格式")
	ErrUnknownEncoding   = errors.New("不支持的文本编码")
	ErrBadHeader         = errors.New("目录表头缺少必需列")
	ErrEmpty             = errors.New("目录中没有数据行")
)

// Format 目录文件格式
type Format string

const (
	FormatTSV  Format = "tsv"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromFilename 根据扩展名推断格式（.txt 与 .tsv 均视为制表符分隔）
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".tsv":
		return FormatTSV, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Options 解析选项
type Options struct {
	// Encoding 文本编码：auto | utf-8 | utf-16 | euc-kr，仅对 tsv/csv 生效
	Encoding string
}

// Load 读取目录并返回按原始行序排列的开课班
func Load(r io.Reader, format Format, opts Options) ([]planner.Offering, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatTSV:
		rows, err = readDelimited(r, '\t', opts.Encoding)
	case FormatCSV:
		rows, err = readDelimited(r, ',', opts.Encoding)
	case FormatXLSX:
		rows, err = readWorkbook(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

// ── 表头映射 ──

type column int

const (
	colCategory column = iota
	colName
	colCode
	colInstructor
	colTime
	colCredit
	colRating
	colReviews
	columnCount
)

var headerAliases = map[string]column{
	"구분": colCategory, "category": colCategory,
	"과목명": colName, "subject_name": colName, "name": colName,
	"과목코드": colCode, "subject_code": colCode, "code": colCode,
	"교수": colInstructor, "instructor": colInstructor, "professor": colInstructor,
	"강의시간": colTime, "time": colTime, "schedule": colTime,
	"학점": colCredit, "credit": colCredit, "credits": colCredit,
	"강의평": colRating, "rating": colRating,
	"평가수": colReviews, "review_count": colReviews, "reviews": colReviews,
}

var requiredColumns = []column{colCategory, colName, colCode, colTime}

func parseHeader(header []string) ([columnCount]int, error) {
	var idx [columnCount]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if c, ok := headerAliases[key]; ok && idx[c] < 0 {
			idx[c] = i
		}
	}
	for _, c := range requiredColumns {
		if idx[c] < 0 {
			return idx, ErrBadHeader
		}
	}
	return idx, nil
}

func parseRows(rows [][]string) ([]planner.Offering, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	idx, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	cell := func(row []string, c column) string {
		i := idx[c]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	offerings := make([]planner.Offering, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		offerings = append(offerings, planner.Offering{
			Seq:         len(offerings),
			Category:    planner.ParseCategory(cell(row, colCategory)),
			SubjectName: cell(row, colName),
			SubjectCode: cell(row, colCode),
			Instructor:  cell(row, colInstructor),
			TimeField:   cell(row, colTime),
			Credit:      parseCredit(cell(row, colCredit)),
			Rating:      parseOptionalFloat(cell(row, colRating)),
			ReviewCount: parseOptionalInt(cell(row, colReviews)),
		})
	}
	if len(offerings) == 0 {
		return nil, ErrEmpty
	}
	return offerings, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ── 数值单元格 ──

func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseOptionalInt 兼容 "12" 与 "12.0" 两种写法
func parseOptionalInt(s string) *int {
	f := parseOptionalFloat(s)
	if f == nil || *f < 0 {
		return nil
	}
	n := int(*f)
	return &n
}

func parseCredit(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
