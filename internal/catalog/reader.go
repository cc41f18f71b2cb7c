package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 支持的编码名
const (
	EncodingAuto  = "auto"
	EncodingUTF8  = "utf-8"
	EncodingUTF16 = "utf-16"
	EncodingEUCKR = "euc-kr"
)

// ValidEncoding 判断编码名是否受支持（空串视为 auto）
func ValidEncoding(enc string) bool {
	switch strings.ToLower(enc) {
	case "", EncodingAuto, EncodingUTF8, EncodingUTF16, EncodingEUCKR:
		return true
	}
	return false
}

// decoder 根据编码名与内容选择转码器
//
// auto: 有 BOM 时按 BOM（UTF-8 / UTF-16），否则非法 UTF-8 视为 EUC-KR（学校教务系统常见导出编码）。
func decoder(data []byte, enc string) (transform.Transformer, error) {
	switch strings.ToLower(enc) {
	case "", EncodingAuto:
		if hasBOM(data) {
			return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
		}
		if !utf8.Valid(data) {
			return korean.EUCKR.NewDecoder(), nil
		}
		return unicode.UTF8.NewDecoder(), nil
	case EncodingUTF8:
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case EncodingUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case EncodingEUCKR:
		return korean.EUCKR.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// readDelimited 读取分隔符文本，返回所有记录（含表头）
func readDelimited(r io.Reader, comma rune, enc string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}
	tr, err := decoder(data, enc)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(bytes.NewReader(data), tr))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("解析目录第 %d 行失败: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// readWorkbook 读取 Excel 第一个工作表
func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	return rows, nil
}
