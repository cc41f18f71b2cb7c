package cli

import (
	"fmt"
	"os"

	"github.com/albert-jeong/auto-class/internal/catalog"
	"github.com/albert-jeong/auto-class/internal/planner"
)

// loadCatalogFile 按扩展名识别格式并解析目录文件
func loadCatalogFile(path, encoding string) ([]planner.Offering, error) {
	format, err := catalog.FormatFromFilename(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开目录文件失败: %w", err)
	}
	defer f.Close()

	offerings, err := catalog.Load(f, format, catalog.Options{Encoding: encoding})
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return offerings, nil
}
