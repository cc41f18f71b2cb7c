package dto

// ── 课程目录模块 DTO ──

// ImportCatalogRequest 上传目录的表单字段（文件本身通过 multipart "file" 字段提交）
type ImportCatalogRequest struct {
	Name     string `form:"name"     binding:"omitempty,max=200"`
	Encoding string `form:"encoding" binding:"omitempty,oneof=auto utf-8 utf-16 euc-kr"`
}

// ListSubjectsRequest 科目名列表查询
type ListSubjectsRequest struct {
	Category string `form:"category" binding:"omitempty,oneof=mandatory elective general"`
}

// CatalogResponse 目录信息响应
type CatalogResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	SourceFilename string  `json:"source_filename"`
	Format         string  `json:"format"`
	OfferingCount  int     `json:"offering_count"`
	MandatoryCount int     `json:"mandatory_count"`
	ElectiveCount  int     `json:"elective_count"`
	GeneralCount   int     `json:"general_count"`
	GlobalMean     float64 `json:"global_mean"`
	CreatedAt      string  `json:"created_at"`
}
