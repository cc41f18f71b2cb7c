package model

import (
	"github.com/shopspring/decimal"

	"github.com/albert-jeong/auto-class/internal/planner"
)

// Catalog 课程目录表 — 对应 catalogs（一次上传即一个目录）
type Catalog struct {
	CatalogID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"catalog_id"`
	Name           string  `gorm:"type:varchar(200);not null"                     json:"name"`
	SourceFilename string  `gorm:"type:varchar(255);not null"                     json:"source_filename"`
	Format         string  `gorm:"type:varchar(10);not null"                      json:"format"` // tsv | csv | xlsx
	OfferingCount  int     `gorm:"not null;default:0"                             json:"offering_count"`
	MandatoryCount int     `gorm:"not null;default:0"                             json:"mandatory_count"`
	ElectiveCount  int     `gorm:"not null;default:0"                             json:"elective_count"`
	GeneralCount   int     `gorm:"not null;default:0"                             json:"general_count"`
	GlobalMean     float64 `gorm:"not null;default:0"                             json:"global_mean"`
	SoftDeleteModel

	Offerings []CatalogOffering `gorm:"foreignKey:CatalogID" json:"offerings,omitempty"`
}

// TableName 指定表名
func (Catalog) TableName() string { return "catalogs" }

// CatalogOffering 目录中的开课班 — 对应 catalog_offerings
type CatalogOffering struct {
	OfferingID  string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"offering_id"`
	CatalogID   string          `gorm:"type:uuid;not null;index:idx_offering_catalog_seq,priority:1" json:"catalog_id"`
	Seq         int             `gorm:"not null;index:idx_offering_catalog_seq,priority:2"            json:"seq"`
	Category    string          `gorm:"type:varchar(20);not null"                                     json:"category"`
	SubjectCode string          `gorm:"type:varchar(50);not null"                                     json:"subject_code"`
	SubjectName string          `gorm:"type:varchar(200);not null"                                    json:"subject_name"`
	Instructor  string          `gorm:"type:varchar(100);not null;default:''"                         json:"instructor"`
	TimeField   string          `gorm:"type:text;not null;default:''"                                 json:"time_field"`
	Credit      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"                          json:"credit"`
	Rating      *float64        `gorm:"type:double precision"                                         json:"rating"`
	ReviewCount *int            `json:"review_count"`
}

// TableName 指定表名
func (CatalogOffering) TableName() string { return "catalog_offerings" }

// ToPlanner 转为排课核心使用的只读开课班
func (o CatalogOffering) ToPlanner() planner.Offering {
	return planner.Offering{
		Seq:         o.Seq,
		Category:    planner.Category(o.Category),
		SubjectCode: o.SubjectCode,
		SubjectName: o.SubjectName,
		Instructor:  o.Instructor,
		TimeField:   o.TimeField,
		Credit:      o.Credit,
		Rating:      o.Rating,
		ReviewCount: o.ReviewCount,
	}
}

// NewCatalogOffering 由解析后的开课班构造持久化行
func NewCatalogOffering(catalogID string, o planner.Offering) CatalogOffering {
	return CatalogOffering{
		CatalogID:   catalogID,
		Seq:         o.Seq,
		Category:    string(o.Category),
		SubjectCode: o.SubjectCode,
		SubjectName: o.SubjectName,
		Instructor:  o.Instructor,
		TimeField:   o.TimeField,
		Credit:      o.Credit,
		Rating:      o.Rating,
		ReviewCount: o.ReviewCount,
	}
}
