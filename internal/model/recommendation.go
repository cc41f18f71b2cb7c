package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Recommendation 一次排课推荐的输入与结果快照 — 对应 recommendations
type Recommendation struct {
	RecommendationID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"recommendation_id"`
	CatalogID        string          `gorm:"type:uuid;not null;index"                       json:"catalog_id"`
	InputHash        string          `gorm:"type:char(64);not null"                         json:"input_hash"`
	Electives        datatypes.JSON  `gorm:"type:jsonb;not null"                            json:"electives"` // []string，保持用户选择顺序
	GeneralCount     int             `gorm:"not null"                                       json:"general_count"`
	ShrinkageK       float64         `gorm:"not null"                                       json:"shrinkage_k"`
	Satisfiable      bool            `gorm:"not null"                                       json:"satisfiable"`
	PrimaryCount     int             `gorm:"not null;default:0"                             json:"primary_count"`
	TotalCredits     decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"           json:"total_credits"`
	Result           datatypes.JSON  `gorm:"type:jsonb;not null"                            json:"result"` // planner.Result
	BaseModel

	Catalog *Catalog `gorm:"foreignKey:CatalogID" json:"catalog,omitempty"`
}

// TableName 指定表名
func (Recommendation) TableName() string { return "recommendations" }
