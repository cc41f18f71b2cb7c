package dto

import "github.com/albert-jeong/auto-class/internal/planner"

// ── 排课推荐模块 DTO ──

// CreateRecommendationRequest 生成推荐请求
//
// electives 保持用户选择顺序，允许重复；general_count 上限由配置 planner.max_general_count 决定。
type CreateRecommendationRequest struct {
	CatalogID    string   `json:"catalog_id"    binding:"required,uuid"`
	Electives    []string `json:"electives"     binding:"omitempty,max=50,dive,required,max=200"`
	GeneralCount int      `json:"general_count" binding:"required,min=1"`
}

// ExportCalendarRequest 导出日历参数
type ExportCalendarRequest struct {
	TermStart string `form:"term_start" binding:"required"` // "2026-03-02"
	Weeks     int    `form:"weeks"      binding:"omitempty,min=1,max=52"`
}

// OfferingRow 主选课表中的一行
type OfferingRow struct {
	Category    string   `json:"category"     yaml:"category"`
	SubjectCode string   `json:"subject_code" yaml:"subject_code"`
	SubjectName string   `json:"subject_name" yaml:"subject_name"`
	Instructor  string   `json:"instructor"   yaml:"instructor"`
	Time        string   `json:"time"         yaml:"time"`
	Credit      string   `json:"credit"       yaml:"credit"`
	Rating      *float64 `json:"rating"       yaml:"rating"`
	ReviewCount *int     `json:"review_count" yaml:"review_count"`
}

// SectionRef 推荐表中的主选或备选班
type SectionRef struct {
	Code       string   `json:"code"       yaml:"code"`
	Time       string   `json:"time"       yaml:"time"`
	Instructor string   `json:"instructor" yaml:"instructor"`
	Rating     *float64 `json:"rating"     yaml:"rating"`
}

// RecommendationRow 推荐表中的一行：一个科目的主选与备选
type RecommendationRow struct {
	Category    string      `json:"category"          yaml:"category"`
	SubjectName string      `json:"subject_name"      yaml:"subject_name"`
	Primary     *SectionRef `json:"primary,omitempty" yaml:"primary,omitempty"`
	Backup      *SectionRef `json:"backup,omitempty"  yaml:"backup,omitempty"`
}

// ScheduleTables 两张展示表与汇总信息，HTTP 与 CLI 共用
type ScheduleTables struct {
	Satisfiable     bool                `json:"satisfiable"     yaml:"satisfiable"`
	GlobalMean      float64             `json:"global_mean"     yaml:"global_mean"`
	TotalCredits    string              `json:"total_credits"   yaml:"total_credits"`
	Primaries       []OfferingRow       `json:"primaries"       yaml:"primaries"`
	Recommendations []RecommendationRow `json:"recommendations" yaml:"recommendations"`
	Warnings        []string            `json:"warnings"        yaml:"warnings"`
}

// RecommendationResponse 推荐结果响应
type RecommendationResponse struct {
	ID           string   `json:"id"`
	CatalogID    string   `json:"catalog_id"`
	Electives    []string `json:"electives"`
	GeneralCount int      `json:"general_count"`
	ShrinkageK   float64  `json:"shrinkage_k"`
	Cached       bool     `json:"cached"`
	CreatedAt    string   `json:"created_at"`
	ScheduleTables
}

// RecommendationSummary 推荐列表项（不含表格）
type RecommendationSummary struct {
	ID           string   `json:"id"`
	Electives    []string `json:"electives"`
	GeneralCount int      `json:"general_count"`
	Satisfiable  bool     `json:"satisfiable"`
	PrimaryCount int      `json:"primary_count"`
	TotalCredits string   `json:"total_credits"`
	CreatedAt    string   `json:"created_at"`
}

// NewScheduleTables 将排课结果转为展示表；未选出主选的科目生成一条警告
func NewScheduleTables(r planner.Result) ScheduleTables {
	t := ScheduleTables{
		Satisfiable:     r.Satisfiable(),
		GlobalMean:      r.GlobalMean,
		TotalCredits:    r.TotalCredits.String(),
		Primaries:       make([]OfferingRow, 0, len(r.Primaries)),
		Recommendations: make([]RecommendationRow, 0, len(r.Recommendations)),
		Warnings:        make([]string, 0),
	}
	for _, o := range r.Primaries {
		t.Primaries = append(t.Primaries, OfferingRow{
			Category:    string(o.Category),
			SubjectCode: o.SubjectCode,
			SubjectName: o.SubjectName,
			Instructor:  o.Instructor,
			Time:        o.TimeField,
			Credit:      o.Credit.String(),
			Rating:      o.Rating,
			ReviewCount: o.ReviewCount,
		})
	}
	for _, rec := range r.Recommendations {
		row := RecommendationRow{Category: string(rec.Category), SubjectName: rec.SubjectName}
		if rec.HasPrimary() {
			row.Primary = &SectionRef{Code: rec.PrimaryCode, Time: rec.PrimaryTime, Instructor: rec.PrimaryInstructor, Rating: rec.PrimaryRating}
		}
		if rec.HasBackup() {
			row.Backup = &SectionRef{Code: rec.BackupCode, Time: rec.BackupTime, Instructor: rec.BackupInstructor, Rating: rec.BackupRating}
		}
		t.Recommendations = append(t.Recommendations, row)
	}
	for _, rec := range r.Unassigned() {
		t.Warnings = append(t.Warnings, "未能为科目 "+rec.SubjectName+" 安排不冲突的主选班")
	}
	if !t.Satisfiable {
		t.Warnings = append(t.Warnings, "当前条件下没有可行的课表")
	}
	return t
}
