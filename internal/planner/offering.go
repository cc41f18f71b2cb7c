package planner

import "github.com/shopspring/decimal"

// Category 科目类别
type Category string

const (
	CategoryMandatory Category = "mandatory" // 专业必修（전필）
	CategoryElective  Category = "elective"  // 专业选修（전선）
	CategoryGeneral   Category = "general"   // 通识选修（교선）
	CategoryOther     Category = "other"     // 其他类别：保留但不参与排课
)

// Offering 某一科目的一个开课班（section），来自课程目录，只读
type Offering struct {
	Seq         int             `json:"seq"` // 目录中的原始行序（稳定排序的依据）
	Category    Category        `json:"category"`
	SubjectCode string          `json:"subject_code"` // 班级代码，科目内唯一
	SubjectName string          `json:"subject_name"`
	Instructor  string          `json:"instructor"`
	TimeField   string          `json:"time"` // 原始上课时间描述
	Credit      decimal.Decimal `json:"credit"`
	Rating      *float64        `json:"rating"`       // nil 或 0 表示无评分
	ReviewCount *int            `json:"review_count"` // nil 表示缺失
}

// Sessions 解析该班的每周上课时段
func (o Offering) Sessions() []Session {
	return ParseSessions(o.TimeField)
}

// HasRating 是否存在有效评分（非空且非零）
func (o Offering) HasRating() bool {
	return o.Rating != nil && *o.Rating != 0
}

// Float 返回可选浮点值的指针，便于构造测试数据与目录行
func Float(v float64) *float64 { return &v }

// Int 返回可选整数值的指针
func Int(v int) *int { return &v }

// filterCategory 按类别过滤，保持目录顺序
func filterCategory(catalog []Offering, cat Category) []Offering {
	out := make([]Offering, 0)
	for _, o := range catalog {
		if o.Category == cat {
			out = append(out, o)
		}
	}
	return out
}

// filterSubject 按科目名过滤，保持原有顺序
func filterSubject(offerings []Offering, name string) []Offering {
	out := make([]Offering, 0)
	for _, o := range offerings {
		if o.SubjectName == name {
			out = append(out, o)
		}
	}
	return out
}

// distinctSubjects 返回指定类别下去重后的科目名（按首次出现顺序）
func distinctSubjects(catalog []Offering, cat Category) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, o := range catalog {
		if o.Category != cat || seen[o.SubjectName] {
			continue
		}
		seen[o.SubjectName] = true
		names = append(names, o.SubjectName)
	}
	return names
}

// MandatorySubjects 目录中的必修科目名
func MandatorySubjects(catalog []Offering) []string {
	return distinctSubjects(catalog, CategoryMandatory)
}

// ElectiveSubjects 目录中可供选择的专业选修科目名
func ElectiveSubjects(catalog []Offering) []string {
	return distinctSubjects(catalog, CategoryElective)
}

// GeneralSubjects 目录中的通识科目名
func GeneralSubjects(catalog []Offering) []string {
	return distinctSubjects(catalog, CategoryGeneral)
}

// ParseCategory 将目录中的类别文本映射为 Category
func ParseCategory(raw string) Category {
	switch raw {
	case "전필", "mandatory", "Mandatory", "MANDATORY":
		return CategoryMandatory
	case "전선", "elective", "Elective", "ELECTIVE":
		return CategoryElective
	case "교선", "general", "General", "GENERAL":
		return CategoryGeneral
	default:
		return CategoryOther
	}
}
