package planner

import "github.com/shopspring/decimal"

// RecommendationRecord 面向展示的单科目结果行（主选/备选并列）
type RecommendationRecord struct {
	Category          Category `json:"category"`
	SubjectName       string   `json:"subject_name"`
	PrimaryCode       string   `json:"primary_code"`
	PrimaryTime       string   `json:"primary_time"`
	PrimaryInstructor string   `json:"primary_instructor"`
	PrimaryRating     *float64 `json:"primary_rating"`
	BackupCode        string   `json:"backup_code"`
	BackupTime        string   `json:"backup_time"`
	BackupInstructor  string   `json:"backup_instructor"`
	BackupRating      *float64 `json:"backup_rating"`
}

// HasPrimary 该科目是否选出了主选班
func (r RecommendationRecord) HasPrimary() bool {
	return r.PrimaryCode != ""
}

// HasBackup 该科目是否有备选班
func (r RecommendationRecord) HasBackup() bool {
	return r.BackupCode != ""
}

func newRecord(cat Category, subject string, sel Selection) RecommendationRecord {
	rec := RecommendationRecord{Category: cat, SubjectName: subject}
	if p := sel.Primary; p != nil {
		rec.PrimaryCode = p.SubjectCode
		rec.PrimaryTime = p.TimeField
		rec.PrimaryInstructor = p.Instructor
		rec.PrimaryRating = p.Rating
	}
	if b := sel.Backup; b != nil {
		rec.BackupCode = b.SubjectCode
		rec.BackupTime = b.TimeField
		rec.BackupInstructor = b.Instructor
		rec.BackupRating = b.Rating
	}
	return rec
}

// Result 一次排课的输出：主选班表 + 逐科目推荐表
type Result struct {
	Primaries       []Offering             `json:"primaries"`
	Recommendations []RecommendationRecord `json:"recommendations"`
	GlobalMean      float64                `json:"global_mean"`
	TotalCredits    decimal.Decimal        `json:"total_credits"`
}

// Satisfiable 是否至少选出一个主选班；为 false 时表示当前条件下无可行课表
func (r Result) Satisfiable() bool {
	return len(r.Primaries) > 0
}

// Unassigned 未能选出主选班的科目记录
func (r Result) Unassigned() []RecommendationRecord {
	out := make([]RecommendationRecord, 0)
	for _, rec := range r.Recommendations {
		if !rec.HasPrimary() {
			out = append(out, rec)
		}
	}
	return out
}

// Option 排课参数
type Option func(*buildOptions)

type buildOptions struct {
	k float64
}

// WithShrinkageK 设置贝叶斯收缩常数
func WithShrinkageK(k float64) Option {
	return func(o *buildOptions) {
		if k > 0 {
			o.k = k
		}
	}
}

// Build 按 必修 → 所选专业选修 → 通识 的顺序贪心排课
//
// 每次调用使用独立的 ScheduleState，目录本身不会被修改。
func Build(catalog []Offering, electives []string, generalCount int, opts ...Option) Result {
	o := buildOptions{k: DefaultShrinkageK}
	for _, opt := range opts {
		opt(&o)
	}

	scorer := NewScorer(catalog, o.k)
	state := NewScheduleState()
	b := &builder{scorer: scorer, state: state}

	// ── 阶段1: 必修 ──
	mandatory := filterCategory(catalog, CategoryMandatory)
	for _, subject := range distinctSubjects(catalog, CategoryMandatory) {
		sel := SelectOffering(filterSubject(mandatory, subject), state, scorer)
		b.record(CategoryMandatory, subject, sel)
	}

	// ── 阶段2: 专业选修（按用户选择顺序，重复项各自处理）──
	elective := filterCategory(catalog, CategoryElective)
	for _, subject := range electives {
		sel := SelectOffering(filterSubject(elective, subject), state, scorer)
		b.record(CategoryElective, subject, sel)
	}

	// ── 阶段3: 通识（整体按评分排序，取前 N 个不冲突的班）──
	b.general(filterCategory(catalog, CategoryGeneral), generalCount)

	return Result{
		Primaries:       b.primaries,
		Recommendations: b.records,
		GlobalMean:      scorer.GlobalMean,
		TotalCredits:    sumCredits(b.primaries),
	}
}

type builder struct {
	scorer    Scorer
	state     *ScheduleState
	primaries []Offering
	records   []RecommendationRecord
}

func (b *builder) record(cat Category, subject string, sel Selection) {
	if sel.Primary != nil {
		b.primaries = append(b.primaries, *sel.Primary)
	}
	b.records = append(b.records, newRecord(cat, subject, sel))
}

func (b *builder) general(general []Offering, target int) {
	added := 0
	for _, cand := range b.scorer.rank(general) {
		if added >= target {
			break
		}
		if b.state.Conflicts(cand.sessions) {
			continue
		}
		primary := cand.offering
		b.state.Commit(cand.sessions)
		added++

		// 备选：同名科目的其他班，在状态副本上计算，不写回
		others := make([]Offering, 0)
		for _, g := range general {
			if g.SubjectName == primary.SubjectName && g.SubjectCode != primary.SubjectCode {
				others = append(others, g)
			}
		}
		alt := SelectOffering(others, b.state.Clone(), b.scorer)

		b.record(CategoryGeneral, primary.SubjectName, Selection{Primary: &primary, Backup: alt.Backup})
	}
}

func sumCredits(offerings []Offering) decimal.Decimal {
	total := decimal.Zero
	for _, o := range offerings {
		total = total.Add(o.Credit)
	}
	return total
}
