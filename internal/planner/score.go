package planner

import "sort"

// DefaultShrinkageK 贝叶斯收缩常数默认值
const DefaultShrinkageK = 10.0

// BayesianAverage 按评价数将评分向全局均值收缩
//
// 评分缺失、评分为 0 或评价数缺失时直接返回全局均值。
func BayesianAverage(rating *float64, n *int, globalMean, k float64) float64 {
	if rating == nil || *rating == 0 || n == nil {
		return globalMean
	}
	cnt := float64(*n)
	return cnt/(cnt+k)*(*rating) + k/(cnt+k)*globalMean
}

// GlobalMeanRating 目录中所有有效评分（非空、非零）的均值；无有效评分时为 0
func GlobalMeanRating(catalog []Offering) float64 {
	var sum float64
	var cnt int
	for _, o := range catalog {
		if !o.HasRating() {
			continue
		}
		sum += *o.Rating
		cnt++
	}
	if cnt == 0 {
		return 0
	}
	return sum / float64(cnt)
}

// Scorer 评分器：持有全局均值与收缩常数
type Scorer struct {
	K          float64
	GlobalMean float64
}

// NewScorer 基于目录计算全局均值并创建评分器
func NewScorer(catalog []Offering, k float64) Scorer {
	return Scorer{K: k, GlobalMean: GlobalMeanRating(catalog)}
}

// Score 计算单个开课班的收缩评分
func (s Scorer) Score(o Offering) float64 {
	return BayesianAverage(o.Rating, o.ReviewCount, s.GlobalMean, s.K)
}

// scoredOffering 带评分与解析后时段的候选
type scoredOffering struct {
	offering Offering
	score    float64
	sessions []Session
}

// rank 计算评分并按评分降序稳定排序（同分保持原顺序）
func (s Scorer) rank(offerings []Offering) []scoredOffering {
	ranked := make([]scoredOffering, 0, len(offerings))
	for _, o := range offerings {
		ranked = append(ranked, scoredOffering{
			offering: o,
			score:    s.Score(o),
			sessions: o.Sessions(),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}
