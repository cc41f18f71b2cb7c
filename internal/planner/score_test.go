package planner

import (
	"math"
	"testing"
)

func TestBayesianAverage_NoEvidence(t *testing.T) {
	mean := 3.5
	cases := []struct {
		name   string
		rating *float64
		n      *int
	}{
		{"rating absent", nil, Int(100)},
		{"rating zero", Float(0), Int(100)},
		{"count absent", Float(4.8), nil},
		{"both absent", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BayesianAverage(tc.rating, tc.n, mean, 10); got != mean {
				t.Errorf("期望返回全局均值 %v，实际 %v", mean, got)
			}
		})
	}
}

func TestBayesianAverage_Blend(t *testing.T) {
	// 50/(60)*4.5 + 10/60*3.5
	got := BayesianAverage(Float(4.5), Int(50), 3.5, 10)
	want := 50.0/60.0*4.5 + 10.0/60.0*3.5
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestBayesianAverage_ConvergesToRating(t *testing.T) {
	got := BayesianAverage(Float(4.2), Int(10_000_000), 3.0, 10)
	if math.Abs(got-4.2) > 1e-5 {
		t.Errorf("评价数很大时应接近原始评分，实际 %v", got)
	}
}

func TestBayesianAverage_Monotonic(t *testing.T) {
	mean := 3.5
	prevHigh := BayesianAverage(Float(4.5), Int(0), mean, 10)
	prevLow := BayesianAverage(Float(2.0), Int(0), mean, 10)
	for n := 1; n <= 200; n++ {
		high := BayesianAverage(Float(4.5), Int(n), mean, 10)
		low := BayesianAverage(Float(2.0), Int(n), mean, 10)
		if high <= prevHigh {
			t.Fatalf("r > mean 时应随 n 单调递增: n=%d %v <= %v", n, high, prevHigh)
		}
		if low >= prevLow {
			t.Fatalf("r < mean 时应随 n 单调递减: n=%d %v >= %v", n, low, prevLow)
		}
		prevHigh, prevLow = high, low
	}
}

func TestGlobalMeanRating(t *testing.T) {
	catalog := []Offering{
		{Rating: Float(4.0)},
		{Rating: Float(0)},
		{Rating: nil},
		{Rating: Float(3.0)},
	}
	if got := GlobalMeanRating(catalog); got != 3.5 {
		t.Errorf("期望 3.5，实际 %v", got)
	}
	if got := GlobalMeanRating(nil); got != 0 {
		t.Errorf("空目录期望 0，实际 %v", got)
	}
}

func TestScorer_RankStable(t *testing.T) {
	s := Scorer{K: 10, GlobalMean: 3.0}
	offerings := []Offering{
		{SubjectCode: "A"},
		{SubjectCode: "B", Rating: Float(4.0), ReviewCount: Int(20)},
		{SubjectCode: "C"},
		{SubjectCode: "D"},
	}
	ranked := s.rank(offerings)
	order := ""
	for _, r := range ranked {
		order += r.offering.SubjectCode
	}
	if order != "BACD" {
		t.Errorf("期望 BACD（同分保持原顺序），实际 %s", order)
	}
}
