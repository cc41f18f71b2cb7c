package redis

import "testing"

func TestRecommendationKey(t *testing.T) {
	got := RecommendationKey("cat-1", "abc")
	if got != "recommendation:cat-1:abc" {
		t.Errorf("unexpected key %s", got)
	}
}
