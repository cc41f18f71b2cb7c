package service

import (
	"github.com/albert-jeong/auto-class/config"
	"github.com/albert-jeong/auto-class/internal/repository"
)

// ── 测试辅助 ──

const sampleCatalogTSV = "구분\t과목명\t과목코드\t교수\t강의시간\t학점\t강의평\t평가수\n" +
	"전필\t자료구조\tDS-01\t김교수\t월 [공학관 301] 09:00~10:30\t3\t4.5\t50\n" +
	"전필\t자료구조\tDS-02\t이교수\t화 [공학관 302] 09:00~10:30\t3\t3.0\t5\n" +
	"전선\t운영체제\tOS-01\t박교수\t월 [IT관 101] 10:00~11:00\t3\t4.0\t20\n" +
	"전선\t운영체제\tOS-02\t최교수\t수 [IT관 101] 10:00~11:00\t3\t\t\n" +
	"전선\t네트워크\tNW-01\t정교수\t목 [IT관 201] 13:00~14:30\t3\t3.5\t8\n" +
	"교선\t철학의이해\tPH-01\t한교수\t금 [인문관 B1] 15:00~17:00\t2\t4.8\t100\n" +
	"교선\t글쓰기\tWR-01\t윤교수\t금 [인문관 B2] 16:00~18:00\t2\t4.0\t30\n"

type testRepos struct {
	catalog        *mockCatalogRepo
	offering       *mockOfferingRepo
	recommendation *mockRecommendationRepo
}

func testConfig() *config.Config {
	return &config.Config{
		Planner: config.PlannerConfig{ShrinkageK: 10, MaxGeneralCount: 2, TermWeeks: 16, Timezone: "UTC"},
		Catalog: config.CatalogConfig{DefaultEncoding: "auto"},
	}
}

func newTestRepository() (*repository.Repository, *testRepos) {
	m := &testRepos{
		catalog:        newMockCatalogRepo(),
		offering:       newMockOfferingRepo(),
		recommendation: newMockRecommendationRepo(),
	}
	repo := &repository.Repository{
		Catalog:        m.catalog,
		Offering:       m.offering,
		Recommendation: m.recommendation,
	}
	return repo, m
}
