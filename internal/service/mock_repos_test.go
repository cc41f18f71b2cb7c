package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/albert-jeong/auto-class/internal/model"
	apperrors "github.com/albert-jeong/auto-class/pkg/errors"
)

// ── Mock CatalogRepository ──

type mockCatalogRepo struct {
	catalogs map[string]*model.Catalog
	seq      int
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{catalogs: make(map[string]*model.Catalog)}
}

func (m *mockCatalogRepo) Create(_ context.Context, c *model.Catalog) error {
	if c.CatalogID == "" {
		m.seq++
		c.CatalogID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.seq)
	}
	c.CreatedAt = time.Date(2026, 3, 1, 0, 0, m.seq, 0, time.UTC)
	m.catalogs[c.CatalogID] = c
	return nil
}

func (m *mockCatalogRepo) GetByID(_ context.Context, id string) (*model.Catalog, error) {
	if c, ok := m.catalogs[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepo) List(_ context.Context, offset, limit int) ([]model.Catalog, int64, error) {
	var all []model.Catalog
	for _, c := range m.catalogs {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Catalog{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockCatalogRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.catalogs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.catalogs, id)
	return nil
}

// ── Mock OfferingRepository ──

type mockOfferingRepo struct {
	offerings map[string][]model.CatalogOffering
	failNext  error
}

func newMockOfferingRepo() *mockOfferingRepo {
	return &mockOfferingRepo{offerings: make(map[string][]model.CatalogOffering)}
}

func (m *mockOfferingRepo) CreateBatch(_ context.Context, offerings []model.CatalogOffering) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	for _, o := range offerings {
		m.offerings[o.CatalogID] = append(m.offerings[o.CatalogID], o)
	}
	return nil
}

func (m *mockOfferingRepo) ListByCatalog(_ context.Context, catalogID string) ([]model.CatalogOffering, error) {
	out := append([]model.CatalogOffering(nil), m.offerings[catalogID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (m *mockOfferingRepo) ListSubjects(_ context.Context, catalogID, category string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, o := range m.offerings[catalogID] {
		if o.Category == category && !seen[o.SubjectName] {
			seen[o.SubjectName] = true
			names = append(names, o.SubjectName)
		}
	}
	return names, nil
}

// ── Mock RecommendationRepository ──

type mockRecommendationRepo struct {
	recs []*model.Recommendation
}

func newMockRecommendationRepo() *mockRecommendationRepo {
	return &mockRecommendationRepo{}
}

func (m *mockRecommendationRepo) Create(_ context.Context, rec *model.Recommendation) error {
	if rec.RecommendationID == "" {
		rec.RecommendationID = fmt.Sprintf("10000000-0000-0000-0000-%012d", len(m.recs)+1)
	}
	rec.CreatedAt = time.Date(2026, 3, 1, 12, 0, len(m.recs), 0, time.UTC)
	m.recs = append(m.recs, rec)
	return nil
}

func (m *mockRecommendationRepo) GetByID(_ context.Context, id string) (*model.Recommendation, error) {
	for _, r := range m.recs {
		if r.RecommendationID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecommendationRepo) ListByCatalog(_ context.Context, catalogID string, offset, limit int) ([]model.Recommendation, int64, error) {
	var all []model.Recommendation
	for i := len(m.recs) - 1; i >= 0; i-- {
		if m.recs[i].CatalogID == catalogID {
			all = append(all, *m.recs[i])
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Recommendation{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock RecommendationCache ──

type mockCache struct {
	data        map[string][]byte
	gets        int
	sets        int
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, error) {
	m.gets++
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, apperrors.ErrCacheMiss
}

func (m *mockCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.sets++
	m.data[key] = data
	return nil
}

func (m *mockCache) InvalidateCatalog(_ context.Context, catalogID string) error {
	m.invalidated = append(m.invalidated, catalogID)
	return nil
}
