package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/albert-jeong/auto-class/internal/dto"
	"github.com/albert-jeong/auto-class/internal/service"
	"github.com/albert-jeong/auto-class/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CatalogService ──

type mockCatalogService struct {
	importResult   *dto.CatalogResponse
	importErr      error
	importFilename string
	importBody     string
	importReq      *dto.ImportCatalogRequest
	getResult      *dto.CatalogResponse
	getErr         error
	listResult     []dto.CatalogResponse
	listTotal      int64
	deleteErr      error
	subjects       []string
	subjectsErr    error
	subjectsCat    string
}

func (m *mockCatalogService) Import(_ context.Context, r io.Reader, filename string, req *dto.ImportCatalogRequest) (*dto.CatalogResponse, error) {
	body, _ := io.ReadAll(r)
	m.importBody = string(body)
	m.importFilename = filename
	m.importReq = req
	return m.importResult, m.importErr
}
func (m *mockCatalogService) GetByID(_ context.Context, _ string) (*dto.CatalogResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockCatalogService) List(_ context.Context, _ *dto.PaginationRequest) ([]dto.CatalogResponse, int64, error) {
	return m.listResult, m.listTotal, nil
}
func (m *mockCatalogService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockCatalogService) ListSubjects(_ context.Context, _, category string) ([]string, error) {
	m.subjectsCat = category
	return m.subjects, m.subjectsErr
}

// ── Mock RecommendationService ──

type mockRecommendationService struct {
	recommendResult *dto.RecommendationResponse
	recommendErr    error
	recommendReq    *dto.CreateRecommendationRequest
	getResult       *dto.RecommendationResponse
	getErr          error
	listResult      []dto.RecommendationSummary
	listTotal       int64
	listErr         error
}

func (m *mockRecommendationService) Recommend(_ context.Context, req *dto.CreateRecommendationRequest) (*dto.RecommendationResponse, error) {
	m.recommendReq = req
	return m.recommendResult, m.recommendErr
}
func (m *mockRecommendationService) GetByID(_ context.Context, _ string) (*dto.RecommendationResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockRecommendationService) ListByCatalog(_ context.Context, _ string, _ *dto.PaginationRequest) ([]dto.RecommendationSummary, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	workbookErr error
	calendarErr error
	calendarReq *dto.ExportCalendarRequest
}

func (m *mockExportService) ExportWorkbook(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	if m.workbookErr != nil {
		return nil, "", m.workbookErr
	}
	return bytes.NewBufferString("xlsx-bytes"), "课表_abc.xlsx", nil
}
func (m *mockExportService) ExportCalendar(_ context.Context, _ string, req *dto.ExportCalendarRequest) ([]byte, string, error) {
	m.calendarReq = req
	if m.calendarErr != nil {
		return nil, "", m.calendarErr
	}
	return []byte("BEGIN:VCALENDAR"), "课表_abc.ics", nil
}

// ── 测试辅助 ──

const testCatalogID = "6f1c2f4e-8c59-4c1e-9a0e-1b2c3d4e5f60"

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func multipartUpload(t *testing.T, fields map[string]string, filename, content string) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write([]byte(content))
	}
	_ = mw.Close()
	return body, mw.FormDataContentType()
}

// ═══════════════════════════════════════════════════════════
// CatalogHandler
// ═══════════════════════════════════════════════════════════

func TestCatalogHandler_Import_Success(t *testing.T) {
	mock := &mockCatalogService{importResult: &dto.CatalogResponse{ID: testCatalogID, OfferingCount: 3}}
	h := NewCatalogHandler(mock, 1<<20)

	body, contentType := multipartUpload(t, map[string]string{"name": "2026-1", "encoding": "euc-kr"}, "courses.txt", "구분\t과목명\n")
	req := httptest.NewRequest(http.MethodPost, "/catalogs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	r := gin.New()
	r.POST("/catalogs", h.ImportCatalog)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.importFilename != "courses.txt" || mock.importBody != "구분\t과목명\n" {
		t.Errorf("文件未正确传递: %q %q", mock.importFilename, mock.importBody)
	}
	if mock.importReq.Name != "2026-1" || mock.importReq.Encoding != "euc-kr" {
		t.Errorf("表单字段未正确绑定: %+v", mock.importReq)
	}
}

func TestCatalogHandler_Import_MissingFile(t *testing.T) {
	h := NewCatalogHandler(&mockCatalogService{}, 1<<20)
	body, contentType := multipartUpload(t, map[string]string{"name": "x"}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/catalogs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	r := gin.New()
	r.POST("/catalogs", h.ImportCatalog)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCatalogHandler_Import_TooLarge(t *testing.T) {
	h := NewCatalogHandler(&mockCatalogService{}, 4)
	body, contentType := multipartUpload(t, nil, "courses.txt", "more than four bytes")
	req := httptest.NewRequest(http.MethodPost, "/catalogs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	r := gin.New()
	r.POST("/catalogs", h.ImportCatalog)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestCatalogHandler_Import_ErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantHTTP int
		wantCode int
	}{
		{service.ErrCatalogUnsupportedFormat, http.StatusBadRequest, 21002},
		{service.ErrCatalogUnknownEncoding, http.StatusBadRequest, 21003},
		{service.ErrCatalogBadHeader, http.StatusUnprocessableEntity, 21004},
		{service.ErrCatalogEmpty, http.StatusUnprocessableEntity, 21005},
		{errors.New("db down"), http.StatusInternalServerError, 50000},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			h := NewCatalogHandler(&mockCatalogService{importErr: tc.err}, 1<<20)
			body, contentType := multipartUpload(t, nil, "courses.txt", "x")
			req := httptest.NewRequest(http.MethodPost, "/catalogs", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			r := gin.New()
			r.POST("/catalogs", h.ImportCatalog)
			r.ServeHTTP(w, req)

			if w.Code != tc.wantHTTP {
				t.Errorf("expected %d, got %d", tc.wantHTTP, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tc.wantCode {
				t.Errorf("expected code %d, got %d", tc.wantCode, resp.Code)
			}
		})
	}
}

func TestCatalogHandler_GetCatalog_NotFound(t *testing.T) {
	h := NewCatalogHandler(&mockCatalogService{getErr: service.ErrCatalogNotFound}, 0)
	w := httptest.NewRecorder()

	r := gin.New()
	r.GET("/catalogs/:id", h.GetCatalog)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalogs/"+testCatalogID, nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCatalogHandler_ListCatalogs_Pagination(t *testing.T) {
	mock := &mockCatalogService{listResult: []dto.CatalogResponse{{ID: "a"}, {ID: "b"}}, listTotal: 5}
	h := NewCatalogHandler(mock, 0)
	w := httptest.NewRecorder()

	r := gin.New()
	r.GET("/catalogs", h.ListCatalogs)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalogs?page=2&page_size=2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data response.PageData `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Pagination.TotalPages != 3 || resp.Data.Pagination.Page != 2 {
		t.Errorf("unexpected pagination %+v", resp.Data.Pagination)
	}
}

func TestCatalogHandler_ListSubjects(t *testing.T) {
	mock := &mockCatalogService{subjects: []string{"운영체제", "네트워크"}}
	h := NewCatalogHandler(mock, 0)

	r := gin.New()
	r.GET("/catalogs/:id/subjects", h.ListSubjects)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalogs/"+testCatalogID+"/subjects?category=general", nil))
	if w.Code != http.StatusOK || mock.subjectsCat != "general" {
		t.Errorf("expected 200 with category general, got %d / %q", w.Code, mock.subjectsCat)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalogs/"+testCatalogID+"/subjects?category=other", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("未知类别期望 400，实际 %d", w.Code)
	}
}

func TestCatalogHandler_DeleteCatalog(t *testing.T) {
	r := gin.New()
	r.DELETE("/catalogs/:id", NewCatalogHandler(&mockCatalogService{}, 0).DeleteCatalog)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/catalogs/"+testCatalogID, nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RecommendationHandler
// ═══════════════════════════════════════════════════════════

func TestRecommendationHandler_Create_Success(t *testing.T) {
	mock := &mockRecommendationService{recommendResult: &dto.RecommendationResponse{ID: "rec-1"}}
	h := NewRecommendationHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/recommendations", jsonBody(dto.CreateRecommendationRequest{
		CatalogID:    testCatalogID,
		Electives:    []string{"운영체제", "운영체제"},
		GeneralCount: 2,
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r := gin.New()
	r.POST("/recommendations", h.CreateRecommendation)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(mock.recommendReq.Electives) != 2 {
		t.Errorf("重复的选修应原样传递，实际 %v", mock.recommendReq.Electives)
	}
}

func TestRecommendationHandler_Create_CachedReturns200(t *testing.T) {
	mock := &mockRecommendationService{recommendResult: &dto.RecommendationResponse{ID: "rec-1", Cached: true}}
	req := httptest.NewRequest(http.MethodPost, "/recommendations", jsonBody(dto.CreateRecommendationRequest{CatalogID: testCatalogID, GeneralCount: 1}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r := gin.New()
	r.POST("/recommendations", NewRecommendationHandler(mock).CreateRecommendation)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRecommendationHandler_Create_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad json", "not json"},
		{"missing catalog", `{"general_count":1}`},
		{"catalog not uuid", `{"catalog_id":"abc","general_count":1}`},
		{"general count zero", `{"catalog_id":"` + testCatalogID + `","general_count":0}`},
		{"empty elective name", `{"catalog_id":"` + testCatalogID + `","general_count":1,"electives":[""]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r := gin.New()
			r.POST("/recommendations", NewRecommendationHandler(&mockRecommendationService{}).CreateRecommendation)
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestRecommendationHandler_Create_ErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantHTTP int
		wantCode int
	}{
		{service.ErrCatalogNotFound, http.StatusNotFound, 21001},
		{service.ErrGeneralCountOutOfRange, http.StatusBadRequest, 22002},
		{errors.New("boom"), http.StatusInternalServerError, 50000},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/recommendations", jsonBody(dto.CreateRecommendationRequest{CatalogID: testCatalogID, GeneralCount: 1}))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r := gin.New()
			r.POST("/recommendations", NewRecommendationHandler(&mockRecommendationService{recommendErr: tc.err}).CreateRecommendation)
			r.ServeHTTP(w, req)

			if w.Code != tc.wantHTTP {
				t.Errorf("expected %d, got %d", tc.wantHTTP, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tc.wantCode {
				t.Errorf("expected code %d, got %d", tc.wantCode, resp.Code)
			}
		})
	}
}

func TestRecommendationHandler_Get_NotFound(t *testing.T) {
	r := gin.New()
	r.GET("/recommendations/:id", NewRecommendationHandler(&mockRecommendationService{getErr: service.ErrRecommendationNotFound}).GetRecommendation)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations/x", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Workbook(t *testing.T) {
	r := gin.New()
	r.GET("/recommendations/:id/export.xlsx", NewExportHandler(&mockExportService{}).ExportWorkbook)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations/abc/export.xlsx", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("unexpected content type %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment; filename*=UTF-8''") {
		t.Errorf("unexpected content disposition %s", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestExportHandler_Calendar(t *testing.T) {
	mock := &mockExportService{}
	r := gin.New()
	r.GET("/recommendations/:id/export.ics", NewExportHandler(mock).ExportCalendar)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations/abc/export.ics?term_start=2026-03-02&weeks=15", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.calendarReq.TermStart != "2026-03-02" || mock.calendarReq.Weeks != 15 {
		t.Errorf("查询参数未正确绑定: %+v", mock.calendarReq)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations/abc/export.ics", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少 term_start 期望 400，实际 %d", w.Code)
	}
}

func TestExportHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantHTTP int
	}{
		{service.ErrRecommendationNotFound, http.StatusNotFound},
		{service.ErrExportTermInvalid, http.StatusBadRequest},
		{service.ErrExportNoPrimaries, http.StatusUnprocessableEntity},
		{service.ErrExportGenerateFail, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			r := gin.New()
			r.GET("/recommendations/:id/export.ics", NewExportHandler(&mockExportService{calendarErr: tc.err}).ExportCalendar)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations/abc/export.ics?term_start=2026-03-02", nil))
			if w.Code != tc.wantHTTP {
				t.Errorf("expected %d, got %d", tc.wantHTTP, w.Code)
			}
		})
	}
}
