package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ertan/cvscout/internal/domain"
	"github.com/ertan/cvscout/internal/repository"
	"github.com/ertan/cvscout/internal/workflow"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Job{}, &domain.Candidate{}, &domain.Application{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJobHandler_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	h := NewJobHandler(repository.NewJobRepository(db), repository.NewApplicationRepository(db))

	router := gin.New()
	router.POST("/jobs", h.Create)
	router.GET("/jobs/:id", h.Get)

	w := performJSON(t, router, http.MethodPost, "/jobs", CreateJobRequest{
		Title:       "Go Engineer",
		Description: "Build backend services.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created domain.Job
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == 0 || created.Title != "Go Engineer" {
		t.Errorf("unexpected created job: %+v", created)
	}

	w = performJSON(t, router, http.MethodGet, fmt.Sprintf("/jobs/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = performJSON(t, router, http.MethodGet, "/jobs/99999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a missing job, got %d", w.Code)
	}
}

func TestJobHandler_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	h := NewJobHandler(repository.NewJobRepository(db), repository.NewApplicationRepository(db))

	router := gin.New()
	router.POST("/jobs", h.Create)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing title", map[string]string{"description": "no title"}},
		{"blank title", map[string]string{"title": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, http.MethodPost, "/jobs", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestJobHandler_RankedCandidates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	jobs := repository.NewJobRepository(db)
	job := &domain.Job{Title: "Data Engineer", Description: "Pipelines."}
	if err := jobs.Create(ctx, job); err != nil {
		t.Fatalf("job setup failed: %v", err)
	}

	store := repository.NewScreeningStore(db)
	for i, spec := range []struct {
		email string
		score int
	}{
		{"low@example.com", 40},
		{"high@example.com", 90},
	} {
		id, err := store.UpsertCandidate(ctx, &domain.Candidate{FullName: fmt.Sprintf("Candidate %d", i), Email: spec.email})
		if err != nil {
			t.Fatalf("candidate setup failed: %v", err)
		}
		if err := store.UpsertApplication(ctx, &domain.Application{JobID: job.ID, CandidateID: id, MatchScore: spec.score}); err != nil {
			t.Fatalf("application setup failed: %v", err)
		}
	}

	h := NewJobHandler(jobs, repository.NewApplicationRepository(db))
	router := gin.New()
	router.GET("/jobs/:id/candidates", h.RankedCandidates)

	w := performJSON(t, router, http.MethodGet, fmt.Sprintf("/jobs/%d/candidates", job.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Candidates []domain.RankedCandidate `json:"candidates"`
		Count      int                      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %+v", resp)
	}
	if resp.Candidates[0].Email != "high@example.com" {
		t.Errorf("expected the best match first, got %q", resp.Candidates[0].Email)
	}
}

type stubGenerator struct{}

func (stubGenerator) GenerateEmail(ctx context.Context, jobTitle, candidateName string, disposition domain.Disposition) (*domain.GeneratedEmail, error) {
	return &domain.GeneratedEmail{Subject: "Re: " + jobTitle, Body: "Dear " + candidateName}, nil
}

func TestEmailHandler_Dispatch(t *testing.T) {
	h := NewEmailHandler(workflow.NewEmailPipeline(stubGenerator{}, workflow.NewMockDispatcher()))

	router := gin.New()
	router.POST("/emails/dispatch", h.Dispatch)

	w := performJSON(t, router, http.MethodPost, "/emails/dispatch", DispatchRequest{
		JobTitle: "Go Engineer",
		Positive: []domain.CandidateContact{{FullName: "Ada", Email: "ada@example.com"}},
		Negative: []domain.CandidateContact{{FullName: "Alan", Email: "alan@example.com"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Statuses []string `json:"statuses"`
		Count    int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Statuses) != 2 {
		t.Fatalf("expected one status per candidate, got %+v", resp)
	}
	if resp.Statuses[0] != "Mock email successfully generated for ada@example.com." {
		t.Errorf("unexpected first status: %q", resp.Statuses[0])
	}
}

func TestEmailHandler_DispatchValidation(t *testing.T) {
	h := NewEmailHandler(workflow.NewEmailPipeline(stubGenerator{}, workflow.NewMockDispatcher()))

	router := gin.New()
	router.POST("/emails/dispatch", h.Dispatch)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing job title", DispatchRequest{Positive: []domain.CandidateContact{{FullName: "Ada", Email: "a@b.c"}}}},
		{"no candidates", DispatchRequest{JobTitle: "Role"}},
		{"candidate without email", DispatchRequest{JobTitle: "Role", Positive: []domain.CandidateContact{{FullName: "Ada"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, http.MethodPost, "/emails/dispatch", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}
