package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ertan/cvscout/internal/domain"
)

type fakeLoader struct {
	texts map[string]string
	err   error
}

func (f *fakeLoader) Load(path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if text, ok := f.texts[path]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no such document: %s", path)
}

type fakeExtractor struct {
	resume     *domain.Resume
	extractErr error

	analysis   *domain.RelevancyAnalysis
	analyzeErr error

	extractCalls int
	analyzeCalls int
	panicOn      string
}

func (f *fakeExtractor) ExtractResume(ctx context.Context, text string) (*domain.Resume, error) {
	f.extractCalls++
	if f.panicOn != "" && strings.Contains(text, f.panicOn) {
		panic("extractor blew up")
	}
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return f.resume, nil
}

func (f *fakeExtractor) AnalyzeRelevancy(ctx context.Context, jobDescription string, report *domain.Report) (*domain.RelevancyAnalysis, error) {
	f.analyzeCalls++
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.analysis, nil
}

type fakeStore struct {
	nextCandidateID uint
	candidateErr    error
	appErr          error

	candidates   []*domain.Candidate
	applications []*domain.Application
}

func (f *fakeStore) UpsertCandidate(ctx context.Context, candidate *domain.Candidate) (uint, error) {
	if f.candidateErr != nil {
		return 0, f.candidateErr
	}
	f.candidates = append(f.candidates, candidate)
	if f.nextCandidateID == 0 {
		f.nextCandidateID = 1
	}
	return f.nextCandidateID, nil
}

func (f *fakeStore) UpsertApplication(ctx context.Context, app *domain.Application) error {
	if f.appErr != nil {
		return f.appErr
	}
	f.applications = append(f.applications, app)
	return nil
}

func validResume() *domain.Resume {
	return &domain.Resume{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		PhoneNumber:     "+44 20 1234 5678",
		GitHub:          "github.com/ada",
		TechnicalSkills: []string{"Go", "SQL"},
		Education: []domain.Education{
			{Institution: "University of London", Degree: "BSc Mathematics", Years: "1835-1839"},
		},
		Experience: []domain.Experience{
			{Company: "Analytical Engines Ltd", Title: "Programmer", Years: "1842-1843", Description: "Wrote the first published algorithm."},
		},
	}
}

func uintPtr(v uint) *uint { return &v }

func TestRouteToAnalysis(t *testing.T) {
	tests := []struct {
		name           string
		jobDescription string
		want           bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \n\t ", false},
		{"present", "Senior Go engineer", true},
		{"present with padding", "  role text  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := routeToAnalysis(tt.jobDescription); got != tt.want {
				t.Errorf("routeToAnalysis(%q) = %v, want %v", tt.jobDescription, got, tt.want)
			}
		})
	}
}

func TestPipelineRun_SkipsAnalysisWithoutDescription(t *testing.T) {
	extractor := &fakeExtractor{resume: validResume()}
	store := &fakeStore{nextCandidateID: 7}
	p := NewPipeline(&fakeLoader{texts: map[string]string{"cv.pdf": "resume text"}}, extractor, store)

	state, err := p.Run(context.Background(), Input{FilePath: "cv.pdf", JobID: uintPtr(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if extractor.analyzeCalls != 0 {
		t.Errorf("expected no analysis calls, got %d", extractor.analyzeCalls)
	}
	if state.MatchScore == nil || *state.MatchScore != 0 {
		t.Errorf("expected neutral score 0, got %v", state.MatchScore)
	}
	if state.MatchSummary == nil || *state.MatchSummary != domain.NotApplicableSummary {
		t.Errorf("expected not-applicable summary, got %v", state.MatchSummary)
	}
	if !state.Recorded() {
		t.Error("expected run to be recorded")
	}
	if len(store.applications) != 1 || store.applications[0].MatchScore != 0 {
		t.Fatalf("expected one application with neutral score, got %+v", store.applications)
	}
}

func TestPipelineRun_AnalyzesWithDescription(t *testing.T) {
	extractor := &fakeExtractor{
		resume:   validResume(),
		analysis: &domain.RelevancyAnalysis{Score: 87, Summary: "Strong match."},
	}
	store := &fakeStore{nextCandidateID: 2}
	p := NewPipeline(&fakeLoader{texts: map[string]string{"cv.pdf": "resume text"}}, extractor, store)

	state, err := p.Run(context.Background(), Input{
		FilePath:       "cv.pdf",
		JobDescription: "Senior Go engineer",
		JobID:          uintPtr(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if extractor.analyzeCalls != 1 {
		t.Errorf("expected exactly one analysis call, got %d", extractor.analyzeCalls)
	}
	if state.MatchScore == nil || *state.MatchScore != 87 {
		t.Errorf("expected score 87, got %v", state.MatchScore)
	}
	if state.MatchSummary == nil || *state.MatchSummary != "Strong match." {
		t.Errorf("expected analysis summary, got %v", state.MatchSummary)
	}
	if len(store.applications) != 1 || store.applications[0].MatchScore != 87 {
		t.Fatalf("expected application with score 87, got %+v", store.applications)
	}
	if store.applications[0].Status != domain.ApplicationStatusReceived {
		t.Errorf("expected status %q, got %q", domain.ApplicationStatusReceived, store.applications[0].Status)
	}
}

func TestPipelineRun_EmptyTextShortCircuits(t *testing.T) {
	extractor := &fakeExtractor{resume: validResume()}
	store := &fakeStore{}
	p := NewPipeline(&fakeLoader{texts: map[string]string{"blank.pdf": "   \n "}}, extractor, store)

	state, err := p.Run(context.Background(), Input{FilePath: "blank.pdf", JobID: uintPtr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if extractor.extractCalls != 0 {
		t.Errorf("expected no extraction calls for empty text, got %d", extractor.extractCalls)
	}
	if state.Extracted != nil || state.Report != nil {
		t.Error("expected absent extraction and report")
	}
	if state.Recorded() {
		t.Error("expected nothing to be recorded")
	}
	if len(store.candidates) != 0 {
		t.Errorf("expected no candidate writes, got %d", len(store.candidates))
	}
}

func TestPipelineRun_StageFailureKinds(t *testing.T) {
	loadErr := errors.New("disk gone")
	extractErr := errors.New("model unavailable")
	analyzeErr := errors.New("scoring timeout")

	tests := []struct {
		name      string
		loader    Loader
		extractor *fakeExtractor
		input     Input
		wantKind  Kind
	}{
		{
			name:      "load failure",
			loader:    &fakeLoader{err: loadErr},
			extractor: &fakeExtractor{resume: validResume()},
			input:     Input{FilePath: "cv.pdf"},
			wantKind:  KindLoad,
		},
		{
			name:      "missing file path",
			loader:    &fakeLoader{},
			extractor: &fakeExtractor{resume: validResume()},
			input:     Input{FilePath: "   "},
			wantKind:  KindLoad,
		},
		{
			name:      "extraction failure",
			loader:    &fakeLoader{texts: map[string]string{"cv.pdf": "text"}},
			extractor: &fakeExtractor{extractErr: extractErr},
			input:     Input{FilePath: "cv.pdf"},
			wantKind:  KindExtraction,
		},
		{
			name:      "standardization failure on missing identity",
			loader:    &fakeLoader{texts: map[string]string{"cv.pdf": "text"}},
			extractor: &fakeExtractor{resume: &domain.Resume{FullName: "Ada Lovelace"}},
			input:     Input{FilePath: "cv.pdf"},
			wantKind:  KindStandardization,
		},
		{
			name:      "relevancy failure",
			loader:    &fakeLoader{texts: map[string]string{"cv.pdf": "text"}},
			extractor: &fakeExtractor{resume: validResume(), analyzeErr: analyzeErr},
			input:     Input{FilePath: "cv.pdf", JobDescription: "Go engineer"},
			wantKind:  KindRelevancy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(tt.loader, tt.extractor, &fakeStore{})
			_, err := p.Run(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			kind, ok := KindOf(err)
			if !ok {
				t.Fatalf("expected a classified stage error, got %v", err)
			}
			if kind != tt.wantKind {
				t.Errorf("expected kind %q, got %q", tt.wantKind, kind)
			}
		})
	}
}

func TestPipelineRun_PersistFaultAbsorbed(t *testing.T) {
	storeErr := errors.New("database locked")
	store := &fakeStore{candidateErr: storeErr}
	p := NewPipeline(
		&fakeLoader{texts: map[string]string{"cv.pdf": "text"}},
		&fakeExtractor{resume: validResume()},
		store,
	)

	state, err := p.Run(context.Background(), Input{FilePath: "cv.pdf", JobID: uintPtr(4)})
	if err != nil {
		t.Fatalf("persistence fault must not fail the run, got %v", err)
	}

	if state.PersistErr == nil {
		t.Fatal("expected PersistErr to carry the store fault")
	}
	if kind, ok := KindOf(state.PersistErr); !ok || kind != KindPersistence {
		t.Errorf("expected persistence kind, got %v", state.PersistErr)
	}
	if state.Recorded() {
		t.Error("expected run not to be recorded")
	}
	if state.Report == nil {
		t.Error("expected report to survive the persistence fault")
	}
}

func TestPipelineRun_NoJobContextSkipsPersist(t *testing.T) {
	store := &fakeStore{}
	p := NewPipeline(
		&fakeLoader{texts: map[string]string{"cv.pdf": "text"}},
		&fakeExtractor{resume: validResume()},
		store,
	)

	state, err := p.Run(context.Background(), Input{FilePath: "cv.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.candidates) != 0 || len(store.applications) != 0 {
		t.Error("expected no store writes without a job context")
	}
	if state.Report == nil {
		t.Fatal("expected a report for a valid resume")
	}
	if state.PersistErr != nil {
		t.Errorf("unexpected persist error: %v", state.PersistErr)
	}
}

func TestStandardizeResume_PreservesFields(t *testing.T) {
	resume := validResume()
	report, err := standardizeResume(resume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.FullName != resume.FullName || report.Email != resume.Email {
		t.Error("identity fields must survive standardization")
	}
	if report.PhoneNumber != resume.PhoneNumber || report.GitHub != resume.GitHub {
		t.Error("contact fields must survive standardization")
	}
	if len(report.Education) != 1 || report.Education[0].Institution != "University of London" {
		t.Errorf("education entries must survive, got %+v", report.Education)
	}
	if len(report.Experience) != 1 || report.Experience[0].Company != "Analytical Engines Ltd" {
		t.Errorf("experience entries must survive, got %+v", report.Experience)
	}
	if len(report.TechnicalSkills) != 2 {
		t.Errorf("skills must survive, got %v", report.TechnicalSkills)
	}
}

func TestStandardizeResume_NormalizesNilLists(t *testing.T) {
	report, err := standardizeResume(&domain.Resume{FullName: "Ada Lovelace", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Education == nil || report.Experience == nil || report.TechnicalSkills == nil || report.Languages == nil {
		t.Error("nil list fields must be normalized to empty slices")
	}
	if len(report.Education)+len(report.Experience)+len(report.TechnicalSkills)+len(report.Languages) != 0 {
		t.Error("normalized lists must be empty")
	}
}

func TestUserMessage_DistinctPerKind(t *testing.T) {
	kinds := []Kind{KindLoad, KindExtraction, KindStandardization, KindRelevancy, KindPersistence}
	seen := make(map[string]Kind)
	for _, kind := range kinds {
		msg := newStageError(kind, string(kind), errors.New("boom")).UserMessage()
		if prev, dup := seen[msg]; dup {
			t.Errorf("kinds %q and %q share the message %q", prev, kind, msg)
		}
		seen[msg] = kind
	}
}
