package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/ertan/cvscout/internal/domain"
	"github.com/ertan/cvscout/internal/logger"
)

// Extractor is the structured-extraction client the pipeline depends on.
type Extractor interface {
	ExtractResume(ctx context.Context, text string) (*domain.Resume, error)
	AnalyzeRelevancy(ctx context.Context, jobDescription string, report *domain.Report) (*domain.RelevancyAnalysis, error)
}

// Loader extracts text from a resume document path.
type Loader interface {
	Load(path string) (string, error)
}

// Store is the persistence surface the pipeline writes through.
type Store interface {
	UpsertCandidate(ctx context.Context, candidate *domain.Candidate) (uint, error)
	UpsertApplication(ctx context.Context, app *domain.Application) error
}

// Pipeline runs one resume through the fixed stage sequence
// Ingest -> Extract -> Standardize -> [Analyze] -> Persist, with a single
// route decision between Standardize and Persist.
type Pipeline struct {
	loader    Loader
	extractor Extractor
	store     Store
}

// NewPipeline creates a resume pipeline.
// Parameters:
//   - loader: document text loader.
//   - extractor: structured-extraction client.
//   - store: persistence surface; may be nil for report-only runs.
//
// Returns:
//   - *Pipeline: initialized pipeline.
func NewPipeline(loader Loader, extractor Extractor, store Store) *Pipeline {
	return &Pipeline{
		loader:    loader,
		extractor: extractor,
		store:     store,
	}
}

// stage is one named step of the pipeline: a function of the state that
// either mutates it or fails.
type stage struct {
	name string
	run  func(ctx context.Context, state *PipelineState) error
}

// Run executes the pipeline for one input.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - input: file path plus optional job description and job ID.
//
// Returns:
//   - *PipelineState: the final state; partially filled when err is non-nil.
//   - error: a *StageError for load/extraction/standardization/relevancy
//     faults. Persistence faults are absorbed into state.PersistErr.
func (p *Pipeline) Run(ctx context.Context, input Input) (*PipelineState, error) {
	state := &PipelineState{
		FilePath:       input.FilePath,
		JobDescription: input.JobDescription,
		JobID:          input.JobID,
	}

	stages := []stage{
		{"ingest", p.ingest},
		{"extract", p.extract},
		{"standardize", p.standardize},
	}

	// The route decision is consulted exactly once, between Standardize
	// and Persist. Both branches reconverge on Persist.
	if routeToAnalysis(input.JobDescription) {
		stages = append(stages, stage{"analyze_relevancy", p.analyze})
	} else {
		stages = append(stages, stage{"skip_analysis", p.skipAnalysis})
	}
	stages = append(stages, stage{"persist", p.persist})

	for _, st := range stages {
		stageCtx := logger.WithField(ctx, logger.FieldStage, st.name)
		if err := st.run(stageCtx, state); err != nil {
			logger.CtxError(stageCtx, "Stage failed: %v", err)
			return state, err
		}
	}

	return state, nil
}

// routeToAnalysis is the pipeline's only branch point: analyze when the job
// description is present and not whitespace-only.
func routeToAnalysis(jobDescription string) bool {
	return strings.TrimSpace(jobDescription) != ""
}

// ingest loads the document text.
func (p *Pipeline) ingest(ctx context.Context, state *PipelineState) error {
	if strings.TrimSpace(state.FilePath) == "" {
		return newStageError(KindLoad, "ingest", fmt.Errorf("file path is required"))
	}

	text, err := p.loader.Load(state.FilePath)
	if err != nil {
		return newStageError(KindLoad, "ingest", err)
	}

	state.RawText = text
	logger.CtxDebug(ctx, "Ingested document: %d bytes of text", len(text))
	return nil
}

// extract runs structured extraction over the raw text. Empty text is a
// valid state, not a failure: it short-circuits with an absent extraction.
func (p *Pipeline) extract(ctx context.Context, state *PipelineState) error {
	if strings.TrimSpace(state.RawText) == "" {
		state.Extracted = nil
		logger.CtxDebug(ctx, "No text to extract, skipping")
		return nil
	}

	resume, err := p.extractor.ExtractResume(ctx, state.RawText)
	if err != nil {
		return newStageError(KindExtraction, "extract", err)
	}

	state.Extracted = resume
	return nil
}

// standardize projects the extraction into the plain-data report. Absence
// propagates; no field present in the extraction is dropped.
func (p *Pipeline) standardize(ctx context.Context, state *PipelineState) error {
	if state.Extracted == nil {
		state.Report = nil
		return nil
	}

	report, err := standardizeResume(state.Extracted)
	if err != nil {
		return newStageError(KindStandardization, "standardize", err)
	}

	state.Report = report
	return nil
}

// standardizeResume converts a Resume into its Report projection.
func standardizeResume(r *domain.Resume) (*domain.Report, error) {
	if strings.TrimSpace(r.FullName) == "" || strings.TrimSpace(r.Email) == "" {
		return nil, fmt.Errorf("extracted resume is missing identity fields")
	}

	report := &domain.Report{
		FullName:        r.FullName,
		Email:           r.Email,
		PhoneNumber:     r.PhoneNumber,
		GitHub:          r.GitHub,
		LinkedIn:        r.LinkedIn,
		Education:       r.Education,
		Experience:      r.Experience,
		TechnicalSkills: r.TechnicalSkills,
		Languages:       r.Languages,
	}
	if report.Education == nil {
		report.Education = []domain.Education{}
	}
	if report.Experience == nil {
		report.Experience = []domain.Experience{}
	}
	if report.TechnicalSkills == nil {
		report.TechnicalSkills = []string{}
	}
	if report.Languages == nil {
		report.Languages = []string{}
	}
	return report, nil
}

// analyze scores the report against the job description. The model is never
// called with incomplete context: a missing report or description yields the
// neutral result instead.
func (p *Pipeline) analyze(ctx context.Context, state *PipelineState) error {
	if state.Report == nil || strings.TrimSpace(state.JobDescription) == "" {
		applyAnalysis(state, domain.NotApplicableAnalysis())
		return nil
	}

	analysis, err := p.extractor.AnalyzeRelevancy(ctx, state.JobDescription, state.Report)
	if err != nil {
		return newStageError(KindRelevancy, "analyze_relevancy", err)
	}

	applyAnalysis(state, analysis)
	logger.CtxInfo(ctx, "Relevancy analysis complete: score=%d", analysis.Score)
	return nil
}

// skipAnalysis is the no-description branch: neutral defaults, no model call.
func (p *Pipeline) skipAnalysis(ctx context.Context, state *PipelineState) error {
	applyAnalysis(state, domain.NotApplicableAnalysis())
	logger.CtxDebug(ctx, "No job description, skipping relevancy analysis")
	return nil
}

func applyAnalysis(state *PipelineState, analysis *domain.RelevancyAnalysis) {
	score := analysis.Score
	summary := analysis.Summary
	state.MatchScore = &score
	state.MatchSummary = &summary
}

// persist upserts the candidate by email and the application by
// (job, candidate). A missing report or job ID makes this a silent no-op:
// optional-analysis runs without a job context are valid. Store faults are
// absorbed into state.PersistErr so one bad save never aborts a batch.
func (p *Pipeline) persist(ctx context.Context, state *PipelineState) error {
	if state.Report == nil || state.JobID == nil || p.store == nil {
		logger.CtxDebug(ctx, "Nothing to persist (report or job context missing)")
		return nil
	}

	reportJSON, err := state.Report.JSON()
	if err != nil {
		state.PersistErr = newStageError(KindPersistence, "persist", err)
		logger.CtxError(ctx, "Failed to serialize report: %v", err)
		return nil
	}

	candidate := &domain.Candidate{
		FullName:    state.Report.FullName,
		Email:       state.Report.Email,
		PhoneNumber: state.Report.PhoneNumber,
		ReportJSON:  reportJSON,
	}
	candidateID, err := p.store.UpsertCandidate(ctx, candidate)
	if err != nil {
		state.PersistErr = newStageError(KindPersistence, "persist", err)
		logger.CtxError(ctx, "Failed to upsert candidate: %v", err)
		return nil
	}

	score := 0
	if state.MatchScore != nil {
		score = *state.MatchScore
	}
	summary := ""
	if state.MatchSummary != nil {
		summary = *state.MatchSummary
	}

	app := &domain.Application{
		JobID:        *state.JobID,
		CandidateID:  candidateID,
		MatchScore:   score,
		MatchSummary: summary,
		Status:       domain.ApplicationStatusReceived,
	}
	if err := p.store.UpsertApplication(ctx, app); err != nil {
		state.PersistErr = newStageError(KindPersistence, "persist", err)
		logger.CtxError(ctx, "Failed to upsert application: %v", err)
		return nil
	}

	state.CandidateID = &candidateID
	logger.CtxInfo(ctx, "Persisted screening: candidate_id=%d, job_id=%d, score=%d", candidateID, *state.JobID, score)
	return nil
}
