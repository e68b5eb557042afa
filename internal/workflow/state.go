package workflow

import "github.com/ertan/cvscout/internal/domain"

// Input is what a caller supplies for one screening run.
type Input struct {
	// FilePath is the resume document to process. Required.
	FilePath string
	// JobDescription gates the relevancy analysis: blank or
	// whitespace-only means the analysis stage is skipped.
	JobDescription string
	// JobID links the persisted application to a job. Nil means the run
	// produces a report without recording an application.
	JobID *uint
}

// PipelineState is the single mutable record threaded through the resume
// pipeline. Stages fill in fields as they become available; a nil pointer
// field means "not produced on this path", which every downstream stage
// treats as skip, not error.
type PipelineState struct {
	FilePath       string
	JobDescription string
	JobID          *uint

	// RawText is set by Ingest.
	RawText string
	// Extracted is set by Extract; nil when the raw text was empty.
	Extracted *domain.Resume
	// Report is set by Standardize; nil when there was no extraction.
	Report *domain.Report
	// MatchScore and MatchSummary are set by Analyze (or to the neutral
	// defaults when the route decision skips it).
	MatchScore   *int
	MatchSummary *string
	// CandidateID is set by Persist on success; nil means the run was not
	// recorded (no report, no job, or a store fault).
	CandidateID *uint
	// PersistErr carries a store fault that was absorbed by Persist, so
	// callers can tell "processed but not saved" from "fully succeeded"
	// without reading logs.
	PersistErr error
}

// Recorded reports whether the run ended with a persisted application.
func (s *PipelineState) Recorded() bool {
	return s.CandidateID != nil
}
