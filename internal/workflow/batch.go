package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ertan/cvscout/internal/logger"
)

// BatchItem records the outcome for one document of a batch run.
type BatchItem struct {
	Path        string `json:"path"`
	CandidateID *uint  `json:"candidate_id,omitempty"`
	MatchScore  *int   `json:"match_score,omitempty"`
	Recorded    bool   `json:"recorded"`
	// Message is the user-visible outcome; on failure it is the distinct
	// message for the failed stage's kind.
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// BatchSummary aggregates a sequential batch run.
type BatchSummary struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Items     []BatchItem   `json:"items"`
	Duration  time.Duration `json:"-"`
}

// RunBatch processes documents sequentially, one at a time, against one
// optional job context. Failures are isolated per item: a document that
// fails any stage is recorded and processing continues with the next one.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - paths: resume document paths, processed in order.
//   - jobDescription: optional job description shared by all items.
//   - jobID: optional job to record applications against.
//
// Returns:
//   - *BatchSummary: per-item outcomes plus counts; Failed equals exactly
//     the number of items that returned an error.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string, jobDescription string, jobID *uint) *BatchSummary {
	runID := uuid.New().String()
	ctx = logger.SetRunID(ctx, runID)
	start := time.Now()

	summary := &BatchSummary{
		RunID: runID,
		Total: len(paths),
		Items: make([]BatchItem, 0, len(paths)),
	}

	logger.CtxInfo(ctx, "Starting batch run: %d documents", len(paths))

	for _, path := range paths {
		item := p.runItem(ctx, Input{
			FilePath:       path,
			JobDescription: jobDescription,
			JobID:          jobID,
		})
		if item.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Items = append(summary.Items, item)
	}

	summary.Duration = time.Since(start)
	logger.CtxInfo(ctx, "Batch run complete: total=%d, succeeded=%d, failed=%d, duration=%s",
		summary.Total, summary.Succeeded, summary.Failed, summary.Duration)
	return summary
}

// runItem processes one document and converts any fault, classified or not,
// into a BatchItem. Panics are contained here so a malformed document can
// never take down the remaining batch.
func (p *Pipeline) runItem(ctx context.Context, input Input) (item BatchItem) {
	item = BatchItem{Path: input.FilePath}
	ctx = logger.SetDocument(ctx, input.FilePath)

	defer func() {
		if r := recover(); r != nil {
			item.Err = fmt.Errorf("panic while processing %s: %v", input.FilePath, r)
			item.Message = UserMessage(item.Err, input.FilePath)
			logger.CtxError(ctx, "Recovered from panic: %v", r)
		}
	}()

	state, err := p.Run(ctx, input)
	if err != nil {
		item.Err = err
		item.Message = UserMessage(err, input.FilePath)
		return item
	}

	item.CandidateID = state.CandidateID
	item.MatchScore = state.MatchScore
	item.Recorded = state.Recorded()
	switch {
	case state.PersistErr != nil:
		item.Message = "Processed but not saved."
	case state.Recorded():
		item.Message = "Processed and recorded."
	default:
		item.Message = "Processed."
	}
	return item
}
