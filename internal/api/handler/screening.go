package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ertan/cvscout/internal/logger"
	"github.com/ertan/cvscout/internal/repository"
	"github.com/ertan/cvscout/internal/workflow"
)

// ScreeningHandler handles resume screening endpoints.
type ScreeningHandler struct {
	pipeline   *workflow.Pipeline
	jobs       *repository.JobRepository
	uploadsDir string
}

// NewScreeningHandler creates a new screening handler.
// Parameters:
//   - pipeline: resume screening pipeline.
//   - jobs: job repository used to resolve job context.
//   - uploadsDir: directory uploaded resumes are written to.
//
// Returns:
//   - *ScreeningHandler: handler instance.
func NewScreeningHandler(pipeline *workflow.Pipeline, jobs *repository.JobRepository, uploadsDir string) *ScreeningHandler {
	return &ScreeningHandler{
		pipeline:   pipeline,
		jobs:       jobs,
		uploadsDir: uploadsDir,
	}
}

// ScreeningResponse is the response body for one screening run.
type ScreeningResponse struct {
	Report       interface{} `json:"report,omitempty"`
	MatchScore   *int        `json:"match_score,omitempty"`
	MatchSummary *string     `json:"match_summary,omitempty"`
	CandidateID  *uint       `json:"candidate_id,omitempty"`
	Recorded     bool        `json:"recorded"`
	Warning      string      `json:"warning,omitempty"`
}

// Screen handles POST /api/v1/screenings. The request is a multipart form
// with a required "resume" file and optional "job_id" and "job_description"
// fields. When job_id is set and job_description is blank, the stored job
// description is used.
func (h *ScreeningHandler) Screen(c *gin.Context) {
	ctx := c.Request.Context()

	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume file is required"})
		return
	}

	jobID, jobDescription, ok := h.resolveJobContext(c)
	if !ok {
		return
	}

	path, err := h.saveUpload(c, file)
	if err != nil {
		logger.CtxError(ctx, "Failed to save upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
		return
	}

	state, err := h.pipeline.Run(ctx, workflow.Input{
		FilePath:       path,
		JobDescription: jobDescription,
		JobID:          jobID,
	})
	if err != nil {
		logger.CtxError(ctx, "Screening failed for %s: %v", file.Filename, err)
		status := http.StatusUnprocessableEntity
		if kind, classified := workflow.KindOf(err); classified && kind == workflow.KindLoad {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": workflow.UserMessage(err, file.Filename)})
		return
	}

	resp := ScreeningResponse{
		MatchScore:   state.MatchScore,
		MatchSummary: state.MatchSummary,
		CandidateID:  state.CandidateID,
		Recorded:     state.Recorded(),
	}
	if state.Report != nil {
		resp.Report = state.Report
	}
	if state.PersistErr != nil {
		resp.Warning = workflow.UserMessage(state.PersistErr, file.Filename)
	}

	c.JSON(http.StatusOK, resp)
}

// resolveJobContext reads the optional job_id and job_description form
// fields. A present job_id must refer to an existing job.
func (h *ScreeningHandler) resolveJobContext(c *gin.Context) (*uint, string, bool) {
	ctx := c.Request.Context()
	jobDescription := c.PostForm("job_description")

	raw := strings.TrimSpace(c.PostForm("job_id"))
	if raw == "" {
		return nil, jobDescription, true
	}

	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job_id"})
		return nil, "", false
	}
	id := uint(parsed)

	job, err := h.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return nil, "", false
		}
		logger.CtxError(ctx, "Failed to get job %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get job"})
		return nil, "", false
	}

	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = job.Description
	}
	return &id, jobDescription, true
}

// saveUpload writes the uploaded resume under the uploads directory with a
// unique name so concurrent uploads of the same filename never collide.
func (h *ScreeningHandler) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
	path := filepath.Join(h.uploadsDir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return path, nil
}
