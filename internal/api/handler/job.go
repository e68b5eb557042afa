package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ertan/cvscout/internal/domain"
	"github.com/ertan/cvscout/internal/logger"
	"github.com/ertan/cvscout/internal/repository"
)

// JobHandler handles job posting endpoints.
type JobHandler struct {
	jobs         *repository.JobRepository
	applications *repository.ApplicationRepository
}

// NewJobHandler creates a new job handler.
// Parameters:
//   - jobs: job repository.
//   - applications: application repository for ranked candidate queries.
//
// Returns:
//   - *JobHandler: handler instance.
func NewJobHandler(jobs *repository.JobRepository, applications *repository.ApplicationRepository) *JobHandler {
	return &JobHandler{jobs: jobs, applications: applications}
}

// CreateJobRequest is the request body for creating a job posting.
type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Create handles POST /api/v1/jobs.
func (h *JobHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(ctx, "Invalid create job request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be blank"})
		return
	}

	job := &domain.Job{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	if err := h.jobs.Create(ctx, job); err != nil {
		logger.CtxError(ctx, "Failed to create job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	logger.FromContext(ctx).WithField(logger.FieldJobID, job.ID).Info("Job created")
	c.JSON(http.StatusCreated, job)
}

// List handles GET /api/v1/jobs.
func (h *JobHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	jobs, err := h.jobs.List(ctx)
	if err != nil {
		logger.CtxError(ctx, "Failed to list jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// Get handles GET /api/v1/jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseJobID(c)
	if !ok {
		return
	}

	job, err := h.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		logger.CtxError(ctx, "Failed to get job %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get job"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// RankedCandidates handles GET /api/v1/jobs/:id/candidates. Candidates are
// ordered by descending match score, ties broken by candidate ID ascending.
func (h *JobHandler) RankedCandidates(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseJobID(c)
	if !ok {
		return
	}

	if _, err := h.jobs.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		logger.CtxError(ctx, "Failed to get job %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get job"})
		return
	}

	ranked, err := h.applications.RankedByJob(ctx, id)
	if err != nil {
		logger.CtxError(ctx, "Failed to rank candidates for job %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank candidates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":     id,
		"candidates": ranked,
		"count":      len(ranked),
	})
}

func parseJobID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return 0, false
	}
	return uint(id), true
}
