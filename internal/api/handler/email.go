package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ertan/cvscout/internal/domain"
	"github.com/ertan/cvscout/internal/logger"
	"github.com/ertan/cvscout/internal/workflow"
)

// EmailHandler handles outcome email endpoints.
type EmailHandler struct {
	pipeline *workflow.EmailPipeline
}

// NewEmailHandler creates a new email handler.
// Parameters:
//   - pipeline: email generation and dispatch pipeline.
//
// Returns:
//   - *EmailHandler: handler instance.
func NewEmailHandler(pipeline *workflow.EmailPipeline) *EmailHandler {
	return &EmailHandler{pipeline: pipeline}
}

// DispatchRequest is the request body for an outcome email run.
type DispatchRequest struct {
	JobTitle string                    `json:"job_title" binding:"required"`
	Positive []domain.CandidateContact `json:"positive"`
	Negative []domain.CandidateContact `json:"negative"`
}

// Dispatch handles POST /api/v1/emails/dispatch. Invitations go to the
// positive list, rejections to the negative list; one status string is
// returned per candidate, positives first, each list in input order.
func (h *EmailHandler) Dispatch(c *gin.Context) {
	ctx := c.Request.Context()

	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(ctx, "Invalid dispatch request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_title is required"})
		return
	}

	if len(req.Positive)+len(req.Negative) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one candidate is required"})
		return
	}
	for _, candidate := range append(append([]domain.CandidateContact{}, req.Positive...), req.Negative...) {
		if strings.TrimSpace(candidate.Email) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "every candidate needs an email address"})
			return
		}
	}

	statuses := h.pipeline.Run(ctx, req.JobTitle, req.Positive, req.Negative)

	c.JSON(http.StatusOK, gin.H{
		"job_title": req.JobTitle,
		"statuses":  statuses,
		"count":     len(statuses),
	})
}
