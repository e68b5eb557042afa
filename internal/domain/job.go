package domain

import "time"

// ApplicationStatus represents the review status of an application.
// Values include ApplicationStatusReceived, ApplicationStatusInvited, and
// ApplicationStatusRejected.
type ApplicationStatus string

const (
	ApplicationStatusReceived ApplicationStatus = "Received"
	ApplicationStatusInvited  ApplicationStatus = "Invited"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// Job represents a job opening candidates are screened against.
// Immutable once created.
type Job struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:text" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Job.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Job) TableName() string {
	return "jobs"
}

// Application links a candidate to a job with the relevancy outcome.
// At most one row exists per (job, candidate) pair; a repeat submission
// replaces the existing row instead of duplicating it.
type Application struct {
	ID           uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID        uint              `gorm:"not null;index:idx_applications_job_candidate,unique" json:"job_id"`
	CandidateID  uint              `gorm:"not null;index:idx_applications_job_candidate,unique" json:"candidate_id"`
	MatchScore   int               `json:"match_score"`
	MatchSummary string            `gorm:"type:text" json:"match_summary"`
	Status       ApplicationStatus `gorm:"type:text;default:Received" json:"status"`
	AppliedAt    time.Time         `gorm:"autoCreateTime" json:"applied_at"`
}

// TableName returns the database table name for Application.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Application) TableName() string {
	return "applications"
}

// RankedCandidate is one row of the ranked-candidates query: candidate
// identity joined with the application outcome for a single job.
// Rows are ordered by match score descending; equal scores are broken by
// candidate ID ascending so the ordering is deterministic.
type RankedCandidate struct {
	CandidateID  uint              `json:"candidate_id"`
	FullName     string            `json:"full_name"`
	Email        string            `json:"email"`
	MatchScore   int               `json:"match_score"`
	MatchSummary string            `json:"match_summary"`
	Status       ApplicationStatus `json:"status"`
}
