package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ertan/cvscout/internal/domain"
)

// ApplicationRepository handles application data operations.
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//
// Returns:
//   - *ApplicationRepository: repository instance bound to db.
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Upsert creates or replaces an application keyed by (job_id, candidate_id).
// A repeat submission overwrites score, summary, and applied time instead of
// creating a duplicate row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - app: application record to create or replace.
//
// Returns:
//   - error: non-nil if the upsert fails.
func (r *ApplicationRepository) Upsert(ctx context.Context, app *domain.Application) error {
	if app.Status == "" {
		app.Status = domain.ApplicationStatusReceived
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}, {Name: "candidate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"match_score", "match_summary", "status", "applied_at"}),
	}).Create(app).Error
}

// UpdateStatus sets the review status for one (job, candidate) application.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: job ID.
//   - candidateID: candidate ID.
//   - status: new status value.
//
// Returns:
//   - error: non-nil if the update fails.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, jobID, candidateID uint, status domain.ApplicationStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Update("status", status).Error
}

// RankedByJob retrieves candidates for a job ordered by descending match
// score. Equal scores are broken by candidate ID ascending so the ordering
// is deterministic.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: job to rank candidates for.
//
// Returns:
//   - []domain.RankedCandidate: ranked rows, best match first.
//   - error: non-nil if the query fails.
func (r *ApplicationRepository) RankedByJob(ctx context.Context, jobID uint) ([]domain.RankedCandidate, error) {
	var ranked []domain.RankedCandidate
	err := r.db.WithContext(ctx).
		Table("applications").
		Select("candidates.id AS candidate_id, candidates.full_name, candidates.email, applications.match_score, applications.match_summary, applications.status").
		Joins("JOIN candidates ON candidates.id = applications.candidate_id").
		Where("applications.job_id = ?", jobID).
		Order("applications.match_score DESC, candidates.id ASC").
		Scan(&ranked).Error
	if err != nil {
		return nil, err
	}
	return ranked, nil
}

// CountByPair returns the number of application rows for one (job, candidate)
// pair. The uniqueness invariant keeps this at most 1.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: job ID.
//   - candidateID: candidate ID.
//
// Returns:
//   - int64: number of matching rows.
//   - error: non-nil if the query fails.
func (r *ApplicationRepository) CountByPair(ctx context.Context, jobID, candidateID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
