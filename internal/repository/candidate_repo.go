package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ertan/cvscout/internal/domain"
)

// CandidateRepository handles candidate data operations.
type CandidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new CandidateRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//
// Returns:
//   - *CandidateRepository: repository instance bound to db.
func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// UpsertByEmail creates or updates a candidate keyed by email. On conflict
// the name, phone, and stored report are overwritten in place; the row and
// its ID survive.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - candidate: candidate record to create or update.
//
// Returns:
//   - uint: the candidate's ID (existing or newly assigned).
//   - error: non-nil if the upsert fails.
func (r *CandidateRepository) UpsertByEmail(ctx context.Context, candidate *domain.Candidate) (uint, error) {
	if candidate.Email == "" {
		return 0, fmt.Errorf("candidate email is required for upsert")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "phone_number", "report_json", "updated_at"}),
	}).Create(candidate).Error
	if err != nil {
		return 0, err
	}

	// SQLite does not report the surviving row's ID through the upsert, so
	// resolve it by the identity key.
	var existing domain.Candidate
	if err := r.db.WithContext(ctx).
		Select("id").
		First(&existing, "email = ?", candidate.Email).Error; err != nil {
		return 0, err
	}
	candidate.ID = existing.ID
	return existing.ID, nil
}

// GetByEmail retrieves a candidate by email.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - email: candidate email (identity key).
//
// Returns:
//   - *domain.Candidate: candidate record if found.
//   - error: non-nil if lookup fails.
func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	var candidate domain.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

// GetByID retrieves a candidate by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: candidate ID.
//
// Returns:
//   - *domain.Candidate: candidate record if found.
//   - error: non-nil if lookup fails.
func (r *CandidateRepository) GetByID(ctx context.Context, id uint) (*domain.Candidate, error) {
	var candidate domain.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

// Count returns the number of candidate rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//
// Returns:
//   - int64: number of candidates.
//   - error: non-nil if the query fails.
func (r *CandidateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Candidate{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
