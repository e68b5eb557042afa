package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ertan/cvscout/internal/domain"
)

// ScreeningStore bundles the candidate and application repositories behind
// the narrow persistence surface the resume pipeline writes through.
type ScreeningStore struct {
	candidates   *CandidateRepository
	applications *ApplicationRepository
}

// NewScreeningStore creates a screening store over one database handle.
// Parameters:
//   - db: GORM database handle.
//
// Returns:
//   - *ScreeningStore: store instance bound to db.
func NewScreeningStore(db *gorm.DB) *ScreeningStore {
	return &ScreeningStore{
		candidates:   NewCandidateRepository(db),
		applications: NewApplicationRepository(db),
	}
}

// UpsertCandidate creates or updates a candidate by email identity.
func (s *ScreeningStore) UpsertCandidate(ctx context.Context, candidate *domain.Candidate) (uint, error) {
	return s.candidates.UpsertByEmail(ctx, candidate)
}

// UpsertApplication creates or replaces the application for one
// (job, candidate) pair.
func (s *ScreeningStore) UpsertApplication(ctx context.Context, app *domain.Application) error {
	return s.applications.Upsert(ctx, app)
}
