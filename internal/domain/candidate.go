package domain

import "time"

// Candidate represents a person extracted from a resume.
// Email is the natural identity key: the first sighting of an email creates
// the row, later sightings update name, phone, and the stored report in
// place. Candidates are never deleted by this system.
type Candidate struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName    string    `gorm:"type:text" json:"full_name"`
	Email       string    `gorm:"type:text;uniqueIndex:idx_candidates_email" json:"email"`
	PhoneNumber string    `gorm:"type:text" json:"phone_number"`
	ReportJSON  string    `gorm:"type:text" json:"report_json"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Candidate.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Candidate) TableName() string {
	return "candidates"
}

// CandidateContact is the minimal candidate record the email pipeline needs.
type CandidateContact struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
