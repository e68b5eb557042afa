package domain

import "encoding/json"

// Education is one educational qualification from a resume.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	GPA         string `json:"gpa,omitempty"`
	Years       string `json:"years"`
	Location    string `json:"location,omitempty"`
}

// Experience is one professional experience entry from a resume.
type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Years       string `json:"years"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description"`
}

// Resume is the structured extraction result for one document.
// List fields are always present but may be empty; their order is the
// insertion order of the source document, preserved for display.
type Resume struct {
	FullName        string       `json:"full_name"`
	Email           string       `json:"email"`
	PhoneNumber     string       `json:"phone_number,omitempty"`
	GitHub          string       `json:"github,omitempty"`
	LinkedIn        string       `json:"linkedin,omitempty"`
	Education       []Education  `json:"education"`
	Experience      []Experience `json:"experience"`
	TechnicalSkills []string     `json:"technical_skills"`
	Languages       []string     `json:"languages"`
}

// Report is the standardized plain-data projection of a Resume. Every field
// the extraction populated survives the projection; nil list fields are
// normalized to empty slices.
type Report struct {
	FullName        string       `json:"full_name"`
	Email           string       `json:"email"`
	PhoneNumber     string       `json:"phone_number"`
	GitHub          string       `json:"github"`
	LinkedIn        string       `json:"linkedin"`
	Education       []Education  `json:"education"`
	Experience      []Experience `json:"experience"`
	TechnicalSkills []string     `json:"technical_skills"`
	Languages       []string     `json:"languages"`
}

// JSON serializes the report for persistence in the candidates table.
// Parameters: none.
// Returns:
//   - string: JSON encoding of the report.
//   - error: non-nil if marshaling fails.
func (r *Report) JSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RelevancyAnalysis is the structured result of scoring a report against a
// job description. Score is clamped to [0,100] by the extraction client.
type RelevancyAnalysis struct {
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

// NotApplicableSummary is the fixed summary used when relevancy analysis is
// skipped because the screening run carries no job description.
const NotApplicableSummary = "Relevancy analysis not applicable: no job description provided."

// NotApplicableAnalysis returns the neutral analysis used for runs without a
// job description. The model is never called for these.
func NotApplicableAnalysis() *RelevancyAnalysis {
	return &RelevancyAnalysis{Score: 0, Summary: NotApplicableSummary}
}

// GeneratedEmail is the structured output of email content generation.
// Ephemeral: dispatched, never persisted.
type GeneratedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
