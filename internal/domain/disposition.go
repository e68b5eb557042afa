package domain

// Disposition selects the email prompt variant for a candidate.
type Disposition string

const (
	// DispositionPositive selects the interview invitation variant.
	DispositionPositive Disposition = "positive"
	// DispositionNegative selects the rejection variant.
	DispositionNegative Disposition = "negative"
)
