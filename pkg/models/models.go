package models

// Persons is the input document: {"persons": ["Alice", "Bob"]}
type Persons struct {
	Persons []string `json:"persons" yaml:"persons"`
}

// Assignment maps a giver to the person they draw
type Assignment map[string]string

// SkipReason records why a person was left without a recipient
type SkipReason struct {
	Person string `json:"person"`
	Reason string `json:"reason"`
}

// DrawInput is the request body for the draw endpoint
type DrawInput struct {
	Persons  []string `json:"persons" binding:"required"`
	Policy   string   `json:"policy,omitempty"`
	Attempts int      `json:"attempts,omitempty"`
}

// DrawResponse is the data structure for the draw result
type DrawResponse struct {
	ID            string       `json:"id"`
	Assignments   Assignment   `json:"assignments"`
	Skipped       []SkipReason `json:"skipped,omitempty"`
	CoverageScore float64      `json:"coverage_score"` // percentage of persons who got a recipient
}

// Pair is a single giver/recipient entry of a stored draw
type Pair struct {
	Giver     string `json:"giver"`
	Recipient string `json:"recipient"`
}
