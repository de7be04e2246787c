package domain

import "time"

// Lead error codes surfaced to callers. Internal failure detail is logged
// server-side only.
const (
	ErrCodeInvalidPayload   = "invalid_payload"
	ErrCodeInvalidEmail     = "invalid_email"
	ErrCodeConsentRequired  = "consent_required"
	ErrCodeSubmissionFailed = "submission_failed"
)

// Lead sources recorded with each submission.
const (
	LeadSourceEstimator = "Mini Calculateur MVP"
	LeadSourceBlogCTA   = "CTA Bas d'article Blog"
)

// EstimatorLead is a lead captured by the multi-step estimator flow.
type EstimatorLead struct {
	FirstName   string  `json:"firstName"`
	Email       string  `json:"email"`
	Consent     bool    `json:"consent"`
	EstimateMin int     `json:"estimateMin"`
	EstimateMax int     `json:"estimateMax"`
	TotalScore  float64 `json:"totalScore"`
	Answers     Answers `json:"answers"`
}

// BlogCTALead is a lead captured by the call-to-action at the bottom of an
// article. Slug and title are optional context.
type BlogCTALead struct {
	Email     string `json:"email"`
	BlogSlug  string `json:"blogSlug,omitempty"`
	BlogTitle string `json:"blogTitle,omitempty"`
}

// LeadRecord is the audit row persisted for every accepted submission.
type LeadRecord struct {
	ID          string    `db:"id"`
	Source      string    `db:"source"`
	Email       string    `db:"email"`
	FirstName   string    `db:"first_name"`
	EstimateMin int       `db:"estimate_min"`
	EstimateMax int       `db:"estimate_max"`
	Score       float64   `db:"score"`
	Context     string    `db:"context"`
	SubmittedAt time.Time `db:"submitted_at"`
}
