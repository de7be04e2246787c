package domain

// Answer option values for the eight estimator dimensions. An empty string
// means the dimension has not been answered yet.
const (
	AmbitionValidation = "validation"
	AmbitionBase       = "base"
	AmbitionScalable   = "scalable"

	TimelineLT1 = "lt1"
	TimelineM12 = "m1_2"
	TimelineGT3 = "gt3"

	Features12    = "f1_2"
	Features35    = "f3_5"
	Features6Plus = "f6_plus"

	IntegrationNoneSimple = "none_simple"
	IntegrationMedium     = "medium"
	IntegrationComplex    = "complex"

	AdvancedNone     = "none"
	AdvancedRealtime = "realtime"
	AdvancedAI       = "ai"

	DesignTemplate    = "template"
	DesignCustomLight = "custom_light"
	DesignPremium     = "premium"

	PlatformWeb       = "web"
	PlatformWebMobile = "web_mobile"
	PlatformNative    = "native"

	AdminNone     = "none"
	AdminSimple   = "simple"
	AdminAdvanced = "advanced"
)

// Answers holds the eight user-selected estimator choices.
type Answers struct {
	Ambition         string `json:"ambition,omitempty"`
	Timeline         string `json:"timeline,omitempty"`
	FeatureCount     string `json:"featureCount,omitempty"`
	IntegrationLevel string `json:"integrationLevel,omitempty"`
	AdvancedFeature  string `json:"advancedFeature,omitempty"`
	DesignLevel      string `json:"designLevel,omitempty"`
	Platform         string `json:"platform,omitempty"`
	AdminLevel       string `json:"adminLevel,omitempty"`
}

// Complete reports whether all eight dimensions have been answered.
func (a Answers) Complete() bool {
	return a.Ambition != "" &&
		a.Timeline != "" &&
		a.FeatureCount != "" &&
		a.IntegrationLevel != "" &&
		a.AdvancedFeature != "" &&
		a.DesignLevel != "" &&
		a.Platform != "" &&
		a.AdminLevel != ""
}

// Range is a pair of non-negative amounts. Min <= Max is an invariant
// preserved by every range operation.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CostBreakdown is the per-component cost estimate. Total is the sum of
// development, design and integrations plus the derived maintenance range.
type CostBreakdown struct {
	Development  Range `json:"development"`
	Design       Range `json:"design"`
	Integrations Range `json:"integrations"`
	Maintenance  Range `json:"maintenance"`
	Total        Range `json:"total"`
}

// Estimate is a full estimator result for a set of answers.
type Estimate struct {
	TotalScore       float64       `json:"totalScore"`
	Breakdown        CostBreakdown `json:"breakdown"`
	Freelance        Range         `json:"freelance"`
	NoCode           Range         `json:"noCode"`
	PremiumAgency    Range         `json:"premiumAgency"`
	NeedsCustomQuote bool          `json:"needsCustomQuote"`
}
