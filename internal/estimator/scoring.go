// Package estimator derives a project score and a cost-range breakdown from
// the eight answers collected by the estimation flow. Everything here is a
// pure function of its inputs.
package estimator

import "github.com/Raph13009/notion-blogs/internal/domain"

// Per-dimension score weights. Each answered option maps to a fixed weight;
// the total score is the plain sum across all eight dimensions.
var (
	ambitionScores = map[string]float64{
		domain.AmbitionValidation: 0,
		domain.AmbitionBase:       1,
		domain.AmbitionScalable:   2,
	}
	timelineScores = map[string]float64{
		domain.TimelineLT1: 0,
		domain.TimelineM12: 1,
		domain.TimelineGT3: 2,
	}
	featureCountScores = map[string]float64{
		domain.Features12:    1.5,
		domain.Features35:    3,
		domain.Features6Plus: 4.5,
	}
	integrationScores = map[string]float64{
		domain.IntegrationNoneSimple: 0.5,
		domain.IntegrationMedium:     1,
		domain.IntegrationComplex:    2,
	}
	advancedScores = map[string]float64{
		domain.AdvancedNone:     0,
		domain.AdvancedRealtime: 1,
		domain.AdvancedAI:       2,
	}
	designScores = map[string]float64{
		domain.DesignTemplate:    0,
		domain.DesignCustomLight: 1.5,
		domain.DesignPremium:     3,
	}
	platformScores = map[string]float64{
		domain.PlatformWeb:       0,
		domain.PlatformWebMobile: 1,
		domain.PlatformNative:    2,
	}
	adminScores = map[string]float64{
		domain.AdminNone:     0,
		domain.AdminSimple:   1,
		domain.AdminAdvanced: 2,
	}
)

// TotalScore returns the summed weight of all eight answers. The gate is
// complete-or-nothing: any unanswered dimension yields 0, not a partial sum.
func TotalScore(a domain.Answers) float64 {
	if !a.Complete() {
		return 0
	}

	return ambitionScores[a.Ambition] +
		timelineScores[a.Timeline] +
		featureCountScores[a.FeatureCount] +
		integrationScores[a.IntegrationLevel] +
		advancedScores[a.AdvancedFeature] +
		designScores[a.DesignLevel] +
		platformScores[a.Platform] +
		adminScores[a.AdminLevel]
}
