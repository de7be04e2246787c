package estimator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/estimator"
)

// fullAnswers returns a complete answer set with every dimension at its
// heaviest option.
func fullAnswers() domain.Answers {
	return domain.Answers{
		Ambition:         domain.AmbitionScalable,
		Timeline:         domain.TimelineLT1,
		FeatureCount:     domain.Features6Plus,
		IntegrationLevel: domain.IntegrationComplex,
		AdvancedFeature:  domain.AdvancedAI,
		DesignLevel:      domain.DesignPremium,
		Platform:         domain.PlatformNative,
		AdminLevel:       domain.AdminAdvanced,
	}
}

func TestTotalScore_CompleteOrNothing(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*domain.Answers)
		expected float64
	}{
		{
			name:     "all answers set",
			mutate:   func(a *domain.Answers) {},
			expected: 17.5,
		},
		{
			// The rush timeline weighs 0 in the score; it raises cost
			// through the 1.1 factor instead. A relaxed timeline adds 2.
			name:     "relaxed timeline outweighs the rush option",
			mutate:   func(a *domain.Answers) { a.Timeline = domain.TimelineGT3 },
			expected: 19.5,
		},
		{
			name:     "mid timeline adds one",
			mutate:   func(a *domain.Answers) { a.Timeline = domain.TimelineM12 },
			expected: 18.5,
		},
		{
			name:     "missing ambition",
			mutate:   func(a *domain.Answers) { a.Ambition = "" },
			expected: 0,
		},
		{
			name:     "missing admin level",
			mutate:   func(a *domain.Answers) { a.AdminLevel = "" },
			expected: 0,
		},
		{
			name:     "missing design level",
			mutate:   func(a *domain.Answers) { a.DesignLevel = "" },
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := fullAnswers()
			tc.mutate(&a)
			assert.InDelta(t, tc.expected, estimator.TotalScore(a), 1e-9)
		})
	}
}

func TestTotalScore_EmptyAnswers(t *testing.T) {
	assert.Zero(t, estimator.TotalScore(domain.Answers{}))
}

func TestTotalScore_MinimalAnswers(t *testing.T) {
	// Every dimension at its lightest option: only featureCount (1.5) and
	// integrationLevel (0.5) contribute.
	a := domain.Answers{
		Ambition:         domain.AmbitionValidation,
		Timeline:         domain.TimelineLT1,
		FeatureCount:     domain.Features12,
		IntegrationLevel: domain.IntegrationNoneSimple,
		AdvancedFeature:  domain.AdvancedNone,
		DesignLevel:      domain.DesignTemplate,
		Platform:         domain.PlatformWeb,
		AdminLevel:       domain.AdminNone,
	}
	assert.InDelta(t, 2.0, estimator.TotalScore(a), 1e-9)
}

func TestDevelopmentRange_WorkedExample(t *testing.T) {
	// Base f6_plus [1000,1200] + native [700,1400] + admin advanced
	// [260,500] = [1960,3100], x1.1 rush = [2156,3410], x1.08 scalable =
	// [2328,3683] after per-step rounding.
	r := estimator.DevelopmentRange(fullAnswers())
	assert.Equal(t, domain.Range{Min: 2328, Max: 3683}, r)
}

func TestDevelopmentRange_Defaults(t *testing.T) {
	// Unanswered dimensions fall back to the f1_2 base with no bumps.
	r := estimator.DevelopmentRange(domain.Answers{})
	assert.Equal(t, domain.Range{Min: 500, Max: 850}, r)
}

func TestDevelopmentRange_WebClampIsLast(t *testing.T) {
	// Web platform bounds both sides at 1200 regardless of everything else.
	a := fullAnswers()
	a.Platform = domain.PlatformWeb

	r := estimator.DevelopmentRange(a)
	assert.LessOrEqual(t, r.Min, 1200)
	assert.LessOrEqual(t, r.Max, 1200)
	// f6_plus + admin advanced + factors exceeds the cap on both sides.
	assert.Equal(t, domain.Range{Min: 1200, Max: 1200}, r)
}

func TestDesignRange(t *testing.T) {
	testCases := []struct {
		name     string
		answers  domain.Answers
		expected domain.Range
	}{
		{
			name:     "defaults to template",
			answers:  domain.Answers{},
			expected: domain.Range{Min: 80, Max: 220},
		},
		{
			name: "custom light with web mobile",
			answers: domain.Answers{
				DesignLevel: domain.DesignCustomLight,
				Platform:    domain.PlatformWebMobile,
			},
			expected: domain.Range{Min: 330, Max: 780},
		},
		{
			name: "premium native scalable",
			answers: domain.Answers{
				DesignLevel: domain.DesignPremium,
				Platform:    domain.PlatformNative,
				Ambition:    domain.AmbitionScalable,
			},
			// [500,1100] + [180,350] = [680,1450], x1.05 = [714,1523].
			expected: domain.Range{Min: 714, Max: 1523},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, estimator.DesignRange(tc.answers))
		})
	}
}

func TestIntegrationRange(t *testing.T) {
	testCases := []struct {
		name     string
		answers  domain.Answers
		expected domain.Range
	}{
		{
			name:     "defaults to none_simple",
			answers:  domain.Answers{},
			expected: domain.Range{Min: 100, Max: 250},
		},
		{
			name: "medium with realtime",
			answers: domain.Answers{
				IntegrationLevel: domain.IntegrationMedium,
				AdvancedFeature:  domain.AdvancedRealtime,
			},
			expected: domain.Range{Min: 370, Max: 810},
		},
		{
			name: "complex with ai",
			answers: domain.Answers{
				IntegrationLevel: domain.IntegrationComplex,
				AdvancedFeature:  domain.AdvancedAI,
			},
			expected: domain.Range{Min: 750, Max: 1600},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, estimator.IntegrationRange(tc.answers))
		})
	}
}

func TestBreakdown_MaintenanceRates(t *testing.T) {
	b := estimator.Breakdown(fullAnswers())

	subtotalMin := b.Development.Min + b.Design.Min + b.Integrations.Min
	subtotalMax := b.Development.Max + b.Design.Max + b.Integrations.Max

	// 8% of min and 10% of max, rounded to the nearest unit.
	assert.Equal(t, 303, b.Maintenance.Min)
	assert.Equal(t, 681, b.Maintenance.Max)
	assert.Equal(t, subtotalMin+b.Maintenance.Min, b.Total.Min)
	assert.Equal(t, subtotalMax+b.Maintenance.Max, b.Total.Max)
}

func TestBreakdown_MinNeverExceedsMax(t *testing.T) {
	ambitions := []string{"", domain.AmbitionValidation, domain.AmbitionBase, domain.AmbitionScalable}
	timelines := []string{"", domain.TimelineLT1, domain.TimelineM12, domain.TimelineGT3}
	features := []string{"", domain.Features12, domain.Features35, domain.Features6Plus}
	platforms := []string{"", domain.PlatformWeb, domain.PlatformWebMobile, domain.PlatformNative}
	admins := []string{"", domain.AdminNone, domain.AdminSimple, domain.AdminAdvanced}
	integrations := []string{"", domain.IntegrationNoneSimple, domain.IntegrationMedium, domain.IntegrationComplex}
	advanced := []string{"", domain.AdvancedNone, domain.AdvancedRealtime, domain.AdvancedAI}
	designs := []string{"", domain.DesignTemplate, domain.DesignCustomLight, domain.DesignPremium}

	for _, am := range ambitions {
		for _, tl := range timelines {
			for _, fc := range features {
				for _, pl := range platforms {
					for _, ad := range admins {
						for _, in := range integrations {
							for _, av := range advanced {
								for _, de := range designs {
									a := domain.Answers{
										Ambition: am, Timeline: tl, FeatureCount: fc,
										IntegrationLevel: in, AdvancedFeature: av,
										DesignLevel: de, Platform: pl, AdminLevel: ad,
									}
									b := estimator.Breakdown(a)
									for _, r := range []domain.Range{
										b.Development, b.Design, b.Integrations, b.Maintenance, b.Total,
									} {
										if r.Min > r.Max {
											t.Fatalf("min %d > max %d for answers %+v", r.Min, r.Max, a)
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestEstimate_Comparisons(t *testing.T) {
	e := estimator.Estimate(fullAnswers())

	require.Equal(t, domain.Range{Min: 4095, Max: 7487}, e.Breakdown.Total)

	assert.Equal(t, domain.Range{Min: 2457, Max: 4492}, e.Freelance)
	assert.Equal(t, domain.Range{Min: 2048, Max: 3744}, e.NoCode)
	assert.Equal(t, domain.Range{Min: 6143, Max: 11231}, e.PremiumAgency)
	assert.True(t, e.NeedsCustomQuote)
}

func TestEstimate_NoCustomQuoteForSmallProjects(t *testing.T) {
	a := domain.Answers{
		Ambition:         domain.AmbitionValidation,
		Timeline:         domain.TimelineGT3,
		FeatureCount:     domain.Features12,
		IntegrationLevel: domain.IntegrationNoneSimple,
		AdvancedFeature:  domain.AdvancedNone,
		DesignLevel:      domain.DesignTemplate,
		Platform:         domain.PlatformWeb,
		AdminLevel:       domain.AdminNone,
	}

	e := estimator.Estimate(a)
	assert.False(t, e.NeedsCustomQuote)
	assert.Less(t, e.Breakdown.Total.Max, 5000)
}
