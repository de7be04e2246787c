package estimator

import (
	"math"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// webDevelopmentCap bounds both sides of the development range on web-only
// projects. The clamp is applied after every additive and multiplicative
// step; that ordering is part of the contract.
const webDevelopmentCap = 1200

// Multiplicative adjustments. Ranges are rounded after each factor is
// applied, not only at the end.
const (
	rushFactor           = 1.1
	scalableDevFactor    = 1.08
	scalableDesignFactor = 1.05
)

// Maintenance percentages over the development+design+integrations subtotal.
const (
	maintenanceMinRate = 0.08
	maintenanceMaxRate = 0.10
)

// Comparison multipliers and the custom-quote threshold.
const (
	freelanceFactor     = 0.6
	noCodeFactor        = 0.5
	premiumAgencyFactor = 1.5
	customQuoteMax      = 5000
)

var developmentBase = map[string]domain.Range{
	domain.Features12:    {Min: 500, Max: 850},
	domain.Features35:    {Min: 800, Max: 1100},
	domain.Features6Plus: {Min: 1000, Max: 1200},
}

var designBase = map[string]domain.Range{
	domain.DesignTemplate:    {Min: 80, Max: 220},
	domain.DesignCustomLight: {Min: 250, Max: 600},
	domain.DesignPremium:     {Min: 500, Max: 1100},
}

var integrationBase = map[string]domain.Range{
	domain.IntegrationNoneSimple: {Min: 100, Max: 250},
	domain.IntegrationMedium:     {Min: 250, Max: 550},
	domain.IntegrationComplex:    {Min: 500, Max: 1000},
}

var platformDevBump = map[string]domain.Range{
	domain.PlatformWebMobile: {Min: 250, Max: 650},
	domain.PlatformNative:    {Min: 700, Max: 1400},
}

var platformDesignBump = map[string]domain.Range{
	domain.PlatformWebMobile: {Min: 80, Max: 180},
	domain.PlatformNative:    {Min: 180, Max: 350},
}

var adminDevBump = map[string]domain.Range{
	domain.AdminSimple:   {Min: 120, Max: 250},
	domain.AdminAdvanced: {Min: 260, Max: 500},
}

var advancedIntegrationBump = map[string]domain.Range{
	domain.AdvancedRealtime: {Min: 120, Max: 260},
	domain.AdvancedAI:       {Min: 250, Max: 600},
}

func addRange(a, b domain.Range) domain.Range {
	return domain.Range{Min: a.Min + b.Min, Max: a.Max + b.Max}
}

// scaleRange multiplies both sides by factor, rounding to the nearest unit.
func scaleRange(r domain.Range, factor float64) domain.Range {
	return domain.Range{
		Min: int(math.Round(float64(r.Min) * factor)),
		Max: int(math.Round(float64(r.Max) * factor)),
	}
}

func clampRange(r domain.Range, maxValue int) domain.Range {
	return domain.Range{Min: min(r.Min, maxValue), Max: min(r.Max, maxValue)}
}

// DevelopmentRange derives the development cost range. Order of operations
// is fixed: feature base, platform bump, admin bump, rush factor, scalable
// factor, then the web-only cap.
func DevelopmentRange(a domain.Answers) domain.Range {
	r, ok := developmentBase[a.FeatureCount]
	if !ok {
		r = developmentBase[domain.Features12]
	}

	if bump, ok := platformDevBump[a.Platform]; ok {
		r = addRange(r, bump)
	}
	if bump, ok := adminDevBump[a.AdminLevel]; ok {
		r = addRange(r, bump)
	}

	if a.Timeline == domain.TimelineLT1 {
		r = scaleRange(r, rushFactor)
	}
	if a.Ambition == domain.AmbitionScalable {
		r = scaleRange(r, scalableDevFactor)
	}

	if a.Platform == domain.PlatformWeb {
		r = clampRange(r, webDevelopmentCap)
	}

	return r
}

// DesignRange derives the design cost range from design level, platform
// and ambition.
func DesignRange(a domain.Answers) domain.Range {
	r, ok := designBase[a.DesignLevel]
	if !ok {
		r = designBase[domain.DesignTemplate]
	}

	if bump, ok := platformDesignBump[a.Platform]; ok {
		r = addRange(r, bump)
	}

	if a.Ambition == domain.AmbitionScalable {
		r = scaleRange(r, scalableDesignFactor)
	}

	return r
}

// IntegrationRange derives the integrations cost range from integration
// level and the advanced feature choice.
func IntegrationRange(a domain.Answers) domain.Range {
	r, ok := integrationBase[a.IntegrationLevel]
	if !ok {
		r = integrationBase[domain.IntegrationNoneSimple]
	}

	if bump, ok := advancedIntegrationBump[a.AdvancedFeature]; ok {
		r = addRange(r, bump)
	}

	return r
}

// Breakdown assembles the full cost breakdown. Maintenance is derived from
// the subtotal (8% of min, 10% of max, each rounded) and folded into the
// total.
func Breakdown(a domain.Answers) domain.CostBreakdown {
	development := DevelopmentRange(a)
	design := DesignRange(a)
	integrations := IntegrationRange(a)

	subtotal := addRange(addRange(development, design), integrations)
	maintenance := domain.Range{
		Min: int(math.Round(float64(subtotal.Min) * maintenanceMinRate)),
		Max: int(math.Round(float64(subtotal.Max) * maintenanceMaxRate)),
	}

	return domain.CostBreakdown{
		Development:  development,
		Design:       design,
		Integrations: integrations,
		Maintenance:  maintenance,
		Total:        addRange(subtotal, maintenance),
	}
}

// Estimate computes the complete estimator result, including the tiered
// comparison ranges and the custom-quote flag.
func Estimate(a domain.Answers) domain.Estimate {
	breakdown := Breakdown(a)

	return domain.Estimate{
		TotalScore:       TotalScore(a),
		Breakdown:        breakdown,
		Freelance:        scaleRange(breakdown.Total, freelanceFactor),
		NoCode:           scaleRange(breakdown.Total, noCodeFactor),
		PremiumAgency:    scaleRange(breakdown.Total, premiumAgencyFactor),
		NeedsCustomQuote: breakdown.Total.Max >= customQuoteMax,
	}
}
