// Package leads validates lead submissions and forwards each accepted lead
// to the email relay and the CMS leads database.
package leads

import "github.com/Raph13009/notion-blogs/internal/domain"

// answerLabels maps raw estimator answer keys to the French labels used in
// notification emails and CMS records.
var answerLabels = map[string]string{
	domain.AmbitionValidation: "Validation rapide",
	domain.AmbitionBase:       "Produit vendable",
	domain.AmbitionScalable:   "Base scalable",

	domain.TimelineLT1: "< 1 mois",
	domain.TimelineM12: "1-2 mois",
	domain.TimelineGT3: "3 mois +",

	domain.Features12:    "1-2 fonctionnalités",
	domain.Features35:    "3-5 fonctionnalités",
	domain.Features6Plus: "6+ fonctionnalités",

	domain.IntegrationNoneSimple: "Intégrations simples",
	domain.IntegrationMedium:     "Intégrations moyennes",
	domain.IntegrationComplex:    "Intégrations complexes",

	domain.AdvancedNone:     "Aucune",
	domain.AdvancedRealtime: "Temps réel",
	domain.AdvancedAI:       "IA",

	domain.DesignTemplate:    "Template",
	domain.DesignCustomLight: "Sur mesure léger",
	domain.DesignPremium:     "Premium",

	domain.PlatformWeb:       "Web",
	domain.PlatformWebMobile: "Web + Mobile responsive",
	domain.PlatformNative:    "Natif iOS/Android",

	domain.AdminSimple:   "Simple",
	domain.AdminAdvanced: "Avancé",
}

// decodeAnswer renders an answer key as its display label. Unknown keys pass
// through unchanged; an unset answer reads "N/A".
func decodeAnswer(value string) string {
	if value == "" {
		return "N/A"
	}
	if label, ok := answerLabels[value]; ok {
		return label
	}
	return value
}
