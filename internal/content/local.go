package content

import (
	"context"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// LocalSource serves the bundled posts. It backs the content index when no
// CMS is configured.
type LocalSource struct{}

func NewLocalSource() *LocalSource { return &LocalSource{} }

func (s *LocalSource) Name() string { return "local" }

func (s *LocalSource) FetchPosts(_ context.Context) ([]domain.Post, error) {
	return LocalPosts(), nil
}

// LocalPosts returns the bundled editorial posts served when the CMS is
// unreachable and no cached snapshot exists. Returned slices are fresh
// copies on every call.
func LocalPosts() []domain.Post {
	return []domain.Post{
		{
			PostSummary: domain.PostSummary{
				ID:             "local-1",
				Title:          "Lancer un MVP en 30 jours",
				Slug:           "lancer-un-mvp-en-30-jours",
				Description:    "Plan simple pour sortir une premiere version sans se perdre.",
				Date:           "2026-01-12",
				Author:         "BoostAI Editorial",
				Tags:           []string{"MVP", "Execution"},
				Category:       "MVP",
				IsFeatured:     true,
				LastEditedTime: "2026-01-12T10:00:00.000Z",
			},
			Content: "## Objectif\nSortir une version utilisable en 30 jours.\n\n" +
				"## Etapes\n1. Definir une promesse unique.\n2. Construire un flux principal.\n3. Tester avec 5 utilisateurs.\n\n" +
				"## Resultat attendu\nUne base simple qui fonctionne et permet d'apprendre vite.",
		},
		{
			PostSummary: domain.PostSummary{
				ID:             "local-2",
				Title:          "Combien coute un MVP SaaS",
				Slug:           "combien-coute-un-mvp-saas",
				Description:    "Une estimation pragmatique pour eviter les mauvaises surprises.",
				Date:           "2026-01-05",
				Author:         "BoostAI Editorial",
				Tags:           []string{"Budget", "SaaS"},
				Category:       "Budget",
				IsFeatured:     false,
				LastEditedTime: "2026-01-05T10:00:00.000Z",
			},
			Content: "## Budget de base\nCompter le design, le developpement et le deploiement.\n\n" +
				"## Fourchette\nLe budget depend surtout du niveau de personnalisation et des integrations.",
		},
		{
			PostSummary: domain.PostSummary{
				ID:             "local-3",
				Title:          "Choisir une stack technique simple",
				Slug:           "choisir-une-stack-technique-simple",
				Description:    "Comment choisir une stack rapide a maintenir pour le debut.",
				Date:           "2025-12-22",
				Author:         "BoostAI Editorial",
				Tags:           []string{"Stack", "Architecture"},
				Category:       "Technique",
				IsFeatured:     false,
				LastEditedTime: "2025-12-22T10:00:00.000Z",
			},
			Content: "## Priorite\nChoisir des outils connus par l'equipe.\n\n" +
				"## Regle\nFavoriser la simplicite avant l'optimisation prematuree.",
		},
	}
}
