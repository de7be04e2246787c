package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

func TestRenderSitemap(t *testing.T) {
	posts := []domain.PostSummary{
		{
			Title:          "Lancer un MVP en 30 jours",
			Slug:           "lancer-un-mvp-en-30-jours",
			Date:           "2026-01-12",
			LastEditedTime: "2026-01-14T08:00:00.000Z",
			Tags:           []string{"MVP"},
		},
		{
			Title: "Sans date de modification",
			Slug:  "sans-date",
			Date:  "2026-01-05",
		},
	}

	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	body, err := testRenderer().RenderSitemap(posts, now)
	require.NoError(t, err)
	xml := string(body)

	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, "<loc>https://blog.boostaiconsulting.com/blog</loc>")
	assert.Contains(t, xml, "<loc>https://blog.boostaiconsulting.com/blog/estimateur-mvp</loc>")
	assert.Contains(t, xml, "<loc>https://blog.boostaiconsulting.com/blog/topic/cout-budget-mvp</loc>")
	assert.Contains(t, xml, "<loc>https://blog.boostaiconsulting.com/blog/lancer-un-mvp-en-30-jours</loc>")
	assert.Contains(t, xml, "<lastmod>2026-01-14T08:00:00.000Z</lastmod>")
	// Posts without an edit timestamp fall back to their publish date.
	assert.Contains(t, xml, "<lastmod>2026-01-05</lastmod>")
	assert.Contains(t, xml, "<loc>https://blog.boostaiconsulting.com/blog/tag/mvp</loc>")
	assert.Contains(t, xml, "<lastmod>2026-02-01</lastmod>")
}

func TestRenderRobots(t *testing.T) {
	body := string(testRenderer().RenderRobots())

	assert.Contains(t, body, "User-agent: *")
	assert.Contains(t, body, "Sitemap: https://blog.boostaiconsulting.com/sitemap.xml")
}
