package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

func testRenderer() *Renderer {
	return NewRenderer(
		"BoostAIConsulting Blog",
		"Practical product, engineering, and growth playbooks for tech founders.",
		"https://blog.boostaiconsulting.com",
	)
}

func TestRenderFeed(t *testing.T) {
	posts := []domain.PostSummary{
		{
			Title:       "Lancer un MVP en 30 jours",
			Slug:        "lancer-un-mvp-en-30-jours",
			Description: "Plan simple pour sortir une premiere version.",
			Date:        "2026-01-12",
		},
		{
			Title: "Sans description",
			Slug:  "sans-description",
			Date:  "2026-01-05",
		},
	}

	body, err := testRenderer().Render(posts)
	require.NoError(t, err)
	xml := string(body)

	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, `<rss version="2.0">`)
	assert.Contains(t, xml, "<title>BoostAIConsulting Blog</title>")
	assert.Contains(t, xml, "<link>https://blog.boostaiconsulting.com/blog</link>")
	assert.Contains(t, xml, "<language>en-us</language>")

	assert.Contains(t, xml, "<link>https://blog.boostaiconsulting.com/blog/lancer-un-mvp-en-30-jours</link>")
	assert.Contains(t, xml, "<guid>https://blog.boostaiconsulting.com/blog/lancer-un-mvp-en-30-jours</guid>")
	assert.Contains(t, xml, "<pubDate>Mon, 12 Jan 2026 00:00:00 GMT</pubDate>")
	assert.Contains(t, xml, "<description>Read the full article.</description>")
}

func TestRenderFeedEscapesMarkup(t *testing.T) {
	posts := []domain.PostSummary{
		{
			Title:       `MVP <rapide> & "robuste"`,
			Slug:        "mvp-rapide",
			Description: "Choisir A & B",
			Date:        "2026-01-10",
		},
	}

	body, err := testRenderer().Render(posts)
	require.NoError(t, err)
	xml := string(body)

	assert.Contains(t, xml, "MVP &lt;rapide&gt; &amp; ")
	assert.Contains(t, xml, "Choisir A &amp; B")
	assert.NotContains(t, xml, "<rapide>")
}

func TestRenderFeedUnparseableDate(t *testing.T) {
	posts := []domain.PostSummary{
		{Title: "Date cassee", Slug: "date-cassee", Date: "pas-une-date"},
	}

	body, err := testRenderer().Render(posts)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "<pubDate>")
}

func TestRenderFeedEmpty(t *testing.T) {
	body, err := testRenderer().Render(nil)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<channel>")
	assert.NotContains(t, string(body), "<item>")
}
