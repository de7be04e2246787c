package feed

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/Raph13009/notion-blogs/internal/content"
	"github.com/Raph13009/notion-blogs/internal/domain"
)

// SitemapContentType is the response content type for the sitemap.
const SitemapContentType = "application/xml; charset=utf-8"

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// RenderSitemap builds the sitemap for the blog index, the estimator page,
// the topic and tag listings and every published post.
func (r *Renderer) RenderSitemap(posts []domain.PostSummary, now time.Time) ([]byte, error) {
	today := now.UTC().Format("2006-01-02")

	urls := []sitemapURL{
		{Loc: r.baseURL + "/blog", LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
		{Loc: r.baseURL + "/blog/estimateur-mvp", LastMod: today, ChangeFreq: "weekly", Priority: "0.8"},
	}

	for _, info := range content.Topics() {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/blog/topic/%s", r.baseURL, info.Key),
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	for _, post := range posts {
		lastMod := post.LastEditedTime
		if lastMod == "" {
			lastMod = post.Date
		}
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/blog/%s", r.baseURL, post.Slug),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	for _, tag := range content.TagIndex(posts) {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/blog/tag/%s", r.baseURL, content.Slugify(tag)),
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.5",
		})
	}

	body, err := xml.MarshalIndent(sitemapSet{Xmlns: sitemapNamespace, URLs: urls}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// RenderRobots returns the robots.txt body pointing crawlers at the sitemap.
func (r *Renderer) RenderRobots() []byte {
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + r.baseURL + "/sitemap.xml\n")
}
