// Package feed renders the public RSS feed of published posts.
package feed

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// Response headers served with the feed. The CDN caches it for an hour and
// may serve it stale for a day while revalidating.
const (
	ContentType  = "application/rss+xml; charset=utf-8"
	CacheControl = "public, s-maxage=3600, stale-while-revalidate=86400"
)

const fallbackDescription = "Read the full article."

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Language    string `xml:"language"`
	Items       []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate,omitempty"`
	Description string `xml:"description"`
}

// Renderer builds the RSS document for the configured site.
type Renderer struct {
	siteName        string
	siteDescription string
	baseURL         string
}

func NewRenderer(siteName, siteDescription, baseURL string) *Renderer {
	return &Renderer{
		siteName:        siteName,
		siteDescription: siteDescription,
		baseURL:         baseURL,
	}
}

// Render produces the feed document. Posts are expected newest first; the
// order is preserved.
func (r *Renderer) Render(posts []domain.PostSummary) ([]byte, error) {
	items := make([]item, 0, len(posts))
	for _, post := range posts {
		description := post.Description
		if description == "" {
			description = fallbackDescription
		}

		link := fmt.Sprintf("%s/blog/%s", r.baseURL, post.Slug)
		items = append(items, item{
			Title:       post.Title,
			Link:        link,
			GUID:        link,
			PubDate:     pubDate(post.Date),
			Description: description,
		})
	}

	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:       r.siteName,
			Link:        r.baseURL + "/blog",
			Description: r.siteDescription,
			Language:    "en-us",
			Items:       items,
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// pubDate formats a post date as an RFC 1123 GMT timestamp. A date the
// parser cannot read yields an empty pubDate rather than a broken feed.
func pubDate(value string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(http.TimeFormat)
		}
	}
	return ""
}
