// Package content normalizes external CMS records into the post model and
// provides the derived read views: slugs, topic buckets, business-priority
// ranking, related posts and reading-time estimates.
package content

import (
	"regexp"
	"strings"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// Fragment lengths used when deriving slugs from record ids.
const (
	fallbackIDLength  = 8
	collisionIDLength = 6
)

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a string into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens stripped.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// baseSlug derives the preferred slug for a record: explicit slug first,
// then the title, then a fragment of the id.
func baseSlug(explicit, title, id string) string {
	if s := Slugify(explicit); s != "" {
		return s
	}
	if s := Slugify(title); s != "" {
		return s
	}
	return "post-" + strings.ToLower(firstN(id, fallbackIDLength))
}

// resolveSlug returns a slug unique within taken, registering the result.
// On collision a short id fragment is appended to the original base; the
// fragment grows on repeated collisions so the candidate is always derived
// from the base, never from a previously suffixed value.
func resolveSlug(base, id string, taken map[string]bool) string {
	candidate := base
	fragLen := collisionIDLength
	for taken[candidate] {
		frag := strings.ToLower(firstN(id, fragLen))
		candidate = base + "-" + frag
		fragLen++
		if fragLen > len(id) {
			// Identical ids cannot be disambiguated further; keep the
			// longest fragment and stop.
			break
		}
	}
	taken[candidate] = true
	return candidate
}

// AssignSlugs gives every post a globally unique slug, in order.
// Earlier posts win the unsuffixed slug.
func AssignSlugs(posts []domain.PostSummary) {
	taken := make(map[string]bool, len(posts))
	for i := range posts {
		base := baseSlug(posts[i].Slug, posts[i].Title, posts[i].ID)
		posts[i].Slug = resolveSlug(base, posts[i].ID, taken)
	}
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
