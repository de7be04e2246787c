package content

import (
	"sort"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// TagIndex returns the distinct tags across all posts, sorted for display.
func TagIndex(posts []domain.PostSummary) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, post := range posts {
		for _, tag := range post.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// PostsByTag returns the posts carrying a tag whose slug matches tagSlug,
// along with the canonical display casing of the tag. When no post matches,
// the slug itself is returned as the canonical form.
func PostsByTag(posts []domain.PostSummary, tagSlug string) (string, []domain.PostSummary) {
	var matched []domain.PostSummary
	canonical := tagSlug

	for _, post := range posts {
		for _, tag := range post.Tags {
			if Slugify(tag) == tagSlug {
				if len(matched) == 0 {
					canonical = tag
				}
				matched = append(matched, post)
				break
			}
		}
	}

	return canonical, matched
}
