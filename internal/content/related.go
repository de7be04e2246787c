package content

import (
	"sort"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// DefaultRelatedLimit is the candidate limit when the caller does not ask
// for a specific one.
const DefaultRelatedLimit = 3

// RelatedPosts suggests posts sharing tags with the given post. Posts with
// no tag overlap are excluded, the queried post never appears in its own
// suggestions, and at most limit posts are returned. Overlap ties keep the
// incoming (date-descending) order.
func RelatedPosts(posts []domain.PostSummary, postID string, tags []string, limit int) []domain.PostSummary {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	current := make(map[string]bool, len(tags))
	for _, tag := range tags {
		current[Slugify(tag)] = true
	}

	type scored struct {
		post    domain.PostSummary
		overlap int
	}

	candidates := make([]scored, 0, len(posts))
	for _, post := range posts {
		if post.ID == postID {
			continue
		}
		overlap := 0
		for _, tag := range post.Tags {
			if current[Slugify(tag)] {
				overlap++
			}
		}
		if overlap > 0 {
			candidates = append(candidates, scored{post: post, overlap: overlap})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap > candidates[j].overlap
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]domain.PostSummary, len(candidates))
	for i, c := range candidates {
		out[i] = c.post
	}
	return out
}
