package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

func relatedFixture() []domain.PostSummary {
	return []domain.PostSummary{
		{ID: "self", Tags: []string{"MVP", "Budget"}},
		{ID: "both", Tags: []string{"mvp", "budget"}},
		{ID: "one", Tags: []string{"Budget", "SaaS"}},
		{ID: "none", Tags: []string{"Recrutement"}},
		{ID: "other", Tags: []string{"MVP"}},
	}
}

func TestRelatedPostsExcludesSelfAndZeroOverlap(t *testing.T) {
	got := RelatedPosts(relatedFixture(), "self", []string{"MVP", "Budget"}, 10)

	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	// Overlap counts: both=2, one=1, other=1. Ties keep incoming order.
	assert.Equal(t, []string{"both", "one", "other"}, ids)
}

func TestRelatedPostsTagMatchingIsCaseInsensitive(t *testing.T) {
	got := RelatedPosts(relatedFixture(), "self", []string{"budget"}, 10)

	assert.Len(t, got, 2)
	assert.Equal(t, "both", got[0].ID)
	assert.Equal(t, "one", got[1].ID)
}

func TestRelatedPostsHonorsLimit(t *testing.T) {
	got := RelatedPosts(relatedFixture(), "self", []string{"MVP", "Budget"}, 1)

	assert.Len(t, got, 1)
	assert.Equal(t, "both", got[0].ID)
}

func TestRelatedPostsDefaultLimit(t *testing.T) {
	posts := []domain.PostSummary{
		{ID: "a", Tags: []string{"Go"}},
		{ID: "b", Tags: []string{"Go"}},
		{ID: "c", Tags: []string{"Go"}},
		{ID: "d", Tags: []string{"Go"}},
		{ID: "e", Tags: []string{"Go"}},
	}

	got := RelatedPosts(posts, "a", []string{"Go"}, 0)
	assert.Len(t, got, DefaultRelatedLimit)
}

func TestRelatedPostsNoTags(t *testing.T) {
	got := RelatedPosts(relatedFixture(), "self", nil, 10)
	assert.Empty(t, got)
}
