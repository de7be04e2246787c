// Package domain holds the core data model shared across the service.
package domain

// PostSummary is the listing view of a published post. Summaries are
// read-only snapshots; derived views (rankings, topic buckets, related
// posts) never mutate them.
type PostSummary struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	Date           string   `json:"date"`
	Author         string   `json:"author,omitempty"`
	Tags           []string `json:"tags"`
	Category       string   `json:"category,omitempty"`
	CoverImage     string   `json:"coverImage,omitempty"`
	IsFeatured     bool     `json:"isFeatured"`
	LastEditedTime string   `json:"lastEditedTime"`
}

// Post is a full post including its body.
type Post struct {
	PostSummary
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
}

// Topic is one of three fixed editorial buckets assigned by keyword heuristic.
type Topic string

// Topic keys, in classification order.
const (
	TopicCostBudget   Topic = "cout-budget-mvp"
	TopicArchitecture Topic = "architecture-scalabilite"
	TopicStackTools   Topic = "stack-outils"
)

// TopicInfo carries the display metadata for a topic bucket.
type TopicInfo struct {
	Key         Topic  `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
