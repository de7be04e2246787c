package content

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// Keyword groups for topic classification and the priority heuristic.
// Matching is deliberately plain pattern matching over a lowercased blob of
// title, description, category and tags. Group order is fixed: the cost
// group is checked before the architecture group, and the first match wins.
var (
	costKeywords         = regexp.MustCompile(`cout|coût|budget|prix|tarif|estimation|devis|runway`)
	architectureKeywords = regexp.MustCompile(`architecture|scalabil|infra|backend|api|database|tenant`)

	priorityCostKeywords  = regexp.MustCompile(`cout|coût|budget|prix|tarif|estimation|devis`)
	priorityMVPKeyword    = regexp.MustCompile(`mvp`)
	priorityGuideKeywords = regexp.MustCompile(`guide|checklist|template|framework`)
	priorityStackKeywords = regexp.MustCompile(`architecture|stack|outils`)
)

// Business-priority weights.
const (
	costWeight  = 120
	mvpWeight   = 80
	guideWeight = 40
	stackWeight = 20
)

// topicCatalog is the fixed set of editorial buckets.
var topicCatalog = []domain.TopicInfo{
	{
		Key:         domain.TopicCostBudget,
		Title:       "Coût & Budget MVP",
		Description: "Priorités budgétaires, arbitrages ROI et décisions de scope.",
	},
	{
		Key:         domain.TopicArchitecture,
		Title:       "Architecture & Scalabilité",
		Description: "Fondations techniques pour lancer vite sans dette bloquante.",
	},
	{
		Key:         domain.TopicStackTools,
		Title:       "Stack & Outils",
		Description: "Technologies et outils pragmatiques pour exécuter efficacement.",
	},
}

// Topics returns the topic catalog in display order.
func Topics() []domain.TopicInfo {
	out := make([]domain.TopicInfo, len(topicCatalog))
	copy(out, topicCatalog)
	return out
}

// TopicInfoFor looks up the catalog entry for a topic key.
func TopicInfoFor(key domain.Topic) (domain.TopicInfo, bool) {
	for _, info := range topicCatalog {
		if info.Key == key {
			return info, true
		}
	}
	return domain.TopicInfo{}, false
}

func textBlob(post domain.PostSummary) string {
	parts := []string{post.Title, post.Description, post.Category}
	parts = append(parts, post.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// TopicOf assigns a post to one of the three buckets. Cost keywords take
// precedence over architecture keywords; everything else lands in
// stack-outils.
func TopicOf(post domain.PostSummary) domain.Topic {
	text := textBlob(post)

	if costKeywords.MatchString(text) {
		return domain.TopicCostBudget
	}
	if architectureKeywords.MatchString(text) {
		return domain.TopicArchitecture
	}
	return domain.TopicStackTools
}

// BusinessPriority computes the manual ranking score used on listing pages.
func BusinessPriority(post domain.PostSummary) int {
	text := textBlob(post)

	score := 0
	if priorityCostKeywords.MatchString(text) {
		score += costWeight
	}
	if priorityMVPKeyword.MatchString(text) {
		score += mvpWeight
	}
	if priorityGuideKeywords.MatchString(text) {
		score += guideWeight
	}
	if priorityStackKeywords.MatchString(text) {
		score += stackWeight
	}
	return score
}

// SortByBusinessPriority returns a new slice ordered by descending priority.
// The sort is stable: ties keep the incoming (date-descending) order.
func SortByBusinessPriority(posts []domain.PostSummary) []domain.PostSummary {
	out := make([]domain.PostSummary, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return BusinessPriority(out[i]) > BusinessPriority(out[j])
	})
	return out
}

// PostsByTopic buckets posts by their assigned topic.
func PostsByTopic(posts []domain.PostSummary, key domain.Topic) []domain.PostSummary {
	var out []domain.PostSummary
	for _, post := range posts {
		if TopicOf(post) == key {
			out = append(out, post)
		}
	}
	return out
}
