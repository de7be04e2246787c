package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// Reading-time model: when the full body word count is unavailable, a
// synthetic estimate is derived from the description and title lengths.
const (
	minEstimatedWords     = 280
	descriptionWordWeight = 12
	titleWordWeight       = 4
	wordsPerMinute        = 225
)

var nonWordRuns = regexp.MustCompile(`[^\w\s]+`)

// WordCount counts the words in a post body after stripping punctuation.
func WordCount(text string) int {
	clean := nonWordRuns.ReplaceAllString(text, " ")
	return len(strings.Fields(clean))
}

// EstimatedReadingMinutes estimates reading time from the summary fields
// alone. The result is never below one minute.
func EstimatedReadingMinutes(post domain.PostSummary) int {
	estimatedWords := len(strings.Fields(post.Description))*descriptionWordWeight +
		len(strings.Fields(post.Title))*titleWordWeight
	if estimatedWords < minEstimatedWords {
		estimatedWords = minEstimatedWords
	}

	minutes := (estimatedWords + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ReadingTimeLabel formats the estimate for display.
func ReadingTimeLabel(post domain.PostSummary) string {
	return fmt.Sprintf("%d min", EstimatedReadingMinutes(post))
}
