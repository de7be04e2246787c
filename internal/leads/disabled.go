package leads

import (
	"context"

	"github.com/Raph13009/notion-blogs/internal/cms"
	"github.com/Raph13009/notion-blogs/internal/logger"
)

// DisabledRecorder stands in for the CMS lead database when it is not
// configured. Submissions still reach the email relay.
type DisabledRecorder struct {
	logger logger.Logger
}

func NewDisabledRecorder(log logger.Logger) *DisabledRecorder {
	return &DisabledRecorder{logger: log}
}

func (r *DisabledRecorder) CreateLead(_ context.Context, page cms.LeadPage) error {
	r.logger.Warn("Lead database not configured, record dropped",
		logger.String("title", page.Title),
	)
	return nil
}
