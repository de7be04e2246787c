package leads

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Raph13009/notion-blogs/internal/cms"
	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/logger"
	"github.com/Raph13009/notion-blogs/internal/relay"
	"github.com/Raph13009/notion-blogs/internal/telemetry"
)

// emailPattern is deliberately loose: one @ with something on both sides
// and a dot in the domain part.
var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// EmailSender posts lead notification emails.
type EmailSender interface {
	Send(ctx context.Context, msg relay.Message) error
}

// LeadRecorder writes lead records into the CMS leads database.
type LeadRecorder interface {
	CreateLead(ctx context.Context, lead cms.LeadPage) error
}

// AuditStore persists the local audit row for an accepted lead.
type AuditStore interface {
	Insert(ctx context.Context, record domain.LeadRecord) error
}

// Service validates submissions and fans each accepted lead out to the
// email relay and the CMS. Both downstreams always run to completion;
// neither cancels the other.
type Service struct {
	relay   EmailSender
	cms     LeadRecorder
	audit   AuditStore
	logger  logger.Logger
	metrics *telemetry.Provider
	now     func() time.Time
}

// NewService wires the lead pipeline. audit may be nil when the audit
// database is not configured.
func NewService(sender EmailSender, recorder LeadRecorder, audit AuditStore, log logger.Logger, metrics *telemetry.Provider) *Service {
	return &Service{
		relay:   sender,
		cms:     recorder,
		audit:   audit,
		logger:  log,
		metrics: metrics,
		now:     time.Now,
	}
}

// SubmitEstimatorLead handles a lead from the estimator flow. Validation
// order is fixed: payload shape, then consent, then email format.
func (s *Service) SubmitEstimatorLead(ctx context.Context, lead domain.EstimatorLead) error {
	if lead.FirstName == "" || lead.Email == "" {
		return s.reject("estimator", domain.ErrCodeInvalidPayload)
	}
	if !lead.Consent {
		return s.reject("estimator", domain.ErrCodeConsentRequired)
	}
	if !emailPattern.MatchString(lead.Email) {
		return s.reject("estimator", domain.ErrCodeInvalidEmail)
	}

	estimateRange := fmt.Sprintf("%d€ - %d€", lead.EstimateMin, lead.EstimateMax)
	answersSummary := estimatorAnswersSummary(lead.Answers)

	msg := relay.Message{
		Subject: "Nouveau lead Estimateur MVP - " + lead.FirstName,
		Fields: map[string]string{
			"firstName":        lead.FirstName,
			"email":            lead.Email,
			"estimateRange":    estimateRange,
			"score":            strconv.FormatFloat(lead.TotalScore, 'f', -1, 64),
			"ambition":         decodeAnswer(lead.Answers.Ambition),
			"timeline":         decodeAnswer(lead.Answers.Timeline),
			"featureCount":     decodeAnswer(lead.Answers.FeatureCount),
			"integrationLevel": decodeAnswer(lead.Answers.IntegrationLevel),
			"advancedFeature":  decodeAnswer(lead.Answers.AdvancedFeature),
			"designLevel":      decodeAnswer(lead.Answers.DesignLevel),
			"platform":         decodeAnswer(lead.Answers.Platform),
			"adminLevel":       decodeAnswer(lead.Answers.AdminLevel),
		},
	}

	estimateMin := float64(lead.EstimateMin)
	estimateMax := float64(lead.EstimateMax)
	score := lead.TotalScore
	page := cms.LeadPage{
		Title:         "Lead " + lead.FirstName,
		Name:          lead.FirstName,
		Email:         lead.Email,
		EstimateRange: estimateRange,
		EstimateMin:   &estimateMin,
		EstimateMax:   &estimateMax,
		Score:         &score,
		Source:        domain.LeadSourceEstimator,
		Answers:       answersSummary,
	}

	if err := s.dispatch(ctx, "estimator", msg, page); err != nil {
		return err
	}

	s.writeAudit(ctx, domain.LeadRecord{
		Source:      domain.LeadSourceEstimator,
		Email:       lead.Email,
		FirstName:   lead.FirstName,
		EstimateMin: lead.EstimateMin,
		EstimateMax: lead.EstimateMax,
		Score:       lead.TotalScore,
		Context:     answersSummary,
		SubmittedAt: s.now().UTC(),
	})

	if s.metrics != nil {
		s.metrics.RecordLead("estimator", "")
	}
	return nil
}

// SubmitBlogCTALead handles a lead from the article bottom call-to-action.
// The email is normalized (trimmed, lowercased) before validation.
func (s *Service) SubmitBlogCTALead(ctx context.Context, lead domain.BlogCTALead) error {
	if lead.Email == "" {
		return s.reject("blog_cta", domain.ErrCodeInvalidPayload)
	}

	email := strings.ToLower(strings.TrimSpace(lead.Email))
	blogSlug := strings.TrimSpace(lead.BlogSlug)
	blogTitle := strings.TrimSpace(lead.BlogTitle)

	if !emailPattern.MatchString(email) {
		return s.reject("blog_cta", domain.ErrCodeInvalidEmail)
	}

	article := blogContext(blogSlug, blogTitle)
	if article == "" {
		article = "Non renseigné"
	}

	msg := relay.Message{
		Subject: "Nouveau lead CTA Blog - Discutons de votre projet",
		Fields: map[string]string{
			"source":  domain.LeadSourceBlogCTA,
			"article": article,
			"email":   email,
		},
	}

	summaryParts := []string{"Lead Type: Blog CTA"}
	if blogTitle != "" {
		summaryParts = append(summaryParts, "Blog Title: "+blogTitle)
	}
	if blogSlug != "" {
		summaryParts = append(summaryParts, "Blog Slug: "+blogSlug)
	}

	page := cms.LeadPage{
		Title:   "CTA Lead " + email,
		Email:   email,
		Source:  domain.LeadSourceBlogCTA,
		Answers: strings.Join(summaryParts, "\n"),
	}

	if err := s.dispatch(ctx, "blog_cta", msg, page); err != nil {
		return err
	}

	s.writeAudit(ctx, domain.LeadRecord{
		Source:      domain.LeadSourceBlogCTA,
		Email:       email,
		Context:     blogContext(blogSlug, blogTitle),
		SubmittedAt: s.now().UTC(),
	})

	if s.metrics != nil {
		s.metrics.RecordLead("blog_cta", "")
	}
	return nil
}

// dispatch forwards the lead to both downstreams concurrently and waits for
// both. A failure on either side fails the submission, but never stops the
// other side.
func (s *Service) dispatch(ctx context.Context, source string, msg relay.Message, page cms.LeadPage) error {
	var (
		wg       sync.WaitGroup
		relayErr error
		cmsErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		start := s.now()
		relayErr = s.relay.Send(ctx, msg)
		if s.metrics != nil {
			s.metrics.RecordDispatch("relay", s.now().Sub(start))
		}
	}()
	go func() {
		defer wg.Done()
		start := s.now()
		cmsErr = s.cms.CreateLead(ctx, page)
		if s.metrics != nil {
			s.metrics.RecordDispatch("cms", s.now().Sub(start))
		}
	}()
	wg.Wait()

	if relayErr != nil || cmsErr != nil {
		s.logger.Error("Lead forwarding failed",
			logger.String("source", source),
			logger.NamedError("relay_error", relayErr),
			logger.NamedError("cms_error", cmsErr),
		)
		if s.metrics != nil {
			s.metrics.RecordLead(source, domain.ErrCodeSubmissionFailed)
		}
		if relayErr != nil {
			return newSubmissionError(domain.ErrCodeSubmissionFailed, relayErr)
		}
		return newSubmissionError(domain.ErrCodeSubmissionFailed, cmsErr)
	}
	return nil
}

// writeAudit is best effort: a broken audit database never fails a lead
// that both downstreams already accepted.
func (s *Service) writeAudit(ctx context.Context, record domain.LeadRecord) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Insert(ctx, record); err != nil {
		s.logger.Warn("Lead audit write failed",
			logger.String("source", record.Source),
			logger.Error(err),
		)
	}
}

func (s *Service) reject(source, code string) error {
	if s.metrics != nil {
		s.metrics.RecordLead(source, code)
	}
	return newSubmissionError(code, nil)
}

func estimatorAnswersSummary(answers domain.Answers) string {
	return strings.Join([]string{
		"Ambition: " + decodeAnswer(answers.Ambition),
		"Timeline: " + decodeAnswer(answers.Timeline),
		"Features: " + decodeAnswer(answers.FeatureCount),
		"Integrations: " + decodeAnswer(answers.IntegrationLevel),
		"Advanced: " + decodeAnswer(answers.AdvancedFeature),
		"Design: " + decodeAnswer(answers.DesignLevel),
		"Platform: " + decodeAnswer(answers.Platform),
		"Admin: " + decodeAnswer(answers.AdminLevel),
	}, " | ")
}

func blogContext(blogSlug, blogTitle string) string {
	var parts []string
	if blogTitle != "" {
		parts = append(parts, "Titre: "+blogTitle)
	}
	if blogSlug != "" {
		parts = append(parts, "Slug: "+blogSlug)
	}
	return strings.Join(parts, " | ")
}
