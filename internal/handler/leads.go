// Package handler contains the gin request handlers for the public API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/leads"
	"github.com/Raph13009/notion-blogs/internal/logger"
)

// LeadHandler accepts lead submissions from the estimator flow and the
// article call-to-action.
type LeadHandler struct {
	service *leads.Service
	logger  logger.Logger
}

func NewLeadHandler(service *leads.Service, log logger.Logger) *LeadHandler {
	return &LeadHandler{service: service, logger: log}
}

// estimatorLeadRequest mirrors the shape the estimator widget posts.
// Pointer fields distinguish an absent value from a zero one; all of them
// are required.
type estimatorLeadRequest struct {
	FirstName   string         `json:"firstName"`
	Email       string         `json:"email"`
	Consent     *bool          `json:"consent"`
	EstimateMin *int           `json:"estimateMin"`
	EstimateMax *int           `json:"estimateMax"`
	TotalScore  *float64       `json:"totalScore"`
	Answers     domain.Answers `json:"answers"`
}

// HandleEstimatorLead handles POST /api/estimator-lead.
func (h *LeadHandler) HandleEstimatorLead(c *gin.Context) {
	var req estimatorLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondLeadError(c, domain.ErrCodeInvalidPayload)
		return
	}
	if req.FirstName == "" || req.Email == "" ||
		req.Consent == nil || req.EstimateMin == nil || req.EstimateMax == nil || req.TotalScore == nil {
		respondLeadError(c, domain.ErrCodeInvalidPayload)
		return
	}

	lead := domain.EstimatorLead{
		FirstName:   req.FirstName,
		Email:       req.Email,
		Consent:     *req.Consent,
		EstimateMin: *req.EstimateMin,
		EstimateMax: *req.EstimateMax,
		TotalScore:  *req.TotalScore,
		Answers:     req.Answers,
	}

	if err := h.service.SubmitEstimatorLead(c.Request.Context(), lead); err != nil {
		h.respondSubmissionError(c, "estimator", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// HandleBlogCTALead handles POST /api/blog-cta-lead.
func (h *LeadHandler) HandleBlogCTALead(c *gin.Context) {
	var lead domain.BlogCTALead
	if err := c.ShouldBindJSON(&lead); err != nil {
		respondLeadError(c, domain.ErrCodeInvalidPayload)
		return
	}

	if err := h.service.SubmitBlogCTALead(c.Request.Context(), lead); err != nil {
		h.respondSubmissionError(c, "blog_cta", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *LeadHandler) respondSubmissionError(c *gin.Context, source string, err error) {
	var subErr *leads.SubmissionError
	if errors.As(err, &subErr) {
		respondLeadError(c, subErr.Code)
		return
	}

	h.logger.Error("Unexpected lead submission error",
		logger.String("source", source),
		logger.Error(err),
	)
	respondLeadError(c, domain.ErrCodeSubmissionFailed)
}

// respondLeadError maps a lead error code onto its HTTP status. Downstream
// failures are the only 500; everything else is a client error.
func respondLeadError(c *gin.Context, code string) {
	status := http.StatusBadRequest
	if code == domain.ErrCodeSubmissionFailed {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"ok": false, "error": code})
}
