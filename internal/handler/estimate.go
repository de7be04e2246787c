package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/estimator"
	"github.com/Raph13009/notion-blogs/internal/telemetry"
)

// EstimateHandler computes cost estimates server side so the pricing model
// stays out of the client bundle.
type EstimateHandler struct {
	metrics *telemetry.Provider
}

func NewEstimateHandler(metrics *telemetry.Provider) *EstimateHandler {
	return &EstimateHandler{metrics: metrics}
}

// HandleEstimate handles POST /api/estimator/estimate.
func (h *EstimateHandler) HandleEstimate(c *gin.Context) {
	var req struct {
		Answers domain.Answers `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_payload"})
		return
	}

	estimate := estimator.Estimate(req.Answers)
	if h.metrics != nil {
		h.metrics.RecordEstimate()
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "estimate": estimate})
}
