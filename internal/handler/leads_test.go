package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raph13009/notion-blogs/internal/cms"
	"github.com/Raph13009/notion-blogs/internal/leads"
	"github.com/Raph13009/notion-blogs/internal/logger"
	"github.com/Raph13009/notion-blogs/internal/relay"
)

type stubSender struct {
	mu   sync.Mutex
	sent int
	err  error
}

func (s *stubSender) Send(_ context.Context, _ relay.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent++
	return nil
}

type stubRecorder struct {
	mu      sync.Mutex
	created int
	err     error
}

func (s *stubRecorder) CreateLead(_ context.Context, _ cms.LeadPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.created++
	return nil
}

func newLeadRouter(t *testing.T, sender *stubSender, recorder *stubRecorder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := leads.NewService(sender, recorder, nil, logger.NewNop(), nil)
	h := NewLeadHandler(svc, logger.NewNop())

	router := gin.New()
	router.POST("/api/estimator-lead", h.HandleEstimatorLead)
	router.POST("/api/blog-cta-lead", h.HandleBlogCTALead)
	return router
}

func postLead(t *testing.T, router *gin.Engine, path string, payload string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

const validEstimatorPayload = `{
	"firstName": "Claire",
	"email": "claire@example.com",
	"consent": true,
	"estimateMin": 4095,
	"estimateMax": 7487,
	"totalScore": 19.5,
	"answers": {"ambition": "base", "timeline": "m1_2"}
}`

func TestHandleEstimatorLeadSuccess(t *testing.T) {
	sender := &stubSender{}
	recorder := &stubRecorder{}
	router := newLeadRouter(t, sender, recorder)

	code, body := postLead(t, router, "/api/estimator-lead", validEstimatorPayload)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, 1, recorder.created)
}

func TestHandleEstimatorLeadRejectsMalformedJSON(t *testing.T) {
	router := newLeadRouter(t, &stubSender{}, &stubRecorder{})

	code, body := postLead(t, router, "/api/estimator-lead", `{"firstName": `)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_payload", body["error"])
}

func TestHandleEstimatorLeadRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no first name", `{"email": "a@b.fr", "consent": true, "estimateMin": 1, "estimateMax": 2, "totalScore": 3}`},
		{"no email", `{"firstName": "A", "consent": true, "estimateMin": 1, "estimateMax": 2, "totalScore": 3}`},
		{"no consent field", `{"firstName": "A", "email": "a@b.fr", "estimateMin": 1, "estimateMax": 2, "totalScore": 3}`},
		{"no estimate min", `{"firstName": "A", "email": "a@b.fr", "consent": true, "estimateMax": 2, "totalScore": 3}`},
		{"no estimate max", `{"firstName": "A", "email": "a@b.fr", "consent": true, "estimateMin": 1, "totalScore": 3}`},
		{"no total score", `{"firstName": "A", "email": "a@b.fr", "consent": true, "estimateMin": 1, "estimateMax": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newLeadRouter(t, &stubSender{}, &stubRecorder{})

			code, body := postLead(t, router, "/api/estimator-lead", tt.payload)

			require.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "invalid_payload", body["error"])
		})
	}
}

func TestHandleEstimatorLeadWithoutConsent(t *testing.T) {
	router := newLeadRouter(t, &stubSender{}, &stubRecorder{})

	payload := `{"firstName": "A", "email": "a@b.fr", "consent": false, "estimateMin": 1, "estimateMax": 2, "totalScore": 3}`
	code, body := postLead(t, router, "/api/estimator-lead", payload)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "consent_required", body["error"])
}

func TestHandleEstimatorLeadInvalidEmail(t *testing.T) {
	router := newLeadRouter(t, &stubSender{}, &stubRecorder{})

	payload := `{"firstName": "A", "email": "not-an-email", "consent": true, "estimateMin": 1, "estimateMax": 2, "totalScore": 3}`
	code, body := postLead(t, router, "/api/estimator-lead", payload)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_email", body["error"])
}

func TestHandleEstimatorLeadDownstreamFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("relay down")}
	router := newLeadRouter(t, sender, &stubRecorder{})

	code, body := postLead(t, router, "/api/estimator-lead", validEstimatorPayload)

	require.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "submission_failed", body["error"])
}

func TestHandleBlogCTALeadSuccess(t *testing.T) {
	sender := &stubSender{}
	recorder := &stubRecorder{}
	router := newLeadRouter(t, sender, recorder)

	payload := `{"email": "Reader@Example.com", "blogTitle": "Lancer un MVP", "blogSlug": "lancer-un-mvp"}`
	code, body := postLead(t, router, "/api/blog-cta-lead", payload)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, 1, recorder.created)
}

func TestHandleBlogCTALeadMissingEmail(t *testing.T) {
	router := newLeadRouter(t, &stubSender{}, &stubRecorder{})

	code, body := postLead(t, router, "/api/blog-cta-lead", `{"blogTitle": "Lancer un MVP"}`)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_payload", body["error"])
}

func TestHandleBlogCTALeadInvalidEmail(t *testing.T) {
	router := newLeadRouter(t, &stubSender{}, &stubRecorder{})

	code, body := postLead(t, router, "/api/blog-cta-lead", `{"email": "nope"}`)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_email", body["error"])
}
