package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raph13009/notion-blogs/internal/cache"
	"github.com/Raph13009/notion-blogs/internal/content"
	"github.com/Raph13009/notion-blogs/internal/feed"
	"github.com/Raph13009/notion-blogs/internal/logger"
)

func TestHandleRSS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := content.NewService(&staticSource{posts: catalogPosts()}, cache.NewMemoryStore(), time.Hour, logger.NewNop(), nil)
	require.NoError(t, svc.Refresh(context.Background()))

	renderer := feed.NewRenderer("BoostAIConsulting Blog", "Playbooks for founders.", "https://blog.boostaiconsulting.com")
	h := NewFeedHandler(svc, renderer, nil, logger.NewNop())

	router := gin.New()
	router.GET("/rss.xml", h.HandleRSS)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rss.xml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, feed.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, feed.CacheControl, rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>BoostAIConsulting Blog</title>")
	assert.Contains(t, body, "https://blog.boostaiconsulting.com/blog/choisir-sa-stack")
	assert.Contains(t, body, "Tue, 20 Jan 2026 00:00:00 GMT")
}
