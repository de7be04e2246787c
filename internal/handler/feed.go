package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Raph13009/notion-blogs/internal/content"
	"github.com/Raph13009/notion-blogs/internal/feed"
	"github.com/Raph13009/notion-blogs/internal/logger"
	"github.com/Raph13009/notion-blogs/internal/telemetry"
)

// FeedHandler renders the RSS feed from the current snapshot.
type FeedHandler struct {
	service  *content.Service
	renderer *feed.Renderer
	metrics  *telemetry.Provider
	logger   logger.Logger
}

func NewFeedHandler(service *content.Service, renderer *feed.Renderer, metrics *telemetry.Provider, log logger.Logger) *FeedHandler {
	return &FeedHandler{service: service, renderer: renderer, metrics: metrics, logger: log}
}

// HandleRSS handles GET /rss.xml.
func (h *FeedHandler) HandleRSS(c *gin.Context) {
	posts := h.service.Summaries(c.Request.Context())

	body, err := h.renderer.Render(posts)
	if err != nil {
		h.logger.Error("Feed render failed", logger.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordFeedRequest()
	}

	c.Header("Cache-Control", feed.CacheControl)
	c.Data(http.StatusOK, feed.ContentType, body)
}

// HandleSitemap handles GET /sitemap.xml.
func (h *FeedHandler) HandleSitemap(c *gin.Context) {
	posts := h.service.Summaries(c.Request.Context())

	body, err := h.renderer.RenderSitemap(posts, time.Now())
	if err != nil {
		h.logger.Error("Sitemap render failed", logger.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", feed.CacheControl)
	c.Data(http.StatusOK, feed.SitemapContentType, body)
}

// HandleRobots handles GET /robots.txt.
func (h *FeedHandler) HandleRobots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", h.renderer.RenderRobots())
}
