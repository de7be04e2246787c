package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Raph13009/notion-blogs/internal/content"
	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/logger"
)

const maxRelatedLimit = 10

// BlogHandler serves the published post catalog: listings, single posts,
// topic and tag buckets, and the cache invalidation hook.
type BlogHandler struct {
	service *content.Service
	logger  logger.Logger
}

func NewBlogHandler(service *content.Service, log logger.Logger) *BlogHandler {
	return &BlogHandler{service: service, logger: log}
}

// postView is the listing item returned by the catalog endpoints. It adds
// the derived topic and reading time to the stored summary.
type postView struct {
	domain.PostSummary
	Topic       domain.Topic `json:"topic"`
	ReadingTime string       `json:"readingTime"`
}

// postDetailView is the single-post response body.
type postDetailView struct {
	domain.Post
	Topic       domain.Topic `json:"topic"`
	ReadingTime string       `json:"readingTime"`
}

func viewOf(post domain.PostSummary) postView {
	return postView{
		PostSummary: post,
		Topic:       content.TopicOf(post),
		ReadingTime: content.ReadingTimeLabel(post),
	}
}

func viewsOf(posts []domain.PostSummary) []postView {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, viewOf(post))
	}
	return views
}

// HandleListPosts handles GET /api/blog/posts. The default ordering is the
// business-priority ranking; ?sort=date switches to newest-first.
func (h *BlogHandler) HandleListPosts(c *gin.Context) {
	posts := h.service.Summaries(c.Request.Context())

	switch c.DefaultQuery("sort", "priority") {
	case "date":
		// Summaries are already stored newest-first.
	case "priority":
		posts = content.SortByBusinessPriority(posts)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_sort"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "posts": viewsOf(posts)})
}

// HandleGetPost handles GET /api/blog/posts/:slug.
func (h *BlogHandler) HandleGetPost(c *gin.Context) {
	slug := c.Param("slug")
	post, ok := h.service.PostBySlug(c.Request.Context(), slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "post": postDetailView{
		Post:        post,
		Topic:       content.TopicOf(post.PostSummary),
		ReadingTime: content.ReadingTimeLabel(post.PostSummary),
	}})
}

// HandleRelatedPosts handles GET /api/blog/posts/:slug/related.
func (h *BlogHandler) HandleRelatedPosts(c *gin.Context) {
	limit := content.DefaultRelatedLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_limit"})
			return
		}
		limit = parsed
	}
	if limit > maxRelatedLimit {
		limit = maxRelatedLimit
	}

	related, ok := h.service.Related(c.Request.Context(), c.Param("slug"), limit)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "posts": viewsOf(related)})
}

// topicView is one entry of the topic catalog, with its post count.
type topicView struct {
	domain.TopicInfo
	Count int `json:"count"`
}

// HandleListTopics handles GET /api/blog/topics.
func (h *BlogHandler) HandleListTopics(c *gin.Context) {
	posts := h.service.Summaries(c.Request.Context())

	topics := make([]topicView, 0, 3)
	for _, info := range content.Topics() {
		topics = append(topics, topicView{
			TopicInfo: info,
			Count:     len(content.PostsByTopic(posts, info.Key)),
		})
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "topics": topics})
}

// HandleGetTopic handles GET /api/blog/topics/:topic.
func (h *BlogHandler) HandleGetTopic(c *gin.Context) {
	key := domain.Topic(c.Param("topic"))
	info, ok := content.TopicInfoFor(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
		return
	}

	posts := h.service.Summaries(c.Request.Context())
	matched := content.SortByBusinessPriority(content.PostsByTopic(posts, key))

	c.JSON(http.StatusOK, gin.H{"ok": true, "topic": info, "posts": viewsOf(matched)})
}

// HandleListTags handles GET /api/blog/tags.
func (h *BlogHandler) HandleListTags(c *gin.Context) {
	posts := h.service.Summaries(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true, "tags": content.TagIndex(posts)})
}

// HandleGetTag handles GET /api/blog/tags/:tag.
func (h *BlogHandler) HandleGetTag(c *gin.Context) {
	posts := h.service.Summaries(c.Request.Context())
	name, matched := content.PostsByTag(posts, c.Param("tag"))
	if len(matched) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "tag": name, "posts": viewsOf(matched)})
}

// HandleRevalidate handles POST /api/blog/revalidate. It drops the cached
// snapshot so the next read refetches from the CMS.
func (h *BlogHandler) HandleRevalidate(c *gin.Context) {
	if err := h.service.Invalidate(c.Request.Context()); err != nil {
		h.logger.Error("Snapshot invalidation failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "invalidate_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "revalidated": true})
}
