package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Raph13009/notion-blogs/internal/handler"
	"github.com/Raph13009/notion-blogs/internal/middleware"
	"github.com/Raph13009/notion-blogs/internal/telemetry"
)

// SetupRoutes configures all API routes.
// Health routes are registered by the server builder.
func SetupRoutes(
	router *gin.Engine,
	blogHandler *handler.BlogHandler,
	leadHandler *handler.LeadHandler,
	estimateHandler *handler.EstimateHandler,
	feedHandler *handler.FeedHandler,
	metrics *telemetry.Provider,
) {
	// Legacy slug paths redirect onto /blog before anything else runs.
	router.Use(middleware.SlugRedirect())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/rss.xml", feedHandler.HandleRSS)
	router.GET("/sitemap.xml", feedHandler.HandleSitemap)
	router.GET("/robots.txt", feedHandler.HandleRobots)

	api := router.Group("/api")
	{
		blog := api.Group("/blog")
		{
			blog.GET("/posts", blogHandler.HandleListPosts)
			blog.GET("/posts/:slug", blogHandler.HandleGetPost)
			blog.GET("/posts/:slug/related", blogHandler.HandleRelatedPosts)
			blog.GET("/topics", blogHandler.HandleListTopics)
			blog.GET("/topics/:topic", blogHandler.HandleGetTopic)
			blog.GET("/tags", blogHandler.HandleListTags)
			blog.GET("/tags/:tag", blogHandler.HandleGetTag)
			blog.POST("/revalidate", blogHandler.HandleRevalidate)
		}

		api.POST("/estimator-lead", leadHandler.HandleEstimatorLead)
		api.POST("/blog-cta-lead", leadHandler.HandleBlogCTALead)
		api.POST("/estimator/estimate", estimateHandler.HandleEstimate)
	}
}
