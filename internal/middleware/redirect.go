// Package middleware holds the gin middleware specific to the blog backend.
package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// reservedPrefixes are path prefixes the redirect contract must never touch.
var reservedPrefixes = []string{"/blog", "/api", "/health", "/metrics"}

// reservedPaths are exact paths served directly.
var reservedPaths = map[string]bool{
	"/":            true,
	"/favicon.ico": true,
	"/robots.txt":  true,
	"/sitemap.xml": true,
	"/rss.xml":     true,
}

// exemptSlugs are single-segment paths that belong to the site itself and
// must not be rewritten to /blog/<slug>.
var exemptSlugs = map[string]bool{
	"topic":          true,
	"estimateur-mvp": true,
}

var (
	postsPattern = regexp.MustCompile(`^/posts/([^/]+)/?$`)
	slugPattern  = regexp.MustCompile(`^/([^/]+)/?$`)
)

// SlugRedirect preserves the URLs of the previous site generation: legacy
// /posts/<slug> links and bare /<slug> links both move permanently to
// /blog/<slug>. Anything with a dot is treated as a static asset and passed
// through.
func SlugRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isReserved(path) || strings.Contains(path, ".") {
			c.Next()
			return
		}

		if m := postsPattern.FindStringSubmatch(path); m != nil {
			c.Redirect(http.StatusMovedPermanently, "/blog/"+m[1])
			c.Abort()
			return
		}

		if m := slugPattern.FindStringSubmatch(path); m != nil && !exemptSlugs[m[1]] {
			c.Redirect(http.StatusMovedPermanently, "/blog/"+m[1])
			c.Abort()
			return
		}

		c.Next()
	}
}

func isReserved(path string) bool {
	if reservedPaths[path] {
		return true
	}
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
