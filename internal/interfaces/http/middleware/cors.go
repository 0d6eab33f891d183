package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	corsAllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Authorization",
		"Origin", "Cache-Control", "X-Requested-With", "X-Request-ID", "X-Internal-Token",
	}
	corsExposeHeaders = []string{"Content-Length", "X-Request-ID"}
)

// CORS allows the configured dashboard origins with credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     corsAllowHeaders,
		ExposeHeaders:    corsExposeHeaders,
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}

// OpenCORS allows any origin without credentials. It backs the anonymous
// intake form which may be embedded on customer sites.
func OpenCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    corsAllowHeaders,
		ExposeHeaders:   corsExposeHeaders,
		MaxAge:          24 * time.Hour,
	})
}

// CORSWithOpenPaths applies OpenCORS to requests under any of openPrefixes and
// the dashboard allow-list everywhere else. It runs on the engine so that
// preflight requests reach it before routing.
func CORSWithOpenPaths(allowedOrigins []string, openPrefixes ...string) gin.HandlerFunc {
	dashboard := CORS(allowedOrigins)
	open := OpenCORS()
	return func(c *gin.Context) {
		for _, prefix := range openPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				open(c)
				return
			}
		}
		dashboard(c)
	}
}

// SecurityHeaders sets the usual hardening headers on API responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
