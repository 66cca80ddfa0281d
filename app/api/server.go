package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/deal-comb/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured.
// metricsHandler is mounted at /metrics when not nil.
func NewServer(handler *Handler, apiAccessKey string, metricsHandler http.Handler) *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health", "/metrics"},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey, metricsHandler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string, metricsHandler http.Handler) {
	r.GET("/health", handler.GetHealth)

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := r.Group("/api")
	if apiAccessKey != "" {
		api.Use(authMiddleware(apiAccessKey))
		slog.Info("API authentication enabled")
	} else {
		slog.Warn("API authentication disabled (API_ACCESS_KEY not set)")
	}
	{
		api.GET("/links", handler.APIProcessLink)
		api.POST("/runs", handler.APICreateRun)
		api.GET("/runs", handler.APIListRuns)
		api.GET("/runs/:id", handler.APIGetRun)
	}

	r.GET("/", func(c *gin.Context) {
		auth := ""
		if apiAccessKey != "" {
			auth = " (requires X-API-Key header)"
		}

		c.JSON(200, gin.H{
			"service":     "Deal Comb",
			"version":     cfg.GetVersion(),
			"description": "RSS deal pipeline with link resolution, tracking cleanup and affiliate tagging",
			"endpoints": map[string]string{
				"health":   "/health",
				"metrics":  "/metrics",
				"link":     "/api/links?url=<url>" + auth,
				"run":      "/api/runs (POST)" + auth,
				"runs":     "/api/runs?limit=<n>" + auth,
				"run_info": "/api/runs/<id>" + auth,
			},
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
