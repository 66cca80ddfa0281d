package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/deal-comb/app/feed"
	"github.com/lysyi3m/deal-comb/app/tasks"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

func NewHandler(pipeline *tasks.Pipeline, defaults RunDefaults) *Handler {
	return &Handler{
		pipeline: pipeline,
		runs:     pipeline.Runs,
		defaults: defaults,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"history":   h.runs != nil,
	}

	c.JSON(http.StatusOK, health)
}

// APIProcessLink resolves and tags a single URL.
func (h *Handler) APIProcessLink(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url parameter"})
		return
	}
	if err := feed.ValidateURL(rawURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link := h.pipeline.NewProcessor().Process(c.Request.Context(), rawURL)

	c.JSON(http.StatusOK, link)
}

// APICreateRun runs the full pipeline synchronously and returns its report.
func (h *Handler) APICreateRun(c *gin.Context) {
	var req RunRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}

	feedURL := req.FeedURL
	if feedURL == "" {
		feedURL = h.defaults.FeedURL
	}
	if err := feed.ValidateURL(feedURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	maxPosts := h.defaults.MaxPosts
	if req.MaxPosts != nil {
		maxPosts = *req.MaxPosts
	}
	if maxPosts < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_posts must not be negative"})
		return
	}

	h.runMu.Lock()
	defer h.runMu.Unlock()

	task := tasks.NewScrapeFeedTask(feedURL, tasks.ScrapeOptions{
		MaxPosts: maxPosts,
		Delay:    h.defaults.Delay,
		NoScrape: req.NoScrape,
	}, h.pipeline)

	if err := tasks.Run(c.Request.Context(), task); err != nil {
		slog.Error("Run failed", "id", task.ID, "feed", feedURL, "error", err)

		status := http.StatusInternalServerError
		var feedErr *feed.Error
		if errors.As(err, &feedErr) {
			status = http.StatusBadGateway
		}

		c.JSON(status, gin.H{
			"error":  err.Error(),
			"run_id": task.ID,
		})
		return
	}

	c.JSON(http.StatusOK, task.Report)
}

func (h *Handler) APIListRuns(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is disabled"})
		return
	}

	limit := defaultRunsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = min(parsed, maxRunsLimit)
	}

	runs, err := h.runs.List(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"total": len(runs),
	})
}

func (h *Handler) APIGetRun(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is disabled"})
		return
	}

	id := c.Param("id")

	run, err := h.runs.Get(c.Request.Context(), id)
	if err != nil {
		slog.Error("Database error", "operation", "get_run", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}
