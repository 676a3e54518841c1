package handlers

import (
	"errors"
	"net/http"

	"partner_cabinet/internal/logger"
	"partner_cabinet/internal/stats"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the cached volatile stats for the authenticated user.
// On a cache miss a background refresh is scheduled and 202 tells the
// client to render its loading state; the ws hub pushes an event once the
// refresh lands.
func (h *Handler) Dashboard(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	news, err := h.News.ListRecent(c.Request.Context(), 5)
	if err != nil {
		logger.Warn("failed to load news", "error", err)
		news = nil
	}

	data, err := h.Overlay.Get(c.Request.Context(), user.UserID)
	if errors.Is(err, stats.ErrNotReady) {
		c.JSON(http.StatusAccepted, gin.H{
			"status": "loading",
			"news":   news,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   data,
		"news":   news,
	})
}

type RefreshRequest struct {
	Force bool `json:"force"`
}

// RefreshStats re-reads the cached stats, optionally forcing a background
// refresh first.
func (h *Handler) RefreshStats(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req RefreshRequest
	_ = c.ShouldBindJSON(&req) // absent body means force=false

	if req.Force {
		h.Overlay.Refresh(user.UserID)
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "updating",
			"message": "stats refresh scheduled",
		})
		return
	}

	data, err := h.Overlay.Get(c.Request.Context(), user.UserID)
	if errors.Is(err, stats.ErrNotReady) {
		c.JSON(http.StatusAccepted, gin.H{"status": "updating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"data":      data,
		"refreshed": true,
	})
}
