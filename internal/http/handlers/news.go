package handlers

import (
	"net/http"
	"strconv"

	"partner_cabinet/internal/domain"

	"github.com/gin-gonic/gin"
)

// News lists recent news entries for the cabinet.
func (h *Handler) NewsList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.News.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load news"})
		return
	}
	if items == nil {
		items = []domain.News{}
	}

	c.JSON(http.StatusOK, gin.H{"news": items})
}
