package handlers

import (
	"net/http"
	"strconv"

	"partner_cabinet/internal/logger"
	"partner_cabinet/internal/service"
	"partner_cabinet/internal/tree"

	"github.com/gin-gonic/gin"
)

// Structure returns the authenticated user's whole referral subtree as
// node/edge lists plus the referrer-chain breadcrumb path.
func (h *Handler) Structure(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	nodes, edges, err := h.StructureService.Tree(c.Request.Context(), user)
	if err != nil {
		logger.Error("referral tree walk failed", "user_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build structure"})
		return
	}

	// the breadcrumb path is presentation-only; its failure must not take
	// down the whole structure view
	path, err := tree.Trail(c.Request.Context(),
		&service.UserCrumb{User: user, Repo: h.Users}, service.CabinetHome)
	if err != nil {
		logger.Warn("breadcrumb trail failed", "user_id", user.UserID, "error", err)
		path = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"nodes": nodes,
		"edges": edges,
		"path":  path,
	})
}

// Team returns the bounded-level team listing. The level query parameter
// must be a positive integer; anything else is rejected outright.
func (h *Handler) Team(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	levelStr := c.DefaultQuery("level", "1")
	level, err := strconv.Atoi(levelStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level must be a number"})
		return
	}

	members, err := h.TeamService.Members(c.Request.Context(), user.UserID, level)
	if err != nil {
		if err == service.ErrInvalidLevel {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("team listing failed", "user_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"level":   level,
		"count":   len(members),
		"members": members,
	})
}
