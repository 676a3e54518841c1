package handlers

import (
	"errors"
	"net/http"

	"partner_cabinet/internal/domain"
	"partner_cabinet/internal/logger"
	"partner_cabinet/internal/repository"
	"partner_cabinet/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

// Register creates an account under the referrer identified by the shared
// referral link, mirrors it to the stats service and returns a bearer token.
func (h *Handler) Register(c *gin.Context) {
	refLink := c.Param("ref_link")

	referrer, err := h.Users.GetByReferralLink(c.Request.Context(), refLink)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid referral link"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve referral link"})
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Users.GetByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := &domain.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Country:      req.Country,
		PasswordHash: string(hash),
		ReferrerID:   &referrer.ID,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		logger.Error("failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	// mirror the node to the stats service; the account stays usable even
	// if the mirror call fails, the dashboard will just show a loading state
	if err := h.Stats.CreateUser(c.Request.Context(), user.UserID, referrer.UserID); err != nil {
		logger.Error("stats service create failed", "user_id", user.UserID, "error", err)
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by public user id and password.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and password are required"})
		return
	}

	user, err := h.Users.GetByUserID(c.Request.Context(), req.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
