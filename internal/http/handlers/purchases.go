package handlers

import (
	"errors"
	"net/http"

	"partner_cabinet/internal/domain"
	"partner_cabinet/internal/logger"
	"partner_cabinet/internal/repository"

	"github.com/gin-gonic/gin"
)

// PurchaseHistory lists the user's purchase history, most recent first.
func (h *Handler) PurchaseHistory(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	purchases, err := h.Purchases.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load purchases"})
		return
	}
	if purchases == nil {
		purchases = []domain.Purchase{}
	}

	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

type PurchaseRequest struct {
	ProductSlug string `json:"product_slug" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// CreatePurchase records a purchase and applies the volume bookkeeping: the
// buyer's personal and group volume grow by the amount, every ancestor up the
// referrer chain gains group volume, and the delta is mirrored to the stats
// service. Bookkeeping failures are logged, not surfaced: the purchase record
// is the primary fact, the aggregates are approximations.
func (h *Handler) CreatePurchase(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	product, err := h.Products.GetBySlug(ctx, req.ProductSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}
	if !product.InStock {
		c.JSON(http.StatusConflict, gin.H{"error": "product out of stock"})
		return
	}

	amount := product.Price * float64(req.Quantity)
	purchase := &domain.Purchase{
		UserID:    user.ID,
		ProductID: product.ID,
		Product:   product.Name,
		Quantity:  req.Quantity,
		Amount:    amount,
	}
	if err := h.Purchases.Create(ctx, purchase); err != nil {
		logger.Error("failed to record purchase", "user_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record purchase"})
		return
	}

	if err := h.Users.AdjustVolumes(ctx, user.ID, amount, amount, 0); err != nil {
		logger.Error("volume adjustment failed", "user_id", user.UserID, "error", err)
	}

	// group volume propagates up the referrer chain; a seen set guards the
	// walk against malformed parent data the same way the traversals do
	seen := map[int64]bool{user.ID: true}
	for pid := user.ReferrerID; pid != nil; {
		ref, err := h.Users.GetByID(ctx, *pid)
		if err != nil {
			logger.Warn("referrer chain walk stopped", "id", *pid, "error", err)
			break
		}
		if seen[ref.ID] {
			logger.Warn("cycle detected in referrer chain, truncating", "id", ref.ID)
			break
		}
		seen[ref.ID] = true
		if err := h.Users.AdjustVolumes(ctx, ref.ID, 0, amount, 0); err != nil {
			logger.Error("group volume adjustment failed", "id", ref.ID, "error", err)
		}
		pid = ref.ReferrerID
	}

	if err := h.Stats.Adjust(ctx, user.UserID, amount); err != nil {
		logger.Error("stats service adjust failed", "user_id", user.UserID, "error", err)
	}
	h.Overlay.Refresh(user.UserID)

	c.JSON(http.StatusCreated, gin.H{"purchase": purchase})
}
