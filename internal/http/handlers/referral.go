package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReferralLink returns the user's referral code and the full shareable
// registration URL.
func (h *Handler) ReferralLink(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": user.ReferralCode,
		"link": h.SiteBaseURL + "/register/" + user.ReferralLink + "/",
	})
}
