package handlers

import (
	"net/http"

	"partner_cabinet/internal/domain"
	"partner_cabinet/internal/repository"
	"partner_cabinet/internal/service"
	"partner_cabinet/internal/stats"
	"partner_cabinet/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler bundles the dependencies the API handlers share.
type Handler struct {
	Users      *repository.UserRepository
	Categories *repository.CategoryRepository
	Products   *repository.ProductRepository
	Purchases  *repository.PurchaseRepository
	News       *repository.NewsRepository

	Overlay          *stats.Overlay
	Stats            *stats.Client
	StructureService *service.StructureService
	TeamService      *service.TeamService
	Hub              *ws.Hub

	SiteBaseURL string
}

func NewHandler(db *pgxpool.Pool, overlay *stats.Overlay, client *stats.Client, hub *ws.Hub, siteBaseURL string) *Handler {
	users := repository.NewUserRepository(db)
	return &Handler{
		Users:      users,
		Categories: repository.NewCategoryRepository(db),
		Products:   repository.NewProductRepository(db),
		Purchases:  repository.NewPurchaseRepository(db),
		News:       repository.NewNewsRepository(db),

		Overlay:          overlay,
		Stats:            client,
		StructureService: service.NewStructureService(users),
		TeamService:      service.NewTeamService(users, client),
		Hub:              hub,

		SiteBaseURL: siteBaseURL,
	}
}

// getUserID extracts the authenticated internal user id set by the JWT
// middleware.
func getUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case float64:
		return int64(id), true
	default:
		return 0, false
	}
}

// currentUser loads the authenticated user or writes the error response.
func (h *Handler) currentUser(c *gin.Context) (*domain.User, bool) {
	id, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return nil, false
	}
	return user, true
}
