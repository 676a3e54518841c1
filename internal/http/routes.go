package http

import (
	"partner_cabinet/internal/config"
	"partner_cabinet/internal/http/handlers"
	"partner_cabinet/internal/http/middleware"
	"partner_cabinet/internal/stats"
	"partner_cabinet/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the API surface.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config,
	overlay *stats.Overlay, client *stats.Client, hub *ws.Hub, version string) {

	h := handlers.NewHandler(db, overlay, client, hub, cfg.SiteBaseURL)
	healthHandler := handlers.NewHealthHandler(db, version)

	// health checks bypass rate limiting
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// auth
	v1.POST("/auth/register/:ref_link", h.Register)
	v1.POST("/auth/login", h.Login)

	// cabinet
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/dashboard", middleware.JWT(), h.Dashboard)
	v1.POST("/dashboard/refresh", middleware.JWT(), h.RefreshStats)
	v1.GET("/structure", middleware.JWT(), h.Structure)
	v1.GET("/team", middleware.JWT(), h.Team)
	v1.GET("/referral/link", middleware.JWT(), h.ReferralLink)
	v1.GET("/purchases", middleware.JWT(), h.PurchaseHistory)
	v1.POST("/purchases", middleware.JWT(), h.CreatePurchase)
	v1.GET("/news", h.NewsList)

	// catalog is public
	v1.GET("/catalog", h.CatalogIndex)
	v1.GET("/catalog/categories/:slug", h.CategoryDetail)
	v1.GET("/catalog/products/:slug", h.ProductDetail)

	// stats refresh push channel
	r.GET("/ws", h.WS)
}
