// internal/app/router.go
package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authHandler "kaokente-service/internal/handlers/auth"
	customerHandler "kaokente-service/internal/handlers/customer"
	loyaltyHandler "kaokente-service/internal/handlers/loyalty"
	rewardHandler "kaokente-service/internal/handlers/reward"
	wsHandler "kaokente-service/internal/handlers/websocket"
	"kaokente-service/internal/middleware"
)

type Handlers struct {
	AuthHandler     *authHandler.AuthHandler
	CustomerHandler *customerHandler.CustomerHandler
	LoyaltyHandler  *loyaltyHandler.LoyaltyHandler
	RewardHandler   *rewardHandler.RewardHandler
	WSHandler       *wsHandler.WebSocketHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	r.Use(middleware.RecoveryMiddleware(logger))

	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Staff Auth ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
	}

	// ==================== Public Customer Area ====================
	// The "see my points" lookup needs only a phone number, like the
	// paper card it replaced.
	public := api.Group("")
	{
		public.GET("/customers/:phone", h.CustomerHandler.Get)
		public.GET("/customers/:phone/dashboard", h.LoyaltyHandler.Dashboard)
		public.GET("/rewards", h.RewardHandler.List)
	}

	// ==================== Staff Area ====================
	staff := api.Group("")
	staff.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireStaff())
	{
		// Customer management
		staff.POST("/customers", h.CustomerHandler.Register)
		staff.GET("/customers", h.CustomerHandler.List)
		staff.GET("/customers/stats", h.CustomerHandler.Stats)
		staff.PUT("/customers/:phone", h.CustomerHandler.Update)
		staff.DELETE("/customers/:phone", h.CustomerHandler.Delete)

		// Points ledger
		staff.POST("/loyalty/earn", h.LoyaltyHandler.Earn)
		staff.POST("/loyalty/redeem", h.LoyaltyHandler.Redeem)
		staff.GET("/customers/:phone/transactions", h.LoyaltyHandler.History)
		staff.GET("/customers/:phone/drift", h.LoyaltyHandler.Drift)

		// Reward catalog
		staff.POST("/rewards", h.RewardHandler.Create)
		staff.DELETE("/rewards/:name", h.RewardHandler.Deactivate)
	}
}
