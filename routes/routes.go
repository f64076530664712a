package routes

import (
	"net/http"
	"time"

	"receivault/handlers"
	"receivault/middleware"
	"receivault/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterVaultRoutes registers the public vault listing endpoints.
func RegisterVaultRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vaults")
	api.Use(middleware.ETagMiddleware())
	{
		api.GET("", hb.ListVaultsHandler)
		api.GET("/:vaultPda", hb.GetVaultHandler)
	}
}

// RegisterPositionRoutes registers the portfolio endpoints.
func RegisterPositionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/positions")
	api.Use(middleware.ETagMiddleware())
	{
		api.GET("", hb.ListPositionsHandler)
		api.GET("/summary", hb.PortfolioSummaryHandler)
	}
}

// RegisterActivityRoutes registers the activity feed endpoint.
func RegisterActivityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/activity")
	api.Use(middleware.ETagMiddleware())
	{
		api.GET("", hb.ListActivityHandler)
	}
}

// RegisterTransparencyRoutes registers the collateral report endpoint.
func RegisterTransparencyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/transparency")
	api.Use(middleware.ETagMiddleware())
	{
		api.GET("/:vaultPda", hb.TransparencyReportHandler)
	}
}

// RegisterTxRoutes registers the wallet-facing transaction endpoints.
func RegisterTxRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tx")
	{
		api.POST("/deposit", hb.BuildDepositHandler)
		api.POST("/deposit/submit", hb.SubmitDepositHandler)
		api.POST("/claim", hb.BuildClaimHandler)
		api.POST("/claim/submit", hb.SubmitClaimHandler)
	}
}

// RegisterExportRoutes registers the CSV/JSON download endpoints.
func RegisterExportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/export")
	{
		api.GET("/vaults", hb.ExportVaultsHandler)
		api.GET("/positions", hb.ExportPositionsHandler)
		api.GET("/collateral", hb.ExportCollateralHandler)
	}
}

// RegisterFlagRoutes registers the feature flag evaluation endpoint.
func RegisterFlagRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/flags", hb.EvaluateFlagsHandler)
}

// RegisterAdminRoutes sets up endpoints for vault administration.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.AdminLoginHandler)

		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.POST("/logout", hb.AdminLogoutHandler)
		adminGroup.POST("/vaults", hb.InitializeVaultHandler)
		adminGroup.POST("/vaults/:vaultPda/finalize", hb.FinalizeFundingHandler)
		adminGroup.POST("/vaults/:vaultPda/mature", hb.MatureVaultHandler)
		adminGroup.POST("/vaults/:vaultPda/close", hb.CloseVaultHandler)
		adminGroup.POST("/tx/submit", hb.SubmitLifecycleHandler)
		adminGroup.PUT("/collateral", hb.UpsertCollateralHandler)
		adminGroup.DELETE("/collateral/:id", hb.DeleteCollateralHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint exposing the
// latest dependency snapshot from the background monitor. The snapshot
// is omitted when the monitor is not running (fixture mode).
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		resp := gin.H{"status": "ok"}
		if snapshot, ok := utils.GetHealthStatus(); ok {
			resp["dependencies"] = snapshot
		}
		c.JSON(http.StatusOK, resp)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "If-None-Match"},
		ExposeHeaders:    []string{"Content-Length", "ETag"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterVaultRoutes(r, hb)
	RegisterPositionRoutes(r, hb)
	RegisterActivityRoutes(r, hb)
	RegisterTransparencyRoutes(r, hb)
	RegisterTxRoutes(r, hb)
	RegisterExportRoutes(r, hb)
	RegisterFlagRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
