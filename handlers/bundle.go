// File: receivault/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Vault endpoints
	ListVaultsHandler gin.HandlerFunc
	GetVaultHandler   gin.HandlerFunc

	// Portfolio endpoints
	ListPositionsHandler    gin.HandlerFunc
	PortfolioSummaryHandler gin.HandlerFunc
	BuildDepositHandler     gin.HandlerFunc
	BuildClaimHandler       gin.HandlerFunc
	SubmitDepositHandler    gin.HandlerFunc
	SubmitClaimHandler      gin.HandlerFunc

	// Activity endpoints
	ListActivityHandler gin.HandlerFunc

	// Transparency endpoints
	TransparencyReportHandler gin.HandlerFunc

	// Export endpoints
	ExportVaultsHandler     gin.HandlerFunc
	ExportPositionsHandler  gin.HandlerFunc
	ExportCollateralHandler gin.HandlerFunc

	// Feature flags
	EvaluateFlagsHandler gin.HandlerFunc

	// Admin endpoints
	AdminLoginHandler       gin.HandlerFunc
	AdminLogoutHandler      gin.HandlerFunc
	InitializeVaultHandler  gin.HandlerFunc
	FinalizeFundingHandler  gin.HandlerFunc
	MatureVaultHandler      gin.HandlerFunc
	CloseVaultHandler       gin.HandlerFunc
	SubmitLifecycleHandler  gin.HandlerFunc
	UpsertCollateralHandler gin.HandlerFunc
	DeleteCollateralHandler gin.HandlerFunc
}
