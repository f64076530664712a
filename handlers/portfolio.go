package handlers

import (
	"errors"
	"net/http"

	"receivault/models"
	"receivault/services/chain"
	portfolioSvc "receivault/services/portfolio"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListPositionsHandler serves GET /api/positions?wallet=...
func ListPositionsHandler(svc portfolioSvc.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.Query("wallet")
		if wallet == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "wallet query parameter is required"})
			return
		}
		page, err := svc.Positions(c.Request.Context(), wallet, c.Query("cursor"), pageLimit(c))
		if err != nil {
			getLogger(c).Error("failed to list positions", zap.Error(err), zap.String("wallet", wallet))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list positions"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// PortfolioSummaryHandler serves GET /api/positions/summary?wallet=...
func PortfolioSummaryHandler(svc portfolioSvc.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.Query("wallet")
		if wallet == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "wallet query parameter is required"})
			return
		}
		summary, err := svc.Summary(c.Request.Context(), wallet)
		if err != nil {
			getLogger(c).Error("failed to build summary", zap.Error(err), zap.String("wallet", wallet))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build portfolio summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// depositRequest is the body for POST /api/tx/deposit.
type depositRequest struct {
	Wallet   string `json:"wallet" binding:"required"`
	VaultPDA string `json:"vaultPda" binding:"required"`
	Amount   uint64 `json:"amount" binding:"required"`
}

// BuildDepositHandler serves POST /api/tx/deposit. Returns an unsigned
// transaction for the wallet to sign.
func BuildDepositHandler(svc portfolioSvc.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req depositRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		unsigned, err := svc.Deposit(c.Request.Context(), req.Wallet, req.VaultPDA, req.Amount)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, unsigned)
	}
}

// claimRequest is the body for POST /api/tx/claim.
type claimRequest struct {
	Wallet   string `json:"wallet" binding:"required"`
	VaultPDA string `json:"vaultPda" binding:"required"`
}

// BuildClaimHandler serves POST /api/tx/claim.
func BuildClaimHandler(svc portfolioSvc.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req claimRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		unsigned, err := svc.Claim(c.Request.Context(), req.Wallet, req.VaultPDA)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, unsigned)
	}
}

// submitRequest is the body for the signed-transaction submit endpoints.
type submitRequest struct {
	VaultPDA string `json:"vaultPda" binding:"required"`
	Amount   uint64 `json:"amount"`
	SignedTx string `json:"signedTx" binding:"required"`
}

// SubmitDepositHandler serves POST /api/tx/deposit/submit.
func SubmitDepositHandler(svc portfolioSvc.PortfolioService) gin.HandlerFunc {
	return submitPortfolioTx(svc, models.ActivityDeposit)
}

// SubmitClaimHandler serves POST /api/tx/claim/submit.
func SubmitClaimHandler(svc portfolioSvc.PortfolioService) gin.HandlerFunc {
	return submitPortfolioTx(svc, models.ActivityClaim)
}

func submitPortfolioTx(svc portfolioSvc.PortfolioService, kind models.ActivityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		receipt, err := svc.SubmitSigned(c.Request.Context(), req.VaultPDA, kind, req.Amount, req.SignedTx)
		if err != nil {
			respondTxError(c, err, receipt)
			return
		}
		c.JSON(http.StatusOK, receipt)
	}
}

// respondTxError serializes a failed submission. Classified failures
// carry a stable code and a retry hint so the client can decide whether
// to rebuild and resubmit.
func respondTxError(c *gin.Context, err error, receipt *models.TxReceipt) {
	body := gin.H{"error": err.Error()}
	var txErr *chain.TxError
	if errors.As(err, &txErr) {
		body["code"] = txErr.Code
		body["retryable"] = txErr.Retryable
	}
	if receipt != nil {
		body["receipt"] = receipt
	}
	c.JSON(http.StatusUnprocessableEntity, body)
}
