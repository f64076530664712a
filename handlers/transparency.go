package handlers

import (
	"net/http"

	"receivault/models"
	transparencySvc "receivault/services/transparency"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransparencyReportHandler serves GET /api/transparency/:vaultPda.
func TransparencyReportHandler(svc transparencySvc.TransparencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pda := c.Param("vaultPda")
		report, err := svc.Report(c.Request.Context(), pda)
		if err != nil {
			getLogger(c).Error("failed to build transparency report", zap.Error(err), zap.String("vault", pda))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build transparency report"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// UpsertCollateralHandler serves PUT /api/admin/collateral (admin
// reporting of the receivables backing a vault).
func UpsertCollateralHandler(svc transparencySvc.TransparencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entry models.CollateralEntry
		if err := c.ShouldBindJSON(&entry); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if entry.VaultPDA == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vaultPda is required"})
			return
		}
		if err := svc.UpsertEntry(c.Request.Context(), &entry); err != nil {
			getLogger(c).Error("failed to upsert collateral", zap.Error(err), zap.String("id", entry.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save collateral entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "saved", "id": entry.ID})
	}
}

// DeleteCollateralHandler serves DELETE /api/admin/collateral/:id.
func DeleteCollateralHandler(svc transparencySvc.TransparencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.DeleteEntry(c.Request.Context(), id); err != nil {
			getLogger(c).Error("failed to delete collateral", zap.Error(err), zap.String("id", id))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete collateral entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
	}
}
