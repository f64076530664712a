package handlers

import (
	"net/http"
	"strconv"

	"receivault/models"
	vaultSvc "receivault/services/vault"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pageLimit parses the limit query parameter with defaults and a cap.
func pageLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

// ListVaultsHandler serves GET /api/vaults.
func ListVaultsHandler(svc vaultSvc.VaultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.VaultStatus(c.Query("status"))
		if status != "" && !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter", "status": status})
			return
		}

		page, err := svc.List(c.Request.Context(), status, c.Query("cursor"), pageLimit(c))
		if err != nil {
			getLogger(c).Error("failed to list vaults", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vaults"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// GetVaultHandler serves GET /api/vaults/:vaultPda.
func GetVaultHandler(svc vaultSvc.VaultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pda := c.Param("vaultPda")
		v, err := svc.Get(c.Request.Context(), pda)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "vault not found", "vaultPda": pda})
			return
		}
		c.JSON(http.StatusOK, v)
	}
}
