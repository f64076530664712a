package handlers

import (
	"fmt"
	"net/http"
	"time"

	exportSvc "receivault/services/export"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func exportFilename(table, ext string) string {
	return fmt.Sprintf("%s-%s.%s", table, time.Now().UTC().Format("2006-01-02"), ext)
}

func serveExport(c *gin.Context, table string, data []byte, err error) {
	if err != nil {
		getLogger(c).Error("export failed", zap.Error(err), zap.String("table", table))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		c.Header("Content-Disposition", "attachment; filename="+exportFilename(table, "csv"))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "json":
		c.Header("Content-Disposition", "attachment; filename="+exportFilename(table, "json"))
		c.Data(http.StatusOK, "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format", "format": format})
	}
}

// ExportVaultsHandler serves GET /api/export/vaults?format=csv|json.
func ExportVaultsHandler(svc exportSvc.ExportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			data []byte
			err  error
		)
		if c.DefaultQuery("format", "csv") == "json" {
			data, err = svc.VaultsJSON(c.Request.Context())
		} else {
			data, err = svc.VaultsCSV(c.Request.Context())
		}
		serveExport(c, "vaults", data, err)
	}
}

// ExportPositionsHandler serves GET /api/export/positions?wallet=...
func ExportPositionsHandler(svc exportSvc.ExportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.Query("wallet")
		if wallet == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "wallet query parameter is required"})
			return
		}
		var (
			data []byte
			err  error
		)
		if c.DefaultQuery("format", "csv") == "json" {
			data, err = svc.PositionsJSON(c.Request.Context(), wallet)
		} else {
			data, err = svc.PositionsCSV(c.Request.Context(), wallet)
		}
		serveExport(c, "positions", data, err)
	}
}

// ExportCollateralHandler serves GET /api/export/collateral?vault=...
func ExportCollateralHandler(svc exportSvc.ExportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vaultPDA := c.Query("vault")
		if vaultPDA == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vault query parameter is required"})
			return
		}
		var (
			data []byte
			err  error
		)
		if c.DefaultQuery("format", "csv") == "json" {
			data, err = svc.CollateralJSON(c.Request.Context(), vaultPDA)
		} else {
			data, err = svc.CollateralCSV(c.Request.Context(), vaultPDA)
		}
		serveExport(c, "collateral", data, err)
	}
}
