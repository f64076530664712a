package handlers

import (
	"net/http"

	activitySvc "receivault/services/activity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListActivityHandler serves GET /api/activity with optional vault and
// wallet filters.
func ListActivityHandler(svc activitySvc.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.List(
			c.Request.Context(),
			c.Query("vault"),
			c.Query("wallet"),
			c.Query("cursor"),
			pageLimit(c),
		)
		if err != nil {
			getLogger(c).Error("failed to list activity", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activity"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
