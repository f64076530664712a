package handlers

import (
	"net/http"

	flagsSvc "receivault/services/flags"

	"github.com/gin-gonic/gin"
)

// EvaluateFlagsHandler serves GET /api/flags?subject=<wallet>. Subjects
// without a wallet fall back to the anonymous bucket so the response is
// still deterministic per client.
func EvaluateFlagsHandler(svc flagsSvc.FlagService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.Query("subject")
		if subject == "" {
			subject = "anonymous"
		}
		c.JSON(http.StatusOK, gin.H{
			"subject": subject,
			"flags":   svc.Evaluate(subject),
		})
	}
}
