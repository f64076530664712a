package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"receivault/utils"
)

// getLogger returns the request-scoped logger if middleware attached
// one, falling back to the process logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
