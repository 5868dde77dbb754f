package handlers

import (
	"errors"
	"net/http"

	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error to its HTTP status. Untyped errors are
// internal failures and are not leaked to the caller.
func respondError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		utils.GetLogger().Error("Unhandled service error", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case utils.CodeValidation:
		status = http.StatusBadRequest
	case utils.CodeForbidden:
		status = http.StatusForbidden
	case utils.CodeNotFound:
		status = http.StatusNotFound
	case utils.CodeConflict:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": appErr.Message})
}
