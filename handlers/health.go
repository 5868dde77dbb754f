package handlers

import (
	"net/http"

	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports the latest probe of the engine's dependencies.
// GET /healthz
func HealthCheck(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
