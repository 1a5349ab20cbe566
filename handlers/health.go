package handlers

import (
	"net/http"

	"quickcourt/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last dependency probe, answering 503 once Mongo is down.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": http.StatusText(code), "service": "quickcourt", "checks": status})
}
