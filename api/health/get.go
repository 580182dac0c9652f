package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/timeline-api/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Report database connectivity and open editing sessions
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{} "Healthy"
// @Failure      503 {object} map[string]interface{} "Database unreachable"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		db := getDatabaseStatus(deps)
		response["database"] = db
		if db["status"] == "unhealthy" {
			status = http.StatusServiceUnavailable
			response["status"] = "unhealthy"
		}

		if deps != nil && deps.Sessions != nil {
			response["sessions"] = getSessionStatus(deps)
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}

// getSessionStatus counts open timelines and those with unsaved edits
func getSessionStatus(deps *types.Dependencies) gin.H {
	ids := deps.Sessions.OpenIDs()
	unsaved := 0
	for _, id := range ids {
		if s, ok := deps.Sessions.Get(id); ok && s.SaveStatus().Unsaved {
			unsaved++
		}
	}
	return gin.H{"open": len(ids), "unsaved": unsaved}
}
