package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is overridden at build time with -ldflags
var Version = "1.0.0"

// Get handles version requests
// @Summary      API version
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{} "Version"
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Timeline API",
			"version":     Version,
			"description": "Non-linear timeline editing for transcribed media",
			"status":      "running",
		})
	}
}
