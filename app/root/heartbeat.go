package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Health tells clients the API is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Bewerbungsgenerator API",
		"status":  "online",
	})
}
