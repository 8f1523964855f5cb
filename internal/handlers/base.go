package handlers

import (
	"github.com/gin-gonic/gin"
)

// Error responds with the API's single-field error shape.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
