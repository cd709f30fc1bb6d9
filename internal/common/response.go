package common

import "github.com/gin-gonic/gin"

// Error writes the gateway's error envelope. Every non-success response on
// the API surface is `{"error": <message>}`.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
