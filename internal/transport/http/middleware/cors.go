package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// CORS allows any origin, method and header. Preflight requests stop here.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.GetHeader("Access-Control-Request-Headers")
		if headers == "" {
			headers = "*"
		}

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", headers)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
