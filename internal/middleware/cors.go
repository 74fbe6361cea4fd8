package middleware

import "github.com/gin-gonic/gin"

// AllowAllOrigins mirrors the API's open CORS policy on every response.
func AllowAllOrigins() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}
