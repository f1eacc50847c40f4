package middleware

import (
	"github.com/gin-gonic/gin"
)

// cspPolicy 允许自身资源以及 jsdelivr CDN 上的脚本与样式.
const cspPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"font-src 'self' https://cdn.jsdelivr.net;"

// CSPMiddleware 为所有响应附加 Content-Security-Policy 头.
func CSPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", cspPolicy)
		c.Next()
	}
}
