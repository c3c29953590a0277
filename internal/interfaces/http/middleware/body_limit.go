package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware 请求体大小硬限制
// maxMB<=0时不限制;超限时后续读取请求体返回*http.MaxBytesError
func BodyLimitMiddleware(maxMB int64) gin.HandlerFunc {
	limit := maxMB << 20
	return func(c *gin.Context) {
		if limit > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
