package middleware

import (
	"net/http"

	"github.com/easayliu/upscayl-service/internal/application/contracts"
	"github.com/easayliu/upscayl-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中设置的错误,自动转换为合适的HTTP响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if serviceErr, ok := err.(*contracts.ServiceError); ok {
			statusCode := mapErrorCodeToHTTPStatus(serviceErr.Code)
			logger.Error("Request failed", "path", c.Request.URL.Path, "code", serviceErr.Code, "error", serviceErr.Message)
			c.JSON(statusCode, gin.H{
				"error":   serviceErr.Message,
				"code":    serviceErr.Code,
				"details": serviceErr.Details,
			})
			return
		}

		// 未知错误,返回500
		logger.Error("Request failed with unexpected error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"code":  contracts.ErrorCodeInternalError,
		})
	}
}

// mapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func mapErrorCodeToHTTPStatus(code contracts.ErrorCode) int {
	switch code {
	case contracts.ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case contracts.ErrorCodeNotFound:
		return http.StatusNotFound
	case contracts.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case contracts.ErrorCodeTimeout:
		// 外部工具超时属于处理失败,和其他处理错误同为500,
		// 响应体中的code保留TIMEOUT便于排查
		return http.StatusInternalServerError
	case contracts.ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", "path", c.Request.URL.Path, "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  contracts.ErrorCodeInternalError,
				})
			}
		}()
		c.Next()
	}
}
