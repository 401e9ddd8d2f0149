// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"foligo-api/pkg/logger"
)

// UserContextKey 用户上下文 Key 类型
type UserContextKey string

// UserIDKey 用户 ID 上下文 Key
const UserIDKey UserContextKey = "user_id"

// UserContext 把认证中间件解析出的用户 ID 下沉到 request context，
// 供仓储层和日志使用。
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID != "" {
			ctx := context.WithValue(c.Request.Context(), UserIDKey, userID)
			ctx = logger.WithContext(ctx, logger.UserIDKey, userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetUserID 从 context 中获取用户 ID
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserIDFromGin 从 Gin Context 中获取用户 ID
func GetUserIDFromGin(c *gin.Context) string {
	return c.GetString("user_id")
}
