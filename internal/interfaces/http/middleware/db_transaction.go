// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foligo-api/internal/domain/repository"
	"foligo-api/pkg/logger"
)

type rollbackOnlyError struct {
	status int
}

func (e rollbackOnlyError) Error() string {
	return fmt.Sprintf("rollback only: status=%d", e.status)
}

// DBTransaction 为每个 HTTP 请求自动管理数据库事务。
//
//  1. 请求级事务：整个请求的处理过程包裹在一个数据库事务中。
//  2. 自动提交/回滚：HTTP 状态码 < 400 且无内部错误时提交，否则回滚。
//
// 助手与 Webhook 路径豁免：这些请求包含长时间的模型调用，
// 不应全程占用事务连接；其多行写入按顺序落库，部分失败不补偿。
func DBTransaction(tx repository.Transactor) gin.HandlerFunc {
	if tx == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.Contains(path, "/assistant/") || strings.Contains(path, "/webhooks/") {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		err := tx.WithTransaction(ctx, func(txCtx context.Context) error {
			// 将包含事务的 Context 注入 Gin，供后续 Handler 使用
			c.Request = c.Request.WithContext(txCtx)

			c.Next()

			// 错误状态码或 Gin 记录的错误触发回滚
			status := c.Writer.Status()
			if status >= http.StatusBadRequest {
				return rollbackOnlyError{status: status}
			}
			if len(c.Errors) > 0 {
				return rollbackOnlyError{status: status}
			}
			return nil
		})
		if err == nil {
			return
		}

		// rollbackOnlyError 表示业务主动回滚，响应已由 Handler 写入
		var rbErr rollbackOnlyError
		if errors.As(err, &rbErr) {
			return
		}

		// 数据库层面的系统错误（提交失败、死锁等）
		logger.Error(ctx, "db transaction failed", err)
		if !c.Writer.Written() && c.Writer.Status() < http.StatusBadRequest {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":     http.StatusInternalServerError,
				"message":  "internal server error",
				"trace_id": c.GetString("trace_id"),
			})
		}
	}
}
