// Package middleware 提供中间件
package middleware

import (
	crand "crypto/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid"

	"github.com/yeisme/filegate/pkg/metrics"
)

// PrometheusMiddleware 创建Gin的Prometheus中间件.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// 执行下一个中间件/处理器
		c.Next()

		// 记录指标
		duration := time.Since(start).Seconds()

		metrics.RequestCounter.WithLabelValues(method, path).Inc()
		metrics.RequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// RequestIDHeader 响应头中携带请求 ID 的字段名.
const RequestIDHeader = "X-Request-ID"

// requestIDKey gin context 中存放请求 ID 的键.
const requestIDKey = "request_id"

// 全局单例的 ULID 熵源，使用单调递增策略，确保同一毫秒内生成的 ULID 具有排序稳定性。
var ulidEntropy = ulid.Monotonic(crand.Reader, 0)

// RequestIDMiddleware 为每个请求生成 ULID 请求 ID，写入 context 和响应头，供日志关联.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), ulidEntropy).String()
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID 从 gin context 中取出当前请求 ID，未设置时返回空串.
func RequestID(c *gin.Context) string {
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}

	return ""
}
