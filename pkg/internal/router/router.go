// Package router 管理路由配置, 只负责将路径和处理器绑定到 gin 引擎,
// 处理器的实现由 pkg/internal/handle 提供并注入进来.
package router

import (
	"github.com/gin-gonic/gin"
)

// WebhookHandlers 定义由应用层注入的 webhook 处理器.
type WebhookHandlers interface {
	Liveness() gin.HandlerFunc
	Receive() gin.HandlerFunc
}

// RegisterWebhookRoute 将 webhook 端点绑定到指定路径.
// Telegram 对同一 URL 同时使用 GET 探活与 POST 推送更新:
//
//	GET  <path> -> Liveness
//	POST <path> -> Receive
func RegisterWebhookRoute(e *gin.Engine, path string, handlers WebhookHandlers) {
	e.GET(path, handlers.Liveness())
	e.POST(path, handlers.Receive())
}
