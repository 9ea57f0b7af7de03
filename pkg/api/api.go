// Package api 负责把各路由组注册到 gin 引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filegate/pkg/internal/router"
)

// RegisterRoutes 注册 webhook 与健康检查路由到传入的 gin 引擎.
func RegisterRoutes(e *gin.Engine, webhookPath string, handlers router.WebhookHandlers) *gin.Engine {
	router.RegisterWebhookRoute(e, webhookPath, handlers)
	router.RegisterHealthCheckRoute(e.Group("/"))

	return e
}
