// Package handle 提供 HTTP 请求处理器的实现.
package handle

import (
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filegate/pkg/log"
)

// UpdateDispatcher webhook 更新的下游处理接口, 由 service.Dispatcher 实现.
type UpdateDispatcher interface {
	Dispatch(ctx context.Context, update *tgbotapi.Update) error
}

// WebhookHandler Telegram webhook 端点处理器.
type WebhookHandler struct {
	dispatcher UpdateDispatcher
}

// NewWebhookHandler 创建 webhook 处理器.
func NewWebhookHandler(dispatcher UpdateDispatcher) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher}
}

// Liveness GET 探活, 返回固定提示文本.
func (h *WebhookHandler) Liveness() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Bot is running. Send POST to this URL via Telegram Webhook.")
	}
}

// Receive POST 接收 Telegram 更新.
// 处理失败只记录日志, 对平台始终回 200, 避免 Telegram 反复重投同一条更新.
func (h *WebhookHandler) Receive() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Logger().Error().Err(err).Msg("Failed to read webhook body")
			c.String(http.StatusInternalServerError, "Internal Server Error")

			return
		}

		var update tgbotapi.Update
		if err := sonic.Unmarshal(body, &update); err != nil {
			log.Logger().Error().Err(err).Msg("Failed to parse webhook update")
			c.String(http.StatusInternalServerError, "Internal Server Error")

			return
		}

		if err := h.dispatcher.Dispatch(c.Request.Context(), &update); err != nil {
			log.Logger().Error().Err(err).Int("update_id", update.UpdateID).Msg("Failed to process update")
		}

		c.String(http.StatusOK, "OK")
	}
}
