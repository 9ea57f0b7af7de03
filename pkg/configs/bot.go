package configs

import (
	"github.com/spf13/viper"
)

const (
	// DefaultAdminID 0 为无效哨兵值，表示未配置管理员，所有上传请求都会被丢弃.
	DefaultAdminID = 0
	// DefaultCodeLength 取件码默认长度.
	DefaultCodeLength = 6
	// DefaultWebhookPath webhook 挂载路径.
	DefaultWebhookPath = "/webhook"
)

type (
	// BotConfig 消息平台（Telegram Bot API）接入配置.
	BotConfig struct {
		// Token Bot API 认证令牌，必填
		Token string `mapstructure:"token"        rule:"required"`
		// ChannelID 订阅校验的频道标识，"@handle" 或 "-100..." 数字 ID；为空则关闭订阅门禁
		ChannelID string `mapstructure:"channel_id"`
		// AdminID 唯一管理员的数字身份；0 表示未配置，实际效果是禁用所有文件入库
		AdminID int64 `mapstructure:"admin_id"`
		// CodeLength 取件码长度
		CodeLength int `mapstructure:"code_length"  rule:"min=4,max=16"`
		// WebhookPath webhook 路由路径
		WebhookPath string `mapstructure:"webhook_path" rule:"startswith=/"`
	}
)

// GateEnabled 是否启用频道订阅门禁.
func (b *BotConfig) GateEnabled() bool {
	return b.ChannelID != ""
}

// IngestEnabled 是否存在有效管理员身份（AdminID 哨兵值 0 视为关闭入库）.
func (b *BotConfig) IngestEnabled() bool {
	return b.AdminID != DefaultAdminID
}

// setDefaults 设置 Bot 配置的默认值.
func (b *BotConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("bot.token", "")
	v.SetDefault("bot.channel_id", "")
	v.SetDefault("bot.admin_id", DefaultAdminID)
	v.SetDefault("bot.code_length", DefaultCodeLength)
	v.SetDefault("bot.webhook_path", DefaultWebhookPath)
}
