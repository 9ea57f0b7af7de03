package tgbot

import (
	"fmt"
	"strings"
)

// DeepLink 构造指向 bot 的 /start 深链.
func DeepLink(username, code string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", username, code)
}

// ChannelJoinURL 由频道标识构造加入链接.
// 仅 "@handle" 形式可构造, 数字 chat id 返回空串.
func ChannelJoinURL(channel string) string {
	if !strings.HasPrefix(channel, "@") {
		return ""
	}

	return "https://t.me/" + strings.TrimPrefix(channel, "@")
}
