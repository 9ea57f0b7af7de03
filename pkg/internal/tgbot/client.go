// Package tgbot 封装 Telegram Bot API 客户端,
// 提供回复/送出文件/成员状态查询等能力.
package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yeisme/filegate/pkg/internal/model"
	"github.com/yeisme/filegate/pkg/log"
)

// Client Telegram Bot API 客户端封装.
type Client struct {
	api *tgbotapi.BotAPI
}

// New 使用 bot token 创建客户端, 会向 Telegram 校验 token 有效性.
func New(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	log.Logger().Info().Str("username", api.Self.UserName).Msg("Telegram bot authorized")

	return &Client{api: api}, nil
}

// Username 返回 bot 的用户名, 用于构造深链.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// ChatMemberStatus 查询用户在目标频道中的成员状态.
// channel 可以是 "@handle" 形式或数字 chat id.
func (c *Client) ChatMemberStatus(_ context.Context, channel string, userID int64) (string, error) {
	cfg := tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{UserID: userID},
	}

	if strings.HasPrefix(channel, "@") {
		cfg.SuperGroupUsername = channel
	} else {
		chatID, err := strconv.ParseInt(channel, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid channel id %q: %w", channel, err)
		}

		cfg.ChatID = chatID
	}

	member, err := c.api.GetChatMember(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to get chat member: %w", err)
	}

	return member.Status, nil
}

// ReplyText 发送纯文本回复.
func (c *Client) ReplyText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)

	_, err := c.api.Send(msg)

	return err
}

// ReplyMarkdown 发送 Markdown 格式回复.
func (c *Client) ReplyMarkdown(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := c.api.Send(msg)

	return err
}

// ReplyDenied 发送拒绝访问回复, 附带加入频道与重试按钮, 各占一行.
// channelURL 为空时省略加入按钮.
func (c *Client) ReplyDenied(chatID int64, text, channelURL, retryLink string) error {
	var rows [][]tgbotapi.InlineKeyboardButton
	if channelURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📢 Join Channel", channelURL),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("🔄 Try Again", retryLink),
	))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	_, err := c.api.Send(msg)

	return err
}

// SendMedia 按媒体类别把存储的文件引用发回给用户.
func (c *Client) SendMedia(chatID int64, kind model.MediaKind, fileID, caption string) error {
	var chattable tgbotapi.Chattable

	switch kind {
	case model.KindDocument:
		msg := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
		msg.Caption = caption
		msg.ParseMode = tgbotapi.ModeMarkdown
		chattable = msg
	case model.KindVideo:
		msg := tgbotapi.NewVideo(chatID, tgbotapi.FileID(fileID))
		msg.Caption = caption
		msg.ParseMode = tgbotapi.ModeMarkdown
		chattable = msg
	case model.KindPhoto:
		msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
		msg.Caption = caption
		msg.ParseMode = tgbotapi.ModeMarkdown
		chattable = msg
	default:
		return fmt.Errorf("unsupported media kind: %s", kind)
	}

	_, err := c.api.Send(chattable)

	return err
}
