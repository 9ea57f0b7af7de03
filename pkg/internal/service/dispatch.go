package service

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yeisme/filegate/pkg/internal/model"
	"github.com/yeisme/filegate/pkg/internal/types"
	"github.com/yeisme/filegate/pkg/log"
	"github.com/yeisme/filegate/pkg/metrics"
)

// 用户可见回复文案.
const (
	msgWelcome        = "👋 Hello %s! Send me a file to store (Admin only)."
	msgNotFound       = "❌ **File not found.** It may have been deleted."
	msgSaved          = "✅ **File Saved!**\n\n🔗 **Link:**\n`%s`"
	msgNeedMedia      = "Please send a Document, Video, or Photo."
	msgDeliverCaption = "Here is your file!\n📂 Code: `%s`"
	msgDenied         = "⚠️ **Access Denied**\n\nPlease join our channel to access this file."
	msgSendFailed     = "❌ Failed to send file. It might have been deleted from Telegram servers."
)

// Sender 回复发送接口, 由 tgbot.Client 实现.
type Sender interface {
	ReplyText(chatID int64, text string) error
	ReplyMarkdown(chatID int64, text string) error
	ReplyDenied(chatID int64, text, channelURL, retryLink string) error
	SendMedia(chatID int64, kind model.MediaKind, fileID, caption string) error
}

// Dispatcher 把 webhook 更新分发到检索或收录流程并渲染回复.
type Dispatcher struct {
	access *AccessService
	ingest *IngestService
	sender Sender
}

// NewDispatcher 创建更新分发器.
func NewDispatcher(access *AccessService, ingest *IngestService, sender Sender) *Dispatcher {
	return &Dispatcher{access: access, ingest: ingest, sender: sender}
}

// Dispatch 处理一条 Telegram 更新.
// 非消息类更新直接忽略.
func (d *Dispatcher) Dispatch(ctx context.Context, update *tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil {
		metrics.UpdatesTotal.WithLabelValues("ignored").Inc()

		return nil
	}

	if msg.IsCommand() && msg.Command() == "start" {
		metrics.UpdatesTotal.WithLabelValues("start").Inc()

		return d.handleStart(ctx, msg)
	}

	metrics.UpdatesTotal.WithLabelValues("message").Inc()

	return d.handleMessage(ctx, msg)
}

func (d *Dispatcher) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	req := &types.RetrievalRequest{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		FirstName: msg.From.FirstName,
		Code:      msg.CommandArguments(),
	}

	dec, err := d.access.HandleRetrieval(ctx, req)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	switch dec.Kind {
	case types.DecisionWelcome:
		return d.sender.ReplyText(req.ChatID, fmt.Sprintf(msgWelcome, req.FirstName))
	case types.DecisionDenied:
		metrics.DenialsTotal.Inc()

		return d.sender.ReplyDenied(req.ChatID, msgDenied, dec.ChannelURL, dec.RetryLink)
	case types.DecisionNotFound:
		return d.sender.ReplyMarkdown(req.ChatID, msgNotFound)
	case types.DecisionDeliver:
		caption := fmt.Sprintf(msgDeliverCaption, dec.Code)
		if err := d.sender.SendMedia(req.ChatID, dec.Media, dec.FileID, caption); err != nil {
			log.Logger().Error().Err(err).Str("code", dec.Code).Msg("Failed to send file")

			return d.sender.ReplyText(req.ChatID, msgSendFailed)
		}

		metrics.DeliveriesTotal.WithLabelValues(string(dec.Media)).Inc()

		return nil
	default:
		return fmt.Errorf("unknown decision kind: %d", dec.Kind)
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	upload := &types.UploadMessage{
		SenderID: msg.From.ID,
		ChatID:   msg.Chat.ID,
	}

	if msg.Document != nil {
		upload.DocumentID = msg.Document.FileID
	}

	if msg.Video != nil {
		upload.VideoID = msg.Video.FileID
	}

	for _, p := range msg.Photo {
		upload.PhotoIDs = append(upload.PhotoIDs, p.FileID)
	}

	res, err := d.ingest.HandleUpload(ctx, upload)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	switch res.Kind {
	case types.UploadSilence:
		return nil
	case types.UploadNeedMedia:
		return d.sender.ReplyText(upload.ChatID, msgNeedMedia)
	case types.UploadSaved:
		var media string
		switch {
		case upload.DocumentID != "":
			media = string(model.KindDocument)
		case upload.VideoID != "":
			media = string(model.KindVideo)
		default:
			media = string(model.KindPhoto)
		}

		metrics.UploadsTotal.WithLabelValues(media).Inc()

		return d.sender.ReplyMarkdown(upload.ChatID, fmt.Sprintf(msgSaved, res.Link))
	default:
		return fmt.Errorf("unknown upload result kind: %d", res.Kind)
	}
}
