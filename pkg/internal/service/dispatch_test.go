package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yeisme/filegate/pkg/configs"
	"github.com/yeisme/filegate/pkg/internal/model"
	"github.com/yeisme/filegate/pkg/internal/service"
	"github.com/yeisme/filegate/pkg/internal/types"
)

// sentReply 记录一次发出的回复.
type sentReply struct {
	kind    string // text | markdown | denied | media
	chatID  int64
	text    string
	fileID  string
	media   model.MediaKind
	channel string
	retry   string
}

// fakeSender 记录全部回复的发送桩.
type fakeSender struct {
	sent     []sentReply
	mediaErr error
}

func (f *fakeSender) ReplyText(chatID int64, text string) error {
	f.sent = append(f.sent, sentReply{kind: "text", chatID: chatID, text: text})

	return nil
}

func (f *fakeSender) ReplyMarkdown(chatID int64, text string) error {
	f.sent = append(f.sent, sentReply{kind: "markdown", chatID: chatID, text: text})

	return nil
}

func (f *fakeSender) ReplyDenied(chatID int64, text, channelURL, retryLink string) error {
	f.sent = append(f.sent, sentReply{kind: "denied", chatID: chatID, text: text, channel: channelURL, retry: retryLink})

	return nil
}

func (f *fakeSender) SendMedia(chatID int64, kind model.MediaKind, fileID, caption string) error {
	if f.mediaErr != nil {
		return f.mediaErr
	}

	f.sent = append(f.sent, sentReply{kind: "media", chatID: chatID, media: kind, fileID: fileID, text: caption})

	return nil
}

func (f *fakeSender) last(t *testing.T) sentReply {
	t.Helper()

	if len(f.sent) == 0 {
		t.Fatal("no reply sent")
	}

	return f.sent[len(f.sent)-1]
}

func newDispatcher(cfg *configs.BotConfig, reg *memRegistry, checker service.SubscriptionChecker, sender service.Sender) *service.Dispatcher {
	access := service.NewAccessService(cfg, reg, checker, "filegate_bot")
	ingest := service.NewIngestService(cfg, reg, &seqGenerator{codes: []string{"aB3dE9"}}, "filegate_bot")

	return service.NewDispatcher(access, ingest, sender)
}

func startUpdate(userID, chatID int64, firstName, args string) *tgbotapi.Update {
	text := "/start"
	if args != "" {
		text += " " + args
	}

	return &tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID, FirstName: firstName},
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len("/start")},
			},
		},
	}
}

// TestDispatchIgnoresNonMessage 测试非消息类更新被忽略.
func TestDispatchIgnoresNonMessage(t *testing.T) {
	sender := &fakeSender{}
	d := newDispatcher(&configs.BotConfig{AdminID: 42, CodeLength: 6}, newMemRegistry(), nil, sender)

	if err := d.Dispatch(context.Background(), &tgbotapi.Update{}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if len(sender.sent) != 0 {
		t.Errorf("sent %d replies for empty update, want 0", len(sender.sent))
	}
}

// TestDispatchWelcome 测试无参数 /start 回复欢迎语.
func TestDispatchWelcome(t *testing.T) {
	sender := &fakeSender{}
	d := newDispatcher(&configs.BotConfig{AdminID: 42, CodeLength: 6}, newMemRegistry(), nil, sender)

	if err := d.Dispatch(context.Background(), startUpdate(7, 100, "Alice", "")); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	reply := sender.last(t)
	if reply.kind != "text" || reply.chatID != 100 {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	want := "👋 Hello Alice! Send me a file to store (Admin only)."
	if reply.text != want {
		t.Errorf("text = %q, want %q", reply.text, want)
	}
}

// TestDispatchDenied 测试未订阅用户收到拒绝回复与按钮链接.
func TestDispatchDenied(t *testing.T) {
	sender := &fakeSender{}
	cfg := &configs.BotConfig{AdminID: 42, CodeLength: 6, ChannelID: "@mychannel"}
	d := newDispatcher(cfg, newMemRegistry(), &fakeChecker{subscribed: false}, sender)

	if err := d.Dispatch(context.Background(), startUpdate(7, 100, "Bob", "aB3dE9")); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	reply := sender.last(t)
	if reply.kind != "denied" {
		t.Fatalf("reply kind = %q, want denied", reply.kind)
	}

	if !strings.Contains(reply.text, "Access Denied") {
		t.Errorf("text = %q", reply.text)
	}

	if reply.channel != "https://t.me/mychannel" {
		t.Errorf("channel url = %q", reply.channel)
	}

	if reply.retry != "https://t.me/filegate_bot?start=aB3dE9" {
		t.Errorf("retry link = %q", reply.retry)
	}
}

// TestDispatchNotFound 测试未知短码回复未找到.
func TestDispatchNotFound(t *testing.T) {
	sender := &fakeSender{}
	d := newDispatcher(&configs.BotConfig{AdminID: 42, CodeLength: 6}, newMemRegistry(), nil, sender)

	if err := d.Dispatch(context.Background(), startUpdate(7, 100, "Bob", "ZZZZZZ")); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	reply := sender.last(t)
	if reply.kind != "markdown" || !strings.Contains(reply.text, "File not found") {
		t.Errorf("unexpected reply: %+v", reply)
	}
}

// TestDispatchDeliver 测试命中短码后按类别发送文件.
func TestDispatchDeliver(t *testing.T) {
	sender := &fakeSender{}
	reg := newMemRegistry()
	reg.records["aB3dE9"] = &model.FileRecord{Code: "aB3dE9", FileID: "BQACAgIAAxkBAaE", Kind: model.KindVideo}
	d := newDispatcher(&configs.BotConfig{AdminID: 42, CodeLength: 6}, reg, nil, sender)

	if err := d.Dispatch(context.Background(), startUpdate(7, 100, "Bob", "aB3dE9")); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	reply := sender.last(t)
	if reply.kind != "media" || reply.media != model.KindVideo || reply.fileID != "BQACAgIAAxkBAaE" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	if !strings.Contains(reply.text, "`aB3dE9`") {
		t.Errorf("caption = %q", reply.text)
	}
}

// TestDispatchDeliverFailure 测试平台发送失败时回复友好提示.
func TestDispatchDeliverFailure(t *testing.T) {
	sender := &fakeSender{mediaErr: errors.New("file reference expired")}
	reg := newMemRegistry()
	reg.records["aB3dE9"] = &model.FileRecord{Code: "aB3dE9", FileID: "gone", Kind: model.KindDocument}
	d := newDispatcher(&configs.BotConfig{AdminID: 42, CodeLength: 6}, reg, nil, sender)

	if err := d.Dispatch(context.Background(), startUpdate(7, 100, "Bob", "aB3dE9")); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	reply := sender.last(t)
	if reply.kind != "text" || !strings.Contains(reply.text, "Failed to send file") {
		t.Errorf("unexpected reply: %+v", reply)
	}
}

// TestDispatchAdminUpload 测试管理员上传端到端流程.
func TestDispatchAdminUpload(t *testing.T) {
	sender := &fakeSender{}
	reg := newMemRegistry()
	d := newDispatcher(&configs.BotConfig{AdminID: 42, CodeLength: 6}, reg, nil, sender)

	update := &tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 42, FirstName: "Admin"},
			Chat: &tgbotapi.Chat{ID: 42},
			Photo: []tgbotapi.PhotoSize{
				{FileID: "lo", Width: 90},
				{FileID: "mid", Width: 320},
				{FileID: "hi", Width: 1280},
			},
		},
	}

	if err := d.Dispatch(context.Background(), update); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	reply := sender.last(t)
	if reply.kind != "markdown" || !strings.Contains(reply.text, "File Saved") {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	if !strings.Contains(reply.text, "https://t.me/filegate_bot?start=aB3dE9") {
		t.Errorf("saved reply missing link: %q", reply.text)
	}

	rec := reg.records["aB3dE9"]
	if rec == nil {
		t.Fatal("record not stored")
	}

	if rec.FileID != "hi" || rec.Kind != model.KindPhoto || rec.UploaderID != 42 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

// TestDispatchNonAdminSilent 测试非管理员消息无任何回复.
func TestDispatchNonAdminSilent(t *testing.T) {
	sender := &fakeSender{}
	d := newDispatcher(&configs.BotConfig{AdminID: 42, CodeLength: 6}, newMemRegistry(), nil, sender)

	update := &tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 7},
			Chat: &tgbotapi.Chat{ID: 7},
			Text: "hello",
		},
	}

	if err := d.Dispatch(context.Background(), update); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if len(sender.sent) != 0 {
		t.Errorf("sent %d replies for non-admin message, want 0", len(sender.sent))
	}
}

// TestDispatchAdminNoMedia 测试管理员纯文本消息提示补发.
func TestDispatchAdminNoMedia(t *testing.T) {
	sender := &fakeSender{}
	d := newDispatcher(&configs.BotConfig{AdminID: 42, CodeLength: 6}, newMemRegistry(), nil, sender)

	update := &tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 42},
			Chat: &tgbotapi.Chat{ID: 42},
			Text: "hello",
		},
	}

	if err := d.Dispatch(context.Background(), update); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	reply := sender.last(t)
	if reply.text != "Please send a Document, Video, or Photo." {
		t.Errorf("text = %q", reply.text)
	}
}
