package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeisme/filegate/pkg/configs"
	"github.com/yeisme/filegate/pkg/internal/model"
	"github.com/yeisme/filegate/pkg/internal/registry"
	"github.com/yeisme/filegate/pkg/internal/tgbot"
	"github.com/yeisme/filegate/pkg/internal/types"
	"github.com/yeisme/filegate/pkg/log"
)

// maxCodeAttempts 短码冲突重试上限, 超过视为码空间耗尽.
const maxCodeAttempts = 32

// CodeGenerator 短码生成接口, 由 shortcode.Generator 实现.
type CodeGenerator interface {
	Generate() (string, error)
}

// IngestService 处理管理员上传消息的媒体收录.
type IngestService struct {
	cfg      *configs.BotConfig
	reg      registry.Registry
	codegen  CodeGenerator
	username string
}

// NewIngestService 创建收录服务.
func NewIngestService(cfg *configs.BotConfig, reg registry.Registry, codegen CodeGenerator, username string) *IngestService {
	return &IngestService{cfg: cfg, reg: reg, codegen: codegen, username: username}
}

// HandleUpload 处理一条上传消息.
// 非管理员静默忽略; 同一消息含多种媒体时按文档/视频/图片优先取一种;
// 图片取最高分辨率的文件引用.
func (s *IngestService) HandleUpload(ctx context.Context, msg *types.UploadMessage) (*types.UploadResult, error) {
	if !s.cfg.IngestEnabled() || msg.SenderID != s.cfg.AdminID {
		return &types.UploadResult{Kind: types.UploadSilence}, nil
	}

	fileID, kind := pickMedia(msg)
	if fileID == "" {
		return &types.UploadResult{Kind: types.UploadNeedMedia}, nil
	}

	code, err := s.store(ctx, fileID, kind, msg.SenderID)
	if err != nil {
		return nil, err
	}

	log.Logger().Info().Str("code", code).Str("type", string(kind)).Int64("uploader", msg.SenderID).Msg("File stored")

	return &types.UploadResult{
		Kind: types.UploadSaved,
		Code: code,
		Link: tgbot.DeepLink(s.username, code),
	}, nil
}

// pickMedia 从消息中选出待收录的媒体引用.
func pickMedia(msg *types.UploadMessage) (string, model.MediaKind) {
	switch {
	case msg.DocumentID != "":
		return msg.DocumentID, model.KindDocument
	case msg.VideoID != "":
		return msg.VideoID, model.KindVideo
	case len(msg.PhotoIDs) > 0:
		return msg.PhotoIDs[len(msg.PhotoIDs)-1], model.KindPhoto
	default:
		return "", ""
	}
}

// store 生成短码并原子插入, 唯一索引冲突时换码重试.
func (s *IngestService) store(ctx context.Context, fileID string, kind model.MediaKind, uploader int64) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.codegen.Generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}

		rec := &model.FileRecord{
			Code:       code,
			FileID:     fileID,
			Kind:       kind,
			UploaderID: uploader,
			CreatedAt:  time.Now().UTC(),
		}

		err = s.reg.Insert(ctx, rec)
		if err == nil {
			return code, nil
		}

		if errors.Is(err, registry.ErrCodeTaken) {
			log.Logger().Debug().Str("code", code).Msg("Code collision, retrying")

			continue
		}

		return "", fmt.Errorf("failed to insert file record: %w", err)
	}

	return "", fmt.Errorf("code space exhausted after %d attempts", maxCodeAttempts)
}
