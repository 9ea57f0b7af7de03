package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeisme/filegate/pkg/configs"
	"github.com/yeisme/filegate/pkg/internal/registry"
	"github.com/yeisme/filegate/pkg/internal/tgbot"
	"github.com/yeisme/filegate/pkg/internal/types"
)

// SubscriptionChecker 订阅校验接口, 由 Verifier 实现.
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, userID int64) bool
}

// AccessService 处理 /start 检索请求的访问控制与短码解析.
type AccessService struct {
	cfg      *configs.BotConfig
	reg      registry.Registry
	checker  SubscriptionChecker
	username string
}

// NewAccessService 创建访问控制服务.
// checker 仅在配置了频道门禁时使用, 否则可为 nil.
func NewAccessService(cfg *configs.BotConfig, reg registry.Registry, checker SubscriptionChecker, username string) *AccessService {
	return &AccessService{cfg: cfg, reg: reg, checker: checker, username: username}
}

// HandleRetrieval 裁决一次检索请求.
// 订阅门禁先于一切执行, 连无参 /start 也要先过门禁;
// 被拒绝的用户由此无法探测短码是否有效.
func (s *AccessService) HandleRetrieval(ctx context.Context, req *types.RetrievalRequest) (*types.Decision, error) {
	if s.cfg.GateEnabled() && !s.checker.IsSubscribed(ctx, req.UserID) {
		return &types.Decision{
			Kind:       types.DecisionDenied,
			ChannelURL: tgbot.ChannelJoinURL(s.cfg.ChannelID),
			RetryLink:  tgbot.DeepLink(s.username, req.Code),
		}, nil
	}

	if req.Code == "" {
		return &types.Decision{Kind: types.DecisionWelcome}, nil
	}

	rec, err := s.reg.FindByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return &types.Decision{Kind: types.DecisionNotFound}, nil
		}

		return nil, fmt.Errorf("failed to look up code %s: %w", req.Code, err)
	}

	return &types.Decision{
		Kind:   types.DecisionDeliver,
		FileID: rec.FileID,
		Media:  rec.Kind,
		Code:   rec.Code,
	}, nil
}
