// Package service 实现检索访问控制/媒体收录/更新分发等核心业务逻辑.
package service

import (
	"context"

	"github.com/yeisme/filegate/pkg/log"
)

// MembershipAPI 成员状态查询接口, 由 tgbot.Client 实现.
type MembershipAPI interface {
	ChatMemberStatus(ctx context.Context, channel string, userID int64) (string, error)
}

// Verifier 频道订阅校验器.
// 校验失败或查询出错时一律判为未订阅, 宁可错拒不可错放.
type Verifier struct {
	api     MembershipAPI
	channel string
}

// NewVerifier 创建订阅校验器, channel 为空表示不启用门禁.
func NewVerifier(api MembershipAPI, channel string) *Verifier {
	return &Verifier{api: api, channel: channel}
}

// IsSubscribed 判断用户是否已加入目标频道.
// "left" 与 "kicked" 视为未订阅, 其余成员状态视为已订阅;
// 查询失败同样视为未订阅.
func (v *Verifier) IsSubscribed(ctx context.Context, userID int64) bool {
	status, err := v.api.ChatMemberStatus(ctx, v.channel, userID)
	if err != nil {
		log.Logger().Warn().Err(err).Int64("user_id", userID).Msg("Subscription check failed, denying access")

		return false
	}

	switch status {
	case "left", "kicked":
		return false
	default:
		return true
	}
}
