// Package types 定义检索与收录流程中各层之间传递的请求/决策结构.
package types

import (
	"github.com/yeisme/filegate/pkg/internal/model"
)

// RetrievalRequest /start 命令解析出的检索请求.
type RetrievalRequest struct {
	UserID    int64  // 发起请求的用户
	ChatID    int64  // 回复目标会话
	FirstName string // 用于欢迎语
	Code      string // 深链携带的短码, 无参数时为空
}

// DecisionKind 检索决策类别.
type DecisionKind int

const (
	// DecisionWelcome 无短码参数, 回复欢迎语.
	DecisionWelcome DecisionKind = iota
	// DecisionDenied 订阅校验未通过, 拒绝访问.
	DecisionDenied
	// DecisionNotFound 短码不存在或已被删除.
	DecisionNotFound
	// DecisionDeliver 校验通过且短码命中, 发送文件.
	DecisionDeliver
)

// Decision 访问控制层对一次检索请求的裁决,
// 携带渲染回复所需的全部信息.
type Decision struct {
	Kind       DecisionKind
	ChannelURL string          // Denied 时的频道加入链接, 无法构造时为空
	RetryLink  string          // Denied 时的重试深链
	FileID     string          // Deliver 时的平台文件引用
	Media      model.MediaKind // Deliver 时的媒体类别
	Code       string          // Deliver 时的短码, 用于回复标注
}

// UploadMessage 管理员上传消息中与收录相关的字段.
type UploadMessage struct {
	SenderID   int64
	ChatID     int64
	DocumentID string   // 文档文件引用, 无则为空
	VideoID    string   // 视频文件引用, 无则为空
	PhotoIDs   []string // 图片各分辨率文件引用, 按分辨率升序
}

// UploadKind 收录处理结果类别.
type UploadKind int

const (
	// UploadSilence 发送者不是管理员, 静默忽略.
	UploadSilence UploadKind = iota
	// UploadNeedMedia 管理员消息不含可收录媒体, 提示补发.
	UploadNeedMedia
	// UploadSaved 收录成功.
	UploadSaved
)

// UploadResult 收录处理结果.
type UploadResult struct {
	Kind UploadKind
	Code string // Saved 时分配的短码
	Link string // Saved 时的检索深链
}
