package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaKind 文件的媒体类型，决定投递时使用的发送方式.
type MediaKind string

const (
	KindDocument MediaKind = "document"
	KindVideo    MediaKind = "video"
	KindPhoto    MediaKind = "photo"
)

// Valid 判断是否为已知媒体类型.
func (k MediaKind) Valid() bool {
	switch k {
	case KindDocument, KindVideo, KindPhoto:
		return true
	default:
		return false
	}
}

// FileRecord 一条可取回的文件记录.
// FileID 是消息平台签发的不透明媒体引用，只存储和回放，从不在本地生成或校验.
// 记录插入后不可变：只创建、只读取，删除交由存储侧管理.
type FileRecord struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	// Code 取件码，全局唯一，主查询键
	Code string `bson:"code" json:"code"`
	// FileID 平台媒体引用
	FileID string `bson:"file_id" json:"file_id"`
	// Kind 媒体类型
	Kind MediaKind `bson:"type" json:"type"`
	// UploaderID 创建该记录的管理员数字身份
	UploaderID int64 `bson:"uploader" json:"uploader"`
	// CreatedAt 创建时间（UTC）
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
