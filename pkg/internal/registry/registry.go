// Package registry 定义文件注册表契约：取件码到文件记录的只增映射.
package registry

import (
	"context"
	"errors"

	"github.com/yeisme/filegate/pkg/internal/model"
)

var (
	// ErrNotFound 取件码不存在.对取回路径这是正常结果，不是故障.
	ErrNotFound = errors.New("registry: code not found")
	// ErrCodeTaken 插入时取件码已被占用（唯一索引冲突）.可重试：换码再插.
	ErrCodeTaken = errors.New("registry: code already taken")
)

// Registry 文件注册表.记录只增不改；唯一性由实现侧的原子 insert-if-absent 保证，
// 并发冲突以 ErrCodeTaken 暴露给调用方重试，而不是先查后插.
type Registry interface {
	// FindByCode 按取件码查找记录，未命中返回 ErrNotFound.
	FindByCode(ctx context.Context, code string) (*model.FileRecord, error)
	// Insert 插入新记录，取件码已存在时返回 ErrCodeTaken.
	Insert(ctx context.Context, rec *model.FileRecord) error
}
