package registry

import (
	"context"
	"time"

	"github.com/yeisme/filegate/pkg/cache"
	"github.com/yeisme/filegate/pkg/internal/model"
	"github.com/yeisme/filegate/pkg/internal/storage/kv"
)

const (
	fileKeyPrefix = "files:v1:"

	// fileCacheTTL 记录不可变，缓存只为省查询，TTL 不需要太讲究.
	fileCacheTTL = 10 * time.Minute
)

// CachedRegistry DB 为真源、KV 为轻缓存的注册表包装.
// 记录不可变意味着缓存永远不会脏，只有未命中回源一种路径.
type CachedRegistry struct {
	inner Registry
	c     *cache.Cache
}

// NewCached 用 KV 存储包装一个注册表.
func NewCached(inner Registry, store kv.KVStore) *CachedRegistry {
	return &CachedRegistry{inner: inner, c: cache.NewCache(store)}
}

func makeFileKey(code string) string { return fileKeyPrefix + code }

// FindByCode 优先读缓存，未命中回源并回填.
// ErrNotFound 不缓存：未知码可能是尚未入库的新码.
func (r *CachedRegistry) FindByCode(ctx context.Context, code string) (*model.FileRecord, error) {
	if rec, err := cache.Get[model.FileRecord](ctx, r.c, makeFileKey(code)); err == nil {
		return &rec, nil
	}

	rec, err := r.inner.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// 回填缓存
	_ = cache.Set(ctx, r.c, makeFileKey(code), *rec, fileCacheTTL)

	return rec, nil
}

// Insert 透传插入，成功后顺手填缓存.
func (r *CachedRegistry) Insert(ctx context.Context, rec *model.FileRecord) error {
	if err := r.inner.Insert(ctx, rec); err != nil {
		return err
	}

	_ = cache.Set(ctx, r.c, makeFileKey(rec.Code), *rec, fileCacheTTL)

	return nil
}
