// Package context 拓展上下文功能，将存储资源集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/yeisme/filegate/pkg/internal/storage"
	kvc "github.com/yeisme/filegate/pkg/internal/storage/kv"
	mongoc "github.com/yeisme/filegate/pkg/internal/storage/mongo"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetStoreClient 从 context 中获取文档存储客户端.
func GetStoreClient(ctx context.Context) *mongoc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetStoreClient()
	}

	return nil
}

// GetKVClient 从 context 中获取 KV 客户端.
func GetKVClient(ctx context.Context) *kvc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}
