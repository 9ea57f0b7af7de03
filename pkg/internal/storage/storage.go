// Package storage 处理存储资源的初始化，包括文档存储和 KV 缓存.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	storeClient := mgr.GetStoreClient()
//	kvClient := mgr.GetKVClient()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/filegate/pkg/configs"
	kvc "github.com/yeisme/filegate/pkg/internal/storage/kv"
	mongoc "github.com/yeisme/filegate/pkg/internal/storage/mongo"
	nlog "github.com/yeisme/filegate/pkg/log"
)

// Manager 聚合所有存储资源.
// 进程级共享状态：一次初始化，跨请求复用，不随单次调用销毁.
type Manager struct {
	Store *mongoc.Client
	KV    *kvc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// 文档存储
		if sc, e := mongoc.New(ctx, &cfg.Store); e != nil {
			err = e

			return
		} else {
			m.Store = sc
		}

		// KV 缓存（可选，失败只降级不阻断启动）
		if cfg.KV.Enabled {
			if kvi, e := kvc.NewKVClient(ctx); e != nil {
				nlog.Logger().Warn().Err(e).Msg("KV cache unavailable, registry lookups go uncached")
			} else {
				m.KV = kvi
			}
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetStoreClient 获取文档存储客户端.
func (m *Manager) GetStoreClient() *mongoc.Client {
	return m.Store
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}
