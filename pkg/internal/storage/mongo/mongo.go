// Package mongo 处理文档存储（MongoDB）连接.
// 存储引擎本身是外部协作方，这里只负责连接生命周期和索引保障.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yeisme/filegate/pkg/configs"
	nlog "github.com/yeisme/filegate/pkg/log"
)

// Client 包装 Mongo 客户端以及已解析的文件集合句柄.
type Client struct {
	*mongo.Client

	cfg *configs.StoreConfig
}

// New 建立文档存储连接并保障唯一索引.
func New(ctx context.Context, cfg *configs.StoreConfig) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.GetConnectTimeout())
	defer cancel()

	cli, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	// 测试连接
	if err := cli.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	client := &Client{Client: cli, cfg: cfg}

	// code 字段的唯一索引是取件码唯一性的最终保障：
	// 入库走 insert-if-absent，并发冲突由索引冲突暴露，而不是先查后插.
	if err := client.ensureIndexes(connectCtx); err != nil {
		return nil, err
	}

	nlog.Logger().Info().
		Str("database", cfg.Database).
		Str("collection", cfg.Collection).
		Msg("document store connected")

	return client, nil
}

// Files 返回文件记录集合句柄.
func (c *Client) Files() *mongo.Collection {
	return c.Database(c.cfg.Database).Collection(c.cfg.Collection)
}

// OpTimeout 返回单次读写操作的超时时间.
func (c *Client) OpTimeout() time.Duration {
	return c.cfg.GetOpTimeout()
}

// ensureIndexes 创建 code 字段的唯一索引（幂等）.
func (c *Client) ensureIndexes(ctx context.Context) error {
	_, err := c.Files().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure code index: %w", err)
	}

	return nil
}
