package registry

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yeisme/filegate/pkg/internal/model"
	mongoc "github.com/yeisme/filegate/pkg/internal/storage/mongo"
)

// MongoRegistry 基于文档存储的注册表实现.
type MongoRegistry struct {
	client *mongoc.Client
}

// NewMongo 创建 Mongo 注册表.
func NewMongo(client *mongoc.Client) *MongoRegistry {
	return &MongoRegistry{client: client}
}

// FindByCode 按取件码查找记录.
func (r *MongoRegistry) FindByCode(ctx context.Context, code string) (*model.FileRecord, error) {
	opCtx, cancel := context.WithTimeout(ctx, r.client.OpTimeout())
	defer cancel()

	var rec model.FileRecord

	err := r.client.Files().FindOne(opCtx, bson.M{"code": code}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("find code %s: %w", code, err)
	}

	return &rec, nil
}

// Insert 插入新记录.
// 唯一性依赖 code 字段的唯一索引：并发下的重复插入由索引冲突暴露为 ErrCodeTaken.
func (r *MongoRegistry) Insert(ctx context.Context, rec *model.FileRecord) error {
	opCtx, cancel := context.WithTimeout(ctx, r.client.OpTimeout())
	defer cancel()

	if _, err := r.client.Files().InsertOne(opCtx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCodeTaken
		}

		return fmt.Errorf("insert record %s: %w", rec.Code, err)
	}

	return nil
}
