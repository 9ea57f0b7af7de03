package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/yeisme/filegate/pkg/internal/model"
	"github.com/yeisme/filegate/pkg/internal/registry"
	"github.com/yeisme/filegate/pkg/internal/storage/kv"
)

// countingRegistry 记录回源次数的内存注册表.
type countingRegistry struct {
	records map[string]*model.FileRecord
	finds   int
	inserts int
}

func newCountingRegistry() *countingRegistry {
	return &countingRegistry{records: make(map[string]*model.FileRecord)}
}

func (r *countingRegistry) FindByCode(_ context.Context, code string) (*model.FileRecord, error) {
	r.finds++

	rec, ok := r.records[code]
	if !ok {
		return nil, registry.ErrNotFound
	}

	cp := *rec

	return &cp, nil
}

func (r *countingRegistry) Insert(_ context.Context, rec *model.FileRecord) error {
	r.inserts++

	if _, ok := r.records[rec.Code]; ok {
		return registry.ErrCodeTaken
	}

	cp := *rec
	r.records[rec.Code] = &cp

	return nil
}

func newCachedRegistry(t *testing.T, inner registry.Registry) *registry.CachedRegistry {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })

	return registry.NewCached(inner, store)
}

// TestCachedFindHitsCacheOnSecondLookup 测试第二次查询命中缓存不回源.
func TestCachedFindHitsCacheOnSecondLookup(t *testing.T) {
	ctx := context.Background()
	inner := newCountingRegistry()
	cached := newCachedRegistry(t, inner)

	rec := &model.FileRecord{
		Code:       "aB3dE9",
		FileID:     "BQACAgIAAxkBAaE",
		Kind:       model.KindVideo,
		UploaderID: 42,
		CreatedAt:  time.Now().UTC(),
	}
	if err := cached.Insert(ctx, rec); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	for range 3 {
		got, err := cached.FindByCode(ctx, "aB3dE9")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}

		if got.FileID != rec.FileID || got.Kind != rec.Kind {
			t.Errorf("got %+v, want %+v", got, rec)
		}
	}

	// Insert 已回填缓存，查询不应回源
	if inner.finds != 0 {
		t.Errorf("inner finds = %d, want 0 (cache should serve)", inner.finds)
	}
}

// TestCachedFindBackfillsFromSource 测试缓存未命中时回源并回填.
func TestCachedFindBackfillsFromSource(t *testing.T) {
	ctx := context.Background()
	inner := newCountingRegistry()

	// 直接写进真源，绕过缓存
	if err := inner.Insert(ctx, &model.FileRecord{Code: "Zx9Qw1", FileID: "f", Kind: model.KindPhoto}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	inner.finds = 0
	inner.inserts = 0
	cached := newCachedRegistry(t, inner)

	if _, err := cached.FindByCode(ctx, "Zx9Qw1"); err != nil {
		t.Fatalf("first find failed: %v", err)
	}

	if _, err := cached.FindByCode(ctx, "Zx9Qw1"); err != nil {
		t.Fatalf("second find failed: %v", err)
	}

	if inner.finds != 1 {
		t.Errorf("inner finds = %d, want 1 (second lookup should hit cache)", inner.finds)
	}
}

// TestCachedNotFoundNotCached 测试未知码不被缓存，入库后立即可见.
func TestCachedNotFoundNotCached(t *testing.T) {
	ctx := context.Background()
	inner := newCountingRegistry()
	cached := newCachedRegistry(t, inner)

	if _, err := cached.FindByCode(ctx, "ZZZZZZ"); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := inner.Insert(ctx, &model.FileRecord{Code: "ZZZZZZ", FileID: "f", Kind: model.KindDocument}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if _, err := cached.FindByCode(ctx, "ZZZZZZ"); err != nil {
		t.Errorf("expected hit after insert, got %v", err)
	}
}

// TestCachedInsertPropagatesCodeTaken 测试插入冲突原样透传 ErrCodeTaken.
func TestCachedInsertPropagatesCodeTaken(t *testing.T) {
	ctx := context.Background()
	inner := newCountingRegistry()
	cached := newCachedRegistry(t, inner)

	rec := &model.FileRecord{Code: "dup001", FileID: "f", Kind: model.KindDocument}
	if err := cached.Insert(ctx, rec); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	if err := cached.Insert(ctx, rec); err != registry.ErrCodeTaken {
		t.Errorf("expected ErrCodeTaken, got %v", err)
	}
}
