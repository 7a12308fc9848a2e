package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakuray/campusvault/pkg/cache"
	"github.com/sakuray/campusvault/pkg/internal/storage/kv"
)

// testMeta 测试用的文件元数据结构体.
type testMeta struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Locator string `json:"locator"`
	Size    int64  `json:"sizeBytes"`
}

// mockKVStore 模拟KV存储实现.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, kv.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

// TestCache_GetSet 测试 Get/Set 方法.
func TestCache_GetSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	// 获取不存在的键
	_, err := cache.Get[testMeta](ctx, c, "nonexistent")
	if err == nil {
		t.Error("Expected error for nonexistent key")
	}

	meta := testMeta{ID: 1, Name: "report.txt", Locator: "abc_report.txt", Size: 128}

	err = cache.Set(ctx, c, "file:1", meta, 0)
	if err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	got, err := cache.Get[testMeta](ctx, c, "file:1")
	if err != nil {
		t.Fatalf("Failed to get cache: %v", err)
	}

	if got != meta {
		t.Errorf("Retrieved meta %+v does not match original %+v", got, meta)
	}
}

// TestCache_Delete 测试 Delete 方法.
func TestCache_Delete(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	meta := testMeta{ID: 3, Name: "notes.md"}

	err := cache.Set(ctx, c, "file:3", meta, 0)
	if err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	err = c.Delete(ctx, "file:3")
	if err != nil {
		t.Fatalf("Failed to delete cache: %v", err)
	}

	exists, err := c.Exists(ctx, "file:3")
	if err != nil {
		t.Fatalf("Failed to check existence after deletion: %v", err)
	}

	if exists {
		t.Error("Key should not exist after deletion")
	}
}

// TestGetOrSet 测试 GetOrSet 方法.
func TestGetOrSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	callCount := 0
	getter := func() (testMeta, error) {
		callCount++
		return testMeta{ID: 5, Name: "photo.png"}, nil
	}

	// 第一次调用，应该调用getter
	meta1, err := cache.GetOrSet(ctx, c, "file:5", getter, 0)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called once, got %d", callCount)
	}

	// 第二次调用，应该从缓存获取
	meta2, err := cache.GetOrSet(ctx, c, "file:5", getter, 0)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called only once, got %d", callCount)
	}

	if meta1 != meta2 {
		t.Errorf("Results don't match: %+v vs %+v", meta1, meta2)
	}
}

// TestGetOrSet_GetterError 测试 getter 返回错误的情况.
func TestGetOrSet_GetterError(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	getter := func() (testMeta, error) {
		return testMeta{}, errors.New("getter error")
	}

	_, err := cache.GetOrSet(ctx, c, "file:error", getter, 0)
	if err == nil {
		t.Error("Expected error from getter")
	}
}
