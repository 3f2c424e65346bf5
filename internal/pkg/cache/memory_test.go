package cache

import (
	"context"
	"testing"
	"time"

	"Linkstone/internal/model"
)

// fakeClock 可手动拨动的时钟
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func sampleRecord(handle string) *model.PlatformAnalytics {
	return &model.PlatformAnalytics{
		Platform:      "instagram",
		Handle:        handle,
		FollowerCount: 1234,
	}
}

func TestMemoryStoreFreshWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(30*time.Minute, clock.Now)
	ctx := context.Background()

	store.Set(ctx, "instagram", "alice", sampleRecord("alice"))

	clock.Advance(29 * time.Minute)
	got, ok := store.Get(ctx, "instagram", "alice")
	if !ok {
		t.Fatal("29 分钟内应当命中")
	}
	if got.Handle != "alice" {
		t.Errorf("handle = %q, want alice", got.Handle)
	}
}

// 缓存时间正好等于 TTL 时视为过期
func TestMemoryStoreExpiredAtExactTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(30*time.Minute, clock.Now)
	ctx := context.Background()

	store.Set(ctx, "instagram", "alice", sampleRecord("alice"))

	clock.Advance(30 * time.Minute)
	if _, ok := store.Get(ctx, "instagram", "alice"); ok {
		t.Error("恰好 30 分钟应当视为过期")
	}
	if store.Has(ctx, "instagram", "alice") {
		t.Error("Has 也应当报告过期")
	}
}

// 同名 handle 在不同平台下互不影响
func TestMemoryStoreKeyIsolation(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := NewMemoryStore(30*time.Minute, clock.Now)
	ctx := context.Background()

	store.Set(ctx, "instagram", "alice", sampleRecord("alice"))

	if _, ok := store.Get(ctx, "tiktok", "alice"); ok {
		t.Error("不同平台不应共享缓存条目")
	}
}

func TestMemoryStoreSetOverwritesAndResetsTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(30*time.Minute, clock.Now)
	ctx := context.Background()

	store.Set(ctx, "instagram", "alice", sampleRecord("alice"))
	clock.Advance(20 * time.Minute)

	fresh := sampleRecord("alice")
	fresh.FollowerCount = 5678
	store.Set(ctx, "instagram", "alice", fresh)

	clock.Advance(20 * time.Minute)
	got, ok := store.Get(ctx, "instagram", "alice")
	if !ok {
		t.Fatal("覆盖写应当刷新过期时间")
	}
	if got.FollowerCount != 5678 {
		t.Errorf("follower_count = %d, want 5678", got.FollowerCount)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := NewMemoryStore(30*time.Minute, clock.Now)
	ctx := context.Background()

	store.Set(ctx, "instagram", "alice", sampleRecord("alice"))
	store.Delete(ctx, "instagram", "alice")

	if _, ok := store.Get(ctx, "instagram", "alice"); ok {
		t.Error("删除后不应命中")
	}
}
