package cache

import (
	"context"
	"testing"
	"time"
)

func TestBadgerStoreRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store, err := NewBadgerStore(t.TempDir(), 30*time.Minute, clock.Now)
	if err != nil {
		t.Fatalf("open badger store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, "instagram", "alice", sampleRecord("alice"))

	got, ok := store.Get(ctx, "instagram", "alice")
	if !ok {
		t.Fatal("写入后应当命中")
	}
	if got.FollowerCount != 1234 {
		t.Errorf("follower_count = %d, want 1234", got.FollowerCount)
	}

	store.Delete(ctx, "instagram", "alice")
	if _, ok = store.Get(ctx, "instagram", "alice"); ok {
		t.Error("删除后不应命中")
	}
}

// 重启后未过期的快照仍然可用
func TestBadgerStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	store, err := NewBadgerStore(dir, 30*time.Minute, clock.Now)
	if err != nil {
		t.Fatalf("open badger store: %v", err)
	}
	store.Set(ctx, "tiktok", "bob", sampleRecord("bob"))
	if err = store.Close(); err != nil {
		t.Fatalf("close badger store: %v", err)
	}

	clock.Advance(10 * time.Minute)
	reopened, err := NewBadgerStore(dir, 30*time.Minute, clock.Now)
	if err != nil {
		t.Fatalf("reopen badger store: %v", err)
	}
	defer reopened.Close()

	if _, ok := reopened.Get(ctx, "tiktok", "bob"); !ok {
		t.Error("10 分钟后重启，快照应当仍然命中")
	}
}

// 启动扫描会清掉快照里已经过期的条目
func TestBadgerStoreEvictsExpiredOnStartup(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	store, err := NewBadgerStore(dir, 30*time.Minute, clock.Now)
	if err != nil {
		t.Fatalf("open badger store: %v", err)
	}
	store.Set(ctx, "instagram", "alice", sampleRecord("alice"))
	if err = store.Close(); err != nil {
		t.Fatalf("close badger store: %v", err)
	}

	clock.Advance(31 * time.Minute)
	reopened, err := NewBadgerStore(dir, 30*time.Minute, clock.Now)
	if err != nil {
		t.Fatalf("reopen badger store: %v", err)
	}
	defer reopened.Close()

	if _, ok := reopened.Get(ctx, "instagram", "alice"); ok {
		t.Error("过期快照应当在启动时被清掉")
	}
	if reopened.Has(ctx, "instagram", "alice") {
		t.Error("Has 不应报告过期条目")
	}
}
