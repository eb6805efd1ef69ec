package leaderboardService

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestCacheTopOrdersBestFirst(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetScore(ctx, "guild1", "alice", 25); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := cache.SetScore(ctx, "guild1", "bob", 40); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := cache.SetScore(ctx, "guild1", "carol", -5); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entries, err := cache.Top(ctx, "guild1", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expected := []string{"bob", "alice", "carol"}
	for idx, entry := range entries {
		if entry.Member != expected[idx] {
			t.Errorf("Position %d: expected %s, got %v", idx, expected[idx], entry.Member)
		}
	}
}

func TestCacheTopHonorsLimit(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	for _, userID := range []string{"a", "b", "c", "d"} {
		if err := cache.SetScore(ctx, "guild1", userID, len(userID)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	entries, err := cache.Top(ctx, "guild1", 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}
}

func TestCacheApplyDeltas(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetScore(ctx, "guild1", "alice", 10); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := cache.ApplyDeltas(ctx, "guild1", map[string]int{
		"alice": 5,
		"bob":   -3,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entries, err := cache.Top(ctx, "guild1", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	scores := make(map[string]float64, len(entries))
	for _, entry := range entries {
		scores[entry.Member.(string)] = entry.Score
	}
	if scores["alice"] != 15 {
		t.Errorf("Expected alice at 15, got %v", scores["alice"])
	}
	if scores["bob"] != -3 {
		t.Errorf("Expected bob at -3, got %v", scores["bob"])
	}
}

func TestCacheGuildsAreIsolated(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetScore(ctx, "guild1", "alice", 10); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entries, err := cache.Top(ctx, "guild2", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty leaderboard for other guild, got %d entries", len(entries))
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	if cache.Enabled() {
		t.Error("Expected nil cache to be disabled")
	}
	if err := cache.ApplyDeltas(ctx, "guild1", map[string]int{"alice": 1}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := cache.SetScore(ctx, "guild1", "alice", 1); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	entries, err := cache.Top(ctx, "guild1", 10)
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries, got %v", entries)
	}
}
