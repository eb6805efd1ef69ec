package leaderboardService

import (
	"context"
	"fmt"

	"lobbyRankBot/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Cache keeps one sorted set of player points per guild so the leaderboard
// command does not hit the database on every call. A nil Cache (no REDIS_URL
// configured) disables caching and callers fall back to the database.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) key(guildID string) string {
	return fmt.Sprintf("lb:%s:points", guildID)
}

// ApplyDeltas folds a game's point deltas into the guild's sorted set. Only
// called after the owning transaction has committed.
func (c *Cache) ApplyDeltas(ctx context.Context, guildID string, deltas map[string]int) error {
	if !c.Enabled() || len(deltas) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for userID, delta := range deltas {
		pipe.ZIncrBy(ctx, c.key(guildID), float64(delta), userID)
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("applying leaderboard deltas: %w", err)
	}
	return nil
}

// SetScore pins a single player's cached points to an absolute value.
func (c *Cache) SetScore(ctx context.Context, guildID, userID string, points int) error {
	if !c.Enabled() {
		return nil
	}
	err := c.client.ZAdd(ctx, c.key(guildID), redis.Z{
		Score:  float64(points),
		Member: userID,
	}).Err()
	if err != nil {
		return fmt.Errorf("setting leaderboard score: %w", err)
	}
	return nil
}

// Top returns up to n (userID, points) pairs ordered best first. A missing
// key returns an empty slice, which callers treat as a cache miss.
func (c *Cache) Top(ctx context.Context, guildID string, n int) ([]redis.Z, error) {
	if !c.Enabled() {
		return nil, nil
	}
	entries, err := c.client.ZRevRangeWithScores(ctx, c.key(guildID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}
	return entries, nil
}

// Rebuild replaces a guild's sorted set from the player table.
func (c *Cache) Rebuild(ctx context.Context, db *gorm.DB, guildID string) error {
	if !c.Enabled() {
		return nil
	}

	var players []models.Player
	if err := db.Where("guild_id = ?", guildID).Find(&players).Error; err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Del(ctx, c.key(guildID))
	for _, player := range players {
		pipe.ZAdd(ctx, c.key(guildID), redis.Z{
			Score:  float64(player.Points),
			Member: player.UserID,
		})
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("rebuilding leaderboard for guild %s: %w", guildID, err)
	}
	return nil
}
