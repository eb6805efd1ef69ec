package scheduler_jobs

import (
	"context"
	"fmt"
	"log"

	"lobbyRankBot/models"
	"lobbyRankBot/services/leaderboardService"

	"gorm.io/gorm"
)

// RebuildLeaderboards refreshes every guild's cached leaderboard from the
// player table, reconciling any drift from missed cache updates.
func RebuildLeaderboards(db *gorm.DB, cache *leaderboardService.Cache) error {
	if !cache.Enabled() {
		return nil
	}

	var guildIDs []string
	err := db.Model(&models.Player{}).Distinct("guild_id").Pluck("guild_id", &guildIDs).Error
	if err != nil {
		return fmt.Errorf("fetching guilds for leaderboard rebuild: %w", err)
	}

	ctx := context.Background()
	for _, guildID := range guildIDs {
		if err := cache.Rebuild(ctx, db, guildID); err != nil {
			log.Printf("Error rebuilding leaderboard for guild %s: %v", guildID, err)
		}
	}

	return nil
}
