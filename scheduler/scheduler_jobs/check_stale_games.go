package scheduler_jobs

import (
	"fmt"
	"log"
	"time"

	"lobbyRankBot/models"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// CheckStaleGames nudges lobbies about games that have sat undecided for a
// day. The update window matches the hourly schedule so each game is only
// flagged once.
func CheckStaleGames(s *discordgo.Session, db *gorm.DB) error {
	cutoff := time.Now().Add(-24 * time.Hour)
	windowStart := cutoff.Add(-1 * time.Hour)

	var games []models.GameResult
	err := db.Where("state = ? AND updated_at < ? AND updated_at >= ?",
		models.StateUndecided, cutoff, windowStart).Find(&games).Error
	if err != nil {
		return fmt.Errorf("fetching stale games: %w", err)
	}

	for _, game := range games {
		msg := fmt.Sprintf("Game **#%d** has been undecided for over a day. A moderator can resolve it with `/game`, `/draw` or `/cancel`.", game.GameID)
		if _, err := s.ChannelMessageSend(game.LobbyID, msg); err != nil {
			log.Printf("Error sending stale game reminder to channel %s: %v", game.LobbyID, err)
		}
	}

	return nil
}
