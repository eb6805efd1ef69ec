package leaderboardService

import (
	"context"
	"fmt"
	"log"

	"lobbyRankBot/models"
	"lobbyRankBot/services/common"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

const leaderboardSize = 20

// ShowLeaderboard renders the guild's top players, preferring the Redis
// cache and falling back to the player table when the cache is cold or
// disabled.
func ShowLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, cache *Cache) {
	guildID := i.GuildID

	type row struct {
		userID string
		points int
	}
	var rows []row

	if cache.Enabled() {
		entries, err := cache.Top(context.Background(), guildID, leaderboardSize)
		if err != nil {
			log.Printf("Leaderboard cache read failed for guild %s: %v", guildID, err)
		}
		for _, entry := range entries {
			rows = append(rows, row{userID: entry.Member.(string), points: int(entry.Score)})
		}
	}

	if len(rows) == 0 {
		var players []models.Player
		result := db.Where("guild_id = ?", guildID).Order("points desc").Limit(leaderboardSize).Find(&players)
		if result.Error != nil {
			common.SendError(s, i, result.Error, db)
			return
		}
		for _, player := range players {
			rows = append(rows, row{userID: player.UserID, points: player.Points})
		}
		if cache.Enabled() && len(players) > 0 {
			if err := cache.Rebuild(context.Background(), db, guildID); err != nil {
				log.Printf("Leaderboard cache warm failed for guild %s: %v", guildID, err)
			}
		}
	}

	if len(rows) == 0 {
		common.RespondEphemeral(s, i, "There are no registered players in this server yet.")
		return
	}

	description := ""
	for idx, entry := range rows {
		description += fmt.Sprintf("%d: <@%s> - `%d`\n", idx+1, entry.userID, entry.points)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Leaderboard",
		Description: description,
		Color:       0x3498db,
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}
