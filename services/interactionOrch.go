package services

import (
	"log"
	"strconv"
	"strings"

	"lobbyRankBot/services/gameService"
	"lobbyRankBot/services/leaderboardService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, cache *leaderboardService.Cache) {
	customID := i.MessageComponentData().CustomID

	if strings.HasPrefix(customID, "undo_game_confirm_") {
		parts := strings.Split(strings.TrimPrefix(customID, "undo_game_confirm_"), "_")
		if len(parts) != 2 {
			log.Printf("Malformed undo confirm id: %s", customID)
			return
		}
		gameNumber, err := strconv.Atoi(parts[1])
		if err != nil {
			log.Printf("Error parsing game number from %s: %v", customID, err)
			return
		}

		gameService.ConfirmUndo(s, i, db, cache, parts[0], gameNumber)
		return
	}

	if customID == "undo_game_abort" {
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Undo aborted, result kept.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			log.Printf("Error sending interaction: %v", err)
		}
	}
}
