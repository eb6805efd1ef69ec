package messageService

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// GetUndoConfirmButtons builds the confirm/abort pair shown before an undo.
// The custom id carries the lobby channel and game number so the component
// handler can route the press back to the engine.
func GetUndoConfirmButtons(lobbyChannelID string, gameNumber int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Undo Game",
			Style:    discordgo.DangerButton,
			CustomID: fmt.Sprintf("undo_game_confirm_%s_%d", lobbyChannelID, gameNumber),
			Emoji: &discordgo.ComponentEmoji{
				Name: "↩️",
			},
		},
		discordgo.Button{
			Label:    "Keep Result",
			Style:    discordgo.SecondaryButton,
			CustomID: "undo_game_abort",
		},
	}
}
