package lobbyService

import (
	"fmt"

	"lobbyRankBot/models"
	"lobbyRankBot/services/common"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// CreateLobby marks the current channel as a game lobby. Game numbering for
// the lobby starts at 1.
func CreateLobby(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	var lobby models.Lobby
	result := db.FirstOrCreate(&lobby, models.Lobby{GuildID: i.GuildID, ChannelID: i.ChannelID})
	if result.Error != nil {
		common.SendError(s, i, result.Error, db)
		return
	}
	if result.RowsAffected == 0 {
		common.RespondEphemeral(s, i, "This channel is already a lobby.")
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("<#%s> is now a lobby.", i.ChannelID))
}

// SetAnnouncementChannel points a lobby's result announcements at another
// channel. Results are still echoed where the command ran.
func SetAnnouncementChannel(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	channel := i.ApplicationCommandData().Options[0].ChannelValue(s)

	var lobby models.Lobby
	result := db.Where("guild_id = ? AND channel_id = ?", i.GuildID, i.ChannelID).First(&lobby)
	if result.RowsAffected == 0 {
		common.RespondEphemeral(s, i, "Channel is not a lobby.")
		return
	}
	if result.Error != nil {
		common.SendError(s, i, result.Error, db)
		return
	}

	lobby.AnnouncementChannelID = &channel.ID
	if err := db.Save(&lobby).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("Game results for <#%s> will be announced in <#%s>.", i.ChannelID, channel.ID))
}
