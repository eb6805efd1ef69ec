package playerService

import (
	"fmt"
	"time"

	"lobbyRankBot/models"
	"lobbyRankBot/services/common"
	"lobbyRankBot/services/rankService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// Register creates the caller's player aggregate. Registration is what makes
// a user scoreable; unregistered roster members are skipped at resolution.
func Register(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	userID := i.Member.User.ID

	var player models.Player
	result := db.FirstOrCreate(&player, models.Player{GuildID: i.GuildID, UserID: userID})
	if result.Error != nil {
		common.SendError(s, i, result.Error, db)
		return
	}
	if result.RowsAffected == 0 {
		common.RespondEphemeral(s, i, "You are already registered.")
		return
	}

	player.RegisteredAt = time.Now()
	name := common.GetUsernameFromUser(i.Member.User)
	if name != "" {
		player.DisplayName = &name
	}
	if err := db.Save(&player).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("Registered with %d points.", player.Points))
}

// Profile shows a player's points, rank and record. Defaults to the caller.
func Profile(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	userID := i.Member.User.ID
	options := i.ApplicationCommandData().Options
	if len(options) > 0 {
		userID = options[0].UserValue(s).ID
	}

	var player models.Player
	result := db.Where("guild_id = ? AND user_id = ?", i.GuildID, userID).First(&player)
	if result.RowsAffected == 0 {
		if userID == i.Member.User.ID {
			common.RespondEphemeral(s, i, "You are not registered.")
		} else {
			common.RespondEphemeral(s, i, "That user is not registered.")
		}
		return
	}
	if result.Error != nil {
		common.SendError(s, i, result.Error, db)
		return
	}

	table, err := rankService.LoadTable(db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	rankLine := "None"
	if rank := table.CurrentRank(player.Points); rank != nil {
		rankLine = fmt.Sprintf("<@&%s> (%d)", rank.RoleID, rank.Points)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s Stats", player.GetDisplayNameSafe()),
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Points", Value: fmt.Sprintf("%d", player.Points), Inline: true},
			{Name: "Rank", Value: rankLine, Inline: true},
			{Name: "Wins", Value: fmt.Sprintf("%d", player.Wins), Inline: true},
			{Name: "Losses", Value: fmt.Sprintf("%d", player.Losses), Inline: true},
			{Name: "Draws", Value: fmt.Sprintf("%d", player.Draws), Inline: true},
			{Name: "Games", Value: fmt.Sprintf("%d", player.Games()), Inline: true},
			{Name: "Registered", Value: player.RegisteredAt.Format("02 Jan 2006 15:04"), Inline: true},
		},
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}
