package rankService

import (
	"fmt"
	"strings"

	"lobbyRankBot/models"
	"lobbyRankBot/services/common"
	"lobbyRankBot/services/guildService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// AddRank registers or updates a rank tier for a guild role.
func AddRank(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	role := options[0].RoleValue(s, i.GuildID)
	points := int(options[1].IntValue())

	var winMod, lossMod *int
	for _, opt := range options[2:] {
		val := int(opt.IntValue())
		switch opt.Name {
		case "win-modifier":
			winMod = &val
		case "loss-modifier":
			lossMod = &val
		}
	}

	var rank models.Rank
	result := db.Where("guild_id = ? AND role_id = ?", i.GuildID, role.ID).First(&rank)
	if result.RowsAffected == 0 {
		rank = models.Rank{GuildID: i.GuildID, RoleID: role.ID}
	}
	rank.Points = points
	rank.WinModifier = winMod
	rank.LossModifier = lossMod
	if err := db.Save(&rank).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("Rank <@&%s> set at %d points.", role.ID, points))
}

// RemoveRank drops a rank tier. Player points are untouched; they simply
// stop qualifying for the removed tier.
func RemoveRank(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	role := i.ApplicationCommandData().Options[0].RoleValue(s, i.GuildID)
	removed, err := deleteRank(db, i.GuildID, role.ID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if removed == 0 {
		common.RespondEphemeral(s, i, "That role is not a rank.")
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("Rank <@&%s> removed.", role.ID))
}

// deleteRank removes a tier outright. A soft delete would leave the row
// occupying the (guild_id, role_id) unique index and block ever re-adding
// the role.
func deleteRank(db *gorm.DB, guildID, roleID string) (int64, error) {
	result := db.Unscoped().Where("guild_id = ? AND role_id = ?", guildID, roleID).Delete(&models.Rank{})
	return result.RowsAffected, result.Error
}

// ShowRanks lists the guild's rank ladder from highest threshold down, with
// the effective win/loss modifiers for each tier.
func ShowRanks(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	comp, err := guildService.GetOrCreateCompetition(db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	table, err := LoadTable(db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	ranks := table.Ranks()
	if len(ranks) == 0 {
		common.RespondEphemeral(s, i, "There are currently no ranks set up.")
		return
	}

	var lines []string
	for idx := len(ranks) - 1; idx >= 0; idx-- {
		rank := ranks[idx]
		winMod := comp.DefaultWinModifier
		if rank.WinModifier != nil {
			winMod = *rank.WinModifier
		}
		lossMod := comp.DefaultLossModifier
		if rank.LossModifier != nil {
			lossMod = *rank.LossModifier
		}
		lines = append(lines, fmt.Sprintf("<@&%s> - (%d) W: (+%d) L: (-%d)", rank.RoleID, rank.Points, winMod, lossMod))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Ranks",
		Description: strings.Join(lines, "\n"),
		Color:       0x3498db,
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}
