package guildService

import (
	"fmt"

	"lobbyRankBot/models"
	"lobbyRankBot/services/common"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// GetOrCreateCompetition returns the guild's competition settings, creating
// them with the default modifiers on first use.
func GetOrCreateCompetition(db *gorm.DB, guildID string) (*models.Competition, error) {
	var comp models.Competition
	result := db.Where("guild_id = ?", guildID).First(&comp)
	if result.RowsAffected == 0 {
		comp = models.Competition{
			GuildID:             guildID,
			DefaultWinModifier:  10,
			DefaultLossModifier: 5,
		}
		if err := db.Create(&comp).Error; err != nil {
			return nil, err
		}
		return &comp, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &comp, nil
}

// SetDefaultModifiers updates the points a player gains or loses when their
// rank has no override of its own.
func SetDefaultModifiers(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	winMod := int(options[0].IntValue())
	lossMod := int(options[1].IntValue())
	if winMod < 0 || lossMod < 0 {
		common.RespondEphemeral(s, i, "Modifiers are magnitudes and cannot be negative.")
		return
	}

	comp, err := GetOrCreateCompetition(db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	comp.DefaultWinModifier = winMod
	comp.DefaultLossModifier = lossMod
	if err := db.Save(comp).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("Default modifiers set to W: (+%d) L: (-%d).", winMod, lossMod))
}
