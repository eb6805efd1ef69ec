package models

import (
	"gorm.io/gorm"
	"time"
)

// Player is one registered member of a guild's competition. Point and
// win/loss/draw aggregates are only ever mutated by the game engine.
type Player struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	GuildID      string `gorm:"uniqueIndex:player_guild_idx; size:64"`
	UserID       string `gorm:"uniqueIndex:player_guild_idx; size:64"`
	DisplayName  *string
	Points       int
	Wins         int
	Losses       int
	Draws        int
	RegisteredAt time.Time
}

// Games is the total number of resolved games the player took part in.
func (p *Player) Games() int {
	return p.Wins + p.Losses + p.Draws
}

func (p *Player) GetDisplayNameSafe() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	return "<@" + p.UserID + ">"
}
