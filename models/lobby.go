package models

import "gorm.io/gorm"

// Lobby marks a guild channel as a game queue. Games are numbered per lobby
// from CurrentGameCount, starting at 1.
type Lobby struct {
	gorm.Model
	ID                    uint   `gorm:"primaryKey"`
	GuildID               string `gorm:"uniqueIndex:lobby_channel_idx; size:64"`
	ChannelID             string `gorm:"uniqueIndex:lobby_channel_idx; size:64"`
	CurrentGameCount      int
	AnnouncementChannelID *string `gorm:"size:64"`
}
