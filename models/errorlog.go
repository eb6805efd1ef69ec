package models

import (
	"gorm.io/gorm"
)

// ErrorLog is a persisted copy of every error surfaced to a guild, kept for
// later review since interaction replies are ephemeral.
type ErrorLog struct {
	gorm.Model
	ID      uint   `gorm:"primaryKey"`
	GuildID string `gorm:"size:64"`
	Message string
}
