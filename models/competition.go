package models

import "gorm.io/gorm"

// Competition holds a guild's ranking settings. Created lazily the first time
// a guild is touched, never deleted.
type Competition struct {
	gorm.Model
	ID                  uint   `gorm:"primaryKey"`
	GuildID             string `gorm:"uniqueIndex; size:64"`
	DefaultWinModifier  int    `gorm:"default:10"`
	DefaultLossModifier int    `gorm:"default:5"`
}
