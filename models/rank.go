package models

import "gorm.io/gorm"

// Rank ties a guild role to a point threshold. A player holds the rank with
// the highest threshold strictly below their points. Nil modifiers fall back
// to the competition defaults.
type Rank struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	GuildID      string `gorm:"uniqueIndex:rank_role_idx; size:64"`
	RoleID       string `gorm:"uniqueIndex:rank_role_idx; size:64"`
	Points       int
	WinModifier  *int
	LossModifier *int
}
