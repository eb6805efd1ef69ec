package models

// ScoreUpdate is the ledger entry for one point mutation applied to one
// player by one game resolution. ModifyAmount is signed: negative for
// losses. The undo engine zeroes and removes these rows as it reverses them,
// so no gorm.Model soft-delete here.
type ScoreUpdate struct {
	ID           uint   `gorm:"primaryKey"`
	GuildID      string `gorm:"index:score_game_idx; size:64"`
	ChannelID    string `gorm:"index:score_game_idx; size:64"`
	GameID       int    `gorm:"index:score_game_idx"`
	UserID       string `gorm:"size:64"`
	ModifyAmount int
}
