package models

import "gorm.io/gorm"

type GameState int

const (
	StatePicking GameState = iota
	StateUndecided
	StateDecided
	StateDraw
	StateCanceled
)

func (s GameState) String() string {
	switch s {
	case StatePicking:
		return "Picking"
	case StateUndecided:
		return "Undecided"
	case StateDecided:
		return "Decided"
	case StateDraw:
		return "Draw"
	case StateCanceled:
		return "Canceled"
	}
	return "Unknown"
}

// GameResult is one game in a lobby's history. Rosters live in GamePlayer
// rows keyed by the same (guild, lobby, game) triple.
type GameResult struct {
	gorm.Model
	ID          uint   `gorm:"primaryKey"`
	GuildID     string `gorm:"uniqueIndex:game_lobby_idx; size:64"`
	LobbyID     string `gorm:"uniqueIndex:game_lobby_idx; size:64"`
	GameID      int    `gorm:"uniqueIndex:game_lobby_idx"`
	State       GameState
	WinningTeam int
	SubmitterID string `gorm:"size:64"`
	Comment     *string
}

// GamePlayer is one roster slot of a game. Team is 1 or 2.
type GamePlayer struct {
	ID      uint   `gorm:"primaryKey"`
	GuildID string `gorm:"index:game_player_idx; size:64"`
	LobbyID string `gorm:"index:game_player_idx; size:64"`
	GameID  int    `gorm:"index:game_player_idx"`
	UserID  string `gorm:"size:64"`
	Team    int
}
