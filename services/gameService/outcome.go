package gameService

import "lobbyRankBot/models"

// RankChange classifies whether a single resolution moved a player across a
// rank threshold.
type RankChange int

const (
	RankChangeNone RankChange = iota
	RankUp
	DeRank
)

func (c RankChange) String() string {
	switch c {
	case RankUp:
		return "RankUp"
	case DeRank:
		return "DeRank"
	}
	return "None"
}

// PlayerOutcome is the per-player record produced by one resolution: the
// mutated aggregate, the signed delta applied, and the rank movement.
type PlayerOutcome struct {
	Player     *models.Player
	Delta      int
	RankBefore *models.Rank
	Change     RankChange
	RankAfter  *models.Rank
}

// GameSummary is what the engine hands back for rendering after a
// Decide/Draw/Cancel/Undo. The engine itself never formats user-facing text.
type GameSummary struct {
	GuildID     string
	LobbyID     string
	GameID      int
	State       models.GameState
	WinningTeam int
	SubmitterID string
	Comment     string
	Winners     []PlayerOutcome
	Losers      []PlayerOutcome
	Drawn       []*models.Player
}
