package gameService

import (
	"fmt"

	"lobbyRankBot/models"
)

// Action is a requested transition on a game record.
type Action int

const (
	ActionDecide Action = iota
	ActionDraw
	ActionCancel
	ActionUndo
	ActionUndoDraw
)

// checkTransition enforces the game lifecycle guards. It runs before any
// mutation, so a rejected action leaves the game and all players untouched.
func checkTransition(state models.GameState, action Action) error {
	switch action {
	case ActionCancel:
		if state != models.StateUndecided && state != models.StatePicking {
			return fmt.Errorf("%w: only undecided or picking games can be cancelled", ErrInvalidState)
		}
	case ActionDraw:
		if state != models.StateUndecided {
			return fmt.Errorf("%w: only undecided games can be called a draw", ErrInvalidState)
		}
	case ActionDecide:
		if state == models.StateDecided || state == models.StateDraw {
			return fmt.Errorf("%w: result already recorded, undo it first", ErrInvalidState)
		}
	case ActionUndo:
		if state != models.StateDecided {
			return fmt.Errorf("%w: only decided games can be undone", ErrInvalidState)
		}
	case ActionUndoDraw:
		if state != models.StateDraw {
			return fmt.Errorf("%w: only drawn games can have their draw undone", ErrInvalidState)
		}
	}
	return nil
}
