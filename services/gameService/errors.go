package gameService

import "errors"

var (
	ErrLobbyNotFound = errors.New("channel is not a lobby")
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidState  = errors.New("game state does not allow this action")
	ErrInvalidTeam   = errors.New("winning team must be 1 or 2")
)
