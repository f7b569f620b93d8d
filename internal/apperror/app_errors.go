package apperror

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrRoundFinished   = errors.New("round is already finished")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidState    = errors.New("invalid game state")
)
