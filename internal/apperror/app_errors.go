package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game already exists")

	ErrInvalidSelection   = errors.New("invalid selection")
	ErrNoSelection        = errors.New("no piece selected")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrInvariantViolation = errors.New("game state invariant violated")
	ErrNoAvailableMoves   = errors.New("no available moves")
)
