package rules

import "errors"

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameFinished   = errors.New("game finished")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrInvalidState   = errors.New("invalid game state")
)
