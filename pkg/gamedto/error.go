package gamedto

// DomainError carries a stable machine code alongside the human message.
type DomainError struct {
	Code    string
	Message string
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "game service error"
}

const (
	CodeOutOfBounds     = "out_of_bounds"
	CodeNotPlayable     = "not_playable"
	CodeEmptySquare     = "empty_square"
	CodeNotYourPiece    = "not_your_piece"
	CodeMustContinue    = "must_continue"
	CodeIllegalMove     = "illegal_move"
	CodeNotYourTurn     = "not_your_turn"
	CodeGameFinished    = "game_finished"
	CodeSessionNotFound = "session_not_found"
	CodeInvalidPosition = "invalid_position"
	CodeInvalidSquare   = "invalid_square"
	CodeUnknownVariant  = "unknown_variant"
	CodeInternal        = "internal"
)
