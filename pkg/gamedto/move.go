package gamedto

// SquareRef names a playable square both ways front-ends address it: grid
// coordinates and the 1..32 diagram number.
type SquareRef struct {
	Row    int
	Col    int
	Number int
}

// Jump is one capture step of a chain.
type Jump struct {
	Over SquareRef
	To   SquareRef
}

// Move is one selectable move: a simple step (no jumps) or a capture chain.
type Move struct {
	From     SquareRef
	To       SquareRef
	Jumps    []Jump
	Capture  bool
	Notation string
}

// LegalMovesResult answers a per-square legal-move query. Reason explains an
// empty list: "ok", "empty_square", "not_your_piece" or "must_continue".
type LegalMovesResult struct {
	Square SquareRef
	Moves  []Move
	Reason string
}

// MoveSummary reports what a submitted move did.
type MoveSummary struct {
	State        *SessionState
	Notation     string
	Captured     []SquareRef
	Promoted     bool
	TurnComplete bool
	Turn         string
	Outcome      Outcome
}
