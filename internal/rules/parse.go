package rules

import (
	"fmt"
	"strings"

	"github.com/park285/makhos/internal/board"
)

// MoveFromNotation parses draughts move text ("21-17", "26x17x10") and
// resolves it against the current legal moves. Capture text lists landing
// squares only; the jumped squares are recovered from the matching legal
// chain, so a prefix of a longer chain resolves to that prefix.
func (g *Game) MoveFromNotation(text string) (Move, error) {
	if g.outcome.Status != StatusInProgress {
		return Move{}, ErrGameFinished
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Move{}, fmt.Errorf("%w: empty move text", ErrIllegalMove)
	}

	capture := strings.ContainsAny(text, "xX")
	var parts []string
	if capture {
		parts = strings.FieldsFunc(text, func(r rune) bool { return r == 'x' || r == 'X' })
	} else {
		parts = strings.Split(text, "-")
	}
	if len(parts) < 2 {
		return Move{}, fmt.Errorf("%w: %q", board.ErrInvalidSquare, text)
	}
	squares := make([]board.Square, len(parts))
	for i, p := range parts {
		sq, err := board.ParseSquareRef(p)
		if err != nil {
			return Move{}, err
		}
		squares[i] = sq
	}

	if !capture {
		if len(squares) != 2 {
			return Move{}, fmt.Errorf("%w: %q", board.ErrInvalidSquare, text)
		}
		return Move{From: squares[0], To: squares[1]}, nil
	}

	from, landings := squares[0], squares[1:]
	for _, legal := range g.LegalMoves() {
		if !legal.IsCapture() || legal.From != from || len(landings) > len(legal.Jumps) {
			continue
		}
		match := true
		for i, l := range landings {
			if legal.Jumps[i].To != l {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		jumps := append([]Jump(nil), legal.Jumps[:len(landings)]...)
		return Move{From: from, To: landings[len(landings)-1], Jumps: jumps}, nil
	}
	return Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, text)
}
