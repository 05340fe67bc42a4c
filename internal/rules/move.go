package rules

import (
	"strconv"
	"strings"

	"github.com/park285/makhos/internal/board"
)

// Jump is one capture step: the square of the captured piece and the landing
// square behind it.
type Jump struct {
	Over board.Square
	To   board.Square
}

// Move is either a simple step (nil Jumps, To set) or one continuous capture
// sequence by a single piece; for captures To always equals the final jump's
// landing square.
type Move struct {
	From  board.Square
	To    board.Square
	Jumps []Jump
}

func (m Move) IsCapture() bool {
	return len(m.Jumps) > 0
}

// Captured lists the jumped squares in capture order.
func (m Move) Captured() []board.Square {
	if len(m.Jumps) == 0 {
		return nil
	}
	out := make([]board.Square, len(m.Jumps))
	for i, j := range m.Jumps {
		out[i] = j.Over
	}
	return out
}

// Notation renders draughts move notation: "21-17" for a simple move,
// "26x17x10" for a capture chain over the landing squares.
func (m Move) Notation() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(board.SquareNumber(m.From)))
	if !m.IsCapture() {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(board.SquareNumber(m.To)))
		return sb.String()
	}
	for _, j := range m.Jumps {
		sb.WriteByte('x')
		sb.WriteString(strconv.Itoa(board.SquareNumber(j.To)))
	}
	return sb.String()
}

func (m Move) Equal(o Move) bool {
	if m.From != o.From || m.To != o.To || len(m.Jumps) != len(o.Jumps) {
		return false
	}
	for i := range m.Jumps {
		if m.Jumps[i] != o.Jumps[i] {
			return false
		}
	}
	return true
}

// prefixOf reports whether m is a nonempty leading slice of the chain: same
// origin, the first len(m.Jumps) jump pairs identical, and To on the last of
// them.
func (m Move) prefixOf(chain Move) bool {
	if !m.IsCapture() || m.From != chain.From || len(m.Jumps) > len(chain.Jumps) {
		return false
	}
	for i := range m.Jumps {
		if m.Jumps[i] != chain.Jumps[i] {
			return false
		}
	}
	return m.To == m.Jumps[len(m.Jumps)-1].To
}
