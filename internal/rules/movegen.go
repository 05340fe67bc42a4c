package rules

import "github.com/park285/makhos/internal/board"

// Reason explains an empty answer from a legal-move query.
type Reason uint8

const (
	ReasonOK Reason = iota
	ReasonEmptySquare
	ReasonNotYourPiece
	ReasonMustContinue
)

func (r Reason) String() string {
	switch r {
	case ReasonEmptySquare:
		return "empty_square"
	case ReasonNotYourPiece:
		return "not_your_piece"
	case ReasonMustContinue:
		return "must_continue"
	default:
		return "ok"
	}
}

type delta struct{ dr, dc int }

var diagonals = [4]delta{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// simpleMoves enumerates the non-capturing moves for the piece at from. A man
// steps one square along its two forward diagonals; a king slides any
// distance along all four until blocked, every stop a separate move.
func simpleMoves(b board.Board, from board.Square, p board.Piece) []Move {
	var out []Move
	if p.Rank == board.RankMan {
		f := p.Side.Forward()
		for _, dc := range [2]int{-1, 1} {
			to := board.Square{Row: from.Row + f, Col: from.Col + dc}
			if to.InBounds() && b.At(to).Empty() {
				out = append(out, Move{From: from, To: to})
			}
		}
		return out
	}
	for _, d := range diagonals {
		to := board.Square{Row: from.Row + d.dr, Col: from.Col + d.dc}
		for to.InBounds() && b.At(to).Empty() {
			out = append(out, Move{From: from, To: to})
			to = board.Square{Row: to.Row + d.dr, Col: to.Col + d.dc}
		}
	}
	return out
}

// captureSteps enumerates the single capture steps available to the piece at
// from on the given board.
func captureSteps(b board.Board, from board.Square, p board.Piece, v Variant) []Jump {
	if p.Rank == board.RankMan {
		return manCaptureSteps(b, from, p, v)
	}
	return kingCaptureSteps(b, from, p, v)
}

func manCaptureSteps(b board.Board, from board.Square, p board.Piece, v Variant) []Jump {
	var out []Jump
	for _, d := range diagonals {
		if !v.ManCapturesBackward && d.dr != p.Side.Forward() {
			continue
		}
		over := board.Square{Row: from.Row + d.dr, Col: from.Col + d.dc}
		to := board.Square{Row: from.Row + 2*d.dr, Col: from.Col + 2*d.dc}
		if !to.InBounds() {
			continue
		}
		victim := b.At(over)
		if victim.Empty() || victim.Side == p.Side {
			continue
		}
		if !b.At(to).Empty() {
			continue
		}
		out = append(out, Jump{Over: over, To: to})
	}
	return out
}

// kingCaptureSteps scans each ray for the first occupied square. An enemy
// there with empty squares behind it yields one step per legal landing; a
// friendly piece, or a second piece directly behind the enemy, blocks the
// ray. Only one piece is ever jumped per ray pass.
func kingCaptureSteps(b board.Board, from board.Square, p board.Piece, v Variant) []Jump {
	var out []Jump
	for _, d := range diagonals {
		over := board.Square{Row: from.Row + d.dr, Col: from.Col + d.dc}
		for over.InBounds() && b.At(over).Empty() {
			over = board.Square{Row: over.Row + d.dr, Col: over.Col + d.dc}
		}
		if !over.InBounds() || b.At(over).Side == p.Side {
			continue
		}
		to := board.Square{Row: over.Row + d.dr, Col: over.Col + d.dc}
		for to.InBounds() && b.At(to).Empty() {
			out = append(out, Jump{Over: over, To: to})
			if !v.KingLandsAnywhereBeyond {
				break
			}
			to = board.Square{Row: to.Row + d.dr, Col: to.Col + d.dc}
		}
	}
	return out
}

// captureChains returns the maximal capture sequences for the piece at from.
// The search is functional: every branch works on its own board snapshot with
// the jumped piece removed and the mover relocated, so a chain may land on a
// square cleared earlier in the same chain (the origin included) and no piece
// can be jumped twice. The piece's rank is fixed for the whole search;
// promotion is resolved by the caller when the turn completes.
func captureChains(b board.Board, from board.Square, p board.Piece, v Variant) []Move {
	chains := chainJumps(b, from, p, v)
	out := make([]Move, 0, len(chains))
	for _, jumps := range chains {
		out = append(out, Move{From: from, To: jumps[len(jumps)-1].To, Jumps: jumps})
	}
	return out
}

func chainJumps(b board.Board, from board.Square, p board.Piece, v Variant) [][]Jump {
	steps := captureSteps(b, from, p, v)
	var out [][]Jump
	for _, st := range steps {
		nb := b
		_, _ = nb.Remove(st.Over)
		_ = nb.Move(from, st.To)
		subs := chainJumps(nb, st.To, p, v)
		if len(subs) == 0 {
			out = append(out, []Jump{st})
			continue
		}
		for _, sub := range subs {
			chain := make([]Jump, 0, len(sub)+1)
			chain = append(chain, st)
			chain = append(chain, sub...)
			out = append(out, chain)
		}
	}
	return out
}

func sideHasCapture(b board.Board, side board.Side, v Variant) bool {
	for _, sq := range b.SquaresOf(side) {
		if len(captureSteps(b, sq, b.At(sq), v)) > 0 {
			return true
		}
	}
	return false
}

// sideMoves returns every legal move for the side with the global
// mandatory-capture rule applied: if any piece can capture, only capture
// chains are returned.
func sideMoves(b board.Board, side board.Side, v Variant) []Move {
	var out []Move
	if sideHasCapture(b, side, v) {
		for _, sq := range b.SquaresOf(side) {
			out = append(out, captureChains(b, sq, b.At(sq), v)...)
		}
		return out
	}
	for _, sq := range b.SquaresOf(side) {
		out = append(out, simpleMoves(b, sq, b.At(sq))...)
	}
	return out
}

// pieceMoves answers a legal-move query for one square, mandatory-capture
// filter applied relative to the whole side.
func pieceMoves(b board.Board, sq board.Square, side board.Side, v Variant) ([]Move, Reason) {
	p := b.At(sq)
	if p.Empty() {
		return nil, ReasonEmptySquare
	}
	if p.Side != side {
		return nil, ReasonNotYourPiece
	}
	if sideHasCapture(b, side, v) {
		return captureChains(b, sq, p, v), ReasonOK
	}
	return simpleMoves(b, sq, p), ReasonOK
}
