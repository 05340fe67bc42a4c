package board

import (
	"errors"
	"fmt"
)

// Size is the board edge length.
const Size = 8

var (
	ErrOutOfBounds = errors.New("square out of bounds")
	ErrNotPlayable = errors.New("square not playable")
	ErrEmptySquare = errors.New("square is empty")
	ErrOccupied    = errors.New("square is occupied")
)

// Square is a 0-indexed (row, col) coordinate. Row 0 is the top of the board
// (Dark's back row), row 7 the bottom (Light's back row).
type Square struct {
	Row int
	Col int
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// Playable reports whether the square is one of the 32 dark squares pieces
// may occupy: (row+col) odd.
func (s Square) Playable() bool {
	return s.InBounds() && (s.Row+s.Col)%2 == 1
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Validate returns ErrOutOfBounds for coordinates outside the grid and
// ErrNotPlayable for light squares.
func Validate(s Square) error {
	if !s.InBounds() {
		return ErrOutOfBounds
	}
	if (s.Row+s.Col)%2 != 1 {
		return ErrNotPlayable
	}
	return nil
}

type Side uint8

const (
	SideNone Side = iota
	SideLight
	SideDark
)

func (s Side) String() string {
	switch s {
	case SideLight:
		return "light"
	case SideDark:
		return "dark"
	default:
		return "none"
	}
}

func (s Side) Opponent() Side {
	switch s {
	case SideLight:
		return SideDark
	case SideDark:
		return SideLight
	default:
		return SideNone
	}
}

// Forward is the row delta of this side's forward direction. Light starts on
// rows 6-7 and advances toward row 0.
func (s Side) Forward() int {
	if s == SideLight {
		return -1
	}
	return 1
}

// CrownRow is the farthest row from the side's start; a MAN reaching it is
// promoted.
func (s Side) CrownRow() int {
	if s == SideLight {
		return 0
	}
	return Size - 1
}

type Rank uint8

const (
	RankMan Rank = iota
	RankKing
)

func (r Rank) String() string {
	if r == RankKing {
		return "king"
	}
	return "man"
}

// Piece is one checker. The zero value marks an empty square.
type Piece struct {
	Side Side
	Rank Rank
}

func (p Piece) Empty() bool {
	return p.Side == SideNone
}

func (p Piece) IsKing() bool {
	return p.Rank == RankKing
}

func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return p.Side.String() + "-" + p.Rank.String()
}

// Board is pure piece storage over the 8x8 grid. It holds no rule knowledge
// beyond bounds and parity checks. Board is a value type: assignment makes an
// independent deep snapshot, which the capture search relies on.
type Board struct {
	grid [Size][Size]Piece
}

// New returns the standard starting position: eight men per side on the
// playable squares of the two back rows.
func New() Board {
	var b Board
	for row := 0; row < 2; row++ {
		for col := 0; col < Size; col++ {
			sq := Square{Row: row, Col: col}
			if sq.Playable() {
				b.grid[row][col] = Piece{Side: SideDark, Rank: RankMan}
			}
		}
	}
	for row := Size - 2; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sq := Square{Row: row, Col: col}
			if sq.Playable() {
				b.grid[row][col] = Piece{Side: SideLight, Rank: RankMan}
			}
		}
	}
	return b
}

// Empty returns a board with no pieces.
func Empty() Board {
	return Board{}
}

func (b Board) Get(sq Square) (Piece, error) {
	if err := Validate(sq); err != nil {
		return Piece{}, err
	}
	return b.grid[sq.Row][sq.Col], nil
}

// At is the unchecked read used by move generation. Off-board or unplayable
// squares read as empty; callers bound their own scans.
func (b Board) At(sq Square) Piece {
	if !sq.InBounds() {
		return Piece{}
	}
	return b.grid[sq.Row][sq.Col]
}

func (b *Board) Place(sq Square, p Piece) error {
	if err := Validate(sq); err != nil {
		return err
	}
	if p.Empty() {
		return fmt.Errorf("place %s: piece required", sq)
	}
	if !b.grid[sq.Row][sq.Col].Empty() {
		return ErrOccupied
	}
	b.grid[sq.Row][sq.Col] = p
	return nil
}

func (b *Board) Remove(sq Square) (Piece, error) {
	if err := Validate(sq); err != nil {
		return Piece{}, err
	}
	p := b.grid[sq.Row][sq.Col]
	if p.Empty() {
		return Piece{}, ErrEmptySquare
	}
	b.grid[sq.Row][sq.Col] = Piece{}
	return p, nil
}

// Move relocates a piece without any rule checking.
func (b *Board) Move(from, to Square) error {
	if err := Validate(from); err != nil {
		return err
	}
	if err := Validate(to); err != nil {
		return err
	}
	p := b.grid[from.Row][from.Col]
	if p.Empty() {
		return ErrEmptySquare
	}
	if !b.grid[to.Row][to.Col].Empty() {
		return ErrOccupied
	}
	b.grid[from.Row][from.Col] = Piece{}
	b.grid[to.Row][to.Col] = p
	return nil
}

// Promote turns a MAN into a KING. Promoting a KING is a no-op.
func (b *Board) Promote(sq Square) error {
	if err := Validate(sq); err != nil {
		return err
	}
	p := b.grid[sq.Row][sq.Col]
	if p.Empty() {
		return ErrEmptySquare
	}
	if p.Rank != RankKing {
		b.grid[sq.Row][sq.Col].Rank = RankKing
	}
	return nil
}

func (b Board) CountPieces(side Side) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.grid[row][col].Side == side {
				n++
			}
		}
	}
	return n
}

// SquaresOf lists the squares currently occupied by the given side, row-major.
func (b Board) SquaresOf(side Side) []Square {
	var out []Square
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.grid[row][col].Side == side {
				out = append(out, Square{Row: row, Col: col})
			}
		}
	}
	return out
}
