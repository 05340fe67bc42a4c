package board

import (
	"errors"
	"testing"
)

func TestNewStartingLayout(t *testing.T) {
	b := New()

	if got := b.CountPieces(SideLight); got != 8 {
		t.Fatalf("light pieces: got %d, want 8", got)
	}
	if got := b.CountPieces(SideDark); got != 8 {
		t.Fatalf("dark pieces: got %d, want 8", got)
	}

	for _, side := range []Side{SideLight, SideDark} {
		for _, sq := range b.SquaresOf(side) {
			if !sq.Playable() {
				t.Fatalf("%s piece on unplayable square %s", side, sq)
			}
			if b.At(sq).Rank != RankMan {
				t.Fatalf("starting piece at %s is not a man", sq)
			}
		}
	}

	// Dark occupies the top two rows, light the bottom two.
	for _, sq := range b.SquaresOf(SideDark) {
		if sq.Row > 1 {
			t.Fatalf("dark piece outside rows 0-1: %s", sq)
		}
	}
	for _, sq := range b.SquaresOf(SideLight) {
		if sq.Row < Size-2 {
			t.Fatalf("light piece outside rows 6-7: %s", sq)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		sq   Square
		want error
	}{
		{Square{Row: 0, Col: 1}, nil},
		{Square{Row: 7, Col: 6}, nil},
		{Square{Row: 0, Col: 0}, ErrNotPlayable},
		{Square{Row: 4, Col: 4}, ErrNotPlayable},
		{Square{Row: -1, Col: 2}, ErrOutOfBounds},
		{Square{Row: 8, Col: 1}, ErrOutOfBounds},
		{Square{Row: 3, Col: 9}, ErrOutOfBounds},
	}
	for _, tc := range cases {
		if err := Validate(tc.sq); !errors.Is(err, tc.want) {
			t.Fatalf("Validate(%s): got %v, want %v", tc.sq, err, tc.want)
		}
	}
}

func TestPlaceRemoveMove(t *testing.T) {
	b := Empty()
	sq := Square{Row: 3, Col: 2}
	man := Piece{Side: SideLight, Rank: RankMan}

	if err := b.Place(sq, man); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := b.Place(sq, man); !errors.Is(err, ErrOccupied) {
		t.Fatalf("Place on occupied: got %v, want ErrOccupied", err)
	}
	if err := b.Place(Square{Row: 0, Col: 0}, man); !errors.Is(err, ErrNotPlayable) {
		t.Fatalf("Place on light square: got %v, want ErrNotPlayable", err)
	}

	got, err := b.Get(sq)
	if err != nil || got != man {
		t.Fatalf("Get: got %v, %v", got, err)
	}

	to := Square{Row: 2, Col: 1}
	if err := b.Move(sq, to); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !b.At(sq).Empty() || b.At(to) != man {
		t.Fatalf("Move did not relocate: from=%v to=%v", b.At(sq), b.At(to))
	}
	if err := b.Move(sq, to); !errors.Is(err, ErrEmptySquare) {
		t.Fatalf("Move from empty: got %v, want ErrEmptySquare", err)
	}

	removed, err := b.Remove(to)
	if err != nil || removed != man {
		t.Fatalf("Remove: got %v, %v", removed, err)
	}
	if _, err := b.Remove(to); !errors.Is(err, ErrEmptySquare) {
		t.Fatalf("Remove from empty: got %v, want ErrEmptySquare", err)
	}
}

func TestPromote(t *testing.T) {
	b := Empty()
	sq := Square{Row: 0, Col: 1}
	if err := b.Place(sq, Piece{Side: SideLight, Rank: RankMan}); err != nil {
		t.Fatalf("Place: %v", err)
	}

	if err := b.Promote(sq); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if !b.At(sq).IsKing() {
		t.Fatalf("piece not promoted: %v", b.At(sq))
	}
	// Promoting a king again is a no-op.
	if err := b.Promote(sq); err != nil {
		t.Fatalf("Promote king: %v", err)
	}
	if !b.At(sq).IsKing() {
		t.Fatalf("king lost its rank: %v", b.At(sq))
	}
	if err := b.Promote(Square{Row: 5, Col: 2}); !errors.Is(err, ErrEmptySquare) {
		t.Fatalf("Promote empty: got %v, want ErrEmptySquare", err)
	}
}

// The capture search copies Board by value; a copy must be fully independent
// of its source.
func TestBoardValueCopy(t *testing.T) {
	b := New()
	cp := b
	if err := cp.Move(Square{Row: 6, Col: 1}, Square{Row: 5, Col: 2}); err != nil {
		t.Fatalf("Move on copy: %v", err)
	}
	if _, err := cp.Remove(Square{Row: 0, Col: 1}); err != nil {
		t.Fatalf("Remove on copy: %v", err)
	}

	if b.At(Square{Row: 6, Col: 1}).Empty() {
		t.Fatalf("mutating the copy moved a piece on the original")
	}
	if b.At(Square{Row: 0, Col: 1}).Empty() {
		t.Fatalf("mutating the copy removed a piece on the original")
	}
	if got := b.CountPieces(SideDark); got != 8 {
		t.Fatalf("original dark count changed: %d", got)
	}
}

func TestSideHelpers(t *testing.T) {
	if SideLight.Opponent() != SideDark || SideDark.Opponent() != SideLight {
		t.Fatalf("Opponent mapping wrong")
	}
	if SideLight.Forward() != -1 || SideDark.Forward() != 1 {
		t.Fatalf("Forward directions wrong: light=%d dark=%d", SideLight.Forward(), SideDark.Forward())
	}
	if SideLight.CrownRow() != 0 || SideDark.CrownRow() != 7 {
		t.Fatalf("CrownRow wrong: light=%d dark=%d", SideLight.CrownRow(), SideDark.CrownRow())
	}
	if s := (Piece{Side: SideDark, Rank: RankKing}).String(); s != "dark-king" {
		t.Fatalf("Piece.String: %q", s)
	}
	if s := (Piece{}).String(); s != "empty" {
		t.Fatalf("empty Piece.String: %q", s)
	}
}
