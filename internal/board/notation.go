package board

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidSquare   = errors.New("invalid square reference")
)

// Playable squares are numbered 1..32 row-major over the dark squares, four
// per row, matching the usual draughts diagram numbering.

// SquareNumber returns the 1..32 number of a playable square, 0 otherwise.
func SquareNumber(sq Square) int {
	if !sq.Playable() {
		return 0
	}
	return sq.Row*4 + sq.Col/2 + 1
}

func SquareFromNumber(n int) (Square, error) {
	if n < 1 || n > 32 {
		return Square{}, fmt.Errorf("%w: number %d outside 1..32", ErrInvalidSquare, n)
	}
	i := n - 1
	row := i / 4
	col := 2*(i%4) + (row+1)%2
	return Square{Row: row, Col: col}, nil
}

// ParseSquareRef accepts either a square number ("18") or a coordinate pair
// ("4,3") and returns a playable square.
func ParseSquareRef(s string) (Square, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Square{}, fmt.Errorf("%w: empty", ErrInvalidSquare)
	}
	if row, col, ok := strings.Cut(s, ","); ok {
		r, err := strconv.Atoi(strings.TrimSpace(row))
		if err != nil {
			return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
		}
		c, err := strconv.Atoi(strings.TrimSpace(col))
		if err != nil {
			return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
		}
		sq := Square{Row: r, Col: c}
		if err := Validate(sq); err != nil {
			return Square{}, err
		}
		return sq, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return SquareFromNumber(n)
}

// Position strings follow the draughts FEN convention, W for the light side
// and B for the dark side: "W:W21,22,K5:B9,10" is light to move, light men on
// 21 and 22, a light king on 5, dark men on 9 and 10.

func sideLetter(s Side) string {
	if s == SideDark {
		return "B"
	}
	return "W"
}

// FormatPosition encodes a board plus side to move as a position string.
func FormatPosition(b Board, turn Side) string {
	var sb strings.Builder
	sb.WriteString(sideLetter(turn))
	for _, side := range []Side{SideLight, SideDark} {
		sb.WriteByte(':')
		sb.WriteString(sideLetter(side))
		squares := b.SquaresOf(side)
		sort.Slice(squares, func(i, j int) bool {
			return SquareNumber(squares[i]) < SquareNumber(squares[j])
		})
		for i, sq := range squares {
			if i > 0 {
				sb.WriteByte(',')
			}
			if b.At(sq).IsKing() {
				sb.WriteByte('K')
			}
			sb.WriteString(strconv.Itoa(SquareNumber(sq)))
		}
	}
	return sb.String()
}

// ParsePosition decodes a position string into a board and the side to move.
// Each side may hold at most eight pieces.
func ParsePosition(s string) (Board, Side, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return Board{}, SideNone, fmt.Errorf("%w: want 3 sections, got %d", ErrInvalidPosition, len(parts))
	}

	var turn Side
	switch strings.ToUpper(strings.TrimSpace(parts[0])) {
	case "W":
		turn = SideLight
	case "B":
		turn = SideDark
	default:
		return Board{}, SideNone, fmt.Errorf("%w: bad turn %q", ErrInvalidPosition, parts[0])
	}

	b := Empty()
	for i, side := range []Side{SideLight, SideDark} {
		section := strings.TrimSpace(parts[i+1])
		letter := sideLetter(side)
		if !strings.HasPrefix(strings.ToUpper(section), letter) {
			return Board{}, SideNone, fmt.Errorf("%w: section %d must start with %s", ErrInvalidPosition, i+1, letter)
		}
		list := section[1:]
		if list == "" {
			continue
		}
		count := 0
		for _, token := range strings.Split(list, ",") {
			token = strings.TrimSpace(token)
			rank := RankMan
			if strings.HasPrefix(strings.ToUpper(token), "K") {
				rank = RankKing
				token = token[1:]
			}
			n, err := strconv.Atoi(token)
			if err != nil {
				return Board{}, SideNone, fmt.Errorf("%w: bad square %q", ErrInvalidPosition, token)
			}
			sq, err := SquareFromNumber(n)
			if err != nil {
				return Board{}, SideNone, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
			}
			if err := b.Place(sq, Piece{Side: side, Rank: rank}); err != nil {
				return Board{}, SideNone, fmt.Errorf("%w: square %d: %v", ErrInvalidPosition, n, err)
			}
			count++
		}
		if count > 8 {
			return Board{}, SideNone, fmt.Errorf("%w: %s has %d pieces, max 8", ErrInvalidPosition, side, count)
		}
	}
	return b, turn, nil
}
