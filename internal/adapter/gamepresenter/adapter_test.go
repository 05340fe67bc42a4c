package gamepresenter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/park285/makhos/internal/board"
	"github.com/park285/makhos/internal/rules"
	svc "github.com/park285/makhos/internal/service/game"
	"github.com/park285/makhos/pkg/gamedto"
)

func sampleState(t *testing.T) *svc.SessionState {
	t.Helper()
	b, turn, err := board.ParsePosition("W:W21,22,K5:B9,K2")
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	chain, _ := board.SquareFromNumber(13)
	return &svc.SessionState{
		SessionID: "sess-1",
		Variant:   "makhos",
		Position:  "W:W21,22,K5:B9,K2",
		Turn:      turn,
		Board:     b,
		Chain:     &chain,
		LightName: "Alice",
		DarkName:  "Bob",
	}
}

func TestToDTOState(t *testing.T) {
	state := ToDTOState(sampleState(t))
	if state == nil {
		t.Fatalf("nil dto")
	}
	if state.Turn != "light" {
		t.Fatalf("turn: %q", state.Turn)
	}

	cells := map[[2]int]string{
		{5, 0}: "light-man",  // 21
		{1, 0}: "light-king", // 5
		{2, 1}: "dark-man",   // 9
		{0, 3}: "dark-king",  // 2
		{0, 0}: "",
	}
	for pos, want := range cells {
		if got := state.Board[pos[0]][pos[1]]; got != want {
			t.Fatalf("cell %v: got %q, want %q", pos, got, want)
		}
	}

	c := state.PieceCounts
	if c.LightMen != 2 || c.LightKings != 1 || c.DarkMen != 1 || c.DarkKings != 1 {
		t.Fatalf("piece counts: %+v", c)
	}
	if state.Chain == nil || state.Chain.Number != 13 {
		t.Fatalf("chain ref: %+v", state.Chain)
	}
	if len(state.Players) != 2 || state.Players[0].Name != "Alice" || state.Players[1].Side != "dark" {
		t.Fatalf("players: %+v", state.Players)
	}
	if ToDTOState(nil) != nil {
		t.Fatalf("nil state should map to nil")
	}
}

func TestToDTOMove(t *testing.T) {
	sq := func(n int) board.Square {
		s, err := board.SquareFromNumber(n)
		if err != nil {
			t.Fatalf("square %d: %v", n, err)
		}
		return s
	}

	chain := rules.Move{
		From: sq(22),
		To:   sq(6),
		Jumps: []rules.Jump{
			{Over: sq(17), To: sq(13)},
			{Over: sq(9), To: sq(6)},
		},
	}
	dto := ToDTOMove(chain)
	if !dto.Capture || dto.Notation != "22x13x6" {
		t.Fatalf("chain dto: %+v", dto)
	}
	if len(dto.Jumps) != 2 || dto.Jumps[0].Over.Number != 17 || dto.Jumps[1].To.Number != 6 {
		t.Fatalf("jumps: %+v", dto.Jumps)
	}
	if dto.From.Number != 22 || dto.From.Row != 5 || dto.From.Col != 2 {
		t.Fatalf("from ref: %+v", dto.From)
	}

	simple := ToDTOMove(rules.Move{From: sq(26), To: sq(22)})
	if simple.Capture || simple.Notation != "26-22" || simple.Jumps != nil {
		t.Fatalf("simple dto: %+v", simple)
	}
}

func TestToDomainErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{svc.ErrSessionNotFound, gamedto.CodeSessionNotFound},
		{rules.ErrGameFinished, gamedto.CodeGameFinished},
		{fmt.Errorf("wrapped: %w", rules.ErrNotYourTurn), gamedto.CodeNotYourTurn},
		{fmt.Errorf("%w: 22-17", rules.ErrIllegalMove), gamedto.CodeIllegalMove},
		{rules.ErrUnknownVariant, gamedto.CodeUnknownVariant},
		{board.ErrOutOfBounds, gamedto.CodeOutOfBounds},
		{board.ErrNotPlayable, gamedto.CodeNotPlayable},
		{board.ErrEmptySquare, gamedto.CodeEmptySquare},
		{board.ErrInvalidPosition, gamedto.CodeInvalidPosition},
		{board.ErrInvalidSquare, gamedto.CodeInvalidSquare},
		{errors.New("boom"), gamedto.CodeInternal},
	}
	for _, tc := range cases {
		derr := ToDomainError(tc.err)
		if derr == nil || derr.Code != tc.want {
			t.Fatalf("ToDomainError(%v): got %+v, want code %s", tc.err, derr, tc.want)
		}
		if derr.Message == "" {
			t.Fatalf("ToDomainError(%v): empty message", tc.err)
		}
	}
	if ToDomainError(nil) != nil {
		t.Fatalf("nil error should map to nil")
	}
}
