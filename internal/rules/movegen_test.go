package rules

import (
	"sort"
	"strings"
	"testing"

	"github.com/park285/makhos/internal/board"
)

func restoreGame(t *testing.T, position string, v Variant) *Game {
	t.Helper()
	g, err := Restore(RestoreState{Position: position}, v)
	if err != nil {
		t.Fatalf("Restore(%q): %v", position, err)
	}
	return g
}

func notations(moves []Move) string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.Notation())
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}

func TestStartingPositionMoves(t *testing.T) {
	g, err := New(DefaultVariant())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	moves := g.LegalMoves()
	for _, m := range moves {
		if m.IsCapture() {
			t.Fatalf("capture in the starting position: %s", m.Notation())
		}
	}
	want := "25-21 25-22 26-22 26-23 27-23 27-24 28-24"
	if got := notations(moves); got != want {
		t.Fatalf("starting moves: got %q, want %q", got, want)
	}
}

func TestManSimpleMoves(t *testing.T) {
	g := restoreGame(t, "W:W22:B1", DefaultVariant())
	sq, _ := board.SquareFromNumber(22)
	moves, reason, err := g.LegalMovesAt(sq)
	if err != nil {
		t.Fatalf("LegalMovesAt: %v", err)
	}
	if reason != ReasonOK {
		t.Fatalf("reason: got %s, want ok", reason)
	}
	if got := notations(moves); got != "22-17 22-18" {
		t.Fatalf("man moves: got %q", got)
	}
}

func TestMandatoryCaptureBlocksSimpleMoves(t *testing.T) {
	g := restoreGame(t, "W:W23,29:B18", DefaultVariant())

	moves := g.LegalMoves()
	if got := notations(moves); got != "23x14" {
		t.Fatalf("legal moves: got %q, want 23x14", got)
	}
	captured := moves[0].Captured()
	if len(captured) != 1 || board.SquareNumber(captured[0]) != 18 {
		t.Fatalf("captured squares: %v", captured)
	}

	// The other light man has no capture, so it has no legal move at all
	// this turn.
	sq, _ := board.SquareFromNumber(29)
	other, reason, err := g.LegalMovesAt(sq)
	if err != nil {
		t.Fatalf("LegalMovesAt(29): %v", err)
	}
	if len(other) != 0 || reason != ReasonOK {
		t.Fatalf("expected empty move set for 29, got %q (%s)", notations(other), reason)
	}
}

func TestQueryReasons(t *testing.T) {
	g := restoreGame(t, "W:W22:B1", DefaultVariant())

	sq, _ := board.SquareFromNumber(14)
	if _, reason, err := g.LegalMovesAt(sq); err != nil || reason != ReasonEmptySquare {
		t.Fatalf("empty square: reason=%s err=%v", reason, err)
	}
	sq, _ = board.SquareFromNumber(1)
	if _, reason, err := g.LegalMovesAt(sq); err != nil || reason != ReasonNotYourPiece {
		t.Fatalf("opponent piece: reason=%s err=%v", reason, err)
	}
	if _, _, err := g.LegalMovesAt(board.Square{Row: 0, Col: 0}); err == nil {
		t.Fatalf("expected error for unplayable square")
	}
}

func TestFlyingKingSimpleMoves(t *testing.T) {
	g := restoreGame(t, "W:WK23:B1", DefaultVariant())
	sq, _ := board.SquareFromNumber(23)
	moves, _, err := g.LegalMovesAt(sq)
	if err != nil {
		t.Fatalf("LegalMovesAt: %v", err)
	}
	if len(moves) != 11 {
		t.Fatalf("king moves: got %d, want 11 (%s)", len(moves), notations(moves))
	}
	got := notations(moves)
	for _, want := range []string{"23-5", "23-18", "23-12", "23-30", "23-32"} {
		if !strings.Contains(got, want) {
			t.Fatalf("king moves missing %s: %q", want, got)
		}
	}
}

func TestFlyingKingCaptureLandings(t *testing.T) {
	cases := []struct {
		variant Variant
		want    string
	}{
		{DefaultVariant(), "23x5 23x9"},
		{TraditionalVariant(), "23x9"},
	}
	for _, tc := range cases {
		g := restoreGame(t, "W:WK23:B14", tc.variant)
		moves := g.LegalMoves()
		if got := notations(moves); got != tc.want {
			t.Fatalf("%s king captures: got %q, want %q", tc.variant.Name, got, tc.want)
		}
		for _, m := range moves {
			captured := m.Captured()
			if len(captured) != 1 || board.SquareNumber(captured[0]) != 14 {
				t.Fatalf("%s captured list: %v", tc.variant.Name, captured)
			}
		}
	}
}

func TestManBackwardCaptureVariant(t *testing.T) {
	g := restoreGame(t, "W:W14:B18", DefaultVariant())
	if got := notations(g.LegalMoves()); got != "14x23" {
		t.Fatalf("makhos backward capture: got %q, want 14x23", got)
	}

	g = restoreGame(t, "W:W14:B18", TraditionalVariant())
	if got := notations(g.LegalMoves()); got != "14-10 14-9" {
		t.Fatalf("traditional forward-only: got %q, want simple moves", got)
	}
}

func TestChainsAreMaximal(t *testing.T) {
	g := restoreGame(t, "W:W22:B17,9", DefaultVariant())
	moves := g.LegalMoves()
	if got := notations(moves); got != "22x13x6" {
		t.Fatalf("legal moves: got %q, want the full chain only", got)
	}
	if len(moves[0].Jumps) != 2 {
		t.Fatalf("jumps: got %d, want 2", len(moves[0].Jumps))
	}
}

// A chain may revisit squares cleared earlier in the same chain, the origin
// included, but never jumps the same piece twice. Four dark men around a
// light man give exactly two full loops, one per direction.
func TestChainLoopsThroughOrigin(t *testing.T) {
	g := restoreGame(t, "W:W22:B9,10,17,18", DefaultVariant())
	moves := g.LegalMoves()
	if got := notations(moves); got != "22x13x6x15x22 22x15x6x13x22" {
		t.Fatalf("loop chains: got %q", got)
	}
	from, _ := board.SquareFromNumber(22)
	for _, m := range moves {
		if len(m.Jumps) != 4 {
			t.Fatalf("jumps in %s: got %d, want 4", m.Notation(), len(m.Jumps))
		}
		if m.To != from {
			t.Fatalf("%s should land back on its origin", m.Notation())
		}
		seen := map[board.Square]bool{}
		for _, c := range m.Captured() {
			if seen[c] {
				t.Fatalf("%s jumps %s twice", m.Notation(), c)
			}
			seen[c] = true
		}
	}
}

// A king takes at most one piece per ray pass; the second enemy on the ray is
// only reachable as a separate continuation step after landing.
func TestKingOnePiecePerRayPass(t *testing.T) {
	g := restoreGame(t, "W:WK29:B22,15", DefaultVariant())
	moves := g.LegalMoves()
	if got := notations(moves); got != "29x18x11 29x18x4 29x18x8" {
		t.Fatalf("king chains: got %q", got)
	}
	for _, m := range moves {
		if board.SquareNumber(m.Jumps[0].To) != 18 {
			t.Fatalf("first landing of %s skipped past the blocker", m.Notation())
		}
	}

	g = restoreGame(t, "W:WK29:B22,15", TraditionalVariant())
	if got := notations(g.LegalMoves()); got != "29x18x11" {
		t.Fatalf("traditional king chains: got %q, want 29x18x11", got)
	}
}

func TestKingBlockedRays(t *testing.T) {
	b, _, err := board.ParsePosition("W:WK29,22:B1")
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	sq, _ := board.SquareFromNumber(29)
	// A friendly piece is the first on the ray: no capture.
	if steps := captureSteps(b, sq, b.At(sq), DefaultVariant()); len(steps) != 0 {
		t.Fatalf("capture through friendly piece: %v", steps)
	}

	// Two enemies back to back: no landing square, no capture.
	b, _, err = board.ParsePosition("W:WK29:B25,22")
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	if steps := captureSteps(b, sq, b.At(sq), DefaultVariant()); len(steps) != 0 {
		t.Fatalf("capture without landing square: %v", steps)
	}
}
