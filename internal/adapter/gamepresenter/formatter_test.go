package gamepresenter

import (
	"strings"
	"testing"

	"github.com/park285/makhos/internal/msgcat"
	"github.com/park285/makhos/internal/rules"
	"github.com/park285/makhos/pkg/gamedto"
)

func newTestFormatter(t *testing.T) *Formatter {
	t.Helper()
	catalog, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	return NewFormatter(catalog)
}

func TestFormatterBoard(t *testing.T) {
	f := newTestFormatter(t)
	state := ToDTOState(sampleState(t))

	text := f.Board(state)
	for _, symbol := range []string{" w |", " W |", " b |", " B |"} {
		if !strings.Contains(text, symbol) {
			t.Fatalf("board output missing %q:\n%s", symbol, text)
		}
	}
	if !strings.Contains(text, "+---+") {
		t.Fatalf("board output without grid:\n%s", text)
	}
}

func TestFormatterTurnLine(t *testing.T) {
	f := newTestFormatter(t)
	state := ToDTOState(sampleState(t))

	line := f.TurnLine(state)
	if !strings.Contains(line, f.SideName("light")) {
		t.Fatalf("turn line without side name: %q", line)
	}
	if !strings.Contains(line, "13") {
		t.Fatalf("turn line without the chain square: %q", line)
	}

	state.Outcome = gamedto.Outcome{Status: "win", Winner: "dark"}
	line = f.TurnLine(state)
	if !strings.Contains(line, f.SideName("dark")) {
		t.Fatalf("finished turn line should show the winner: %q", line)
	}
}

func TestFormatterOutcome(t *testing.T) {
	f := newTestFormatter(t)
	if got := f.Outcome(gamedto.Outcome{Status: "draw"}); !strings.Contains(got, "무승부") {
		t.Fatalf("draw outcome: %q", got)
	}
	if got := f.Outcome(gamedto.Outcome{Status: "win", Winner: "light"}); !strings.Contains(got, f.SideName("light")) {
		t.Fatalf("win outcome: %q", got)
	}
}

func TestFormatterErrorMessage(t *testing.T) {
	f := newTestFormatter(t)

	msg := f.ErrorMessage(rules.ErrIllegalMove)
	if !strings.HasPrefix(msg, "⚠️") {
		t.Fatalf("error message: %q", msg)
	}
	// The catalog line must render, not the raw key.
	if strings.Contains(msg, "error.illegal_move") {
		t.Fatalf("unrendered catalog key: %q", msg)
	}
	if f.ErrorMessage(nil) != "" {
		t.Fatalf("nil error should render empty")
	}
}

func TestFormatterMovesAt(t *testing.T) {
	f := newTestFormatter(t)

	res := &gamedto.LegalMovesResult{Reason: "must_continue"}
	if got := f.MovesAt(res); strings.Contains(got, "must_continue") || got == "" {
		t.Fatalf("reason line: %q", got)
	}

	res = &gamedto.LegalMovesResult{
		Reason: "ok",
		Moves:  []gamedto.Move{{Notation: "22x13x6", Capture: true}},
	}
	if got := f.MovesAt(res); !strings.Contains(got, "22x13x6") {
		t.Fatalf("moves list: %q", got)
	}
}
