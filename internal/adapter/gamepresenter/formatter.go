package gamepresenter

import (
	"fmt"
	"strings"

	"github.com/park285/makhos/internal/msgcat"
	"github.com/park285/makhos/pkg/gamedto"
)

const (
	statusInstruction = "⛃ 막호스 현황"
	helpInstruction   = "⛀ 막호스 명령어 안내"
)

// Formatter renders game DTOs into terminal-friendly text blocks. Message
// strings come from the catalog so deployments can override them.
type Formatter struct {
	catalog *msgcat.Catalog
}

func NewFormatter(catalog *msgcat.Catalog) *Formatter {
	return &Formatter{catalog: catalog}
}

func (f *Formatter) line(key string, data map[string]any) string {
	if f == nil || f.catalog == nil {
		return key
	}
	return f.catalog.Line(key, data)
}

func (f *Formatter) SideName(side string) string {
	switch side {
	case "light":
		return f.line("side.light", nil)
	case "dark":
		return f.line("side.dark", nil)
	default:
		return f.line("side.none", nil)
	}
}

func (f *Formatter) Start(state *gamedto.SessionState) string {
	if state == nil {
		return ""
	}
	return f.line("game.created", map[string]any{
		"Variant": state.Variant,
		"Session": shortID(state.SessionID),
	})
}

// Board draws the position as an ASCII grid, row 0 at the top. Light men and
// kings print w/W, dark men and kings b/B, empty playable squares a dot.
func (f *Formatter) Board(state *gamedto.SessionState) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder
	for row := 0; row < len(state.Board); row++ {
		sb.WriteString("   +---+---+---+---+---+---+---+---+\n")
		sb.WriteString(fmt.Sprintf(" %d |", row))
		for col := 0; col < len(state.Board[row]); col++ {
			sb.WriteString(fmt.Sprintf(" %s |", cellSymbol(state.Board[row][col], (row+col)%2 == 1)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   +---+---+---+---+---+---+---+---+\n    ")
	for col := 0; col < len(state.Board); col++ {
		sb.WriteString(fmt.Sprintf(" %d  ", col))
	}
	return strings.TrimRight(sb.String(), " ")
}

func (f *Formatter) Status(state *gamedto.SessionState) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(statusInstruction + "\n")
	sb.WriteString(fmt.Sprintf("• 변형: %s\n", state.Variant))
	sb.WriteString(fmt.Sprintf("• 포지션: %s\n", state.Position))
	c := state.PieceCounts
	sb.WriteString(fmt.Sprintf("• %s: 일반 %d, 킹 %d | %s: 일반 %d, 킹 %d\n",
		f.SideName("light"), c.LightMen, c.LightKings,
		f.SideName("dark"), c.DarkMen, c.DarkKings))
	sb.WriteString(f.TurnLine(state))
	return sb.String()
}

func (f *Formatter) Moves(moves []gamedto.Move) string {
	if len(moves) == 0 {
		return f.line("cli.no_moves", nil)
	}
	var sb strings.Builder
	sb.WriteString(f.line("cli.legal_moves", map[string]any{"Count": len(moves)}))
	for i, m := range moves {
		sb.WriteString(fmt.Sprintf("\n%2d. %s", i+1, m.Notation))
	}
	return sb.String()
}

// MovesAt prints the per-square query result; an empty list is explained by
// its reason code.
func (f *Formatter) MovesAt(res *gamedto.LegalMovesResult) string {
	if res == nil {
		return ""
	}
	if len(res.Moves) == 0 {
		if line := f.ReasonLine(res.Reason); line != "" {
			return line
		}
		return f.line("cli.no_moves", nil)
	}
	return f.Moves(res.Moves)
}

func (f *Formatter) MoveResult(summary *gamedto.MoveSummary) string {
	if summary == nil || summary.State == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(f.line("game.applied", map[string]any{"Notation": summary.Notation}))
	if n := len(summary.Captured); n > 0 {
		sb.WriteString(" | ")
		sb.WriteString(f.line("game.captured", map[string]any{"Count": n}))
	}
	if summary.Promoted {
		sb.WriteString("\n")
		sb.WriteString(f.line("game.promoted", nil))
	}
	sb.WriteString("\n")
	sb.WriteString(f.TurnLine(summary.State))
	return sb.String()
}

func (f *Formatter) Resign(state *gamedto.SessionState, side string) string {
	var sb strings.Builder
	sb.WriteString("🏳️ ")
	sb.WriteString(f.line("game.resigned", map[string]any{"Side": f.SideName(side)}))
	if state != nil {
		sb.WriteString("\n")
		sb.WriteString(f.Outcome(state.Outcome))
	}
	return sb.String()
}

func (f *Formatter) Outcome(out gamedto.Outcome) string {
	switch out.Status {
	case "win":
		return "🏆 " + f.line("outcome.win", map[string]any{"Winner": f.SideName(out.Winner)})
	case "draw":
		return "🤝 " + f.line("outcome.draw", nil)
	default:
		return f.line("outcome.in_progress", nil)
	}
}

// ErrorMessage renders an error through its domain code so users see the
// catalog text, not the internal message.
func (f *Formatter) ErrorMessage(err error) string {
	derr := ToDomainError(err)
	if derr == nil {
		return ""
	}
	return "⚠️ " + f.line("error."+derr.Code, nil)
}

// ReasonLine maps a non-ok legal-move reason to its catalog line.
func (f *Formatter) ReasonLine(reason string) string {
	switch reason {
	case "", "ok":
		return ""
	default:
		return f.line("error."+reason, nil)
	}
}

func (f *Formatter) Help() string {
	var sb strings.Builder
	sb.WriteString(helpInstruction + "\n")
	sb.WriteString("• <수> (예: 21-17, 26x17x10)\n  수 입력. 포획은 x로 연결합니다.\n")
	sb.WriteString("• board\n  현재 보드 출력\n")
	sb.WriteString("• moves [칸]\n  가능한 수 목록 (칸 번호나 \"행,열\" 지정)\n")
	sb.WriteString("• save <파일>\n  보드 PNG 저장\n")
	sb.WriteString("• resign\n  현재 차례 진영 기권\n")
	sb.WriteString("• quit\n  종료")
	return sb.String()
}

// TurnLine tells whose move it is, or the outcome once the game is over.
func (f *Formatter) TurnLine(state *gamedto.SessionState) string {
	if state == nil {
		return ""
	}
	if state.Outcome.Status != "in_progress" {
		return f.Outcome(state.Outcome)
	}
	line := f.line("game.turn", map[string]any{"Side": f.SideName(state.Turn)})
	if state.Chain != nil {
		line += "\n" + f.line("game.chain", map[string]any{"Square": state.Chain.Number})
	}
	return line
}

func cellSymbol(cell string, playable bool) string {
	switch cell {
	case "light-man":
		return "w"
	case "light-king":
		return "W"
	case "dark-man":
		return "b"
	case "dark-king":
		return "B"
	}
	if playable {
		return "."
	}
	return " "
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
