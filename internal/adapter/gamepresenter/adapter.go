package gamepresenter

import (
	"errors"

	"github.com/park285/makhos/internal/board"
	"github.com/park285/makhos/internal/rules"
	svc "github.com/park285/makhos/internal/service/game"
	"github.com/park285/makhos/pkg/gamedto"
)

func ToDTOState(s *svc.SessionState) *gamedto.SessionState {
	if s == nil {
		return nil
	}
	state := &gamedto.SessionState{
		SessionID: s.SessionID,
		Variant:   s.Variant,
		Position:  s.Position,
		Turn:      s.Turn.String(),
		Outcome:   ToDTOOutcome(s.Outcome),
		Players: []gamedto.PlayerInfo{
			{Name: s.LightName, Side: board.SideLight.String()},
			{Name: s.DarkName, Side: board.SideDark.String()},
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Chain != nil {
		ref := squareRef(*s.Chain)
		state.Chain = &ref
	}
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := s.Board.At(board.Square{Row: row, Col: col})
			if p.Empty() {
				continue
			}
			state.Board[row][col] = p.String()
			switch {
			case p.Side == board.SideLight && p.IsKing():
				state.PieceCounts.LightKings++
			case p.Side == board.SideLight:
				state.PieceCounts.LightMen++
			case p.IsKing():
				state.PieceCounts.DarkKings++
			default:
				state.PieceCounts.DarkMen++
			}
		}
	}
	return state
}

func ToDTOMove(m rules.Move) gamedto.Move {
	mv := gamedto.Move{
		From:     squareRef(m.From),
		To:       squareRef(m.To),
		Capture:  m.IsCapture(),
		Notation: m.Notation(),
	}
	for _, j := range m.Jumps {
		mv.Jumps = append(mv.Jumps, gamedto.Jump{Over: squareRef(j.Over), To: squareRef(j.To)})
	}
	return mv
}

func ToDTOMoves(moves []rules.Move) []gamedto.Move {
	out := make([]gamedto.Move, 0, len(moves))
	for _, m := range moves {
		out = append(out, ToDTOMove(m))
	}
	return out
}

func ToDTOSquareMoves(sm *svc.SquareMoves) *gamedto.LegalMovesResult {
	if sm == nil {
		return nil
	}
	return &gamedto.LegalMovesResult{
		Square: squareRef(sm.Square),
		Moves:  ToDTOMoves(sm.Moves),
		Reason: sm.Reason.String(),
	}
}

func ToDTOMoveSummary(m *svc.MoveSummary) *gamedto.MoveSummary {
	if m == nil {
		return nil
	}
	return &gamedto.MoveSummary{
		State:        ToDTOState(m.State),
		Notation:     m.Move.Notation(),
		Captured:     squareRefs(m.Captured),
		Promoted:     m.Promoted,
		TurnComplete: m.TurnComplete,
		Turn:         m.Turn.String(),
		Outcome:      ToDTOOutcome(m.Outcome),
	}
}

func ToDTOOutcome(out rules.Outcome) gamedto.Outcome {
	dto := gamedto.Outcome{Status: out.Status.String()}
	if out.Status == rules.StatusWin {
		dto.Winner = out.Winner.String()
	}
	return dto
}

func squareRef(sq board.Square) gamedto.SquareRef {
	return gamedto.SquareRef{Row: sq.Row, Col: sq.Col, Number: board.SquareNumber(sq)}
}

func squareRefs(list []board.Square) []gamedto.SquareRef {
	if len(list) == 0 {
		return nil
	}
	out := make([]gamedto.SquareRef, len(list))
	for i, sq := range list {
		out[i] = squareRef(sq)
	}
	return out
}

// ToDomainError classifies an error under the stable DTO codes.
func ToDomainError(err error) *gamedto.DomainError {
	if err == nil {
		return nil
	}
	code := gamedto.CodeInternal
	switch {
	case errors.Is(err, svc.ErrSessionNotFound):
		code = gamedto.CodeSessionNotFound
	case errors.Is(err, rules.ErrGameFinished):
		code = gamedto.CodeGameFinished
	case errors.Is(err, rules.ErrNotYourTurn):
		code = gamedto.CodeNotYourTurn
	case errors.Is(err, rules.ErrIllegalMove):
		code = gamedto.CodeIllegalMove
	case errors.Is(err, rules.ErrUnknownVariant):
		code = gamedto.CodeUnknownVariant
	case errors.Is(err, board.ErrOutOfBounds):
		code = gamedto.CodeOutOfBounds
	case errors.Is(err, board.ErrNotPlayable):
		code = gamedto.CodeNotPlayable
	case errors.Is(err, board.ErrEmptySquare):
		code = gamedto.CodeEmptySquare
	case errors.Is(err, board.ErrInvalidPosition):
		code = gamedto.CodeInvalidPosition
	case errors.Is(err, board.ErrInvalidSquare):
		code = gamedto.CodeInvalidSquare
	}
	return &gamedto.DomainError{Code: code, Message: err.Error()}
}
