package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/makhos/internal/board"
	"github.com/park285/makhos/internal/rules"
)

var ErrSessionNotFound = errors.New("game session not found")

type Config struct {
	DefaultVariant string
}

// Service owns game sessions: it creates them, rebuilds the game from the
// repository on every call and writes the updated record back after a move.
type Service struct {
	repo     Repository
	renderer BoardRenderer
	cfg      Config
	logger   *zap.Logger
}

// NewSessionRequest starts a game. Variant and Position are optional; an
// empty position means the standard starting layout.
type NewSessionRequest struct {
	Variant     string
	Position    string
	LightPlayer string
	DarkPlayer  string
}

// SessionState is a read-only snapshot of one session.
type SessionState struct {
	SessionID  string
	Variant    string
	Position   string
	Turn       board.Side
	Board      board.Board
	Chain      *board.Square
	QuietPlies int
	Outcome    rules.Outcome
	LightName  string
	DarkName   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MoveSummary reports what a submitted move did.
type MoveSummary struct {
	State        *SessionState
	Move         rules.Move
	Captured     []board.Square
	Promoted     bool
	TurnComplete bool
	Turn         board.Side
	Outcome      rules.Outcome
}

// SquareMoves answers the per-square legal-move query. Reason explains an
// empty list.
type SquareMoves struct {
	Square board.Square
	Moves  []rules.Move
	Reason rules.Reason
}

func NewService(repo Repository, renderer BoardRenderer, cfg Config, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("session repository is required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("board renderer is required")
	}
	name := strings.TrimSpace(cfg.DefaultVariant)
	if _, err := rules.VariantByName(name); err != nil {
		return nil, fmt.Errorf("default variant validation failed: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		renderer: renderer,
		cfg:      Config{DefaultVariant: name},
		logger:   logger,
	}, nil
}

// CreateSession starts a new game, from the standard layout or from the
// position string in the request.
func (s *Service) CreateSession(ctx context.Context, req NewSessionRequest) (*SessionState, error) {
	variantName := strings.TrimSpace(req.Variant)
	if variantName == "" {
		variantName = s.cfg.DefaultVariant
	}
	v, err := rules.VariantByName(variantName)
	if err != nil {
		return nil, err
	}

	var g *rules.Game
	if strings.TrimSpace(req.Position) != "" {
		g, err = rules.Restore(rules.RestoreState{Position: req.Position}, v)
	} else {
		g, err = rules.New(v)
	}
	if err != nil {
		return nil, err
	}

	rec := &SessionRecord{
		SessionID: uuid.NewString(),
		Variant:   v.Name,
		LightName: strings.TrimSpace(req.LightPlayer),
		DarkName:  strings.TrimSpace(req.DarkPlayer),
		CreatedAt: time.Now(),
	}
	syncRecord(rec, g)

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("game session created",
		zap.String("session_id", rec.SessionID),
		zap.String("variant", rec.Variant),
		zap.String("position", rec.Position),
	)
	return stateFromGame(rec, g), nil
}

// State returns the current snapshot of a session.
func (s *Service) State(ctx context.Context, sessionID string) (*SessionState, error) {
	rec, g, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return stateFromGame(rec, g), nil
}

// LegalMoves lists every legal move for the side to move.
func (s *Service) LegalMoves(ctx context.Context, sessionID string) ([]rules.Move, error) {
	_, g, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return g.LegalMoves(), nil
}

// LegalMovesAt answers the per-square query; square accepts a diagram number
// ("18") or a coordinate pair ("4,3").
func (s *Service) LegalMovesAt(ctx context.Context, sessionID, square string) (*SquareMoves, error) {
	_, g, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sq, err := board.ParseSquareRef(square)
	if err != nil {
		return nil, err
	}
	moves, reason, err := g.LegalMovesAt(sq)
	if err != nil {
		return nil, err
	}
	return &SquareMoves{Square: sq, Moves: moves, Reason: reason}, nil
}

// SubmitMove parses move text, applies it and persists the updated session.
func (s *Service) SubmitMove(ctx context.Context, sessionID, text string) (*MoveSummary, error) {
	rec, g, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	mv, err := g.MoveFromNotation(text)
	if err != nil {
		return nil, err
	}
	res, err := g.Submit(mv)
	if err != nil {
		return nil, err
	}

	syncRecord(rec, g)
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("move applied",
		zap.String("session_id", rec.SessionID),
		zap.String("move", res.Applied.Notation()),
		zap.Int("captured", len(res.Captured)),
		zap.Bool("turn_complete", res.TurnComplete),
		zap.String("position", rec.Position),
	)

	return &MoveSummary{
		State:        stateFromGame(rec, g),
		Move:         res.Applied,
		Captured:     res.Captured,
		Promoted:     res.Promoted,
		TurnComplete: res.TurnComplete,
		Turn:         res.Turn,
		Outcome:      res.Outcome,
	}, nil
}

// Resign ends the session in favor of the opponent of side ("light"/"dark").
func (s *Service) Resign(ctx context.Context, sessionID, side string) (*SessionState, error) {
	rec, g, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sd, err := parseSide(side)
	if err != nil {
		return nil, err
	}
	if err := g.Resign(sd); err != nil {
		return nil, err
	}

	syncRecord(rec, g)
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("game resigned",
		zap.String("session_id", rec.SessionID),
		zap.String("side", sd.String()),
	)
	return stateFromGame(rec, g), nil
}

// EndSession deletes the session record.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	rec, err := s.repo.Get(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrSessionNotFound
	}
	if err := s.repo.Delete(ctx, rec.SessionID); err != nil {
		return err
	}
	s.logger.Info("game session ended", zap.String("session_id", rec.SessionID))
	return nil
}

// RenderBoard renders the session's current position as a PNG. When a capture
// chain is open its square is marked selected unless the caller picked one.
func (s *Service) RenderBoard(ctx context.Context, sessionID string, opts RenderOptions) ([]byte, error) {
	_, g, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sq, ok := g.ChainSquare(); ok && opts.Selected == nil {
		opts.Selected = &sq
	}
	return s.renderer.RenderPNG(ctx, g.Board(), opts)
}

func (s *Service) load(ctx context.Context, sessionID string) (*SessionRecord, *rules.Game, error) {
	rec, err := s.repo.Get(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, ErrSessionNotFound
	}
	v, err := rules.VariantByName(rec.Variant)
	if err != nil {
		return nil, nil, err
	}
	g, err := rules.Restore(rules.RestoreState{
		Position:   rec.Position,
		Chain:      rec.Chain,
		QuietPlies: rec.QuietPlies,
		Outcome:    rec.Outcome,
	}, v)
	if err != nil {
		return nil, nil, fmt.Errorf("rebuild session %s: %w", rec.SessionID, err)
	}
	return rec, g, nil
}

func stateFromGame(rec *SessionRecord, g *rules.Game) *SessionState {
	snap := g.Snapshot()
	return &SessionState{
		SessionID:  rec.SessionID,
		Variant:    rec.Variant,
		Position:   rec.Position,
		Turn:       snap.Turn,
		Board:      snap.Board,
		Chain:      snap.ChainSquare,
		QuietPlies: rec.QuietPlies,
		Outcome:    snap.Outcome,
		LightName:  rec.LightName,
		DarkName:   rec.DarkName,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func syncRecord(rec *SessionRecord, g *rules.Game) {
	rec.Position = g.Position()
	rec.Chain = g.ChainInfo()
	rec.QuietPlies = g.QuietPlies()
	rec.Outcome = nil
	if out := g.Outcome(); out.Status != rules.StatusInProgress {
		o := out
		rec.Outcome = &o
	}
	rec.UpdatedAt = time.Now()
}

func parseSide(s string) (board.Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "white", "w":
		return board.SideLight, nil
	case "dark", "black", "b":
		return board.SideDark, nil
	default:
		return board.SideNone, fmt.Errorf("%w: side %q", rules.ErrInvalidState, s)
	}
}
