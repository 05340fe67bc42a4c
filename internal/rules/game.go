package rules

import (
	"fmt"

	"github.com/park285/makhos/internal/board"
)

type Status uint8

const (
	StatusInProgress Status = iota
	StatusWin
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusWin:
		return "win"
	case StatusDraw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is the game result; Winner is set only for StatusWin.
type Outcome struct {
	Status Status
	Winner board.Side
}

// chainState tracks an in-progress mandatory multi-capture: the piece that
// just captured must keep capturing from its landing square. rank is the rank
// the piece started the turn with; continuation geometry is generated against
// it even when the board piece was already crowned mid-chain.
type chainState struct {
	square board.Square
	rank   board.Rank
}

// Game is one Thai Checkers game: board, side to move, chain state and
// outcome. It is single-threaded by contract; callers serialize access.
type Game struct {
	board      board.Board
	turn       board.Side
	variant    Variant
	chain      *chainState
	quietPlies int
	outcome    Outcome
}

// New starts a game from the standard layout, light to move.
func New(v Variant) (*Game, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &Game{board: board.New(), turn: board.SideLight, variant: v}, nil
}

// ChainInfo is the serializable form of an in-progress capture chain: the
// square that must keep capturing and the rank its piece started the turn
// with. Together with the position string this is enough to resume the turn.
type ChainInfo struct {
	SquareNumber int
	Rank         board.Rank
}

// RestoreState rebuilds a game from its persisted form. Outcome, when set,
// is taken as-is (resigned games cannot be recomputed from the position);
// otherwise the outcome is derived from the position.
type RestoreState struct {
	Position   string
	Chain      *ChainInfo
	QuietPlies int
	Outcome    *Outcome
}

func Restore(st RestoreState, v Variant) (*Game, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	b, turn, err := board.ParsePosition(st.Position)
	if err != nil {
		return nil, err
	}
	if st.QuietPlies < 0 {
		return nil, fmt.Errorf("%w: negative quiet plies", ErrInvalidState)
	}
	g := &Game{board: b, turn: turn, variant: v, quietPlies: st.QuietPlies}
	if st.Chain != nil {
		sq, err := board.SquareFromNumber(st.Chain.SquareNumber)
		if err != nil {
			return nil, fmt.Errorf("%w: chain square: %v", ErrInvalidState, err)
		}
		p := g.board.At(sq)
		if p.Empty() || p.Side != turn {
			return nil, fmt.Errorf("%w: chain square %d holds no %s piece", ErrInvalidState, st.Chain.SquareNumber, turn)
		}
		g.chain = &chainState{square: sq, rank: st.Chain.Rank}
		if len(g.continuations()) == 0 {
			return nil, fmt.Errorf("%w: chain square %d has no continuation", ErrInvalidState, st.Chain.SquareNumber)
		}
	}
	switch {
	case st.Outcome != nil:
		g.outcome = *st.Outcome
	case g.chain == nil:
		g.outcome = g.computeOutcome(turn.Opponent())
	}
	return g, nil
}

func (g *Game) Turn() board.Side { return g.turn }

func (g *Game) Variant() Variant { return g.variant }

func (g *Game) Outcome() Outcome { return g.outcome }

func (g *Game) QuietPlies() int { return g.quietPlies }

// Board returns a value copy of the current position.
func (g *Game) Board() board.Board { return g.board }

// Position encodes the current position and side to move as a position string.
func (g *Game) Position() string { return board.FormatPosition(g.board, g.turn) }

// ChainSquare reports the square that must continue capturing, if any.
func (g *Game) ChainSquare() (board.Square, bool) {
	if g.chain == nil {
		return board.Square{}, false
	}
	return g.chain.square, true
}

func (g *Game) ChainInfo() *ChainInfo {
	if g.chain == nil {
		return nil
	}
	return &ChainInfo{SquareNumber: board.SquareNumber(g.chain.square), Rank: g.chain.rank}
}

// Snapshot is a read-only copy of the visible game state.
type Snapshot struct {
	Board       board.Board
	Turn        board.Side
	ChainSquare *board.Square
	Outcome     Outcome
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{Board: g.board, Turn: g.turn, Outcome: g.outcome}
	if g.chain != nil {
		sq := g.chain.square
		snap.ChainSquare = &sq
	}
	return snap
}

// LegalMoves returns every legal move for the side to move: all maximal
// capture chains under the mandatory-capture rule, or all simple moves when
// no capture exists anywhere. Mid-chain only the chain piece's remaining
// chains are returned.
func (g *Game) LegalMoves() []Move {
	if g.outcome.Status != StatusInProgress {
		return nil
	}
	if g.chain != nil {
		return g.continuations()
	}
	return sideMoves(g.board, g.turn, g.variant)
}

// LegalMovesAt answers the per-square query. An empty result carries a reason
// code; the error return is reserved for malformed squares and finished games.
func (g *Game) LegalMovesAt(sq board.Square) ([]Move, Reason, error) {
	if err := board.Validate(sq); err != nil {
		return nil, ReasonOK, err
	}
	if g.outcome.Status != StatusInProgress {
		return nil, ReasonOK, ErrGameFinished
	}
	if g.chain != nil {
		if sq != g.chain.square {
			p := g.board.At(sq)
			switch {
			case p.Empty():
				return nil, ReasonEmptySquare, nil
			case p.Side != g.turn:
				return nil, ReasonNotYourPiece, nil
			default:
				return nil, ReasonMustContinue, nil
			}
		}
		return g.continuations(), ReasonOK, nil
	}
	moves, reason := pieceMoves(g.board, sq, g.turn, g.variant)
	return moves, reason, nil
}

func (g *Game) continuations() []Move {
	p := board.Piece{Side: g.turn, Rank: g.chain.rank}
	return captureChains(g.board, g.chain.square, p, g.variant)
}

// MoveResult reports what one Submit call did. TurnComplete false means the
// capture chain is still open and the same piece must move again.
type MoveResult struct {
	Applied      Move
	Captured     []board.Square
	Promoted     bool
	TurnComplete bool
	Turn         board.Side
	Outcome      Outcome
}

// Submit validates the move against the current legal set and applies it.
// A capture may be a full maximal chain or any nonempty prefix of one; a
// prefix leaves the turn open with the same piece required to continue. On
// error the game state is unchanged.
func (g *Game) Submit(m Move) (MoveResult, error) {
	if g.outcome.Status != StatusInProgress {
		return MoveResult{}, ErrGameFinished
	}
	if err := validateSquares(m); err != nil {
		return MoveResult{}, err
	}
	src := g.board.At(m.From)
	if src.Empty() {
		return MoveResult{}, fmt.Errorf("%w: no piece at %s", ErrIllegalMove, m.From)
	}
	if src.Side != g.turn {
		return MoveResult{}, ErrNotYourTurn
	}
	if g.chain != nil && m.From != g.chain.square {
		return MoveResult{}, fmt.Errorf("%w: capture chain must continue from %s", ErrIllegalMove, g.chain.square)
	}
	if m.IsCapture() {
		return g.submitCapture(m, src)
	}
	if g.chain != nil {
		return MoveResult{}, fmt.Errorf("%w: capture chain in progress", ErrIllegalMove)
	}
	legal, _ := pieceMoves(g.board, m.From, g.turn, g.variant)
	ok := false
	for _, c := range legal {
		if !c.IsCapture() && c.To == m.To {
			ok = true
			break
		}
	}
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrIllegalMove, m.Notation())
	}

	_ = g.board.Move(m.From, m.To)
	res := MoveResult{Applied: m}
	if src.Rank == board.RankMan {
		g.quietPlies = 0
		if m.To.Row == g.turn.CrownRow() {
			_ = g.board.Promote(m.To)
			res.Promoted = true
		}
	} else {
		g.quietPlies++
	}
	g.finishTurn(&res)
	return res, nil
}

func (g *Game) submitCapture(m Move, src board.Piece) (MoveResult, error) {
	var legal []Move
	if g.chain != nil {
		legal = g.continuations()
	} else {
		legal, _ = pieceMoves(g.board, m.From, g.turn, g.variant)
	}
	matched := false
	for _, c := range legal {
		if c.IsCapture() && m.prefixOf(c) {
			matched = true
			break
		}
	}
	if !matched {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrIllegalMove, m.Notation())
	}

	moveRank := src.Rank
	if g.chain != nil {
		moveRank = g.chain.rank
	}

	cur := m.From
	promoted := false
	for _, j := range m.Jumps {
		_, _ = g.board.Remove(j.Over)
		_ = g.board.Move(cur, j.To)
		cur = j.To
		if moveRank == board.RankMan && g.variant.Promotion == PromotionImmediate &&
			j.To.Row == g.turn.CrownRow() && !g.board.At(j.To).IsKing() {
			_ = g.board.Promote(j.To)
			promoted = true
		}
	}

	res := MoveResult{Applied: m, Captured: m.Captured(), Promoted: promoted}

	contPiece := board.Piece{Side: g.turn, Rank: moveRank}
	if len(captureChains(g.board, cur, contPiece, g.variant)) > 0 {
		g.chain = &chainState{square: cur, rank: moveRank}
		res.TurnComplete = false
		res.Turn = g.turn
		res.Outcome = g.outcome
		return res, nil
	}

	if moveRank == board.RankMan && g.variant.Promotion == PromotionEndOfTurn && cur.Row == g.turn.CrownRow() {
		_ = g.board.Promote(cur)
		res.Promoted = true
	}
	g.chain = nil
	g.quietPlies = 0
	g.finishTurn(&res)
	return res, nil
}

func (g *Game) finishTurn(res *MoveResult) {
	mover := g.turn
	g.turn = g.turn.Opponent()
	g.outcome = g.computeOutcome(mover)
	res.TurnComplete = true
	res.Turn = g.turn
	res.Outcome = g.outcome
}

// computeOutcome evaluates the position after lastMover's completed turn: the
// opponent loses with zero pieces or zero legal moves, then the quiet-ply
// draw rule applies.
func (g *Game) computeOutcome(lastMover board.Side) Outcome {
	next := lastMover.Opponent()
	if g.board.CountPieces(next) == 0 {
		return Outcome{Status: StatusWin, Winner: lastMover}
	}
	if !hasAnyMove(g.board, next, g.variant) {
		return Outcome{Status: StatusWin, Winner: lastMover}
	}
	if t := g.variant.DrawAfterQuietPlies; t > 0 && g.quietPlies >= t {
		return Outcome{Status: StatusDraw}
	}
	return Outcome{Status: StatusInProgress}
}

// Resign ends the game in favor of the opponent.
func (g *Game) Resign(side board.Side) error {
	if g.outcome.Status != StatusInProgress {
		return ErrGameFinished
	}
	if side != board.SideLight && side != board.SideDark {
		return fmt.Errorf("%w: resigning side required", ErrInvalidState)
	}
	g.chain = nil
	g.outcome = Outcome{Status: StatusWin, Winner: side.Opponent()}
	return nil
}

func hasAnyMove(b board.Board, side board.Side, v Variant) bool {
	for _, sq := range b.SquaresOf(side) {
		p := b.At(sq)
		if len(captureSteps(b, sq, p, v)) > 0 {
			return true
		}
		if len(simpleMoves(b, sq, p)) > 0 {
			return true
		}
	}
	return false
}

func validateSquares(m Move) error {
	if err := board.Validate(m.From); err != nil {
		return err
	}
	if err := board.Validate(m.To); err != nil {
		return err
	}
	for _, j := range m.Jumps {
		if err := board.Validate(j.Over); err != nil {
			return err
		}
		if err := board.Validate(j.To); err != nil {
			return err
		}
	}
	return nil
}
