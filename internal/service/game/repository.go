package game

import (
	"context"
	"errors"
	"time"

	"github.com/park285/makhos/internal/rules"
)

var ErrDuplicateSession = errors.New("game session already exists")

// SessionRecord is the persisted form of one session: the position string
// plus everything that cannot be rebuilt from it. Outcome is set only once
// the game is finished (a resigned game cannot be recomputed from the
// position alone).
type SessionRecord struct {
	SessionID  string
	Variant    string
	Position   string
	Chain      *rules.ChainInfo
	QuietPlies int
	Outcome    *rules.Outcome
	LightName  string
	DarkName   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Repository stores session records. Get returns (nil, nil) when the session
// does not exist.
type Repository interface {
	Insert(ctx context.Context, rec *SessionRecord) error
	Get(ctx context.Context, sessionID string) (*SessionRecord, error)
	Update(ctx context.Context, rec *SessionRecord) error
	Delete(ctx context.Context, sessionID string) error
}
