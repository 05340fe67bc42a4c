package game

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/park285/makhos/internal/board"
	"github.com/park285/makhos/internal/rules"
)

const sessionTTL = 24 * time.Hour

// RedisRepository keeps session records in Redis so sessions survive process
// restarts and can be shared by several front-end processes. Wired in when
// REDIS_URL is set; the in-memory repository remains the default.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(redisURL string) (*RedisRepository, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url required")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisRepository{rdb: rdb}, nil
}

func (r *RedisRepository) Close() error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}

func sessionKey(id string) string { return "makhos:session:" + strings.TrimSpace(id) }

func (r *RedisRepository) Insert(ctx context.Context, rec *SessionRecord) error {
	raw, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	ok, err := r.rdb.SetNX(ctx, sessionKey(rec.SessionID), raw, sessionTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateSession
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*SessionRecord, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc sessionDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return doc.record()
}

func (r *RedisRepository) Update(ctx context.Context, rec *SessionRecord) error {
	raw, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	ok, err := r.rdb.SetXX(ctx, sessionKey(rec.SessionID), raw, sessionTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

// sessionDoc is the stored JSON form of a SessionRecord. Enums are written as
// their string names so the keys stay readable in redis-cli.
type sessionDoc struct {
	SessionID  string      `json:"session_id"`
	Variant    string      `json:"variant"`
	Position   string      `json:"position"`
	Chain      *chainDoc   `json:"chain,omitempty"`
	QuietPlies int         `json:"quiet_plies,omitempty"`
	Outcome    *outcomeDoc `json:"outcome,omitempty"`
	LightName  string      `json:"light_name,omitempty"`
	DarkName   string      `json:"dark_name,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type chainDoc struct {
	Square int    `json:"square"`
	Rank   string `json:"rank"`
}

type outcomeDoc struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
}

func marshalRecord(rec *SessionRecord) ([]byte, error) {
	if rec == nil || strings.TrimSpace(rec.SessionID) == "" {
		return nil, fmt.Errorf("session record without id")
	}
	doc := sessionDoc{
		SessionID:  rec.SessionID,
		Variant:    rec.Variant,
		Position:   rec.Position,
		QuietPlies: rec.QuietPlies,
		LightName:  rec.LightName,
		DarkName:   rec.DarkName,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	if c := rec.Chain; c != nil {
		doc.Chain = &chainDoc{Square: c.SquareNumber, Rank: c.Rank.String()}
	}
	if o := rec.Outcome; o != nil {
		doc.Outcome = &outcomeDoc{Status: o.Status.String()}
		if o.Status == rules.StatusWin {
			doc.Outcome.Winner = o.Winner.String()
		}
	}
	return json.Marshal(doc)
}

func (d *sessionDoc) record() (*SessionRecord, error) {
	rec := &SessionRecord{
		SessionID:  d.SessionID,
		Variant:    d.Variant,
		Position:   d.Position,
		QuietPlies: d.QuietPlies,
		LightName:  d.LightName,
		DarkName:   d.DarkName,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	if d.Chain != nil {
		rank, err := parseRank(d.Chain.Rank)
		if err != nil {
			return nil, err
		}
		rec.Chain = &rules.ChainInfo{SquareNumber: d.Chain.Square, Rank: rank}
	}
	if d.Outcome != nil {
		out, err := parseOutcome(d.Outcome)
		if err != nil {
			return nil, err
		}
		rec.Outcome = &out
	}
	return rec, nil
}

func parseRank(s string) (board.Rank, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "man":
		return board.RankMan, nil
	case "king":
		return board.RankKing, nil
	default:
		return board.RankMan, fmt.Errorf("unknown rank %q", s)
	}
}

func parseOutcome(doc *outcomeDoc) (rules.Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(doc.Status)) {
	case "in_progress":
		return rules.Outcome{Status: rules.StatusInProgress}, nil
	case "draw":
		return rules.Outcome{Status: rules.StatusDraw}, nil
	case "win":
		side, err := parseSide(doc.Winner)
		if err != nil {
			return rules.Outcome{}, fmt.Errorf("outcome winner: %w", err)
		}
		return rules.Outcome{Status: rules.StatusWin, Winner: side}, nil
	default:
		return rules.Outcome{}, fmt.Errorf("unknown outcome status %q", doc.Status)
	}
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
