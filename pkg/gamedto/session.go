package gamedto

import "time"

// Outcome is the session result: "in_progress", "win" (Winner set to "light"
// or "dark") or "draw".
type Outcome struct {
	Status string
	Winner string
}

type PlayerInfo struct {
	Name string
	Side string
}

type PieceCounts struct {
	LightMen   int
	LightKings int
	DarkMen    int
	DarkKings  int
}

// SessionState is the read-only snapshot handed to front-ends. Board cells
// hold "light-man", "light-king", "dark-man", "dark-king" or "" for empty and
// unplayable squares.
type SessionState struct {
	SessionID   string
	Variant     string
	Position    string
	Turn        string
	Board       [8][8]string
	PieceCounts PieceCounts
	Chain       *SquareRef
	Outcome     Outcome
	Players     []PlayerInfo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
