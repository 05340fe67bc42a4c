package gamedto

// NewSessionRequest starts a game. Variant and Position are optional; an
// empty position means the standard starting layout.
type NewSessionRequest struct {
	Variant     string
	Position    string
	LightPlayer string
	DarkPlayer  string
}
