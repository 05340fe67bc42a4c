package rules

import (
	"fmt"
	"strings"
)

// PromotionRule picks when a man crossing the crown row mid-capture gains its
// king rank. Under PromotionImmediate the rank flips as soon as a landing
// touches the crown row, but the remaining captures of the same turn are still
// generated with the rank the piece arrived with. PromotionEndOfTurn crowns
// only when the whole move finishes on the crown row.
type PromotionRule uint8

const (
	PromotionImmediate PromotionRule = iota
	PromotionEndOfTurn
)

func (r PromotionRule) String() string {
	if r == PromotionEndOfTurn {
		return "end-of-turn"
	}
	return "immediate"
}

// Variant is one named rule configuration. The zero value is not valid; use a
// preset or copy one and adjust fields.
type Variant struct {
	Name string

	// ManCapturesBackward allows men to capture in all four diagonals
	// instead of the two forward ones.
	ManCapturesBackward bool

	// KingLandsAnywhereBeyond lets a capturing king stop on any empty
	// square behind the jumped piece on the same ray. When false the king
	// must land on the square immediately beyond.
	KingLandsAnywhereBeyond bool

	Promotion PromotionRule

	// DrawAfterQuietPlies ends the game as a draw once this many
	// consecutive plies captured nothing and moved no man. 0 disables the
	// rule.
	DrawAfterQuietPlies int
}

func (v Variant) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name required", ErrUnknownVariant)
	}
	if v.DrawAfterQuietPlies < 0 {
		return fmt.Errorf("variant %s: negative draw threshold", v.Name)
	}
	return nil
}

// DefaultVariant is the house rule set: backward man captures, free king
// landing squares, immediate promotion.
func DefaultVariant() Variant {
	return Variant{
		Name:                    "makhos",
		ManCapturesBackward:     true,
		KingLandsAnywhereBeyond: true,
		Promotion:               PromotionImmediate,
		DrawAfterQuietPlies:     0,
	}
}

// TraditionalVariant matches the strict over-the-board rules: men capture
// forward only, a capturing king lands directly behind its victim, promotion
// counts only at the end of the move, and fifty quiet plies draw the game.
func TraditionalVariant() Variant {
	return Variant{
		Name:                    "traditional",
		ManCapturesBackward:     false,
		KingLandsAnywhereBeyond: false,
		Promotion:               PromotionEndOfTurn,
		DrawAfterQuietPlies:     50,
	}
}

var presets = map[string]func() Variant{
	"makhos":      DefaultVariant,
	"traditional": TraditionalVariant,
}

// VariantByName resolves a preset by case-insensitive name.
func VariantByName(name string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultVariant(), nil
	}
	ctor, ok := presets[key]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return ctor(), nil
}

// VariantNames lists the available presets.
func VariantNames() []string {
	return []string{"makhos", "traditional"}
}
