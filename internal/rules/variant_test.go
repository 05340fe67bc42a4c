package rules

import (
	"errors"
	"testing"
)

func TestVariantByName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"makhos", "makhos"},
		{"MAKHOS", "makhos"},
		{" Traditional ", "traditional"},
		{"", "makhos"},
	}
	for _, tc := range cases {
		v, err := VariantByName(tc.in)
		if err != nil {
			t.Fatalf("VariantByName(%q): %v", tc.in, err)
		}
		if v.Name != tc.want {
			t.Fatalf("VariantByName(%q): got %s, want %s", tc.in, v.Name, tc.want)
		}
	}

	if _, err := VariantByName("international"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("unknown preset: %v", err)
	}
}

func TestVariantPresets(t *testing.T) {
	v := DefaultVariant()
	if !v.ManCapturesBackward || !v.KingLandsAnywhereBeyond || v.Promotion != PromotionImmediate || v.DrawAfterQuietPlies != 0 {
		t.Fatalf("makhos preset: %+v", v)
	}

	tr := TraditionalVariant()
	if tr.ManCapturesBackward || tr.KingLandsAnywhereBeyond || tr.Promotion != PromotionEndOfTurn || tr.DrawAfterQuietPlies != 50 {
		t.Fatalf("traditional preset: %+v", tr)
	}

	names := VariantNames()
	if len(names) != 2 {
		t.Fatalf("preset names: %v", names)
	}
	for _, name := range names {
		if _, err := VariantByName(name); err != nil {
			t.Fatalf("listed preset %q does not resolve: %v", name, err)
		}
	}
}

func TestVariantValidate(t *testing.T) {
	if err := (Variant{}).Validate(); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("zero variant: %v", err)
	}

	v := DefaultVariant()
	v.DrawAfterQuietPlies = -1
	if err := v.Validate(); err == nil {
		t.Fatalf("negative draw threshold accepted")
	}

	if _, err := New(Variant{}); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("New with zero variant: %v", err)
	}
}
