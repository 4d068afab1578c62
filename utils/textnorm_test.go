package utils

import "testing"

func TestNormalizeFoodName(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"grilled chicken breast", "Grilled Chicken Breast"},
		{"CHEDDAR CHEESE", "Cheddar Cheese"},
		{"  rice   and   beans ", "Rice and Beans"},
		{"soup (canned)", "Soup Canned"},
		{"macaroni and cheese with bacon bits extra crispy style", "Macaroni and Cheese with Bacon Bits"},
		{"and then some", "And Then Some"},
		{"", ""},
	}
	for _, c := range cases {
		got := NormalizeFoodName(c.raw, 6)
		if got != c.want {
			t.Fatalf("NormalizeFoodName(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeFoodNameIdempotent(t *testing.T) {
	inputs := []string{"GRILLED CHICKEN", "pasta with tomato sauce", "Apple Pie (slice)"}
	for _, in := range inputs {
		once := NormalizeFoodName(in, 6)
		twice := NormalizeFoodName(once, 6)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeFoodNameMixedCaseKept(t *testing.T) {
	// Mixed case is not shouting, only the word casing is normalized.
	got := NormalizeFoodName("McIntosh apple", 6)
	if got != "Mcintosh Apple" {
		t.Fatalf("got %q", got)
	}
}
