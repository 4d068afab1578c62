package services

import "testing"

func TestAssessItemWarningsClean(t *testing.T) {
	n := NutrientTuple{Calories: 300, Sugars: 4}
	if got := AssessItemWarnings("Grilled Chicken", n); len(got) != 0 {
		t.Fatalf("unexpected warnings: %v", got)
	}
}

func TestAssessItemWarningsThresholds(t *testing.T) {
	sodium := 900.0
	satFat := 8.0
	n := NutrientTuple{Calories: 950, Sugars: 40, Sodium: &sodium, SatFat: &satFat}
	got := AssessItemWarnings("Bacon Double Cheeseburger", n)
	if len(got) != 4 {
		t.Fatalf("warnings = %v, want 4", got)
	}
}

func TestAssessItemWarningsBeverage(t *testing.T) {
	got := AssessItemWarnings("Orange Soda", NutrientTuple{})
	if len(got) != 1 || got[0] != "sugar-sweetened beverage" {
		t.Fatalf("warnings = %v", got)
	}
}

func TestAssessItemWarningsNilOptionals(t *testing.T) {
	// Unknown sodium and saturated fat must not trip thresholds.
	got := AssessItemWarnings("Mystery Stew", NutrientTuple{Calories: 400})
	if len(got) != 0 {
		t.Fatalf("warnings = %v", got)
	}
}
