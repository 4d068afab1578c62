package services

import (
	"fmt"
	"strings"
)

// Per-item warning thresholds, loosely following the DGA daily limits
// (2300mg sodium, ~50g added sugar, ~22g saturated fat on a 2000 kcal
// day): one item eating more than a quarter of a limit gets flagged.
const (
	sodiumWarnMg  = 575.0
	sugarsWarnG   = 12.5
	satFatWarnG   = 5.5
	caloriesWarnK = 800.0
)

// AssessItemWarnings produces human-readable safety flags for one
// scaled item. Empty slice means the item looks fine.
func AssessItemWarnings(name string, n NutrientTuple) []string {
	var warnings []string

	if n.Sodium != nil && *n.Sodium > sodiumWarnMg {
		warnings = append(warnings, fmt.Sprintf("high sodium (%.0fmg)", *n.Sodium))
	}
	if n.Sugars > sugarsWarnG {
		warnings = append(warnings, fmt.Sprintf("high sugar (%.1fg)", n.Sugars))
	}
	if n.SatFat != nil && *n.SatFat > satFatWarnG {
		warnings = append(warnings, fmt.Sprintf("high saturated fat (%.1fg)", *n.SatFat))
	}
	if n.Calories > caloriesWarnK {
		warnings = append(warnings, fmt.Sprintf("calorie dense (%.0f kcal)", n.Calories))
	}

	lower := strings.ToLower(name)
	if strings.Contains(lower, "energy drink") || strings.Contains(lower, "soda") {
		warnings = append(warnings, "sugar-sweetened beverage")
	}
	return warnings
}
