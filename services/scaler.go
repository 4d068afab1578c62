package services

import "math"

// ScaleNutrients multiplies a per-100g basis tuple by the portion
// ratio. Calories round to whole kcal, everything else to one decimal.
// Unknown optional fields stay unknown; they are only coerced to zero
// when totals are aggregated.
//
// Label-per-serving tuples are deliberately treated as per-100g
// equivalents here, matching the long-standing behavior the mobile
// clients calibrate against.
func ScaleNutrients(basis NutrientTuple, portionGrams float64) NutrientTuple {
	ratio := portionGrams / 100

	out := NutrientTuple{
		Calories: math.Round(basis.Calories * ratio),
		Protein:  round1(basis.Protein * ratio),
		Carbs:    round1(basis.Carbs * ratio),
		Fat:      round1(basis.Fat * ratio),
		Fiber:    round1(basis.Fiber * ratio),
		Sugars:   round1(basis.Sugars * ratio),
	}
	if basis.SatFat != nil {
		v := round1(*basis.SatFat * ratio)
		out.SatFat = &v
	}
	if basis.Sodium != nil {
		v := round1(*basis.Sodium * ratio)
		out.Sodium = &v
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
