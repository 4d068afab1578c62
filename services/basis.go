package services

import "github.com/MrazzKa/CalorieCam-sub001/models"

// USDA FoodData Central nutrient-type ids. Fixed external vocabulary.
const (
	NutrientIDEnergy          = 1008
	NutrientIDProtein         = 1003
	NutrientIDTotalFat        = 1004
	NutrientIDCarbohydrate    = 1005
	NutrientIDFiber           = 1079
	NutrientIDSugars          = 2000
	NutrientIDSodium          = 1093
	NutrientIDSatFat          = 1258
	NutrientIDAtwaterGeneral  = 2047
	NutrientIDAtwaterSpecific = 2048
)

// ResolveBasis extracts the canonical nutrient tuple from a food
// record. Label nutrients win outright: branded on-label values are the
// legally mandated per-serving truth. Composition records fall back to
// their per-100g entries, where Atwater-derived energy (which accounts
// for digestibility) overrides the raw Energy entry when both exist.
func ResolveBasis(record *models.FoodRecord) (string, NutrientTuple) {
	if record.LabelNutrients != nil {
		ln := record.LabelNutrients
		sodium := ln.Sodium
		return BasisLabelPerServing, NutrientTuple{
			Calories: ln.Calories,
			Protein:  ln.Protein,
			Fat:      ln.Fat,
			Carbs:    ln.Carbohydrates,
			Fiber:    ln.Fiber,
			Sugars:   ln.Sugars,
			Sodium:   &sodium,
		}
	}

	byID := make(map[int]float64, len(record.NutrientEntries))
	for _, e := range record.NutrientEntries {
		byID[e.NutrientTypeID] = e.Amount
	}

	calories, ok := byID[NutrientIDAtwaterGeneral]
	if !ok {
		calories, ok = byID[NutrientIDAtwaterSpecific]
	}
	if !ok {
		calories = byID[NutrientIDEnergy]
	}

	t := NutrientTuple{
		Calories: calories,
		Protein:  byID[NutrientIDProtein],
		Fat:      byID[NutrientIDTotalFat],
		Carbs:    byID[NutrientIDCarbohydrate],
		Fiber:    byID[NutrientIDFiber],
		Sugars:   byID[NutrientIDSugars],
	}
	if v, ok := byID[NutrientIDSodium]; ok {
		t.Sodium = &v
	}
	if v, ok := byID[NutrientIDSatFat]; ok {
		t.SatFat = &v
	}
	return BasisCompositionPer100g, t
}
