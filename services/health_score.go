package services

import (
	"math"
	"strings"
)

// Target macro split and scoring weights for the health heuristic.
const (
	targetProteinPct = 30.0
	targetCarbsPct   = 40.0
	targetFatPct     = 30.0

	weightMacroBalance    = 0.35
	weightCalorieDensity  = 0.25
	weightProteinQuality  = 0.25
	weightProcessingLevel = 0.15

	referenceCalories = 500.0
)

var processedKeywords = []string{
	"fried", "deep fried", "processed", "canned", "packaged", "fast food",
	"soda", "sweetened", "sugar", "syrup", "artificial", "preserved",
}

var wholeFoodKeywords = []string{
	"fresh", "raw", "steamed", "grilled", "baked", "boiled", "organic",
}

// ComputeHealthScore turns aggregate totals plus the resolved item
// names into a 0-100 score, a letter grade and actionable feedback.
// Pure function: same totals and names always produce the same result.
func ComputeHealthScore(totals NutrientTuple, itemNames []string) *HealthScoreResult {
	protein := math.Max(totals.Protein, 0)
	carbs := math.Max(totals.Carbs, 0)
	fat := math.Max(totals.Fat, 0)
	calories := math.Max(totals.Calories, 0)

	var proteinRatio, carbsRatio, fatRatio float64
	if sum := protein + carbs + fat; sum > 0 {
		proteinRatio = protein / sum * 100
		carbsRatio = carbs / sum * 100
		fatRatio = fat / sum * 100
	}

	macroBalance := clamp(100-(math.Abs(proteinRatio-targetProteinPct)+
		math.Abs(carbsRatio-targetCarbsPct)+
		math.Abs(fatRatio-targetFatPct))/3, 0, 100)

	calorieDensity := 50.0
	if calories > 0 {
		calorieDensity = math.Max(0, 100-math.Abs(calories-referenceCalories)/5)
	}

	// 50g of protein earns full marks regardless of meal size.
	proteinQuality := math.Min(100, protein*2)

	processingLevel := scoreProcessingLevel(itemNames)

	score := int(clamp(math.Round(
		macroBalance*weightMacroBalance+
			calorieDensity*weightCalorieDensity+
			proteinQuality*weightProteinQuality+
			processingLevel*weightProcessingLevel), 0, 100))

	factors := HealthScoreFactors{
		MacroBalance:    macroBalance,
		CalorieDensity:  calorieDensity,
		ProteinQuality:  proteinQuality,
		ProcessingLevel: processingLevel,
	}

	return &HealthScoreResult{
		Score:    score,
		Grade:    gradeFor(score),
		Factors:  factors,
		Feedback: buildFeedback(factors, calories, score),
	}
}

// scoreProcessingLevel is a keyword heuristic over the joined item
// names: each processed marker costs 15, each whole-food marker earns 5
// back (never above 100).
func scoreProcessingLevel(itemNames []string) float64 {
	joined := strings.ToLower(strings.Join(itemNames, " "))

	level := 100.0
	for _, kw := range processedKeywords {
		if strings.Contains(joined, kw) {
			level -= 15
		}
	}
	for _, kw := range wholeFoodKeywords {
		if strings.Contains(joined, kw) {
			level = math.Min(100, level+5)
		}
	}
	return clamp(level, 0, 100)
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	case score >= 30:
		return "D"
	default:
		return "F"
	}
}

func buildFeedback(f HealthScoreFactors, calories float64, score int) []Feedback {
	fb := []Feedback{}

	if f.MacroBalance < 50 {
		fb = append(fb, Feedback{
			Key:     "macro_balance",
			Label:   "Macro Balance",
			Action:  "increase",
			Message: "Your macro balance could be improved.",
		})
	}
	if f.CalorieDensity < 50 {
		if calories > 700 {
			fb = append(fb, Feedback{
				Key:     "calories",
				Label:   "Calories",
				Action:  "reduce",
				Message: "This meal is high in calories, consider a smaller portion.",
			})
		} else if calories < 300 {
			fb = append(fb, Feedback{
				Key:     "calories",
				Label:   "Calories",
				Action:  "monitor",
				Message: "This meal is low in calories, you may need more nutrients.",
			})
		}
	}
	if f.ProteinQuality < 50 {
		fb = append(fb, Feedback{
			Key:     "protein",
			Label:   "Protein",
			Action:  "increase",
			Message: "Consider adding more protein sources.",
		})
	}
	if f.ProcessingLevel < 50 {
		fb = append(fb, Feedback{
			Key:     "processing",
			Label:   "Processing",
			Action:  "reduce",
			Message: "This meal contains processed ingredients.",
		})
	}

	overall := Feedback{Key: "overall", Label: "Overall"}
	switch {
	case score >= 80:
		overall.Action = "celebrate"
		overall.Message = "Great balance, keep it up!"
	case score >= 60:
		overall.Action = "monitor"
		overall.Message = "Good meal, with some room to improve."
	default:
		overall.Action = "reduce"
		overall.Message = "Consider healthier alternatives next time."
	}
	return append(fb, overall)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
