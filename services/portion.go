package services

import (
	"math"

	"github.com/MrazzKa/CalorieCam-sub001/models"
)

// Scaling must never see a zero or negative gram weight.
const minPortionGrams = 1.0

// SelectPortion snaps an estimated gram weight to the closest known
// discrete portion. With no known portions the (floored) estimate is
// used as-is. Ties go to the smaller gram weight.
func SelectPortion(estimatedGrams float64, knownPortions []models.Portion) float64 {
	if estimatedGrams < minPortionGrams {
		estimatedGrams = minPortionGrams
	}
	if len(knownPortions) == 0 {
		return estimatedGrams
	}

	best := estimatedGrams
	bestDiff := math.Inf(1)
	for _, p := range knownPortions {
		if p.GramWeight <= 0 {
			continue
		}
		diff := math.Abs(p.GramWeight - estimatedGrams)
		if diff < bestDiff || (diff == bestDiff && p.GramWeight < best) {
			best = p.GramWeight
			bestDiff = diff
		}
	}
	if math.IsInf(bestDiff, 1) {
		return estimatedGrams
	}
	return best
}
