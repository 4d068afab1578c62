package services

import (
	"testing"

	"github.com/MrazzKa/CalorieCam-sub001/models"
)

func TestSelectPortionNearest(t *testing.T) {
	portions := []models.Portion{
		{GramWeight: 30},
		{GramWeight: 100},
		{GramWeight: 250},
	}
	if got := SelectPortion(90, portions); got != 100 {
		t.Fatalf("SelectPortion(90) = %v, want 100", got)
	}
	if got := SelectPortion(40, portions); got != 30 {
		t.Fatalf("SelectPortion(40) = %v, want 30", got)
	}
}

func TestSelectPortionTieGoesSmaller(t *testing.T) {
	portions := []models.Portion{
		{GramWeight: 100},
		{GramWeight: 30},
	}
	// 65 is equidistant from 30 and 100.
	if got := SelectPortion(65, portions); got != 30 {
		t.Fatalf("SelectPortion(65) = %v, want 30", got)
	}
}

func TestSelectPortionNoKnownPortions(t *testing.T) {
	if got := SelectPortion(137, nil); got != 137 {
		t.Fatalf("got %v, want estimate passthrough", got)
	}
}

func TestSelectPortionFloorsEstimate(t *testing.T) {
	if got := SelectPortion(0, nil); got != 1 {
		t.Fatalf("zero estimate = %v, want 1", got)
	}
	if got := SelectPortion(-50, nil); got != 1 {
		t.Fatalf("negative estimate = %v, want 1", got)
	}
}

func TestSelectPortionSkipsInvalidWeights(t *testing.T) {
	portions := []models.Portion{
		{GramWeight: 0},
		{GramWeight: -10},
	}
	if got := SelectPortion(80, portions); got != 80 {
		t.Fatalf("got %v, want 80 when no portion is usable", got)
	}
}
