package models

import (
	"time"

	"gorm.io/gorm"
)

// One Meal (breakfast/lunch/…), usually created from an analysis
// result in a single tap.
type Meal struct {
	gorm.Model
	UserID      uint `gorm:"index"`
	Type        string
	AteAt       time.Time
	ImageURL    string
	HealthScore int
	HealthGrade string `gorm:"type:varchar(1)"`
	Items       []MealItem
}

// MealItem stores the nutrition snapshot of one resolved food so
// history survives catalog re-syncs.
type MealItem struct {
	gorm.Model
	MealID         uint `gorm:"index"`
	FoodExternalID string
	FoodLabel      string
	PortionGrams   float64
	Calories       float64
	Protein        float64
	Carbs          float64
	Fat            float64
	Fiber          float64
	Sugars         float64
	Sodium         float64
	Source         string `gorm:"type:varchar(16)"`
	BasisUsed      string `gorm:"type:varchar(24)"`
	MatchScore     float64
	Safe           bool
	Warnings       string
}
