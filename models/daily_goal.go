package models

import "gorm.io/gorm"

type DailyGoal struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex"`
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}
