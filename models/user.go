package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email            string `gorm:"uniqueIndex;not null"`
	Password         string `gorm:"not null"`
	FirstName        string
	LastName         string
	Birthday         time.Time
	Height           float64
	Weight           float64
	HealthConditions string
	FitnessGoals     string
	ProfilePicture   string
	Onboarded        bool
	Disabled         bool
	ResetToken       string
	ResetTokenExpiry time.Time
}
