package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/config"
	"github.com/MrazzKa/CalorieCam-sub001/models"
	"github.com/MrazzKa/CalorieCam-sub001/utils"
)

type ProfileInput struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Birthday         string  `json:"birthday"` // YYYY-MM-DD
	Height           float64 `json:"height"`
	Weight           float64 `json:"weight"`
	HealthConditions string  `json:"health_conditions"`
	FitnessGoals     string  `json:"fitness_goals"`
	ProfilePicture   string  `json:"profile_picture"`
	Onboarded        bool    `json:"onboarded"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error; err != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":                user.ID,
		"email":             user.Email,
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"birthday":          user.Birthday.Format("2006-01-02"),
		"height":            user.Height,
		"weight":            user.Weight,
		"health_conditions": user.HealthConditions,
		"fitness_goals":     user.FitnessGoals,
		"profile_picture":   user.ProfilePicture,
		"onboarded":         user.Onboarded,
	}, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error; err != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			user.Birthday = birthday
		}
	}
	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.HealthConditions != "" {
		user.HealthConditions = input.HealthConditions
	}
	if input.FitnessGoals != "" {
		user.FitnessGoals = input.FitnessGoals
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, "profile-pictures", user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		user.ProfilePicture = url
	}
	user.Onboarded = input.Onboarded

	return config.DB.Save(&user).Error
}

func DeleteUser(userID uint) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}
