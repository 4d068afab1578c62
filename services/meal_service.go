package services

import (
	"strings"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/config"
	"github.com/MrazzKa/CalorieCam-sub001/models"
)

type MealService struct{}

func NewMealService() *MealService {
	return &MealService{}
}

// LogAnalyzedMeal persists an analysis result as a meal with per-item
// nutrition snapshots, so history is stable across catalog re-syncs.
func (s *MealService) LogAnalyzedMeal(userID uint, mealType string, ateAt time.Time, imageURL string, result *AnalysisResult) (*models.Meal, error) {
	meal := &models.Meal{
		UserID:   userID,
		Type:     mealType,
		AteAt:    ateAt,
		ImageURL: imageURL,
	}
	if result.HealthScore != nil {
		meal.HealthScore = result.HealthScore.Score
		meal.HealthGrade = result.HealthScore.Grade
	}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}

	for _, item := range result.Items {
		warnings := AssessItemWarnings(item.Name, item.Nutrients)

		mi := &models.MealItem{
			MealID:       meal.ID,
			FoodLabel:    item.Name,
			PortionGrams: item.PortionGrams,
			Calories:     item.Nutrients.Calories,
			Protein:      item.Nutrients.Protein,
			Carbs:        item.Nutrients.Carbs,
			Fat:          item.Nutrients.Fat,
			Fiber:        item.Nutrients.Fiber,
			Sugars:       item.Nutrients.Sugars,
			Source:       item.Source,
			BasisUsed:    item.BasisUsed,
			MatchScore:   item.MatchScore,
			Safe:         len(warnings) == 0,
			Warnings:     strings.Join(warnings, "; "),
		}
		if item.Nutrients.Sodium != nil {
			mi.Sodium = *item.Nutrients.Sodium
		}
		if err := config.DB.Create(mi).Error; err != nil {
			return nil, err
		}
	}

	var populated models.Meal
	if err := config.DB.Preload("Items").First(&populated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := config.DB.
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MealService) DeleteMeal(userID, mealID uint) error {
	if err := config.DB.
		Where("meal_id = ?", mealID).
		Delete(&models.MealItem{}).Error; err != nil {
		return err
	}
	return config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{}).Error
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

// DayTotals sums one calendar day's logged items, used by the goal
// alerting path.
type DayTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (s *MealService) DailyTotals(userID uint, day time.Time) (*DayTotals, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	var totals DayTotals
	err := config.DB.
		Table("meal_items").
		Select("COALESCE(SUM(meal_items.calories),0) AS calories, COALESCE(SUM(meal_items.protein),0) AS protein, COALESCE(SUM(meal_items.carbs),0) AS carbs, COALESCE(SUM(meal_items.fat),0) AS fat").
		Joins("JOIN meals ON meals.id = meal_items.meal_id").
		Where("meals.user_id = ? AND meals.ate_at >= ? AND meals.ate_at < ? AND meals.deleted_at IS NULL AND meal_items.deleted_at IS NULL", userID, from, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
