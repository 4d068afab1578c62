package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/config"
	"github.com/MrazzKa/CalorieCam-sub001/logger"
	"github.com/MrazzKa/CalorieCam-sub001/models"

	"gorm.io/gorm"
)

type DailyGoalService struct {
	meals *MealService
	hub   *RealtimeHub
	push  *PushService
}

func NewDailyGoalService(meals *MealService, hub *RealtimeHub, push *PushService) *DailyGoalService {
	return &DailyGoalService{meals: meals, hub: hub, push: push}
}

func (s *DailyGoalService) SetGoal(userID uint, calories, protein, carbs, fat float64) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.DailyGoal{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fat = fat
	if err := config.DB.Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *DailyGoalService) GetGoal(userID uint) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	if err := config.DB.Where("user_id = ?", userID).First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

type GoalProgress struct {
	Goal     *models.DailyGoal `json:"goal"`
	Consumed DayTotals         `json:"consumed"`
	Exceeded bool              `json:"exceeded"`
}

func (s *DailyGoalService) GetProgress(userID uint, day time.Time) (*GoalProgress, error) {
	goal, err := s.GetGoal(userID)
	if err != nil {
		return nil, err
	}
	totals, err := s.meals.DailyTotals(userID, day)
	if err != nil {
		return nil, err
	}
	return &GoalProgress{
		Goal:     goal,
		Consumed: *totals,
		Exceeded: goal.Calories > 0 && totals.Calories > goal.Calories,
	}, nil
}

// CheckAndAlert runs after a meal is logged: if the day's calories blew
// past the goal, the user hears about it on every channel they have.
func (s *DailyGoalService) CheckAndAlert(userID uint, day time.Time) {
	progress, err := s.GetProgress(userID, day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("goal progress check failed", "user_id", userID, "error", err)
		}
		return
	}
	if !progress.Exceeded {
		return
	}

	msg := fmt.Sprintf("You've logged %.0f kcal today, past your %.0f kcal goal.",
		progress.Consumed.Calories, progress.Goal.Calories)

	if s.hub != nil {
		s.hub.Broadcast(userID, "goal_exceeded", progress)
	}
	if s.push != nil {
		s.push.PushToUser(userID, "Daily goal exceeded", msg, map[string]string{"type": "goal_exceeded"})
	}
}
