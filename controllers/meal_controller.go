package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/services"

	"github.com/gin-gonic/gin"
)

type logMealRequest struct {
	Type     string                   `json:"type" binding:"required"`
	AteAt    time.Time                `json:"ate_at"`
	ImageURL string                   `json:"image_url"`
	Analysis *services.AnalysisResult `json:"analysis" binding:"required"`
}

// POST /meals persists a previously returned analysis as a meal.
func LogMeal(c *gin.Context) {
	userID := c.GetUint("userID")

	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.AteAt.IsZero() {
		req.AteAt = time.Now()
	}

	meal, err := mealSvc.LogAnalyzedMeal(userID, req.Type, req.AteAt, req.ImageURL, req.Analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go goalSvc.CheckAndAlert(userID, req.AteAt)

	c.JSON(http.StatusCreated, meal)
}

// GET /meals
func ListMeals(c *gin.Context) {
	userID := c.GetUint("userID")

	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		fromT, err1 := time.Parse("2006-01-02", from)
		toT, err2 := time.Parse("2006-01-02", to)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from/to must be YYYY-MM-DD"})
			return
		}
		meals, err := mealSvc.ListMealsByDateRange(userID, fromT, toT.Add(24*time.Hour))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, meals)
		return
	}

	meals, err := mealSvc.ListMeals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /meals/:id
func GetMeal(c *gin.Context) {
	userID := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := mealSvc.GetMeal(userID, uint(mealID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DELETE /meals/:id
func DeleteMeal(c *gin.Context) {
	userID := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := mealSvc.DeleteMeal(userID, uint(mealID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
