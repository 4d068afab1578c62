package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PUT /goals
func SetGoal(c *gin.Context) {
	userID := c.GetUint("userID")

	var req struct {
		Calories float64 `json:"calories" binding:"required,gt=0"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fat      float64 `json:"fat"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	goal, err := goalSvc.SetGoal(userID, req.Calories, req.Protein, req.Carbs, req.Fat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goal)
}

// GET /goals/progress?date=2025-03-01
func GetGoalProgress(c *gin.Context) {
	userID := c.GetUint("userID")

	day := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	progress, err := goalSvc.GetProgress(userID, day)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no goal set"})
		return
	}
	c.JSON(http.StatusOK, progress)
}
