package controllers

import (
	"net/http"

	"github.com/MrazzKa/CalorieCam-sub001/services"

	"github.com/gin-gonic/gin"
)

// GET /user/profile
func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")
	profile, err := services.GetUserProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /user/profile
func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := services.UpdateUserProfile(userID, input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /user
func DeleteAccount(c *gin.Context) {
	userID := c.GetUint("userID")
	if err := services.DeleteUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account disabled"})
}
