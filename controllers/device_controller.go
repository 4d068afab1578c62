package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /devices
func RegisterDevice(c *gin.Context) {
	userID := c.GetUint("userID")

	var req struct {
		Platform string `json:"platform" binding:"required"`
		Token    string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if pushSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push not configured"})
		return
	}

	dev, err := pushSvc.RegisterDevice(userID, req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dev)
}
