package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrazzKa/CalorieCam-sub001/logger"
	"github.com/MrazzKa/CalorieCam-sub001/services"
	"github.com/MrazzKa/CalorieCam-sub001/utils"

	"github.com/gin-gonic/gin"
)

// POST /analysis/image  { "image_base64": "data:…" } or { "image_url": "https://…" }
func AnalyzeImage(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.ImageBase64 == "" && req.ImageURL == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 or image_url required"})
		return
	}

	imageRef := req.ImageURL
	storedURL := req.ImageURL
	if req.ImageBase64 != "" {
		imageRef = req.ImageBase64
		// Stored copy is best-effort; analysis proceeds without it.
		contentType, data, err := utils.DecodeDataURI(req.ImageBase64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 image"})
			return
		}
		url, err := utils.UploadImageToS3(data, contentType, "meal-photos", utils.ContentHash(data)[:12])
		if err != nil {
			logger.Warn("meal photo upload failed", "error", err)
		} else {
			storedURL = url
		}
	}

	result, err := analysisSvc.AnalyzeImage(c.Request.Context(), imageRef)
	if err != nil {
		if errors.Is(err, services.ErrExtractionFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	hub.Broadcast(userID, "analysis_complete", gin.H{"items": len(result.Items)})

	c.JSON(http.StatusOK, gin.H{"result": result, "image_url": storedURL})
}

// POST /analysis/text  { "description": "chicken breast, rice, broccoli" }
func AnalyzeText(c *gin.Context) {
	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description required"})
		return
	}

	result, err := analysisSvc.AnalyzeText(c.Request.Context(), req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	hub.Broadcast(userID, "analysis_complete", gin.H{"items": len(result.Items)})

	c.JSON(http.StatusOK, gin.H{"result": result})
}
