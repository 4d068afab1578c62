package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GET /food/search?q=apple&limit=5
func SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	candidates := matcherSvc.FindByText(c.Request.Context(), query, limit, 0.5)

	out := make([]gin.H, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, gin.H{
			"external_id": cand.Record.ExternalID,
			"description": cand.Record.Description,
			"data_type":   cand.Record.DataTypeClass,
			"brand_owner": cand.Record.BrandOwner,
			"source":      cand.Record.Source,
			"score":       cand.Score,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}
