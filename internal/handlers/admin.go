package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) AdminListAnalyses(c *gin.Context) {
	limit := 50
	offset := 0

	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}

	records, err := h.analyses.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		items = append(items, map[string]interface{}{
			"id":            record.ID,
			"userId":        record.UserID,
			"bodyType":      record.BodyType,
			"bodyFatRange":  record.BodyFatRange,
			"fitnessLevel":  record.FitnessLevelEstimate,
			"calorieTarget": record.CalorieTarget,
			"createdAt":     record.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
	})
}
