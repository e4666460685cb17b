package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apexfit/api/internal/apperr"
	"apexfit/api/internal/workouts"
)

func (h HandlerSet) ListWorkoutPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"plans": workouts.Plans(),
	})
}

func (h HandlerSet) GetWorkoutPlan(c *gin.Context) {
	plan, ok := workouts.Find(c.Param("planId"))
	if !ok {
		h.fail(c, apperr.New(apperr.CodeNotFound, "Workout plan not found."))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan": plan,
	})
}
