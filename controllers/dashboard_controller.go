// controllers/dashboard_controller.go
package controllers

import (
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Svc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{Svc: svc}
}

func (h *DashboardController) GetDaily(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	dateStr := c.DefaultQuery("date", now.Format("2006-01-02"))
	date, err := time.ParseInLocation("2006-01-02", dateStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	out, err := h.Svc.Daily(c.Request.Context(), userID, date)
	if err != nil {
		// storage hiccup, safe to retry
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch food log data."})
		return
	}
	c.JSON(http.StatusOK, out)
}
