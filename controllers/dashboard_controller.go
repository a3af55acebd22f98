package controllers

import (
	"net/http"
	"strconv"

	"github.com/Zyrfox/Nexus-Project/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

func (dc *DashboardController) GetDashboard(c *gin.Context) {
	summary, err := dc.Dashboard.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"progress":       summary.Progress,
		"latestFeedback": summary.LatestFeedback,
		"message":        "Dashboard data fetched successfully",
	})
}

func (dc *DashboardController) GetFullDashboard(c *gin.Context) {
	full, err := dc.Dashboard.Full()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, full)
}

func (dc *DashboardController) ListFeedback(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid 'limit' query param"})
			return
		}
		limit = n
	}

	feedbacks, err := dc.Dashboard.RecentFeedback(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, feedbacks)
}
