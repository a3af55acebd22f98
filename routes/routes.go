package routes

import (
	"net/http"

	"github.com/Zyrfox/Nexus-Project/controllers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controllers struct {
	DailyLogs *controllers.DailyLogController
	Config    *controllers.ConfigController
	Dashboard *controllers.DashboardController
	Reset     *controllers.ResetController
	Realtime  *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.POST("/daily-log", ctrl.DailyLogs.CreateDailyLog)
		api.GET("/daily-log", ctrl.DailyLogs.ListDailyLogs)

		api.GET("/config", ctrl.Config.GetConfig)
		api.PUT("/config", ctrl.Config.UpdateConfig)
		api.POST("/config/habits", ctrl.Config.ManageHabit)

		api.GET("/dashboard", ctrl.Dashboard.GetDashboard)
		api.GET("/dashboard/full", ctrl.Dashboard.GetFullDashboard)
		api.GET("/feedback", ctrl.Dashboard.ListFeedback)

		api.POST("/reset", ctrl.Reset.ResetData)
	}

	r.GET("/ws/feedback", ctrl.Realtime.FeedbackWS)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	return r
}
