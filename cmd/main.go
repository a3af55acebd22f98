package main

import (
	"os"

	"github.com/Zyrfox/Nexus-Project/config"
	"github.com/Zyrfox/Nexus-Project/controllers"
	"github.com/Zyrfox/Nexus-Project/routes"
	"github.com/Zyrfox/Nexus-Project/services"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	config.InitDB(logger)
	db := config.DB

	hub := services.NewRealtimeHub()
	generator := services.NewFeedbackGenerator(services.NewGeminiClient(), logger)

	logSvc := services.NewLogService(db)
	auditSvc := services.NewAuditService(db, generator, hub, logger)
	configSvc := services.NewConfigService(db)
	dashboardSvc := services.NewDashboardService(db)

	reminder := services.NewReminderService(db, hub, logger)
	if err := reminder.Start(); err != nil {
		logger.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer reminder.Stop()

	r := routes.SetupRouter(routes.Controllers{
		DailyLogs: controllers.NewDailyLogController(logSvc, auditSvc),
		Config:    controllers.NewConfigController(configSvc),
		Dashboard: controllers.NewDashboardController(dashboardSvc),
		Reset:     controllers.NewResetController(logSvc),
		Realtime:  controllers.NewRealtimeController(hub),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Infof("Starting NEXUS backend on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
