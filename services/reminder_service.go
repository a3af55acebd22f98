package services

import (
	"time"

	"github.com/Zyrfox/Nexus-Project/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderService nags over the live feed when the day is ending and
// no log has been submitted yet.
type ReminderService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	log  *logrus.Logger
	cron *cron.Cron
}

func NewReminderService(db *gorm.DB, hub *RealtimeHub, log *logrus.Logger) *ReminderService {
	return &ReminderService{db: db, hub: hub, log: log, cron: cron.New()}
}

// Start schedules the nightly check at 21:00 server time.
func (r *ReminderService) Start() error {
	if _, err := r.cron.AddFunc("0 21 * * *", r.checkToday); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

func (r *ReminderService) Stop() {
	r.cron.Stop()
}

func (r *ReminderService) checkToday() {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	if err := r.db.Model(&models.DailyLog{}).Where("log_date = ?", today).Count(&count).Error; err != nil {
		r.log.WithError(err).Error("reminder check failed")
		return
	}
	if count > 0 {
		return
	}

	r.log.WithField("logDate", dateString(today)).Warn("no daily log submitted yet")
	if r.hub != nil {
		r.hub.BroadcastFeedback(map[string]any{
			"kind":    "reminder.missing_log",
			"logDate": dateString(today),
			"message": "Belum ada log hari ini. Jangan tidur sebelum setor data.",
		})
	}
}
