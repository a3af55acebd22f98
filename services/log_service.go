package services

import (
	"errors"
	"strings"

	"github.com/Zyrfox/Nexus-Project/models"

	"gorm.io/gorm"
)

// ErrDuplicateDate means a daily log already exists for the submitted
// date. The unique constraint on log_date is the source of truth; a
// second writer must fail loudly, never overwrite.
var ErrDuplicateDate = errors.New("daily log already exists for this date")

type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

func (s *LogService) Create(entry *models.DailyLog) error {
	if err := s.db.Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDate
		}
		return err
	}
	dailyLogsCreated.Inc()
	return nil
}

func (s *LogService) ListOrdered() ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := s.db.Order("log_date ASC").Find(&logs).Error
	return logs, err
}

// ResetAll wipes feedback and logs atomically, feedback first because
// it references the logs by date. Configuration is left untouched.
func (s *LogService) ResetAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.AiFeedback{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.DailyLog{}).Error
	})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Postgres and sqlite drivers that predate gorm's error translation.
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
