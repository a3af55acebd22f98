package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Zyrfox/Nexus-Project/models"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(log *logrus.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	// TranslateError so a duplicate log_date surfaces as gorm.ErrDuplicatedKey
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := SeedDefaultConfig(DB); err != nil {
		log.Fatalf("Config seed failed: %v", err)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserConfig{},
		&models.DailyLog{},
		&models.AiFeedback{},
	)
}

// SeedDefaultConfig inserts the initial active configuration when none
// exists yet, so the audit pipeline always has targets to work with.
func SeedDefaultConfig(db *gorm.DB) error {
	var cfg models.UserConfig
	err := db.Where("is_active = ?", true).First(&cfg).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	cfg = models.UserConfig{
		Username:                "NexusCommander",
		RamadanYear:             2026,
		StartDate:               time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                 time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC),
		TotalQuranPages:         604,
		DailyTilawahTarget:      20,
		ZakatTargetAmount:       5000000,
		TradingRiskLimitPercent: 2,
		CustomHabits:            []string{},
		IsActive:                true,
	}
	return db.Create(&cfg).Error
}
