package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserConfig holds the targets and limits governing the audit rules.
// Exactly one row is active at a time; the partial unique index on
// is_active enforces that at the storage level.
type UserConfig struct {
	ID                      uint                        `gorm:"primaryKey" json:"id"`
	Username                string                      `gorm:"default:User" json:"username"`
	RamadanYear             int                         `json:"ramadanYear"`
	StartDate               time.Time                   `gorm:"type:date" json:"startDate"`
	EndDate                 time.Time                   `gorm:"type:date" json:"endDate"`
	TotalQuranPages         int                         `json:"totalQuranPages"`
	DailyTilawahTarget      int                         `json:"dailyTilawahTarget"`
	ZakatTargetAmount       float64                     `json:"zakatTargetAmount"`
	TradingRiskLimitPercent float64                     `json:"tradingRiskLimitPercent"`
	CustomHabits            datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"customHabits"`
	IsActive                bool                        `gorm:"uniqueIndex:unique_active_config,where:is_active = true" json:"isActive"`
	CreatedAt               time.Time                   `json:"createdAt"`
}
