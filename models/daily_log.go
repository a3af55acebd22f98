package models

import (
	"time"

	"gorm.io/datatypes"
)

// DailyLog is one calendar day's recorded activity. log_date is unique:
// a second submission for the same date must fail, never overwrite.
type DailyLog struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	LogDate time.Time `gorm:"type:date;uniqueIndex;not null" json:"logDate"`

	// Spiritual
	SholatFardhu   int  `json:"sholatFardhu"` // 0–5
	SholatTarawih  bool `json:"sholatTarawih"`
	SholatTahajjud bool `json:"sholatTahajjud"`
	PagesRead      int  `json:"pagesRead"`
	CurrentJuz     int  `json:"currentJuz"` // 0–30

	// Discipline (leak flags)
	LeakGames       bool `json:"leakGames"`
	LeakMovies      bool `json:"leakMovies"`
	LeakComicsNovel bool `json:"leakComicsNovel"`

	// Physical
	SkincareAm      bool   `json:"skincareAm"`
	SkincarePm      bool   `json:"skincarePm"`
	HaircareRoutine bool   `json:"haircareRoutine"`
	WorkoutType     string `json:"workoutType"`
	WaterIntakeMl   int    `json:"waterIntakeMl"`

	// Capital growth
	TradingPnl    float64 `json:"tradingPnl"`
	OtherIncome   float64 `json:"otherIncome"`
	ExpenseAmount float64 `json:"expenseAmount"`
	TradingNotes  string  `gorm:"type:text" json:"tradingNotes"`

	// Custom protocols (side quests), keyed by habit name
	HabitLogs datatypes.JSONType[map[string]bool] `gorm:"type:jsonb" json:"habitLogs"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Leaked reports whether any discipline breach was recorded for the day.
func (d DailyLog) Leaked() bool {
	return d.LeakGames || d.LeakMovies || d.LeakComicsNovel
}
