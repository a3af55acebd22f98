package services

import (
	"sort"
	"time"

	"github.com/Zyrfox/Nexus-Project/models"

	"gorm.io/gorm"
)

// ProgressSnapshot is the running total as of a given date, inclusive.
type ProgressSnapshot struct {
	Pages   int     `json:"cumulativePages"`
	Capital float64 `json:"currentNetCapital"`
}

// ProgressPoint is one row of the derived progress series, one per
// logged date in ascending order.
type ProgressPoint struct {
	LogDate         time.Time `json:"logDate"`
	PagesRead       int       `json:"pagesRead"`
	TradingPnl      float64   `json:"tradingPnl"`
	CumulativePages int       `json:"cumulativePages"`
	NetCapital      float64   `json:"currentNetCapital"`
	LeakedDay       bool      `json:"isLeakedDay"`
}

func netChange(l models.DailyLog) float64 {
	return l.TradingPnl + l.OtherIncome - l.ExpenseAmount
}

// CumulativeAsOf folds the full log sequence into cumulative pages and
// net capital for every entry dated at or before date. It is a pure
// function of the stored logs: input order does not matter, and it can
// be recomputed from scratch at any time (including after a bulk reset).
func CumulativeAsOf(date time.Time, logs []models.DailyLog) ProgressSnapshot {
	var snap ProgressSnapshot
	for _, l := range logs {
		if l.LogDate.After(date) {
			continue
		}
		snap.Pages += l.PagesRead
		snap.Capital += netChange(l)
	}
	return snap
}

// ProgressSeries derives the per-date running totals, sorted by date
// ascending. Dates are unique by constraint, so ordering is total.
func ProgressSeries(logs []models.DailyLog) []ProgressPoint {
	sorted := make([]models.DailyLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LogDate.Before(sorted[j].LogDate) })

	points := make([]ProgressPoint, 0, len(sorted))
	pages := 0
	capital := 0.0
	for _, l := range sorted {
		pages += l.PagesRead
		capital += netChange(l)
		points = append(points, ProgressPoint{
			LogDate:         l.LogDate,
			PagesRead:       l.PagesRead,
			TradingPnl:      l.TradingPnl,
			CumulativePages: pages,
			NetCapital:      capital,
			LeakedDay:       l.Leaked(),
		})
	}
	return points
}

type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// SnapshotAsOf recomputes cumulative progress from the durable log
// sequence on every call. No cached aggregate state is kept in process.
func (s *ProgressService) SnapshotAsOf(date time.Time) (ProgressSnapshot, error) {
	logs, err := s.allLogs()
	if err != nil {
		return ProgressSnapshot{}, err
	}
	return CumulativeAsOf(date, logs), nil
}

func (s *ProgressService) Series() ([]ProgressPoint, error) {
	logs, err := s.allLogs()
	if err != nil {
		return nil, err
	}
	return ProgressSeries(logs), nil
}

func (s *ProgressService) allLogs() ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := s.db.Order("log_date ASC").Find(&logs).Error
	return logs, err
}
