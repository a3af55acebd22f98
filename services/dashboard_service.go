package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/Zyrfox/Nexus-Project/models"

	"gorm.io/gorm"
)

const ramadanDays = 30

type DashboardService struct {
	db       *gorm.DB
	configs  *ConfigService
	progress *ProgressService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:       db,
		configs:  NewConfigService(db),
		progress: NewProgressService(db),
	}
}

type DashboardSummary struct {
	Progress       *ProgressPoint     `json:"progress"`
	LatestFeedback *models.AiFeedback `json:"latestFeedback"`
}

// Summary returns the most recent progress row plus the latest feedback.
func (s *DashboardService) Summary() (*DashboardSummary, error) {
	series, err := s.progress.Series()
	if err != nil {
		return nil, err
	}

	out := &DashboardSummary{}
	if len(series) > 0 {
		out.Progress = &series[len(series)-1]
	}

	var fb models.AiFeedback
	err = s.db.Order("created_at DESC").First(&fb).Error
	if err == nil {
		out.LatestFeedback = &fb
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return out, nil
}

type DashboardStats struct {
	TotalPages      int     `json:"totalPages"`
	TargetPages     int     `json:"targetPages"`
	ProgressPercent string  `json:"progressPercent"`
	TotalCapital    float64 `json:"totalCapital"`
	ZakatTarget     float64 `json:"zakatTarget"`
	ZakatPercent    string  `json:"zakatPercent"`
	LeakDays        int     `json:"leakDays"`
	TotalDaysLogged int     `json:"totalDaysLogged"`
	AvgSholat       string  `json:"avgSholat"`
}

type BurndownPoint struct {
	Date   string `json:"date"`
	Target int    `json:"target"`
	Actual int    `json:"actual"`
}

type EquityPoint struct {
	Date       string  `json:"date"`
	Cumulative float64 `json:"cumulative"`
	Pnl        float64 `json:"pnl"`
}

type FullDashboard struct {
	Config    *models.UserConfig  `json:"config"`
	Stats     DashboardStats      `json:"stats"`
	Burndown  []BurndownPoint     `json:"burndownData"`
	Equity    []EquityPoint       `json:"equityData"`
	Feedbacks []models.AiFeedback `json:"feedbacks"`
}

// Full assembles everything the dashboard UI renders: stats cards, the
// burndown and equity chart series, and the feedback terminal entries.
func (s *DashboardService) Full() (*FullDashboard, error) {
	cfg, err := s.configs.GetActive()
	if err != nil && !errors.Is(err, ErrNoActiveConfig) {
		return nil, err
	}

	series, err := s.progress.Series()
	if err != nil {
		return nil, err
	}

	targetPages := 604
	zakatTarget := 0.0
	if cfg != nil {
		targetPages = cfg.TotalQuranPages
		zakatTarget = cfg.ZakatTargetAmount
	}

	dailyTarget := float64(targetPages) / float64(ramadanDays)
	burndown := make([]BurndownPoint, 0, len(series))
	equity := make([]EquityPoint, 0, len(series))
	leakDays := 0
	sholatSum := 0
	for i, p := range series {
		label := p.LogDate.Format("Jan 2")
		burndown = append(burndown, BurndownPoint{
			Date:   label,
			Target: int(math.Round(dailyTarget * float64(i+1))),
			Actual: p.CumulativePages,
		})
		equity = append(equity, EquityPoint{
			Date:       label,
			Cumulative: p.NetCapital,
			Pnl:        p.TradingPnl,
		})
		if p.LeakedDay {
			leakDays++
		}
	}

	var logs []models.DailyLog
	if err := s.db.Order("log_date ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	for _, l := range logs {
		sholatSum += l.SholatFardhu
	}

	stats := DashboardStats{
		TargetPages:     targetPages,
		ZakatTarget:     zakatTarget,
		LeakDays:        leakDays,
		TotalDaysLogged: len(logs),
		ProgressPercent: "0",
		ZakatPercent:    "0",
		AvgSholat:       "0",
	}
	if len(series) > 0 {
		last := series[len(series)-1]
		stats.TotalPages = last.CumulativePages
		stats.TotalCapital = last.NetCapital
	}
	if targetPages > 0 {
		stats.ProgressPercent = fmt.Sprintf("%.1f", float64(stats.TotalPages)/float64(targetPages)*100)
	}
	if zakatTarget > 0 {
		stats.ZakatPercent = fmt.Sprintf("%.1f", stats.TotalCapital/zakatTarget*100)
	}
	if len(logs) > 0 {
		stats.AvgSholat = fmt.Sprintf("%.1f", float64(sholatSum)/float64(len(logs)))
	}

	feedbacks, err := s.RecentFeedback(20)
	if err != nil {
		return nil, err
	}

	return &FullDashboard{
		Config:    cfg,
		Stats:     stats,
		Burndown:  burndown,
		Equity:    equity,
		Feedbacks: feedbacks,
	}, nil
}

func (s *DashboardService) RecentFeedback(limit int) ([]models.AiFeedback, error) {
	var feedbacks []models.AiFeedback
	err := s.db.Order("created_at DESC").Limit(limit).Find(&feedbacks).Error
	return feedbacks, err
}
