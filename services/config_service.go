package services

import (
	"errors"

	"github.com/Zyrfox/Nexus-Project/models"

	"gorm.io/gorm"
)

// ErrNoActiveConfig means the single active configuration row is
// missing. The classifier cannot run without it.
var ErrNoActiveConfig = errors.New("no active configuration found")

type ConfigService struct {
	db *gorm.DB
}

func NewConfigService(db *gorm.DB) *ConfigService {
	return &ConfigService{db: db}
}

func (s *ConfigService) GetActive() (*models.UserConfig, error) {
	var cfg models.UserConfig
	err := s.db.Where("is_active = ?", true).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveConfig
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigUpdate carries the optional target fields of a partial update.
// Nil means "leave unchanged".
type ConfigUpdate struct {
	RamadanYear             *int
	TotalQuranPages         *int
	DailyTilawahTarget      *int
	ZakatTargetAmount       *float64
	TradingRiskLimitPercent *float64
}

func (s *ConfigService) UpdateTargets(upd ConfigUpdate) (*models.UserConfig, error) {
	cfg, err := s.GetActive()
	if err != nil {
		return nil, err
	}

	if upd.RamadanYear != nil {
		cfg.RamadanYear = *upd.RamadanYear
	}
	if upd.TotalQuranPages != nil {
		cfg.TotalQuranPages = *upd.TotalQuranPages
	}
	if upd.DailyTilawahTarget != nil {
		cfg.DailyTilawahTarget = *upd.DailyTilawahTarget
	}
	if upd.ZakatTargetAmount != nil {
		cfg.ZakatTargetAmount = *upd.ZakatTargetAmount
	}
	if upd.TradingRiskLimitPercent != nil {
		cfg.TradingRiskLimitPercent = *upd.TradingRiskLimitPercent
	}

	if err := s.db.Save(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

// AddHabit appends a custom habit name, keeping insertion order and
// ignoring duplicates.
func (s *ConfigService) AddHabit(name string) ([]string, error) {
	cfg, err := s.GetActive()
	if err != nil {
		return nil, err
	}

	for _, h := range cfg.CustomHabits {
		if h == name {
			return cfg.CustomHabits, nil
		}
	}
	cfg.CustomHabits = append(cfg.CustomHabits, name)
	if err := s.db.Save(cfg).Error; err != nil {
		return nil, err
	}
	return cfg.CustomHabits, nil
}

func (s *ConfigService) RemoveHabit(name string) ([]string, error) {
	cfg, err := s.GetActive()
	if err != nil {
		return nil, err
	}

	kept := cfg.CustomHabits[:0]
	for _, h := range cfg.CustomHabits {
		if h != name {
			kept = append(kept, h)
		}
	}
	cfg.CustomHabits = kept
	if err := s.db.Save(cfg).Error; err != nil {
		return nil, err
	}
	return cfg.CustomHabits, nil
}
