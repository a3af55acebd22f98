package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Zyrfox/Nexus-Project/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditMode string

const (
	AuditModeLeak          AuditMode = "LEAK"
	AuditModeFinancialRisk AuditMode = "FINANCIAL_RISK"
	AuditModeNormal        AuditMode = "NORMAL"
)

type FeedbackType string

const (
	FeedbackCritical  FeedbackType = "CRITICAL"
	FeedbackWarning   FeedbackType = "WARNING"
	FeedbackOptimized FeedbackType = "OPTIMIZED"
)

// Classification is the classifier's verdict for one daily log.
type Classification struct {
	Mode     AuditMode
	Severity FeedbackType
	Detail   string
}

// Classify applies the audit rules in strict priority order, first
// match wins:
//
//  1. LEAK: any leak flag set. A leak day dominates everything else,
//     including a simultaneous trading loss.
//  2. FINANCIAL_RISK: a loss whose percentage of the pre-entry capital
//     base strictly exceeds the configured limit. The base reconstructs
//     the capital before today's loss (cumulative after + abs(loss)),
//     floored at 1 to survive non-positive capital.
//  3. WARNING: incomplete prayers or zero pages read.
//  4. NORMAL/OPTIMIZED: a clean day, stores no feedback.
func Classify(entry models.DailyLog, cfg models.UserConfig, cum ProgressSnapshot) Classification {
	if entry.Leaked() {
		var leaks []string
		if entry.LeakGames {
			leaks = append(leaks, "Gaming")
		}
		if entry.LeakMovies {
			leaks = append(leaks, "Movies")
		}
		if entry.LeakComicsNovel {
			leaks = append(leaks, "Comics/Novel")
		}
		return Classification{
			Mode:     AuditModeLeak,
			Severity: FeedbackCritical,
			Detail:   strings.Join(leaks, ", "),
		}
	}

	if entry.TradingPnl < 0 {
		absLoss := -entry.TradingPnl
		capitalBase := cum.Capital + absLoss
		if capitalBase < 1 {
			capitalBase = 1
		}
		lossPercent := absLoss / capitalBase * 100
		if lossPercent > cfg.TradingRiskLimitPercent {
			return Classification{
				Mode:     AuditModeFinancialRisk,
				Severity: FeedbackCritical,
				Detail:   fmt.Sprintf("Loss: Rp %.0f (%.1f%% > limit %g%%)", absLoss, lossPercent, cfg.TradingRiskLimitPercent),
			}
		}
	}

	if entry.SholatFardhu < 5 || entry.PagesRead == 0 {
		return Classification{Mode: AuditModeNormal, Severity: FeedbackWarning}
	}

	return Classification{Mode: AuditModeNormal, Severity: FeedbackOptimized}
}

// AuditService orchestrates the audit pipeline after a daily log has
// been durably stored. It is a best-effort side channel: nothing in
// here may fail the submission that triggered it.
type AuditService struct {
	db        *gorm.DB
	configs   *ConfigService
	progress  *ProgressService
	generator *FeedbackGenerator
	hub       *RealtimeHub
	log       *logrus.Logger
}

func NewAuditService(db *gorm.DB, generator *FeedbackGenerator, hub *RealtimeHub, log *logrus.Logger) *AuditService {
	return &AuditService{
		db:        db,
		configs:   NewConfigService(db),
		progress:  NewProgressService(db),
		generator: generator,
		hub:       hub,
		log:       log,
	}
}

// RunAudit classifies the new entry and persists at most one feedback
// record for its date. Every failure is logged and swallowed; the
// caller already has its "log saved" answer.
func (a *AuditService) RunAudit(ctx context.Context, entry models.DailyLog) {
	cfg, err := a.configs.GetActive()
	if err != nil {
		a.log.WithError(err).Error("audit skipped: no active config")
		return
	}

	cum, err := a.progress.SnapshotAsOf(entry.LogDate)
	if err != nil {
		a.log.WithError(err).Error("audit skipped: cumulative progress query failed")
		return
	}

	cls := Classify(entry, *cfg, cum)
	auditsTotal.WithLabelValues(string(cls.Mode)).Inc()

	if cls.Severity == FeedbackOptimized {
		a.log.WithField("logDate", dateString(entry.LogDate)).Info("audit passed, clean day")
		return
	}

	// Idempotency guard: a re-dispatched audit for an already-covered
	// date must not produce a second record.
	var existing int64
	if err := a.db.Model(&models.AiFeedback{}).Where("log_date = ?", entry.LogDate).Count(&existing).Error; err != nil {
		a.log.WithError(err).Error("audit skipped: feedback lookup failed")
		return
	}
	if existing > 0 {
		a.log.WithField("logDate", dateString(entry.LogDate)).Warn("audit skipped: feedback already exists")
		return
	}

	nc := NexusContext{
		LogDate:                 dateString(entry.LogDate),
		SholatFardhu:            entry.SholatFardhu,
		PagesRead:               entry.PagesRead,
		CumulativePages:         cum.Pages,
		TargetPages:             cfg.TotalQuranPages,
		LeakGames:               entry.LeakGames,
		LeakMovies:              entry.LeakMovies,
		LeakComicsNovel:         entry.LeakComicsNovel,
		TradingPnl:              entry.TradingPnl,
		CumulativeCapital:       cum.Capital,
		TradingRiskLimitPercent: cfg.TradingRiskLimitPercent,
		ZakatTarget:             cfg.ZakatTargetAmount,
		AuditMode:               cls.Mode,
		LeakDetails:             cls.Detail,
	}

	fb := a.generator.Generate(ctx, nc)

	record := models.AiFeedback{
		LogDate:      entry.LogDate,
		FeedbackType: string(cls.Severity),
		AiMessage:    fb.Message,
		ActionItem:   fb.ActionItem,
		CreatedAt:    time.Now(),
	}
	if err := a.db.Create(&record).Error; err != nil {
		a.log.WithError(err).Error("audit feedback insert failed")
		return
	}
	feedbackStored.Inc()

	if a.hub != nil {
		a.hub.BroadcastFeedback(map[string]any{
			"kind":     "feedback.created",
			"feedback": record,
		})
	}

	a.log.WithFields(logrus.Fields{
		"logDate": dateString(entry.LogDate),
		"type":    cls.Severity,
		"mode":    cls.Mode,
	}).Info("ai feedback generated")
}

func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}
