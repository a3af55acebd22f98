package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Zyrfox/Nexus-Project/models"
	"github.com/Zyrfox/Nexus-Project/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	return "", errors.New("generator unavailable")
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func setupTestEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// a pooled :memory: database is one-per-connection; pin to a single conn
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.UserConfig{}, &models.DailyLog{}, &models.AiFeedback{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&models.UserConfig{
		TotalQuranPages:         604,
		ZakatTargetAmount:       5000000,
		TradingRiskLimitPercent: 2,
		CustomHabits:            []string{},
		IsActive:                true,
	}).Error; err != nil {
		t.Fatalf("seed config: %v", err)
	}

	log := testLogger()
	logSvc := services.NewLogService(db)
	auditSvc := services.NewAuditService(db, services.NewFeedbackGenerator(failingGenerator{}, log), nil, log)
	dc := NewDailyLogController(logSvc, auditSvc)

	r := gin.New()
	r.POST("/api/daily-log", dc.CreateDailyLog)
	r.GET("/api/daily-log", dc.ListDailyLogs)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateDailyLog_LeakDayTriggersAudit(t *testing.T) {
	r, db := setupTestEnv(t)

	w := postJSON(t, r, "/api/daily-log", map[string]any{
		"logDate":      "2026-03-02",
		"sholatFardhu": 2,
		"pagesRead":    0,
		"leakGames":    true,
		"leakMovies":   true,
		"tradingPnl":   -500000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Meta struct {
			AuditModeTriggered bool `json:"auditModeTriggered"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Meta.AuditModeTriggered {
		t.Error("expected auditModeTriggered=true for a leak day")
	}

	var n int64
	db.Model(&models.AiFeedback{}).Count(&n)
	if n != 1 {
		t.Errorf("expected 1 feedback row, got %d", n)
	}
}

func TestCreateDailyLog_CleanDayStillSucceeds(t *testing.T) {
	r, db := setupTestEnv(t)

	// generator always fails, yet the submission must succeed
	w := postJSON(t, r, "/api/daily-log", map[string]any{
		"logDate":      "2026-03-01",
		"sholatFardhu": 5,
		"pagesRead":    25,
		"tradingPnl":   250000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var n int64
	db.Model(&models.AiFeedback{}).Count(&n)
	if n != 0 {
		t.Errorf("optimized day stored %d feedback rows", n)
	}
}

func TestCreateDailyLog_DuplicateDate(t *testing.T) {
	r, db := setupTestEnv(t)

	payload := map[string]any{
		"logDate":      "2026-03-03",
		"sholatFardhu": 1,
		"pagesRead":    0,
	}
	if w := postJSON(t, r, "/api/daily-log", payload); w.Code != http.StatusOK {
		t.Fatalf("first submission failed: %d", w.Code)
	}

	w := postJSON(t, r, "/api/daily-log", payload)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Code != "DUPLICATE_DATE" {
		t.Errorf("expected code DUPLICATE_DATE, got %q", body.Code)
	}

	var n int64
	db.Model(&models.AiFeedback{}).Count(&n)
	if n != 1 {
		t.Errorf("duplicate submission changed feedback count to %d", n)
	}
}

func TestCreateDailyLog_Validation(t *testing.T) {
	r, _ := setupTestEnv(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"sholat out of range", map[string]any{"logDate": "2026-03-04", "sholatFardhu": 7}},
		{"negative pages", map[string]any{"logDate": "2026-03-04", "pagesRead": -1}},
		{"juz out of range", map[string]any{"logDate": "2026-03-04", "currentJuz": 31}},
		{"bad date format", map[string]any{"logDate": "04-03-2026"}},
		{"missing date", map[string]any{"sholatFardhu": 5}},
		{"negative expense", map[string]any{"logDate": "2026-03-04", "expenseAmount": -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := postJSON(t, r, "/api/daily-log", tt.payload); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestListDailyLogs_OrderedByDate(t *testing.T) {
	r, _ := setupTestEnv(t)

	for _, d := range []string{"2026-03-05", "2026-03-01", "2026-03-03"} {
		if w := postJSON(t, r, "/api/daily-log", map[string]any{"logDate": d, "sholatFardhu": 5, "pagesRead": 10}); w.Code != http.StatusOK {
			t.Fatalf("submission for %s failed: %d", d, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/daily-log", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var logs []models.DailyLog
	if err := json.Unmarshal(w.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].LogDate.Before(logs[i-1].LogDate) {
			t.Fatal("logs not ordered by date ascending")
		}
	}
}
