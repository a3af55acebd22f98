package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Zyrfox/Nexus-Project/models"
	"github.com/Zyrfox/Nexus-Project/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type DailyLogController struct {
	Logs  *services.LogService
	Audit *services.AuditService
}

func NewDailyLogController(logs *services.LogService, audit *services.AuditService) *DailyLogController {
	return &DailyLogController{Logs: logs, Audit: audit}
}

type dailyLogRequest struct {
	LogDate string `json:"logDate" binding:"required,datetime=2006-01-02"`

	SholatFardhu   int  `json:"sholatFardhu" binding:"min=0,max=5"`
	SholatTarawih  bool `json:"sholatTarawih"`
	SholatTahajjud bool `json:"sholatTahajjud"`
	PagesRead      int  `json:"pagesRead" binding:"min=0"`
	CurrentJuz     int  `json:"currentJuz" binding:"min=0,max=30"`

	LeakGames       bool `json:"leakGames"`
	LeakMovies      bool `json:"leakMovies"`
	LeakComicsNovel bool `json:"leakComicsNovel"`

	SkincareAm      bool   `json:"skincareAm"`
	SkincarePm      bool   `json:"skincarePm"`
	HaircareRoutine bool   `json:"haircareRoutine"`
	WorkoutType     string `json:"workoutType"`
	WaterIntakeMl   int    `json:"waterIntakeMl" binding:"min=0"`

	TradingPnl    float64 `json:"tradingPnl"`
	OtherIncome   float64 `json:"otherIncome" binding:"min=0"`
	ExpenseAmount float64 `json:"expenseAmount" binding:"min=0"`
	TradingNotes  string  `json:"tradingNotes"`

	HabitLogs map[string]bool `json:"habitLogs"`
}

// CreateDailyLog validates and stores one day's entry, then runs the
// audit pipeline synchronously so the caller learns in the same
// response cycle whether an audit was triggered. Audit failures never
// fail the submission.
func (dc *DailyLogController) CreateDailyLog(c *gin.Context) {
	var req dailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation Error", "errors": err.Error()})
		return
	}

	logDate, err := time.Parse("2006-01-02", req.LogDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation Error", "errors": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	habits := req.HabitLogs
	if habits == nil {
		habits = map[string]bool{}
	}

	entry := models.DailyLog{
		LogDate:         logDate,
		SholatFardhu:    req.SholatFardhu,
		SholatTarawih:   req.SholatTarawih,
		SholatTahajjud:  req.SholatTahajjud,
		PagesRead:       req.PagesRead,
		CurrentJuz:      req.CurrentJuz,
		LeakGames:       req.LeakGames,
		LeakMovies:      req.LeakMovies,
		LeakComicsNovel: req.LeakComicsNovel,
		SkincareAm:      req.SkincareAm,
		SkincarePm:      req.SkincarePm,
		HaircareRoutine: req.HaircareRoutine,
		WorkoutType:     req.WorkoutType,
		WaterIntakeMl:   req.WaterIntakeMl,
		TradingPnl:      req.TradingPnl,
		OtherIncome:     req.OtherIncome,
		ExpenseAmount:   req.ExpenseAmount,
		TradingNotes:    req.TradingNotes,
		HabitLogs:       datatypes.NewJSONType(habits),
	}

	if err := dc.Logs.Create(&entry); err != nil {
		if errors.Is(err, services.ErrDuplicateDate) {
			c.JSON(http.StatusConflict, gin.H{"message": "Log for this date already exists.", "code": "DUPLICATE_DATE"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	dc.Audit.RunAudit(c.Request.Context(), entry)

	auditTriggered := entry.Leaked()
	var auditReason any
	if auditTriggered {
		auditReason = "Leak Detected (Games/Movies/Comics)"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Daily Log saved successfully.",
		"data":    entry,
		"meta": gin.H{
			"auditModeTriggered": auditTriggered,
			"auditReason":        auditReason,
		},
	})
}

// ListDailyLogs returns the full log sequence, date ascending.
func (dc *DailyLogController) ListDailyLogs(c *gin.Context) {
	logs, err := dc.Logs.ListOrdered()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
