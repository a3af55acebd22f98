package controllers

import (
	"errors"
	"net/http"

	"github.com/Zyrfox/Nexus-Project/services"

	"github.com/gin-gonic/gin"
)

type ConfigController struct {
	Configs *services.ConfigService
}

func NewConfigController(configs *services.ConfigService) *ConfigController {
	return &ConfigController{Configs: configs}
}

func (cc *ConfigController) GetConfig(c *gin.Context) {
	cfg, err := cc.Configs.GetActive()
	if err != nil {
		if errors.Is(err, services.ErrNoActiveConfig) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Configuration not found. Please seed the database."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type updateConfigRequest struct {
	RamadanYear             *int     `json:"ramadanYear"`
	TotalQuranPages         *int     `json:"totalQuranPages" binding:"omitempty,min=1"`
	DailyTilawahTarget      *int     `json:"dailyTilawahTarget" binding:"omitempty,min=0"`
	ZakatTargetAmount       *float64 `json:"zakatTargetAmount" binding:"omitempty,min=0"`
	TradingRiskLimitPercent *float64 `json:"tradingRiskLimitPercent" binding:"omitempty,min=0,max=100"`
}

func (cc *ConfigController) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "errors": err.Error()})
		return
	}

	cfg, err := cc.Configs.UpdateTargets(services.ConfigUpdate{
		RamadanYear:             req.RamadanYear,
		TotalQuranPages:         req.TotalQuranPages,
		DailyTilawahTarget:      req.DailyTilawahTarget,
		ZakatTargetAmount:       req.ZakatTargetAmount,
		TradingRiskLimitPercent: req.TradingRiskLimitPercent,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoActiveConfig) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No active configuration found to update."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type habitActionRequest struct {
	Action string `json:"action" binding:"required,oneof=add remove"`
	Habit  string `json:"habit" binding:"required,min=1,max=100"`
}

func (cc *ConfigController) ManageHabit(c *gin.Context) {
	var req habitActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "errors": err.Error()})
		return
	}

	var habits []string
	var err error
	if req.Action == "add" {
		habits, err = cc.Configs.AddHabit(req.Habit)
	} else {
		habits, err = cc.Configs.RemoveHabit(req.Habit)
	}
	if err != nil {
		if errors.Is(err, services.ErrNoActiveConfig) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Config not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "habits": habits})
}
