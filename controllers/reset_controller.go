package controllers

import (
	"net/http"

	"github.com/Zyrfox/Nexus-Project/services"

	"github.com/gin-gonic/gin"
)

const resetConfirmToken = "RESET-ALL-DATA"

type ResetController struct {
	Logs *services.LogService
}

func NewResetController(logs *services.LogService) *ResetController {
	return &ResetController{Logs: logs}
}

// ResetData wipes all feedback and daily logs, configuration stays.
// Gated by an explicit confirmation header so it cannot be tripped by
// accident.
func (rc *ResetController) ResetData(c *gin.Context) {
	if c.GetHeader("X-Nexus-Confirm") != resetConfirmToken {
		c.JSON(http.StatusForbidden, gin.H{"message": "Reset ditolak. Kirim header X-Nexus-Confirm: RESET-ALL-DATA"})
		return
	}

	if err := rc.Logs.ResetAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Reset failed."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reset berhasil. Clean slate achieved.",
		"deleted": gin.H{"dailyLogs": true, "aiFeedback": true},
	})
}
