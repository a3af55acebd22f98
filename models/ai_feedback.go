package models

import "time"

// AiFeedback is one coaching record per audited day. Clean (OPTIMIZED)
// days store nothing. Rows are deleted before their daily logs on reset.
type AiFeedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	LogDate      time.Time `gorm:"type:date;index;not null" json:"logDate"`
	FeedbackType string    `gorm:"size:16" json:"feedbackType"` // "CRITICAL" | "WARNING" | "OPTIMIZED"
	AiMessage    string    `gorm:"type:text" json:"aiMessage"`
	ActionItem   string    `gorm:"type:text" json:"actionItem"`
	CreatedAt    time.Time `json:"createdAt"`
}
