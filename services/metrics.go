package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var auditsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nexus_audits_total",
	Help: "Audit classifications by mode.",
}, []string{"mode"})

var feedbackStored = promauto.NewCounter(prometheus.CounterOpts{
	Name: "nexus_feedback_stored_total",
	Help: "AI feedback records persisted.",
})

var generationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "nexus_generation_fallbacks_total",
	Help: "Text generation failures recovered with the static fallback.",
})

var dailyLogsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "nexus_daily_logs_created_total",
	Help: "Daily logs successfully stored.",
})
