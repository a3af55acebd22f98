// Hell week simulation: a three-day dry run against a running backend.
// Day 1 is perfect, day 2 leaks and blows the risk limit, day 3 recovers.
//
// Run: go run ./cmd/hellweek
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

var baseURL = func() string {
	if v := os.Getenv("NEXUS_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}()

func postLog(payload map[string]any, label string) {
	fmt.Printf("\nSending: %s\n", label)
	b, _ := json.Marshal(payload)

	resp, err := http.Post(baseURL+"/api/daily-log", "application/json", bytes.NewReader(b))
	if err != nil {
		fmt.Printf("  error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var body struct {
		Meta struct {
			AuditModeTriggered bool   `json:"auditModeTriggered"`
			AuditReason        string `json:"auditReason"`
		} `json:"meta"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	fmt.Printf("  status: %d\n", resp.StatusCode)
	if body.Meta.AuditModeTriggered {
		fmt.Printf("  audit: TRIGGERED (%s)\n", body.Meta.AuditReason)
	} else {
		fmt.Println("  audit: clean")
	}
}

func checkDashboard() {
	fmt.Println("\nChecking dashboard...")
	resp, err := http.Get(baseURL + "/api/dashboard/full")
	if err != nil {
		fmt.Printf("  error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var data struct {
		Stats struct {
			TotalPages      int     `json:"totalPages"`
			TargetPages     int     `json:"targetPages"`
			ProgressPercent string  `json:"progressPercent"`
			TotalCapital    float64 `json:"totalCapital"`
			LeakDays        int     `json:"leakDays"`
			AvgSholat       string  `json:"avgSholat"`
		} `json:"stats"`
		Feedbacks []struct {
			FeedbackType string `json:"feedbackType"`
			AiMessage    string `json:"aiMessage"`
			ActionItem   string `json:"actionItem"`
		} `json:"feedbacks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		fmt.Printf("  decode error: %v\n", err)
		return
	}

	fmt.Println("--- NEXUS STATUS ---")
	fmt.Printf("Quran  : %d/%d (%s%%)\n", data.Stats.TotalPages, data.Stats.TargetPages, data.Stats.ProgressPercent)
	fmt.Printf("Capital: Rp %.0f\n", data.Stats.TotalCapital)
	fmt.Printf("Leaks  : %d day(s)\n", data.Stats.LeakDays)
	fmt.Printf("Sholat : %s/5 avg\n", data.Stats.AvgSholat)
	fmt.Printf("Feedback entries: %d\n", len(data.Feedbacks))
	if len(data.Feedbacks) > 0 {
		latest := data.Feedbacks[0]
		msg := latest.AiMessage
		if len(msg) > 200 {
			msg = msg[:200] + "..."
		}
		fmt.Printf("\nLatest [%s]: %s\n", latest.FeedbackType, msg)
		fmt.Printf("ACTION: %s\n", latest.ActionItem)
	}
}

func main() {
	fmt.Println("NEXUS HELL WEEK SIMULATION: 3-day dry run")

	postLog(map[string]any{
		"logDate": "2026-02-20", "sholatFardhu": 5, "sholatTarawih": true, "sholatTahajjud": true,
		"pagesRead": 25, "currentJuz": 1, "waterIntakeMl": 2500,
		"tradingPnl": 250000, "otherIncome": 0, "expenseAmount": 50000,
	}, "Day 1: The Perfect Day")
	time.Sleep(2 * time.Second)

	postLog(map[string]any{
		"logDate": "2026-02-21", "sholatFardhu": 2, "pagesRead": 0,
		"leakGames": true, "leakMovies": true,
		"tradingPnl": -500000, "expenseAmount": 150000,
	}, "Day 2: Leak + Loss")
	time.Sleep(2 * time.Second)

	postLog(map[string]any{
		"logDate": "2026-02-22", "sholatFardhu": 5, "sholatTarawih": true,
		"pagesRead": 30, "currentJuz": 2, "waterIntakeMl": 3000,
		"tradingPnl": 100000,
	}, "Day 3: Recovery")
	time.Sleep(2 * time.Second)

	checkDashboard()
}
