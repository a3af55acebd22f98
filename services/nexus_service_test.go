package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type stubGenerator struct {
	resp  string
	err   error
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.resp, nil
}

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantMsg    string
		wantAction string
	}{
		{
			name:       "both labels",
			raw:        "FEEDBACK: Lo slacking hari ini.\nACTION: Baca 10 halaman sebelum subuh.",
			wantMsg:    "Lo slacking hari ini.",
			wantAction: "Baca 10 halaman sebelum subuh.",
		},
		{
			name:       "missing action gets default",
			raw:        "FEEDBACK: Solid execution. Keep pushing.",
			wantMsg:    "Solid execution. Keep pushing.",
			wantAction: defaultActionItem,
		},
		{
			name:       "no labels passes raw through",
			raw:        "Model rambled without any structure today.",
			wantMsg:    "Model rambled without any structure today.",
			wantAction: defaultActionItem,
		},
		{
			name:       "lowercase labels",
			raw:        "feedback: masih oke.\naction: tidur lebih cepat.",
			wantMsg:    "masih oke.",
			wantAction: "tidur lebih cepat.",
		},
		{
			name:       "empty action falls back to default",
			raw:        "FEEDBACK: ok.\nACTION:",
			wantMsg:    "ok.",
			wantAction: defaultActionItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := ParseFeedback(tt.raw)
			if fb.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", fb.Message, tt.wantMsg)
			}
			if fb.ActionItem != tt.wantAction {
				t.Errorf("action = %q, want %q", fb.ActionItem, tt.wantAction)
			}
		})
	}
}

func TestFallbackFeedback(t *testing.T) {
	leak := FallbackFeedback(NexusContext{AuditMode: AuditModeLeak})
	if !strings.Contains(leak.Message, "LEAK DETECTED") {
		t.Errorf("unexpected leak fallback: %q", leak.Message)
	}
	if !strings.Contains(leak.ActionItem, "Puasa digital") {
		t.Errorf("unexpected leak action: %q", leak.ActionItem)
	}

	risk := FallbackFeedback(NexusContext{AuditMode: AuditModeFinancialRisk})
	if !strings.Contains(risk.Message, "STOP TRADING") {
		t.Errorf("unexpected risk fallback: %q", risk.Message)
	}
	if !strings.Contains(risk.ActionItem, "3 hari") {
		t.Errorf("unexpected risk action: %q", risk.ActionItem)
	}

	normal := FallbackFeedback(NexusContext{AuditMode: AuditModeNormal, CumulativePages: 120, TargetPages: 604})
	if !strings.Contains(normal.Message, "120/604") {
		t.Errorf("normal fallback should interpolate progress, got %q", normal.Message)
	}
	if !strings.Contains(normal.ActionItem, "5 halaman") {
		t.Errorf("unexpected normal action: %q", normal.ActionItem)
	}
}

func TestBuildAuditPrompt(t *testing.T) {
	nc := NexusContext{
		LogDate:                 "2026-03-05",
		SholatFardhu:            3,
		PagesRead:               10,
		CumulativePages:         151,
		TargetPages:             604,
		LeakGames:               true,
		TradingPnl:              -50000,
		CumulativeCapital:       1000000,
		TradingRiskLimitPercent: 2,
		ZakatTarget:             5000000,
		AuditMode:               AuditModeLeak,
		LeakDetails:             "Gaming",
	}
	prompt := BuildAuditPrompt(nc)

	for _, want := range []string{
		"2026-03-05",
		"Sholat Fardhu: 3/5",
		"151/604 = 25.0%",
		"MODE: LEAK",
		"DETAIL LEAK: Gaming",
		"FEEDBACK:",
		"ACTION:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGeminiClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"FEEDBACK: ok\nACTION: go"}]}}]}`)
	}))
	defer srv.Close()

	g := &GeminiClient{
		client:  &http.Client{Timeout: time.Second},
		apiKey:  "test-key",
		model:   "gemini-2.0-flash",
		baseURL: srv.URL,
	}

	raw, err := g.Generate(context.Background(), "system", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(raw, "FEEDBACK: ok") {
		t.Errorf("unexpected response: %q", raw)
	}
}

func TestGeminiClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer srv.Close()

	g := &GeminiClient{
		client:  &http.Client{Timeout: time.Second},
		apiKey:  "test-key",
		model:   "gemini-2.0-flash",
		baseURL: srv.URL,
	}

	_, err := g.Generate(context.Background(), "system", "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected api error message, got %v", err)
	}
}

func TestGeminiClient_MissingKey(t *testing.T) {
	g := &GeminiClient{client: &http.Client{}, model: "gemini-2.0-flash", baseURL: "http://unused"}
	if _, err := g.Generate(context.Background(), "s", "p"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestFeedbackGenerator_FallsBackOnError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("network down")}
	gen := NewFeedbackGenerator(stub, testLogger())

	nc := NexusContext{AuditMode: AuditModeFinancialRisk}
	fb := gen.Generate(context.Background(), nc)

	if stub.calls != 1 {
		t.Errorf("expected a single attempt, got %d", stub.calls)
	}
	want := FallbackFeedback(nc)
	if fb != want {
		t.Errorf("expected fallback %+v, got %+v", want, fb)
	}
}

func TestFeedbackGenerator_ParsesResponse(t *testing.T) {
	stub := &stubGenerator{resp: "FEEDBACK: tajam.\nACTION: besok 30 halaman."}
	gen := NewFeedbackGenerator(stub, testLogger())

	fb := gen.Generate(context.Background(), NexusContext{AuditMode: AuditModeLeak})
	if fb.Message != "tajam." {
		t.Errorf("message = %q", fb.Message)
	}
	if fb.ActionItem != "besok 30 halaman." {
		t.Errorf("action = %q", fb.ActionItem)
	}
}
