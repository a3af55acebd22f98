package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// The NEXUS "nyelekit" coaching persona. The wording is part of the
// product; the rules force a FEEDBACK:/ACTION: shaped response.
const nexusSystemPrompt = `Kamu adalah NEXUS, AI Coach yang brutal, jujur, dan "nyelekit" tapi punya tujuan baik.
Kamu sedang memantau seorang Muslim yang ingin memaksimalkan Ramadan-nya.

RULES:
1. Kamu TIDAK BOLEH lembek. Kalau user gagal, roasting dia dengan analogi teknologi/bisnis/startup.
2. Gunakan bahasa campuran Indonesia-English (Jaksel style) yang tajam.
3. Setiap feedback HARUS diakhiri dengan ACTION ITEM yang konkret dan bisa dilakukan.
4. Kalau user konsisten bagus, puji dengan singkat lalu tantang lebih tinggi.
5. Referensikan data spesifik user (halaman dibaca, PnL, leak yang terjadi).
6. Kalau ada "leak" (main game/nonton/baca komik), anggap itu pengkhianatan terhadap komitmen.
7. Untuk trading loss, gunakan analogi risk management dan equity drawdown.
8. Response maksimal 3 paragraf. Singkat, tajam, nusuk.`

const defaultActionItem = "Review performa hari ini dan buat target untuk besok."

// Feedback is one coaching message plus one concrete action item.
type Feedback struct {
	Message    string
	ActionItem string
}

// NexusContext bundles everything the generator may reference: the raw
// entry fields, the classification, cumulative progress and targets.
type NexusContext struct {
	LogDate string

	SholatFardhu    int
	PagesRead       int
	CumulativePages int
	TargetPages     int

	LeakGames       bool
	LeakMovies      bool
	LeakComicsNovel bool

	TradingPnl              float64
	CumulativeCapital       float64
	TradingRiskLimitPercent float64
	ZakatTarget             float64

	AuditMode   AuditMode
	LeakDetails string
}

// TextGenerator is the external text-generation capability. One attempt
// per audit; any error makes the caller fall back locally.
type TextGenerator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// GeminiClient calls the Gemini REST API. Requests are bounded by the
// http client timeout so a slow model can never block a log submission
// for long.
type GeminiClient struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewGeminiClient() *GeminiClient {
	return &GeminiClient{
		client:  &http.Client{Timeout: 15 * time.Second},
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   "gemini-2.0-flash",
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	b, _ := json.Marshal(body)

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out geminiResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode gemini response error: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return sb.String(), nil
}

// BuildAuditPrompt renders the structured data block the model sees.
func BuildAuditPrompt(nc NexusContext) string {
	progressPercent := "0"
	if nc.TargetPages > 0 {
		progressPercent = fmt.Sprintf("%.1f", float64(nc.CumulativePages)/float64(nc.TargetPages)*100)
	}
	zakatPercent := "N/A"
	if nc.ZakatTarget > 0 {
		zakatPercent = fmt.Sprintf("%.1f", nc.CumulativeCapital/nc.ZakatTarget*100)
	}

	yesNo := func(b bool) string {
		if b {
			return "YA ❌"
		}
		return "Tidak ✅"
	}

	var sb bytes.Buffer
	fmt.Fprintf(&sb, "DATA HARI INI (%s):\n", nc.LogDate)
	fmt.Fprintf(&sb, "- Sholat Fardhu: %d/5\n", nc.SholatFardhu)
	fmt.Fprintf(&sb, "- Halaman Quran dibaca: %d (Kumulatif: %d/%d = %s%%)\n",
		nc.PagesRead, nc.CumulativePages, nc.TargetPages, progressPercent)
	fmt.Fprintf(&sb, "- Leak Games: %s\n", yesNo(nc.LeakGames))
	fmt.Fprintf(&sb, "- Leak Movies: %s\n", yesNo(nc.LeakMovies))
	fmt.Fprintf(&sb, "- Leak Comics/Novel: %s\n", yesNo(nc.LeakComicsNovel))
	fmt.Fprintf(&sb, "- Trading PnL Hari Ini: Rp %.0f\n", nc.TradingPnl)
	fmt.Fprintf(&sb, "- Capital Kumulatif: Rp %.0f (Target Zakat: %s%%)\n", nc.CumulativeCapital, zakatPercent)
	fmt.Fprintf(&sb, "- Risk Limit: %g%%\n", nc.TradingRiskLimitPercent)
	fmt.Fprintf(&sb, "\nMODE: %s\n", nc.AuditMode)
	if nc.LeakDetails != "" {
		fmt.Fprintf(&sb, "DETAIL LEAK: %s\n", nc.LeakDetails)
	}
	sb.WriteString("\nBerikan feedback NEXUS untuk hari ini. Format response HARUS:\n")
	sb.WriteString("FEEDBACK: [pesan nyelekit 2-3 paragraf]\n")
	sb.WriteString("ACTION: [satu kalimat action item konkret untuk besok]")
	return sb.String()
}

// ParseFeedback locates the FEEDBACK: and ACTION: sections in the raw
// model response. A missing ACTION gets the generic default; when
// neither label is present the whole response becomes the message.
func ParseFeedback(raw string) Feedback {
	upper := strings.ToUpper(raw)
	fi := strings.Index(upper, "FEEDBACK:")
	ai := strings.Index(upper, "ACTION:")

	fb := Feedback{
		Message:    strings.TrimSpace(raw),
		ActionItem: defaultActionItem,
	}
	if ai >= 0 {
		fb.ActionItem = strings.TrimSpace(raw[ai+len("ACTION:"):])
		if fb.ActionItem == "" {
			fb.ActionItem = defaultActionItem
		}
	}
	if fi >= 0 {
		end := len(raw)
		if ai > fi {
			end = ai
		}
		fb.Message = strings.TrimSpace(raw[fi+len("FEEDBACK:") : end])
	} else if ai >= 0 {
		fb.Message = strings.TrimSpace(raw[:ai])
	}
	return fb
}

// FallbackFeedback is the deterministic local substitute used whenever
// the external call fails. Pure data construction, never errors.
func FallbackFeedback(nc NexusContext) Feedback {
	switch nc.AuditMode {
	case AuditModeLeak:
		return Feedback{
			Message:    "LEAK DETECTED. Lo janji mau berubah, tapi masih nge-waste waktu. Ramadan bukan waktu buat main-main. Setiap detik yang lo buang, itu equity akhirat lo yang terbakar.",
			ActionItem: "Hapus semua trigger app. Puasa digital 24 jam mulai sekarang.",
		}
	case AuditModeFinancialRisk:
		return Feedback{
			Message:    "STOP TRADING. Risk management lo jebol. Equity drawdown udah melewati batas. Kalau lo trader beneran, lo tau kapan harus cut. Ini saatnya.",
			ActionItem: "Stop trading 3 hari. Review journal. Jangan buka chart sampai mental stabil.",
		}
	default:
		return Feedback{
			Message:    fmt.Sprintf("Hari ini clean. Tapi jangan GR. Progress Quran lo baru %d/%d. Masih jauh dari khatam.", nc.CumulativePages, nc.TargetPages),
			ActionItem: "Tambah 5 halaman dari target harian besok.",
		}
	}
}

// FeedbackGenerator tries the external generator once and falls back to
// the static per-mode templates on any failure.
type FeedbackGenerator struct {
	gen TextGenerator
	log *logrus.Logger
}

func NewFeedbackGenerator(gen TextGenerator, log *logrus.Logger) *FeedbackGenerator {
	return &FeedbackGenerator{gen: gen, log: log}
}

func (f *FeedbackGenerator) Generate(ctx context.Context, nc NexusContext) Feedback {
	raw, err := f.gen.Generate(ctx, nexusSystemPrompt, BuildAuditPrompt(nc))
	if err != nil {
		generationFallbacks.Inc()
		f.log.WithError(err).WithField("mode", nc.AuditMode).Warn("text generation failed, using fallback")
		return FallbackFeedback(nc)
	}
	return ParseFeedback(raw)
}
