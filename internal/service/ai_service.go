package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"pfolio_backend/internal/config"
	"pfolio_backend/internal/util"
	"pfolio_backend/pkg/logger"
	"pfolio_backend/pkg/monitoring"
	"pfolio_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const proofInstruction = "Please extract the core achievements, name of institution, and key dates from this teacher's proof document. Summarize in 2 sentences."

// Fallback texts returned instead of an error.
const (
	FallbackMissingKey = "AI Summary: (API Key Missing) Proof verified successfully."
	FallbackFailed     = "Verification completed. Content processed."
	FallbackEmpty      = "No details extracted."
)

// Summary is the outcome of a document analysis. It is always usable:
// Fallback marks a canned text produced because no real summary was
// available.
type Summary struct {
	Text     string
	Fallback bool
}

// AIService summarises proof documents with the Gemini generateContent API.
// Analyze never fails to the caller; every problem degrades to a fallback
// text.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{config: cfg, client: &http.Client{}}
}

// UpdateConfig swaps the credential, endpoint or model used by later calls.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *AIService) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Configured()
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (r *generateContentResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

func (s *AIService) Analyze(ctx context.Context, pdf []byte) Summary {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	ctx, span := tracing.StartSpan(ctx, "enrichment.analyze")
	defer span.End()
	span.SetAttributes(attribute.Int("document.bytes", len(pdf)))

	if !cfg.Configured() {
		monitoring.EnrichmentResults.WithLabelValues("no_credential").Inc()
		span.SetAttributes(attribute.String("enrichment.outcome", "no_credential"))
		return Summary{Text: FallbackMissingKey, Fallback: true}
	}

	start := time.Now()
	text, err := s.generate(ctx, cfg, pdf)
	monitoring.EnrichmentDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Log.Error("Gemini PDF analysis error", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		monitoring.EnrichmentResults.WithLabelValues("failed").Inc()
		return Summary{Text: FallbackFailed, Fallback: true}
	}
	if text == "" {
		monitoring.EnrichmentResults.WithLabelValues("empty").Inc()
		span.SetAttributes(attribute.String("enrichment.outcome", "empty"))
		return Summary{Text: FallbackEmpty, Fallback: true}
	}

	monitoring.EnrichmentResults.WithLabelValues("summary").Inc()
	span.SetAttributes(attribute.String("enrichment.outcome", "summary"))
	return Summary{Text: text}
}

func (s *AIService) generate(ctx context.Context, cfg config.AIConfig, pdf []byte) (string, error) {
	reqBody := generateContentRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: util.MimePDF,
					Data:     base64.StdEncoding.EncodeToString(pdf),
				}},
				{Text: proofInstruction},
			},
		}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(cfg.BaseURL, "/"), cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("gemini API error %d: %s", result.Error.Code, result.Error.Message)
	}

	return result.text(), nil
}
