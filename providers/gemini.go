package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/metrics"
)

// GeminiClient forwards text prompts to the Gemini generateContent REST
// endpoint and returns the reply text
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	metrics *metrics.UpstreamMetrics
}

// NewGeminiClient creates a new Gemini chat client
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: 60 * time.Second},
		metrics: metrics.NewUpstreamMetrics("llm"),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// Generate sends a single-prompt request and returns the first candidate's
// text. Failures are reported as errors, never panics; the caller decides how
// to surface them to the session.
func (c *GeminiClient) Generate(prompt string) (string, error) {
	if prompt == "" {
		return "", errors.NewValidationError("prompt cannot be empty")
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.NewExternalAPIError("failed to encode chat request", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	c.metrics.RecordRequest()
	started := time.Now()
	resp, err := c.client.Post(url, "application/json", bytes.NewReader(body))
	c.metrics.ObserveLatency(time.Since(started))
	if err != nil {
		c.metrics.RecordFailure()
		return "", errors.NewExternalAPIError("failed to query chat API", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordFailure()
		return "", errors.NewExternalAPIError(fmt.Sprintf("chat API returned status code %d", resp.StatusCode), nil)
	}

	var payload geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.RecordFailure()
		return "", errors.NewSchemaError("failed to decode chat response", err)
	}

	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		c.metrics.RecordFailure()
		return "", errors.NewSchemaError("chat response contained no candidates", nil)
	}

	return payload.Candidates[0].Content.Parts[0].Text, nil
}
