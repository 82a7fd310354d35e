package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pulsevo/pkg/circuitbreaker"
	"pulsevo/pkg/config"
	"pulsevo/pkg/metrics"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient is a thin HTTP client for the generative text service. One
// request, one response, no retries; the circuit breaker fails fast when the
// upstream has been misbehaving so callers drop to their fallback text
// immediately.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

// NewGeminiClient returns nil when no API key is configured; a nil client is
// a valid "always fall back" narrator input.
func NewGeminiClient(cfg config.AIConfig) *GeminiClient {
	if cfg.APIKey == "" {
		return nil
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // LLM 可能需要更长时间
		},
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"response_mime_type,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the trimmed text reply.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, nil)
}

// GenerateJSON asks for a JSON-mode reply and decodes it into out.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, out interface{}) error {
	text, err := c.generate(ctx, prompt, &generationConfig{
		ResponseMimeType: "application/json",
		Temperature:      0.7,
	})
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(text), out)
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, genCfg *generationConfig) (string, error) {
	var text string
	start := time.Now()
	err := c.breaker.Execute(func() error {
		var callErr error
		text, callErr = c.call(ctx, prompt, genCfg)
		return callErr
	})
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordGeminiCallLatency("generateContent", status, time.Since(start))
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *GeminiClient) call(ctx context.Context, prompt string, genCfg *generationConfig) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: genCfg,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini api returned no candidates")
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}
