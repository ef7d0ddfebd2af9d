package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"expenseanalyzer/internal/config"
	"expenseanalyzer/internal/model"
)

// maxResponseSize caps how much of a completion response is read into memory.
const maxResponseSize = 10 << 20

// Analyzer sends an analysis prompt to a remote model and returns its text.
type Analyzer interface {
	// Analyze performs exactly one completion call. It never retries.
	Analyze(ctx context.Context, req model.AnalysisRequest) (string, error)
}

// Option customizes the OpenAI client.
type Option func(*openAIClient)

// WithHTTPClient sets the HTTP client used for completion calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *openAIClient) {
		o.httpClient = c
	}
}

// openAIClient implements Analyzer against the OpenAI Chat Completions API
// or any compatible endpoint (OpenRouter, vLLM, Ollama).
// It is safe for concurrent use by multiple goroutines.
type openAIClient struct {
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
}

// NewOpenAI creates an Analyzer from explicit configuration.
// It returns config.ErrMissingCredential when no API key is set.
func NewOpenAI(cfg config.OpenAIConfig, opts ...Option) (Analyzer, error) {
	key, err := cfg.Credential()
	if err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai model is required")
	}

	c := &openAIClient{
		// No client timeout. Fiber handler contexts are never cancelled, so a stalled
		// upstream is bounded only by http.DefaultTransport dial and TLS limits.
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		url:        BuildURL(cfg.BaseURL),
		apiKey:     key,
		model:      cfg.Model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BuildURL constructs the chat completions endpoint from a base URL.
func BuildURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}
	return baseURL + "/chat/completions"
}

func (c *openAIClient) Analyze(ctx context.Context, req model.AnalysisRequest) (string, error) {
	if req.Model == "" {
		req.Model = c.model
	}

	body, err := json.Marshal(newChatRequest(req))
	if err != nil {
		return "", fmt.Errorf("llm: build request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("llm: read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", newAPIError(httpResp.StatusCode, respBody)
	}

	return parseChatResponse(respBody)
}
