package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"pantry-ai/internal/domain"
	"pantry-ai/internal/infra/config"
	"pantry-ai/internal/infra/tracer"
)

// Compile-time interface assertion.
var _ domain.Generator = (*OllamaClient)(nil)

// maxResponseBody is the maximum response body size read from the API.
const maxResponseBody = 10 * 1024 * 1024 // 10 MB

const defaultTimeout = 60 * time.Second

// OllamaClient implements domain.Generator against the native Ollama
// generate API. Requests are non-streaming: the complete response is
// returned in one payload. There is no retry policy; a failed call
// surfaces immediately with a distinct error per failure mode.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

// NewOllamaClient creates a generator for the configured Ollama server.
func NewOllamaClient(cfg config.LLMConfig, logger *slog.Logger) *OllamaClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OllamaClient{
		baseURL: baseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// --- Ollama generate wire types ---

type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	System  string                 `json:"system,omitempty"`
	Stream  bool                   `json:"stream"`
	Options *ollamaGenerateOptions `json:"options,omitempty"`
}

type ollamaGenerateOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate implements domain.Generator.
func (c *OllamaClient) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	ctx, span := tracer.StartSpan(ctx, "llm.generate",
		trace.WithAttributes(
			tracer.StringAttr("llm.provider", c.Name()),
			tracer.StringAttr("llm.model", c.model),
		),
	)
	defer span.End()

	wireReq := ollamaGenerateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		System: req.System,
		Stream: false,
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		wireReq.Options = &ollamaGenerateOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		}
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		tracer.RecordError(span, err)
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		tracer.RecordError(span, err)
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		mapped := mapTransportError(err)
		tracer.RecordError(span, mapped)
		return "", mapped
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		mapped := fmt.Errorf("%w: read body: %v", domain.ErrLLMMalformed, err)
		tracer.RecordError(span, mapped)
		return "", mapped
	}

	if httpResp.StatusCode != http.StatusOK {
		mapped := fmt.Errorf("%w: status %d: %s", domain.ErrLLMStatus, httpResp.StatusCode, string(respBody))
		tracer.RecordError(span, mapped)
		return "", mapped
	}

	var resp ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		mapped := fmt.Errorf("%w: %v", domain.ErrLLMMalformed, err)
		tracer.RecordError(span, mapped)
		return "", mapped
	}

	tracer.SetOK(span)
	c.logger.Debug("llm generate completed",
		"provider", c.Name(),
		"model", c.model,
		"chars", len(resp.Response),
	)
	return resp.Response, nil
}

// Name implements domain.Generator.
func (c *OllamaClient) Name() string { return "ollama" }

// IsHealthy checks if the Ollama server is reachable.
func (c *OllamaClient) IsHealthy(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return false
	}
	httpResp.Body.Close()
	return httpResp.StatusCode == http.StatusOK
}

// mapTransportError maps an HTTP transport failure to a distinct domain
// error: timeouts and connection failures produce different user-visible
// messages when embedded in the final answer.
func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrLLMTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrLLMTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrLLMUnreachable, err)
}
