package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultSystemPrompt frames every request unless overridden per call.
const DefaultSystemPrompt = "You're a brilliant Tech Lead."

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 30 * time.Second

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	// Endpoint is the full chat-completions URL.
	Endpoint string

	// APIKey is sent as a bearer token. Optional for unauthenticated
	// endpoints (local gateways, test servers).
	APIKey string

	// Engine is the model identifier sent with every request.
	Engine string

	// Temperature is the default sampling temperature.
	Temperature float64

	// Timeout bounds a single request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying transport. Nil uses a client
	// with the configured timeout.
	HTTPClient *http.Client
}

// HTTPClient talks to an OpenAI-style chat-completions endpoint.
// One network call per Complete; retries belong to the Retrying wrapper.
type HTTPClient struct {
	cfg  HTTPConfig
	http *http.Client
}

// NewHTTPClient creates a client for the configured endpoint.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{cfg: cfg, http: hc}
}

// chatRequest is the wire format for the chat-completions call.
type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the wire format of a successful response.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete implements Client.
func (c *HTTPClient) Complete(ctx context.Context, req Request) (*Response, error) {
	system := req.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt
	}
	temperature := c.cfg.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	body, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: req.Prompt},
		},
		Model:       c.cfg.Engine,
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, NewError("complete", 0, fmt.Errorf("encode request: %w", err), false)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewError("complete", 0, err, false)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewError("complete", 0, ErrTimeout, true)
		}
		if ctx.Err() != nil {
			return nil, NewError("complete", 0, ctx.Err(), false)
		}
		return nil, NewError("complete", 0, fmt.Errorf("%w: %v", ErrUnavailable, err), true)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, c.statusError(httpResp)
	}

	var decoded chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&decoded); err != nil {
		return nil, NewError("decode", httpResp.StatusCode, fmt.Errorf("%w: %v", ErrEmptyResponse, err), false)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		return nil, NewError("decode", httpResp.StatusCode, ErrEmptyResponse, false)
	}

	model := decoded.Model
	if model == "" {
		model = c.cfg.Engine
	}

	return &Response{
		Content:      decoded.Choices[0].Message.Content,
		Model:        model,
		FinishReason: decoded.Choices[0].FinishReason,
		Duration:     time.Since(start),
		Usage: TokenUsage{
			InputTokens:  decoded.Usage.PromptTokens,
			OutputTokens: decoded.Usage.CompletionTokens,
			TotalTokens:  decoded.Usage.TotalTokens,
		},
	}, nil
}

// statusError maps a non-200 response to a completion error.
func (c *HTTPClient) statusError(resp *http.Response) error {
	// Read a bounded amount of the body for the error message.
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := string(bytes.TrimSpace(snippet))

	var apiErr chatResponse
	if json.Unmarshal(snippet, &apiErr) == nil && apiErr.Error != nil {
		detail = apiErr.Error.Message
	}

	wrap := func(sentinel error, retryable bool) *Error {
		err := sentinel
		if detail != "" {
			err = fmt.Errorf("%w: %s", sentinel, detail)
		}
		e := NewError("complete", resp.StatusCode, err, retryable)
		if retryable {
			e.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		}
		return e
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return wrap(ErrRateLimited, true)
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return wrap(ErrUnavailable, true)
	case http.StatusRequestEntityTooLarge:
		return wrap(ErrContextTooLong, false)
	case http.StatusBadRequest:
		return wrap(ErrInvalidRequest, false)
	default:
		return wrap(fmt.Errorf("unexpected status %d", resp.StatusCode), false)
	}
}

// parseRetryAfter reads a Retry-After header, given either as
// delta-seconds or as an HTTP-date.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		if d := time.Until(when); d > 0 {
			return d
		}
	}
	return 0
}
