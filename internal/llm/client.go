// Package llm provides the chat-completion client used for recommendation generation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrEmptyResponse indicates the API returned no completion choices.
var ErrEmptyResponse = errors.New("llm returned no choices")

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
}

// Config holds generation client configuration.
type Config struct {
	APIKey      string
	BaseURL     string // Default: https://api.openai.com/v1
	Model       string // e.g., "gpt-3.5-turbo"
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewClient creates a new generation client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents the API request structure.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// CompletionResponse represents the API response structure.
type CompletionResponse struct {
	ID      string           `json:"id"`
	Choices []Choice         `json:"choices"`
	Error   *CompletionError `json:"error,omitempty"`
}

// Choice represents a single completion choice.
type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// CompletionError represents an API error payload.
type CompletionError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Complete sends one chat exchange and returns the raw completion text.
// Transport, auth, and rate-limit failures all surface as a single error;
// retrying is the caller's decision, not the client's.
func (c *Client) Complete(ctx context.Context, systemRole, prompt string) (string, error) {
	reqBody := CompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemRole},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp CompletionResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("API error: %s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return "", fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var compResp CompletionResponse
	if err := json.Unmarshal(body, &compResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(compResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return compResp.Choices[0].Message.Content, nil
}
