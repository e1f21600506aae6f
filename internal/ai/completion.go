package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/rs/zerolog"
)

// ErrMissingAPIKey indicates the provider credential is not configured.
// This is a deployment problem, never a caller problem.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not configured")

// UpstreamError carries the provider's status code and message so handlers
// can propagate them instead of a generic failure.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream provider error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("upstream provider error (status %d): %s", e.StatusCode, e.Message)
}

// CompletionRequest is the contract every generation stage speaks
type CompletionRequest struct {
	System    string
	User      string
	Model     string
	MaxTokens int
	JSONMode  bool
}

// CompletionClient generates text from a system/user prompt pair
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// openAICompletionClient calls the OpenAI chat completions endpoint
type openAICompletionClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewCompletionClient creates a completion client for the configured provider
func NewCompletionClient(cfg *config.OpenAIConfig, log zerolog.Logger) (CompletionClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &openAICompletionClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		log:     log.With().Str("client", "completion").Logger(),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	Temperature    float64             `json:"temperature"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type providerErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the prompt pair and returns the generated text
func (c *openAICompletionClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: 0.7,
	}
	if req.JSONMode {
		body.ResponseFormat = &chatResponseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("timeout calling completion provider: %w", err)
		}
		return "", fmt.Errorf("failed to call completion provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: extractProviderMessage(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion response from provider")
	}

	c.log.Debug().
		Str("model", req.Model).
		Int("max_tokens", req.MaxTokens).
		Bool("json_mode", req.JSONMode).
		Str("finish_reason", parsed.Choices[0].FinishReason).
		Msg("Completion received")

	return parsed.Choices[0].Message.Content, nil
}

// extractProviderMessage pulls the provider's error message out of a
// non-success body, falling back to the raw body when it is not JSON
func extractProviderMessage(body []byte) string {
	var parsed providerErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return string(body)
}
