package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/rs/zerolog"
)

// TranscriptionClient converts an audio payload into transcript text
type TranscriptionClient interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// openAITranscriptionClient calls the OpenAI audio transcription endpoint
type openAITranscriptionClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	log     zerolog.Logger
}

// NewTranscriptionClient creates a transcription client for the configured provider
func NewTranscriptionClient(cfg *config.OpenAIConfig, log zerolog.Logger) (TranscriptionClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &openAITranscriptionClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.TranscriptionModel,
		client:  &http.Client{Timeout: cfg.StageTimeout},
		log:     log.With().Str("client", "transcription").Logger(),
	}, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio and returns the transcript text
func (c *openAITranscriptionClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to buffer audio payload: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("timeout calling transcription provider: %w", err)
		}
		return "", fmt.Errorf("failed to call transcription provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: extractProviderMessage(respBody)}
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("empty transcript from provider")
	}

	c.log.Debug().Str("file", filename).Int("chars", len(parsed.Text)).Msg("Transcript received")
	return parsed.Text, nil
}
