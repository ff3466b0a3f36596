package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/journeycircle/api/internal/config"
)

// TextGenerator defines the interface for text generation operations.
// Complete is bounded by the short timeout (titles, outlines); CompleteLong
// by the long one (full content).
type TextGenerator interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteLong(ctx context.Context, system, user string) (string, error)
	Model() string
	IsConfigured() bool
}

// ImageGenerator defines the interface for slide image rendering
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, quality string) (*ImageResult, error)
	ImageModel() string
}

// ImageResult is a rendered image returned by the provider
type ImageResult struct {
	Base64   string
	MimeType string
	Model    string
}

// AIClient talks to the generative-AI provider's REST API (OpenAI-compatible
// chat completions and image generations).
type AIClient struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	model        string
	imageModel   string
	shortTimeout time.Duration
	longTimeout  time.Duration
}

// ChatMessage represents a message in the chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest represents the request body for chat completion
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatCompletionResponse represents the response from chat completion
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ImageGenerationRequest represents the request body for image generation
type ImageGenerationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Quality string `json:"quality,omitempty"`
	Format  string `json:"response_format"`
}

// ImageGenerationResponse represents the response from image generation
type ImageGenerationResponse struct {
	Data []struct {
		B64JSON  string `json:"b64_json"`
		MimeType string `json:"mime_type"`
	} `json:"data"`
}

type apiErrorBody struct {
	Error struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	} `json:"error"`
}

// NewAIClient creates a new AI provider client
func NewAIClient(cfg *config.AIConfig) *AIClient {
	short := time.Duration(cfg.TimeoutShort) * time.Second
	if short <= 0 {
		short = 30 * time.Second
	}
	long := time.Duration(cfg.TimeoutLong) * time.Second
	if long <= 0 {
		long = 90 * time.Second
	}
	return &AIClient{
		// No client-level timeout: per-call deadlines depend on the
		// operation (30s titles/outlines, 90s content/images).
		httpClient:   &http.Client{},
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		imageModel:   cfg.ImageModel,
		shortTimeout: short,
		longTimeout:  long,
	}
}

// Complete sends a chat completion request and returns the raw text
func (c *AIClient) Complete(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, c.shortTimeout, system, user)
}

// CompleteLong is Complete with the long deadline, for full-content generation
func (c *AIClient) CompleteLong(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, c.longTimeout, system, user)
}

func (c *AIClient) complete(ctx context.Context, timeout time.Duration, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqBody := ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	var chatResp ChatCompletionResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResult
	}

	return chatResp.Choices[0].Message.Content, nil
}

// GenerateImage renders one slide image. Uses the long timeout.
func (c *AIClient) GenerateImage(ctx context.Context, prompt string, quality string) (*ImageResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.longTimeout)
	defer cancel()

	reqBody := ImageGenerationRequest{
		Model:   c.imageModel,
		Prompt:  prompt,
		Quality: quality,
		Format:  "b64_json",
	}

	var imgResp ImageGenerationResponse
	if err := c.post(ctx, "/images/generations", reqBody, &imgResp); err != nil {
		return nil, err
	}

	if len(imgResp.Data) == 0 || imgResp.Data[0].B64JSON == "" {
		return nil, ErrEmptyResult
	}

	mime := imgResp.Data[0].MimeType
	if mime == "" {
		mime = "image/png"
	}

	return &ImageResult{
		Base64:   imgResp.Data[0].B64JSON,
		MimeType: mime,
		Model:    c.imageModel,
	}, nil
}

// post sends a JSON POST request and decodes the response, mapping failures
// onto the error taxonomy.
func (c *AIClient) post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Cancellation is a normal outcome (superseded or user cancel),
		// timeouts and transport failures are retryable NetworkErrors.
		if errors.Is(err, context.Canceled) {
			return ErrCancelled
		}
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ErrCancelled
		}
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: string(respBody)}
		var parsed apiErrorBody
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error.Message != "" {
			apiErr.Code = parsed.Error.Code
			apiErr.Message = parsed.Error.Message
			apiErr.Data = parsed.Error.Data
		}
		return apiErr
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// Model returns the configured text model name
func (c *AIClient) Model() string {
	return c.model
}

// ImageModel returns the configured image model name
func (c *AIClient) ImageModel() string {
	return c.imageModel
}

// IsConfigured returns true if the client has valid configuration
func (c *AIClient) IsConfigured() bool {
	return c.apiKey != ""
}
