package grader

import (
	"context"
	"fmt"

	"github.com/mjaja25/exam-website-backend/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// AIClient is the minimal surface the orchestrator needs from the grading
// model: one prompt in, one free-text reply out.
type AIClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient is the production AIClient over an OpenAI-compatible chat API.
type OpenAIClient struct {
	api   *openai.Client
	model string
}

// NewOpenAIClient builds the production client from configuration.
// A custom base URL switches the client to any OpenAI-compatible endpoint.
func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	apiCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		apiCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAIClient{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.OpenAIModel,
	}
}

// Complete sends a single-user-message chat completion and returns the raw
// reply text. JSON-object response format is requested; replies are still
// fence-stripped and schema-validated downstream since the format hint is
// not honored by every provider.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
