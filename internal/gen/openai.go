package gen

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

// OpenAIProvider implements Provider using the OpenAI SDK's json_schema
// response format.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(config), model: model}, nil
}

func (p *OpenAIProvider) GenerateCourse(ctx context.Context, req Request) (*Result, error) {
	schemaBytes, err := json.Marshal(responseSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "course_generation",
				Schema: json.RawMessage(schemaBytes),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in openai response")
	}

	var out Result
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return nil, fmt.Errorf("parse openai response: %w", err)
	}
	if err := validateResult(&out); err != nil {
		return nil, fmt.Errorf("invalid openai response: %w", err)
	}
	return &out, nil
}
