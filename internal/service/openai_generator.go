package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIGenerator 兼容 OpenAI 协议的服务都可以通过 BaseURL 接入
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(cfg config.AIConfig) *OpenAIGenerator {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	m := cfg.Model
	if m == "" {
		m = defaultOpenAIModel
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(c), model: m}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerationRequest) ([]model.QuizQuestion, error) {
	schemaBytes, err := json.Marshal(questionSchemaDefinition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: generatorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildQuestionPrompt(req)},
		},
		Temperature: 0.4,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "quiz_questions",
				Schema: json.RawMessage(schemaBytes),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in openai response")
	}
	return ParseGeneratedQuestions(resp.Choices[0].Message.Content)
}
