package service

import (
	"context"
	"fmt"
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/model"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator 视频资料没有字幕时，直接把 YouTube 链接交给模型处理
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	m := cfg.Model
	if m == "" {
		m = defaultGeminiModel
	}
	return &GeminiGenerator{client: client, model: m}, nil
}

func geminiQuestionSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text":          str,
						"type":          {Type: genai.TypeString, Enum: []string{"multiple-choice", "true-false", "short-answer"}},
						"options":       {Type: genai.TypeArray, Items: str},
						"correctAnswer": str,
						"points":        {Type: genai.TypeInteger},
						"rationale":     str,
					},
					Required: []string{"text", "type", "options", "correctAnswer"},
				},
			},
		},
		Required: []string{"questions"},
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerationRequest) ([]model.QuizQuestion, error) {
	parts := []*genai.Part{{Text: BuildQuestionPrompt(req)}}
	for _, m := range req.Materials {
		if m.Type.IsVideo() && strings.TrimSpace(m.Content) == "" && ExtractVideoID(m.URL) != "" {
			parts = append(parts, genai.NewPartFromURI(m.URL, "video/*"))
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: parts}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: generatorSystemPrompt}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    geminiQuestionSchema(),
		})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return ParseGeneratedQuestions(result.Text())
}
