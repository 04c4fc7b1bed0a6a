package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/model"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// GenerationRequest 出题输入
type GenerationRequest struct {
	CourseTitle string
	Materials   []model.QuizMaterial
	Difficulty  string
	Count       int
}

// QuestionGenerator 外部出题服务，失败或结果不可用时由调用方降级为占位题
type QuestionGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]model.QuizQuestion, error)
}

// 单份资料写入提示词的最大字符数
const maxMaterialChars = 6000

const generatorSystemPrompt = "You are an instructional designer writing assessment questions for corporate training. " +
	"Only use facts found in the supplied course material. Respond with JSON only."

var questionSchemaDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":          map[string]any{"type": "string", "minLength": 1},
					"type":          map[string]any{"type": "string", "enum": []any{"multiple-choice", "true-false", "short-answer"}},
					"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"correctAnswer": map[string]any{"type": "string", "minLength": 1},
					"points":        map[string]any{"type": "integer"},
					"rationale":     map[string]any{"type": "string"},
				},
				"required": []any{"text", "type", "options", "correctAnswer"},
			},
		},
	},
	"required": []any{"questions"},
}

var (
	compiledQuestionSchema *jsonschema.Schema
	compileSchemaOnce      sync.Once
	compileSchemaErr       error
)

func questionSchema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		raw, err := json.Marshal(questionSchemaDefinition)
		if err != nil {
			compileSchemaErr = err
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://quiz-questions.json", doc); err != nil {
			compileSchemaErr = err
			return
		}
		compiledQuestionSchema, compileSchemaErr = c.Compile("schema://quiz-questions.json")
	})
	return compiledQuestionSchema, compileSchemaErr
}

// ParseGeneratedQuestions 校验模型输出并转换为题目
func ParseGeneratedQuestions(raw string) ([]model.QuizQuestion, error) {
	raw = stripCodeFence(raw)

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := questionSchema()
	if err != nil {
		return nil, fmt.Errorf("compile question schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var out struct {
		Questions []model.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	for i := range out.Questions {
		if out.Questions[i].Points <= 0 {
			out.Questions[i].Points = 1
		}
	}
	return out.Questions, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// BuildQuestionPrompt 拼接出题提示词，focus 资料排在最前
func BuildQuestionPrompt(req GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d %s questions for the course %q.\n", req.Count, strings.ToLower(req.Difficulty), req.CourseTitle)
	b.WriteString("Mix multiple-choice and true-false questions. For multiple-choice give 4 options; ")
	b.WriteString("for true-false use the options [\"True\",\"False\"]. correctAnswer must equal one option exactly.\n")
	b.WriteString("Return {\"questions\":[{\"text\",\"type\",\"options\",\"correctAnswer\",\"points\",\"rationale\"}]}.\n\n")
	b.WriteString("Course material (the first item is the primary focus):\n")
	for i, m := range req.Materials {
		fmt.Fprintf(&b, "\n[%d] %s (%s)", i+1, m.Title, m.Type)
		if m.LessonTitle != "" {
			fmt.Fprintf(&b, " - lesson: %s", m.LessonTitle)
		}
		b.WriteString("\n")
		content := strings.TrimSpace(m.Content)
		switch {
		case content != "":
			if len(content) > maxMaterialChars {
				content = content[:maxMaterialChars]
			}
			b.WriteString(content)
			b.WriteString("\n")
		case m.URL != "":
			fmt.Fprintf(&b, "Source: %s\n", m.URL)
		}
	}
	return b.String()
}

// PlaceholderQuestions 出题失败时的固定占位题，答案统一为 Option A
func PlaceholderQuestions(courseTitle string, count int) []model.QuizQuestion {
	if count <= 0 {
		count = 5
	}
	out := make([]model.QuizQuestion, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, model.QuizQuestion{
			Text:          fmt.Sprintf("Question %d: Which statement best reflects the material covered in %s?", i+1, courseTitle),
			Type:          model.QuestionMultipleChoice,
			Options:       []string{"Option A", "Option B", "Option C", "Option D"},
			CorrectAnswer: "Option A",
			Points:        1,
		})
	}
	return out
}

// NewQuestionGenerator 按配置选择出题服务，未配置密钥时返回 nil（直接走占位题）
func NewQuestionGenerator(ctx context.Context, cfg config.AIConfig) (QuestionGenerator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAIGenerator(cfg), nil
	case "gemini":
		g, err := NewGeminiGenerator(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
