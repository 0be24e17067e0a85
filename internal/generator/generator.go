package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"trivia-quiz-service/internal/domain"
)

const (
	// DefaultBaseURL targets the x.ai OpenAI-compatible API.
	DefaultBaseURL = "https://api.x.ai/v1"
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "grok-beta"
)

// Client requests AI-generated questions from a chat-completions endpoint.
// One request in, one validated question set (or typed error) out; no
// retries. Cancellation is governed entirely by the caller's context.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a generation client. An empty apiKey is allowed; every
// request then fails fast with domain.ErrMissingCredential before touching
// the network.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	var api *openai.Client
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = baseURL
		api = openai.NewClientWithConfig(cfg)
	}
	return &Client{api: api, model: model}
}

// RequestQuestions validates params, issues a single chat completion request
// and turns the response into a question set.
func (c *Client) RequestQuestions(ctx context.Context, params domain.QuizParameters) (domain.QuestionSet, error) {
	if err := validateParams(params); err != nil {
		return domain.QuestionSet{}, err
	}
	if c.api == nil {
		return domain.QuestionSet{}, domain.ErrMissingCredential
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(params)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(params)},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return domain.QuestionSet{}, fmt.Errorf("%w: %s", domain.ErrUpstreamFailure, apiErr.Message)
		}
		return domain.QuestionSet{}, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	if len(resp.Choices) == 0 {
		return domain.QuestionSet{}, &MalformedError{Reason: "no completion choices", Pos: -1}
	}

	content := resp.Choices[0].Message.Content
	parsed, err := parseQuestions(content)
	if err != nil {
		return domain.QuestionSet{}, err
	}

	questions := make([]domain.Question, 0, len(parsed))
	for i, q := range parsed {
		questions = append(questions, domain.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Text:          q.text,
			Options:       q.options,
			CorrectAnswer: q.correct,
			Level:         params.Level,
			Category:      params.Category,
			Type:          params.Type,
		})
	}
	return domain.QuestionSet{
		Questions: questions,
		Metadata: domain.QuestionSetMetadata{
			Total:    params.NumberOfQuestions,
			Category: params.Category,
			Level:    params.Level,
			Type:     params.Type,
		},
	}, nil
}

func validateParams(params domain.QuizParameters) error {
	if params.NumberOfQuestions < domain.MinQuestions || params.NumberOfQuestions > domain.MaxQuestions {
		return fmt.Errorf("%w: numberOfQuestions must be between %d and %d",
			domain.ErrInvalidParameters, domain.MinQuestions, domain.MaxQuestions)
	}
	if strings.TrimSpace(params.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidParameters)
	}
	if !params.Level.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidParameters, params.Level)
	}
	if !params.Type.Valid() {
		return fmt.Errorf("%w: unknown question type %q", domain.ErrInvalidParameters, params.Type)
	}
	return nil
}

// systemPrompt fixes the output contract the model must follow.
func systemPrompt(params domain.QuizParameters) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a quiz generation assistant. Generate %d %s-level %s-choice questions about %s.\n",
		params.NumberOfQuestions, params.Level, params.Type, params.Category)
	sb.WriteString("Your response must be a valid JSON array of question objects. Each object must strictly follow this format:\n")
	sb.WriteString(`{"question": "question text here", "options": ["option1", "option2", "option3", "option4"], "correctAnswer": 0}`)
	sb.WriteString("\nDo not include any explanatory text or markdown, only return the JSON array.")
	return sb.String()
}

// userPrompt restates the parameters in request form.
func userPrompt(params domain.QuizParameters) string {
	optionsDesc := "4 options"
	if params.Type == domain.TypeBoolean {
		optionsDesc = "2 options (True/False)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d %s-choice questions about %s at %s difficulty level.\n",
		params.NumberOfQuestions, params.Type, params.Category, params.Level)
	sb.WriteString("Return them as a JSON array where each question has:\n")
	sb.WriteString("- A \"question\" field with the question text\n")
	fmt.Fprintf(&sb, "- An \"options\" array with %s\n", optionsDesc)
	sb.WriteString("- A \"correctAnswer\" field with the index (0-based) of the correct option\n")
	sb.WriteString(`Example format: [{"question": "...", "options": [...], "correctAnswer": 0}]`)
	return sb.String()
}
