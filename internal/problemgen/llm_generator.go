package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/llm"
)

// Purpose labels generator requests in the LLM event log.
const Purpose = "problem-gen"

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// problemOutput is the raw LLM response before validation.
type problemOutput struct {
	Text             string `json:"text"`
	Topic            string `json:"topic"`
	Difficulty       int    `json:"difficulty"`
	EstimatedMinutes int    `json:"estimated_time_to_solve_minutes"`
	Answer           string `json:"answer"`
	AnswerType       string `json:"answer_type"`
}

// Generate authors one problem. A retryable validation failure triggers a
// new request that carries the rejection reason, up to MaxAttempts.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (catalog.Problem, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return catalog.Problem{}, &catalog.InvalidProblemError{Field: "topic", Message: "must not be empty"}
	}
	if input.Difficulty < catalog.MinDifficulty || input.Difficulty > catalog.MaxDifficulty {
		return catalog.Problem{}, &catalog.InvalidProblemError{Field: "difficulty", Message: "must be between 1 and 5"}
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	messages := []llm.Message{
		{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
	}

	var lastErr error
	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		draft, err := g.draft(ctx, messages)
		if err != nil {
			return catalog.Problem{}, err
		}

		verr := runValidators(g.config.Validators, draft, input)
		if verr == nil {
			return catalog.Problem{
				ID:               uuid.NewString(),
				Text:             strings.TrimSpace(draft.Text),
				Topic:            input.Topic,
				Difficulty:       draft.Difficulty,
				EstimatedMinutes: draft.EstimatedMinutes,
			}, nil
		}

		lastErr = verr
		if !verr.Retryable {
			break
		}
		raw, _ := json.Marshal(draftOutput(draft))
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: string(raw)},
			llm.Message{Role: llm.RoleUser, Content: retryMessage(verr)},
		)
	}

	return catalog.Problem{}, lastErr
}

func (g *LLMGenerator) draft(ctx context.Context, messages []llm.Message) (*Draft, error) {
	req := llm.Request{
		System:      systemPrompt,
		Messages:    messages,
		Schema:      ProblemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw problemOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	return &Draft{
		Text:             raw.Text,
		Topic:            raw.Topic,
		Difficulty:       raw.Difficulty,
		EstimatedMinutes: raw.EstimatedMinutes,
		Answer:           raw.Answer,
		AnswerType:       AnswerType(raw.AnswerType),
	}, nil
}

func draftOutput(d *Draft) problemOutput {
	return problemOutput{
		Text:             d.Text,
		Topic:            d.Topic,
		Difficulty:       d.Difficulty,
		EstimatedMinutes: d.EstimatedMinutes,
		Answer:           d.Answer,
		AnswerType:       string(d.AnswerType),
	}
}

// IsValidationError reports whether err is a draft validation failure.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
