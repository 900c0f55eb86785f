package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/llm"
)

func fractionsInput() Input {
	return Input{
		Topic:      "Fractions",
		Difficulty: 2,
		ExistingTexts: []string{
			"What is 1/2 + 1/4?",
		},
	}
}

func validDraftJSON() json.RawMessage {
	return json.RawMessage(`{
		"text": "What is 3/4 + 1/8?",
		"topic": "Fractions",
		"difficulty": 2,
		"estimated_time_to_solve_minutes": 3,
		"answer": "7/8",
		"answer_type": "fraction"
	}`)
}

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validDraftJSON()})
	gen := New(mock, DefaultConfig())

	p, err := gen.Generate(context.Background(), fractionsInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uuid.Parse(p.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", p.ID, err)
	}
	if p.Text != "What is 3/4 + 1/8?" {
		t.Errorf("unexpected text: %q", p.Text)
	}
	if p.Topic != "Fractions" || p.Difficulty != 2 || p.EstimatedMinutes != 3 {
		t.Errorf("unexpected problem: %+v", p)
	}
	if err := catalog.Validate(p); err != nil {
		t.Errorf("generated problem fails catalog validation: %v", err)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validDraftJSON()})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), fractionsInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != ProblemSchema {
		t.Error("expected ProblemSchema")
	}
	if req.System != systemPrompt {
		t.Error("expected system prompt")
	}
	if req.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", req.MaxTokens)
	}
	if !strings.Contains(req.Messages[0].Content, "1. What is 1/2 + 1/4?") {
		t.Errorf("existing texts missing from prompt: %q", req.Messages[0].Content)
	}
}

func TestGenerate_TopicNormalized(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"text": "What is 3/4 + 1/8?",
		"topic": " fractions ",
		"difficulty": 2,
		"estimated_time_to_solve_minutes": 3,
		"answer": "7/8",
		"answer_type": "fraction"
	}`)})
	gen := New(mock, DefaultConfig())

	p, err := gen.Generate(context.Background(), fractionsInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Topic != "Fractions" {
		t.Errorf("topic = %q, want the requested spelling", p.Topic)
	}
}

func TestGenerate_RetriesAfterValidationFailure(t *testing.T) {
	duplicate := json.RawMessage(`{
		"text": "what is 1/2 + 1/4",
		"topic": "Fractions",
		"difficulty": 2,
		"estimated_time_to_solve_minutes": 2,
		"answer": "3/4",
		"answer_type": "fraction"
	}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: duplicate},
		llm.MockResponse{Content: validDraftJSON()},
	)
	gen := New(mock, DefaultConfig())

	p, err := gen.Generate(context.Background(), fractionsInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Text != "What is 3/4 + 1/8?" {
		t.Errorf("unexpected text: %q", p.Text)
	}

	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
	second := mock.Calls[1].Messages
	if len(second) != 3 {
		t.Fatalf("expected 3 messages on retry, got %d", len(second))
	}
	if second[1].Role != llm.RoleAssistant {
		t.Errorf("second message role = %q, want assistant", second[1].Role)
	}
	if !strings.Contains(second[2].Content, "duplicates existing problem") {
		t.Errorf("retry message lacks the reason: %q", second[2].Content)
	}
}

func TestGenerate_GivesUpAfterMaxAttempts(t *testing.T) {
	wrong := json.RawMessage(`{
		"text": "What is 345 + 278?",
		"topic": "Fractions",
		"difficulty": 2,
		"estimated_time_to_solve_minutes": 2,
		"answer": "612",
		"answer_type": "integer"
	}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: wrong},
		llm.MockResponse{Content: wrong},
		llm.MockResponse{Content: validDraftJSON()},
	)
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), fractionsInput())
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Validator != "math-check" {
		t.Errorf("validator = %q, want math-check", verr.Validator)
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should report true")
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), fractionsInput())
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if IsValidationError(err) {
		t.Error("provider errors are not validation errors")
	}
}

func TestGenerate_InvalidJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), fractionsInput()); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())

	tests := []struct {
		name  string
		input Input
		field string
	}{
		{"empty topic", Input{Topic: " ", Difficulty: 2}, "topic"},
		{"difficulty too low", Input{Topic: "Fractions", Difficulty: 0}, "difficulty"},
		{"difficulty too high", Input{Topic: "Fractions", Difficulty: 6}, "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), tt.input)
			var inv *catalog.InvalidProblemError
			if !errors.As(err, &inv) {
				t.Fatalf("expected InvalidProblemError, got %v", err)
			}
			if inv.Field != tt.field {
				t.Errorf("field = %q, want %q", inv.Field, tt.field)
			}
		})
	}
}

func TestGenerate_PurposeLabel(t *testing.T) {
	var got string
	p := purposeRecorder{got: &got, inner: llm.NewMockProvider(llm.MockResponse{Content: validDraftJSON()})}
	gen := New(p, DefaultConfig())

	if _, err := gen.Generate(context.Background(), fractionsInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Purpose {
		t.Errorf("purpose = %q, want %q", got, Purpose)
	}
}

type purposeRecorder struct {
	got   *string
	inner llm.Provider
}

func (p purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.got = llm.PurposeFrom(ctx)
	return p.inner.Generate(ctx, req)
}

func (p purposeRecorder) ModelID() string { return p.inner.ModelID() }
