package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/assessgen/internal/catalog"
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d *Draft, _ Input) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch {
	case strings.TrimSpace(d.Text) == "":
		return fail("text is empty")
	case len(d.Text) > 500:
		return fail("text exceeds 500 characters")
	case strings.TrimSpace(d.Topic) == "":
		return fail("topic is empty")
	case d.Difficulty < catalog.MinDifficulty || d.Difficulty > catalog.MaxDifficulty:
		return fail("difficulty must be between 1 and 5")
	case d.EstimatedMinutes < 1 || d.EstimatedMinutes > MaxEstimatedMinutes:
		return fail(fmt.Sprintf("estimated_time_to_solve_minutes must be between 1 and %d", MaxEstimatedMinutes))
	case strings.TrimSpace(d.Answer) == "":
		return fail("answer is empty")
	}

	switch d.AnswerType {
	case AnswerTypeInteger, AnswerTypeDecimal, AnswerTypeFraction, AnswerTypeText:
	default:
		return fail("answer_type must be \"integer\", \"decimal\", \"fraction\", or \"text\"")
	}
	return nil
}

// TargetValidator checks that the draft matches the requested topic and
// difficulty. Topic case and surrounding space are forgiven and the draft
// is rewritten to the requested spelling.
type TargetValidator struct{}

func (v *TargetValidator) Name() string { return "target" }

func (v *TargetValidator) Validate(d *Draft, input Input) *ValidationError {
	if !strings.EqualFold(strings.TrimSpace(d.Topic), strings.TrimSpace(input.Topic)) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("topic %q does not match requested %q", d.Topic, input.Topic),
			Retryable: true,
		}
	}
	if d.Difficulty != input.Difficulty {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("difficulty %d does not match requested %d", d.Difficulty, input.Difficulty),
			Retryable: true,
		}
	}
	d.Topic = input.Topic
	return nil
}
