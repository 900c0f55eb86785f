package problemgen

import (
	"fmt"
	"strings"
)

// DuplicateValidator rejects drafts whose text repeats an existing
// catalog statement, ignoring case, punctuation and spacing.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(d *Draft, input Input) *ValidationError {
	key := normalizeText(d.Text)
	for _, existing := range input.ExistingTexts {
		if normalizeText(existing) == key {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("text duplicates existing problem %q", existing),
				Retryable: true,
			}
		}
	}
	return nil
}

// normalizeText lowercases s and keeps only letters, digits and single
// spaces.
func normalizeText(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '/', r == '+', r == '-', r == '*':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}

// buildDedup formats existing statements for the prompt, keeping the last
// max entries. Returns "None" if there are none.
func buildDedup(existing []string, max int) string {
	if len(existing) == 0 {
		return "None"
	}

	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for i, q := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
