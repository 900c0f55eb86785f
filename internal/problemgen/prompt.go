package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write math problems for a personalized assessment catalog.

Rules:
- Write exactly one self-contained problem for the given topic and difficulty.
- Difficulty runs from 1 (routine single step) to 5 (multi-step, non-routine).
- Use plain ASCII text for all math. No LaTeX, no Unicode symbols. Use / for fractions, * for multiplication, and standard operators.
- Estimate the whole number of minutes a typical student needs to solve it.
- The answer must be correct and in the simplest form (reduce fractions, no trailing zeros on decimals).
- Use answer_type "text" only when the answer is not a number.
- Copy the topic exactly as given.
- Do not repeat any problem from the "already in the catalog" list.`

// buildUserMessage constructs the user message from Input and Config limits.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Difficulty: %d\n", input.Difficulty)

	b.WriteString("\nAlready in the catalog for this topic:\n")
	b.WriteString(buildDedup(input.ExistingTexts, cfg.MaxExistingTexts))

	return b.String()
}

// retryMessage tells the model why its previous draft was rejected.
func retryMessage(verr *ValidationError) string {
	return fmt.Sprintf("Your previous problem was rejected (%s). Write a different problem that fixes this.", verr.Message)
}
