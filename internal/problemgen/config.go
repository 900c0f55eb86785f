package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every draft; the first failure stops
	// the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxExistingTexts limits how many catalog statements go into the
	// prompt.
	MaxExistingTexts int

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{},
			&TargetValidator{},
			&DuplicateValidator{},
			&MathCheckValidator{},
		},
		MaxTokens:        512,
		Temperature:      0.7,
		MaxExistingTexts: 8,
		MaxAttempts:      2,
	}
}
