package problemgen

import "fmt"

// Validator checks a draft before it becomes a catalog problem.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural" or "math-check".
	Name() string

	// Validate returns nil if the draft passes.
	Validate(d *Draft, input Input) *ValidationError
}

// ValidationError describes why a draft failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func runValidators(validators []Validator, d *Draft, input Input) *ValidationError {
	for _, v := range validators {
		if err := v.Validate(d, input); err != nil {
			return err
		}
	}
	return nil
}
