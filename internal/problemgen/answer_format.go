package problemgen

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
)

var fractionPattern = regexp.MustCompile(`^-?\d+/\d+$`)

// AnswerFormatValidator checks that the answer string matches the declared
// answer_type. Text answers are not checked.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(d *Draft, _ Input) *ValidationError {
	switch d.AnswerType {
	case AnswerTypeInteger:
		if err := validateInteger(d.Answer); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid integer answer %q: %s", d.Answer, err),
				Retryable: true,
			}
		}
	case AnswerTypeDecimal:
		if err := validateDecimal(d.Answer); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid decimal answer %q: %s", d.Answer, err),
				Retryable: true,
			}
		}
	case AnswerTypeFraction:
		if err := validateFraction(d.Answer); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid fraction answer %q: %s", d.Answer, err),
				Retryable: true,
			}
		}
	}

	return nil
}

// validateInteger checks that s is a valid integer string with no leading zeros.
func validateInteger(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not a valid integer")
	}
	// Check for leading zeros: formatted back should match.
	if strconv.FormatInt(n, 10) != s {
		return fmt.Errorf("has leading zeros")
	}
	return nil
}

// validateDecimal checks that s is a valid decimal string with no trailing zeros.
func validateDecimal(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a valid decimal")
	}
	// Check for trailing zeros after decimal point.
	normalized := strconv.FormatFloat(f, 'f', -1, 64)
	if normalized != s {
		return fmt.Errorf("has trailing zeros or is not normalized (expected %q)", normalized)
	}
	return nil
}

// validateFraction accepts a/b with a positive denominator, written in
// lowest terms.
func validateFraction(s string) error {
	if !fractionPattern.MatchString(s) {
		return fmt.Errorf("does not match fraction pattern a/b")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return fmt.Errorf("denominator must be positive")
	}
	if reduced := r.Num().String() + "/" + r.Denom().String(); reduced != s {
		return fmt.Errorf("fraction is not in lowest terms (expected %q)", reduced)
	}
	return nil
}
