package problemgen

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// MathCheckValidator recomputes the answer when the problem text holds a
// single binary expression over integers, decimals or fractions. Drafts
// whose text it cannot evaluate pass unchanged.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(d *Draft, _ Input) *ValidationError {
	if d.AnswerType == AnswerTypeText {
		return nil
	}
	want, ok := evalExpression(d.Text)
	if !ok {
		return nil
	}
	if claimedMatches(want, d.Answer, d.AnswerType) {
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("the expression evaluates to %s but the draft claims %q", want.RatString(), d.Answer),
		Retryable: true,
	}
}

// An operand is an integer, a decimal or an unspaced fraction like 3/4.
// Division between whole numbers needs spaces ("144 / 12") or ÷ so it is
// not read as a fraction.
var expressionRe = regexp.MustCompile(
	`(-?\d+(?:/\d+|\.\d+)?)(?:\s*([+*×÷-])\s*|\s+(/)\s+)(-?\d+(?:/\d+|\.\d+)?)`,
)

// evalExpression evaluates the first binary expression in text exactly.
func evalExpression(text string) (*big.Rat, bool) {
	m := expressionRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	a, okA := new(big.Rat).SetString(m[1])
	b, okB := new(big.Rat).SetString(m[4])
	if !okA || !okB {
		// Zero denominators land here.
		return nil, false
	}

	op := m[2]
	if op == "" {
		op = m[3]
	}
	r := new(big.Rat)
	switch op {
	case "+":
		r.Add(a, b)
	case "-":
		r.Sub(a, b)
	case "*", "×":
		r.Mul(a, b)
	case "/", "÷":
		if b.Sign() == 0 {
			return nil, false
		}
		r.Quo(a, b)
	default:
		return nil, false
	}
	return r, true
}

// claimedMatches compares the draft's answer with the exact value. Decimal
// answers may be rounded to the number of places they are written with.
func claimedMatches(want *big.Rat, answer string, at AnswerType) bool {
	answer = strings.TrimSpace(answer)
	got, ok := new(big.Rat).SetString(answer)
	if !ok {
		return false
	}
	if at != AnswerTypeDecimal {
		return got.Cmp(want) == 0
	}

	places := 0
	if i := strings.IndexByte(answer, '.'); i >= 0 {
		places = len(answer) - i - 1
	}
	// |want - got| <= 1/2 * 10^-places
	diff := new(big.Rat).Sub(want, got)
	diff.Abs(diff)
	tol := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Mul(big.NewInt(2), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)))
	return diff.Cmp(tol) <= 0
}
