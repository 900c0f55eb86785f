package problemgen

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(Input{Topic: "Fractions", Difficulty: 3}, DefaultConfig())

	for _, want := range []string{
		"Topic: Fractions",
		"Difficulty: 3",
		"Already in the catalog for this topic:\nNone",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildUserMessage_ExistingTruncated(t *testing.T) {
	var existing []string
	for i := 1; i <= 12; i++ {
		existing = append(existing, fmt.Sprintf("Problem %d", i))
	}

	msg := buildUserMessage(Input{Topic: "Fractions", Difficulty: 1, ExistingTexts: existing}, DefaultConfig())

	if strings.Contains(msg, "Problem 4\n") {
		t.Error("oldest entries should be dropped")
	}
	if !strings.Contains(msg, "1. Problem 5") || !strings.Contains(msg, "8. Problem 12") {
		t.Errorf("expected the last 8 entries numbered from 1:\n%s", msg)
	}
}

func TestRetryMessage(t *testing.T) {
	msg := retryMessage(&ValidationError{Validator: "target", Message: "difficulty 4 does not match requested 2"})
	if !strings.Contains(msg, "difficulty 4 does not match requested 2") {
		t.Errorf("unexpected retry message: %q", msg)
	}
}
