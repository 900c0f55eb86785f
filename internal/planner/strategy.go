package planner

import (
	"fmt"
	"strings"
)

// Strategy is the pedagogical intent of an assessment. The set of
// strategies is closed: each one carries its own planning constraints.
type Strategy interface {
	// Name is the wire name, e.g. "REVIEW".
	Name() string

	// rationale is the human-readable reason logged with every plan.
	rationale() string

	// constraints derives topics, difficulty and count for a profile.
	constraints(profile StudentProfile, cfg Config) ([]string, DifficultyRange, int)
}

// Review reinforces topics the student has already mastered.
type Review struct{}

// NewTopicIntroduction eases the student into their learning goals.
type NewTopicIntroduction struct{}

// Challenge stretches the student across everything they know or are learning.
type Challenge struct{}

// Wire names.
const (
	ReviewName               = "REVIEW"
	NewTopicIntroductionName = "NEW_TOPIC_INTRODUCTION"
	ChallengeName            = "CHALLENGE"
)

// Strategies lists every supported strategy in a fixed order.
var Strategies = []Strategy{Review{}, NewTopicIntroduction{}, Challenge{}}

func (Review) Name() string               { return ReviewName }
func (NewTopicIntroduction) Name() string { return NewTopicIntroductionName }
func (Challenge) Name() string            { return ChallengeName }

func (Review) rationale() string {
	return "Reinforce mastered topics with easy to moderate problems."
}

func (NewTopicIntroduction) rationale() string {
	return "Introduce learning goals gently with easy to medium problems."
}

func (Challenge) rationale() string {
	return "Stretch the student across mastered topics and learning goals with hard problems."
}

func (Review) constraints(profile StudentProfile, cfg Config) ([]string, DifficultyRange, int) {
	return cloneStrings(profile.MasteredTopics), DifficultyRange{Low: 1, High: 2}, cfg.MinProblems
}

func (NewTopicIntroduction) constraints(profile StudentProfile, cfg Config) ([]string, DifficultyRange, int) {
	return cloneStrings(profile.LearningGoals), DifficultyRange{Low: 1, High: 3}, cfg.MinProblems
}

func (Challenge) constraints(profile StudentProfile, cfg Config) ([]string, DifficultyRange, int) {
	return unionTopics(profile.MasteredTopics, profile.LearningGoals), DifficultyRange{Low: 3, High: 5}, cfg.MaxProblems
}

func (s Review) MarshalText() ([]byte, error)               { return []byte(s.Name()), nil }
func (s NewTopicIntroduction) MarshalText() ([]byte, error) { return []byte(s.Name()), nil }
func (s Challenge) MarshalText() ([]byte, error)            { return []byte(s.Name()), nil }

// UnknownStrategyError is returned by ParseStrategy for unrecognized names.
type UnknownStrategyError struct {
	Value string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown pedagogical strategy %q (want one of %s)", e.Value, strings.Join(StrategyNames(), ", "))
}

// ParseStrategy resolves a wire name. Only the exact upper-case names are
// accepted.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case ReviewName:
		return Review{}, nil
	case NewTopicIntroductionName:
		return NewTopicIntroduction{}, nil
	case ChallengeName:
		return Challenge{}, nil
	}
	return nil, &UnknownStrategyError{Value: name}
}

// StrategyNames returns the wire names of all strategies.
func StrategyNames() []string {
	names := make([]string, len(Strategies))
	for i, s := range Strategies {
		names[i] = s.Name()
	}
	return names
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// unionTopics concatenates a and b, keeping only the first occurrence of
// each topic.
func unionTopics(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, t := range list {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
