package planner

import (
	"encoding/json"
	"fmt"
)

// StudentProfile describes what a student knows and wants to learn.
type StudentProfile struct {
	ID             string   `json:"id"`
	MasteredTopics []string `json:"mastered_topics"`
	LearningGoals  []string `json:"learning_goals"`
}

// Request is what the caller asks for: a time budget and a strategy.
type Request struct {
	MaxTotalTimeMinutes int      `json:"max_total_time_minutes"`
	Strategy            Strategy `json:"pedagogical_strategy"`
}

type requestJSON struct {
	MaxTotalTimeMinutes int    `json:"max_total_time_minutes"`
	Strategy            string `json:"pedagogical_strategy"`
}

// UnmarshalJSON decodes the strategy by wire name.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw requestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s, err := ParseStrategy(raw.Strategy)
	if err != nil {
		return err
	}
	r.MaxTotalTimeMinutes = raw.MaxTotalTimeMinutes
	r.Strategy = s
	return nil
}

// DifficultyRange is an inclusive [Low, High] difficulty bound.
type DifficultyRange struct {
	Low  int
	High int
}

// Contains reports whether d lies within the range, bounds included.
func (r DifficultyRange) Contains(d int) bool {
	return d >= r.Low && d <= r.High
}

func (r DifficultyRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.Low, r.High)
}

// MarshalJSON encodes the range as a two-element array.
func (r DifficultyRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Low, r.High})
}

// UnmarshalJSON decodes a two-element array.
func (r *DifficultyRange) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("difficulty range: %w", err)
	}
	r.Low, r.High = pair[0], pair[1]
	return nil
}

// Plan is the planner output. It is created once per request and not
// mutated afterwards.
type Plan struct {
	ID           string          `json:"plan_id"`
	TargetTopics []string        `json:"target_topics"`
	NumProblems  int             `json:"num_problems"`
	Difficulty   DifficultyRange `json:"difficulty_range"`
	Strategy     Strategy        `json:"pedagogical_strategy"`
	ReasoningLog []string        `json:"reasoning_log"`
}
