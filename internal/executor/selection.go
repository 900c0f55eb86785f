package executor

import (
	"sort"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/planner"
)

func filterDifficulty(problems []catalog.Problem, r planner.DifficultyRange) []catalog.Problem {
	out := make([]catalog.Problem, 0, len(problems))
	for _, p := range problems {
		if r.Contains(p.Difficulty) {
			out = append(out, p)
		}
	}
	return out
}

// dedupe keeps the first occurrence of each problem ID.
func dedupe(problems []catalog.Problem) []catalog.Problem {
	seen := make(map[string]bool, len(problems))
	out := problems[:0]
	for _, p := range problems {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// sortByDifficulty orders ascending; ties keep their relative order.
func sortByDifficulty(problems []catalog.Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Difficulty < problems[j].Difficulty
	})
}

// selectProblems takes candidates in order until limit problems are chosen.
// A candidate is accepted when its time fits the remaining budget, an exact
// fit included.
func selectProblems(candidates []catalog.Problem, limit, budget int, policy Policy) ([]catalog.Problem, int) {
	selected := make([]catalog.Problem, 0, max(0, min(limit, len(candidates))))
	total := 0

	for _, p := range candidates {
		if len(selected) >= limit {
			break
		}
		if total+p.EstimatedMinutes > budget {
			if policy == StopAtOverBudget {
				break
			}
			continue
		}
		selected = append(selected, p)
		total += p.EstimatedMinutes
	}
	return selected, total
}
