// Package problemgen authors new catalog problems with an LLM and checks
// them before they are stored.
package problemgen

import (
	"context"

	"github.com/abhisek/assessgen/internal/catalog"
)

// Generator produces catalog problems.
type Generator interface {
	// Generate authors one problem for input. The returned problem has a
	// fresh ID and has passed every configured validator.
	Generate(ctx context.Context, input Input) (catalog.Problem, error)
}
