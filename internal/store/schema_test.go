package store

import (
	"testing"

	"entgo.io/ent"
	entschema "entgo.io/ent/dialect/sql/schema"

	"github.com/abhisek/assessgen/ent/schema"
)

type entSchema interface {
	Fields() []ent.Field
	Mixin() []ent.Mixin
}

func fieldNames(s entSchema) []string {
	var names []string
	for _, m := range s.Mixin() {
		for _, f := range m.Fields() {
			names = append(names, f.Descriptor().Name)
		}
	}
	for _, f := range s.Fields() {
		names = append(names, f.Descriptor().Name)
	}
	return names
}

func columnNames(t *entschema.Table) map[string]bool {
	out := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		out[c.Name] = true
	}
	return out
}

// The hand-maintained tables must stay in step with the ent definitions.
func TestTablesMatchEntSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema entSchema
		table  *entschema.Table
	}{
		{"problems", schema.Problem{}, ProblemsTable},
		{"assessment_events", schema.AssessmentEvent{}, AssessmentEventsTable},
		{"llm_request_events", schema.LLMRequestEvent{}, LlmRequestEventsTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := columnNames(tt.table)
			names := fieldNames(tt.schema)
			for _, n := range names {
				if !cols[n] {
					t.Errorf("field %q has no column in %s", n, tt.table.Name)
				}
			}
			// Event tables add the auto-increment id column.
			want := 1
			if tt.name == "problems" {
				want = 0
			}
			if extra := len(tt.table.Columns) - len(names); extra != want {
				t.Errorf("%s has %d undeclared columns, want %d", tt.table.Name, extra, want)
			}
		})
	}
}
