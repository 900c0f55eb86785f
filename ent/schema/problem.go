package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Problem is a catalog entry.
type Problem struct {
	ent.Schema
}

func (Problem) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			NotEmpty(),
		field.Int64("seq").
			Unique().
			Immutable().
			Comment("Insertion order; topic queries return rows by seq"),
		field.Text("text").
			NotEmpty(),
		field.String("topic").
			NotEmpty(),
		field.Int("difficulty").
			Range(1, 5),
		field.Int("estimated_minutes").
			Positive(),
	}
}

func (Problem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("topic", "difficulty"),
	}
}
