package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AssessmentEvent records one generated assessment.
type AssessmentEvent struct {
	ent.Schema
}

func (AssessmentEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AssessmentEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("plan_id"),
		field.String("assessment_id").
			Unique(),
		field.String("student_id").
			Default("").
			Comment("Profile ID; empty for anonymous profiles"),
		field.String("strategy").
			Comment("REVIEW, NEW_TOPIC_INTRODUCTION or CHALLENGE"),
		field.Text("target_topics").
			Comment("JSON array of topics in plan order"),
		field.Int("difficulty_low"),
		field.Int("difficulty_high"),
		field.Int("num_problems"),
		field.Text("selected_ids").
			Comment("JSON array of selected problem IDs"),
		field.Int("total_minutes"),
		field.Int("budget_minutes"),
	}
}

func (AssessmentEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id"),
		index.Fields("strategy"),
	}
}
