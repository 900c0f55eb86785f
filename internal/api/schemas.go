package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const problemProperties = `
	"id":         {"type": "string", "minLength": 1},
	"text":       {"type": "string", "minLength": 1},
	"topic":      {"type": "string", "minLength": 1},
	"difficulty": {"type": "integer", "minimum": 1, "maximum": 5},
	"estimated_time_to_solve_minutes": {"type": "integer", "minimum": 1}`

var (
	createProblemSchema = mustCompile("create-problem", `{
		"type": "object",
		"properties": {`+problemProperties+`},
		"required": ["id", "text", "topic", "difficulty", "estimated_time_to_solve_minutes"]
	}`)

	updateProblemSchema = mustCompile("update-problem", `{
		"type": "object",
		"properties": {`+problemProperties+`},
		"required": ["text", "topic", "difficulty", "estimated_time_to_solve_minutes"]
	}`)

	generateProblemSchema = mustCompile("generate-problem", `{
		"type": "object",
		"properties": {
			"topic":      {"type": "string", "minLength": 1},
			"difficulty": {"type": "integer", "minimum": 1, "maximum": 5}
		},
		"required": ["topic", "difficulty"]
	}`)

	generateAssessmentSchema = mustCompile("generate-assessment", `{
		"type": "object",
		"properties": {
			"student_profile": {
				"type": "object",
				"properties": {
					"id":              {"type": "string"},
					"mastered_topics": {"type": "array", "items": {"type": "string"}},
					"learning_goals":  {"type": "array", "items": {"type": "string"}}
				},
				"required": ["id", "mastered_topics", "learning_goals"]
			},
			"assessment_request": {
				"type": "object",
				"properties": {
					"max_total_time_minutes": {"type": "integer", "minimum": 0},
					"pedagogical_strategy":   {"type": "string"}
				},
				"required": ["max_total_time_minutes", "pedagogical_strategy"]
			}
		},
		"required": ["student_profile", "assessment_request"]
	}`)
)

func mustCompile(name, src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("parse %s schema: %v", name, err))
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("add %s schema: %v", name, err))
	}
	return c.MustCompile(url)
}

// decodeBody validates raw against schema and then decodes it into dst.
func decodeBody(schema *jsonschema.Schema, raw []byte, dst any) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return validationError("malformed JSON body", err.Error())
	}
	if err := schema.Validate(doc); err != nil {
		return validationError("request body does not match schema", err.Error())
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return validationError("invalid request body", err.Error())
	}
	return nil
}
