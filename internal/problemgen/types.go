package problemgen

// Input describes the catalog problem to author.
type Input struct {
	// Topic is copied verbatim onto the generated problem.
	Topic string

	// Difficulty is the target level, 1 to 5.
	Difficulty int

	// ExistingTexts holds statements already in the catalog for Topic.
	// Generated problems must not repeat any of them.
	ExistingTexts []string
}

// Draft is the model's proposal before it becomes a catalog problem.
type Draft struct {
	Text             string
	Topic            string
	Difficulty       int
	EstimatedMinutes int

	// Answer and AnswerType are only used to check the draft; the catalog
	// does not store answers.
	Answer     string
	AnswerType AnswerType
}

// AnswerType describes how the draft's answer is written.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "-15"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "3.75"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4"
	AnswerTypeText     AnswerType = "text"     // anything not numeric
)

// MaxEstimatedMinutes caps the solve time a draft may claim.
const MaxEstimatedMinutes = 120
