package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

func (o QueryOpts) predicates() []*entsql.Predicate {
	var preds []*entsql.Predicate
	if o.After > 0 {
		preds = append(preds, entsql.GT(colSequence, o.After))
	}
	if o.Before > 0 {
		preds = append(preds, entsql.LT(colSequence, o.Before))
	}
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE(colTimestamp, o.From))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE(colTimestamp, o.To))
	}
	return preds
}

// apply adds the filters, newest-first ordering and limit to sel.
func (o QueryOpts) apply(sel *entsql.Selector, extra ...*entsql.Predicate) *entsql.Selector {
	preds := append(o.predicates(), extra...)
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc(colSequence))
	if o.Limit > 0 {
		sel.Limit(o.Limit)
	}
	return sel
}

const (
	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Requests     int
	InputTokens  int
	OutputTokens int
}

// AssessmentEventData captures one generated assessment.
type AssessmentEventData struct {
	PlanID         string
	AssessmentID   string
	StudentID      string
	Strategy       string
	TargetTopics   []string
	DifficultyLow  int
	DifficultyHigh int
	NumProblems    int
	SelectedIDs    []string
	TotalMinutes   int
	BudgetMinutes  int
}

// AssessmentEventRecord is a stored assessment event.
type AssessmentEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// LLMEventRepo records and inspects LLM API calls.
type LLMEventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, optionally filtered by purpose.
	QueryLLMEvents(ctx context.Context, purpose string, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// AssessmentEventRepo records generated assessments.
type AssessmentEventRepo interface {
	// AppendAssessmentEvent records a generated assessment.
	AppendAssessmentEvent(ctx context.Context, data AssessmentEventData) error

	// QueryAssessmentEvents returns assessment events, optionally for one student.
	QueryAssessmentEvents(ctx context.Context, studentID string, opts QueryOpts) ([]AssessmentEventRecord, error)
}

// EventRepo provides append and query access to all events.
type EventRepo interface {
	LLMEventRepo
	AssessmentEventRepo
}

// eventRepo implements EventRepo on the ent SQL driver and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}
