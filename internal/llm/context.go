package llm

import "context"

type ctxKey int

const (
	purposeCtxKey ctxKey = iota
	requestIDCtxKey
)

// DefaultPurpose labels calls made without WithPurpose.
const DefaultPurpose = "unlabeled"

// WithPurpose labels calls made with ctx, e.g. "problem-gen". The label is
// stored on every LLM request event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey, purpose)
}

// PurposeFrom returns the purpose label, or DefaultPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeCtxKey).(string); ok && v != "" {
		return v
	}
	return DefaultPurpose
}

// WithRequestID tags calls with the ID of the API request that caused them
// so provider log lines can be joined to access logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, id)
}

// RequestIDFrom returns the tagged request ID, or "".
func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(requestIDCtxKey).(string)
	return v
}
