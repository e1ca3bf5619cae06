package llm

import "context"

// Call describes why a request is made. It only feeds the logs.
type Call struct {
	Purpose string // e.g. "insight"
	Subject string // ID of the record the call is about, if any
}

type callKey struct{}

func WithCall(ctx context.Context, c Call) context.Context {
	return context.WithValue(ctx, callKey{}, c)
}

// CallFrom returns the Call stored in ctx. Purpose is "unknown" when unset.
func CallFrom(ctx context.Context) Call {
	c, _ := ctx.Value(callKey{}).(Call)
	if c.Purpose == "" {
		c.Purpose = "unknown"
	}
	return c
}
