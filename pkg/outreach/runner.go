package outreach

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Run invokes one tool under the standard invocation contract:
// context preconditions are validated first, the call is timed, every
// attempt (successful or not) is appended to the context call log, and
// panics are converted into failed results with the message on the error
// trail. Tools therefore never propagate errors across the stage boundary.
func Run(ctx context.Context, t Tool, ec *Context, inputs map[string]any) (res ToolResult) {
	start := time.Now()
	if inputs == nil {
		inputs = map[string]any{}
	}

	record := func(r ToolResult) ToolResult {
		r.ExecutionTime = time.Since(start).Seconds()
		ec.AddToolCall(t.Name(), inputs, r.Data, time.Since(start), start)
		return r
	}

	if missing := missingKeys(t, ec); len(missing) > 0 {
		return record(Failure(fmt.Sprintf("missing required context keys: %s", strings.Join(missing, ", "))))
	}

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("tool %s panicked: %v", t.Name(), r)
			ec.AddError(msg)
			res = record(Failure(msg))
		}
	}()

	out := t.Execute(ctx, ec, inputs)
	if !out.Success && out.ErrorMessage != "" {
		ec.AddError(fmt.Sprintf("tool %s failed: %s", t.Name(), out.ErrorMessage))
	}
	return record(out)
}

func missingKeys(t Tool, ec *Context) []string {
	var missing []string
	for _, key := range t.RequiredContextKeys() {
		if !ec.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}
