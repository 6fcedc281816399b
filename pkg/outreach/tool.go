package outreach

import "context"

// Category groups tools by agent affinity.
type Category string

const (
	CategoryResearch        Category = "research"
	CategoryPersonalization Category = "personalization"
	CategoryWriting         Category = "writing"
	CategoryQuality         Category = "quality"
	CategorySending         Category = "sending"
)

// ToolResult is the normalized outcome of one tool invocation. On failure,
// ErrorMessage is set and Data may be empty.
type ToolResult struct {
	Success       bool           `json:"success"`
	Data          map[string]any `json:"data"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	ExecutionTime float64        `json:"execution_time_seconds"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Failure builds a failed ToolResult with the given message.
func Failure(msg string) ToolResult {
	return ToolResult{Success: false, Data: map[string]any{}, ErrorMessage: msg}
}

// Tool is one deterministic pipeline stage. A tool may read any context key
// but writes only the stage-output keys it declares.
type Tool interface {
	Name() string
	Description() string
	Category() Category

	// RequiredContextKeys must be present and non-empty before Execute runs.
	RequiredContextKeys() []string
	OptionalContextKeys() []string

	Execute(ctx context.Context, ec *Context, inputs map[string]any) ToolResult
}

// Schema describes a registered tool for introspection.
type Schema struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Category            Category `json:"category"`
	RequiredContextKeys []string `json:"required_context_keys"`
	OptionalContextKeys []string `json:"optional_context_keys"`
}
