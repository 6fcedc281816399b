package outreach

import (
	"time"

	"github.com/google/uuid"
)

// Context key names shared by tools and the invocation wrapper.
const (
	KeyProspectData            = "prospect_data"
	KeyCompanyResearch         = "company_research"
	KeyProfileMatches          = "profile_matches"
	KeyPersonalizationStrategy = "personalization_strategy"
	KeyEmailDraft              = "email_draft"
	KeyQualityMetrics          = "quality_metrics"
	KeySendResult              = "send_result"
)

// ToolCall is one recorded tool invocation.
type ToolCall struct {
	ToolName      string         `json:"tool_name"`
	Input         map[string]any `json:"input"`
	Output        map[string]any `json:"output"`
	ExecutionTime float64        `json:"execution_time_seconds"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Context is the per-prospect scratchpad shared by the stage tools. It is
// created at pipeline entry, mutated only through the stage-output fields,
// and discarded after the result is emitted. Not safe for concurrent use;
// all access happens on a single logical processing thread per prospect.
type Context struct {
	ID       string
	Prospect Prospect

	CompanyResearch *CompanyResearch
	ProfileMatches  *ProfileMatches
	Strategy        *PersonalizationStrategy
	EmailDraft      *EmailDraft
	QualityMetrics  *QualityMetrics
	SendResult      *SendResult

	ToolCalls []ToolCall
	Errors    []string
}

// NewContext creates a fresh context for one prospect.
func NewContext(p Prospect) *Context {
	return &Context{
		ID:       uuid.NewString(),
		Prospect: p,
	}
}

// AddToolCall appends one entry to the append-only call log.
func (c *Context) AddToolCall(toolName string, input, output map[string]any, elapsed time.Duration, at time.Time) {
	c.ToolCalls = append(c.ToolCalls, ToolCall{
		ToolName:      toolName,
		Input:         input,
		Output:        output,
		ExecutionTime: elapsed.Seconds(),
		Timestamp:     at,
	})
}

// AddError appends one message to the error trail.
func (c *Context) AddError(msg string) {
	c.Errors = append(c.Errors, msg)
}

// Has reports whether the named context key is present and non-empty.
func (c *Context) Has(key string) bool {
	switch key {
	case KeyProspectData:
		return c.Prospect != (Prospect{})
	case KeyCompanyResearch:
		return c.CompanyResearch != nil
	case KeyProfileMatches:
		return c.ProfileMatches != nil
	case KeyPersonalizationStrategy:
		return c.Strategy != nil
	case KeyEmailDraft:
		return c.EmailDraft != nil
	case KeyQualityMetrics:
		return c.QualityMetrics != nil
	case KeySendResult:
		return c.SendResult != nil
	default:
		return false
	}
}
