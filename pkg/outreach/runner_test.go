package outreach_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

type fakeTool struct {
	name     string
	required []string
	execute  func(ec *outreach.Context) outreach.ToolResult
}

func (f fakeTool) Name() string                  { return f.name }
func (f fakeTool) Description() string           { return "fake tool" }
func (f fakeTool) Category() outreach.Category   { return outreach.CategoryResearch }
func (f fakeTool) RequiredContextKeys() []string { return f.required }
func (f fakeTool) OptionalContextKeys() []string { return nil }

func (f fakeTool) Execute(_ context.Context, ec *outreach.Context, _ map[string]any) outreach.ToolResult {
	return f.execute(ec)
}

func testProspect() outreach.Prospect {
	return outreach.Prospect{
		Name:    "Jane Doe",
		Email:   "jane@acme.io",
		Company: "Acme AI",
		Role:    "Senior Engineer",
	}
}

func TestRun_RecordsSuccessfulCall(t *testing.T) {
	t.Parallel()

	ec := outreach.NewContext(testProspect())
	tool := fakeTool{
		name:     "noop",
		required: []string{outreach.KeyProspectData},
		execute: func(*outreach.Context) outreach.ToolResult {
			return outreach.ToolResult{Success: true, Data: map[string]any{"ok": true}}
		},
	}

	res := outreach.Run(context.Background(), tool, ec, map[string]any{"k": "v"})
	if !res.Success {
		t.Fatalf("unexpected failure: %#v", res)
	}
	if len(ec.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(ec.ToolCalls))
	}
	call := ec.ToolCalls[0]
	if call.ToolName != "noop" || call.Input["k"] != "v" {
		t.Fatalf("unexpected call record: %#v", call)
	}
	if res.ExecutionTime < 0 {
		t.Fatalf("negative execution time: %v", res.ExecutionTime)
	}
}

func TestRun_MissingRequiredKeyFailsAndStillLogs(t *testing.T) {
	t.Parallel()

	ec := outreach.NewContext(testProspect())
	tool := fakeTool{
		name:     "needs_draft",
		required: []string{outreach.KeyEmailDraft, outreach.KeyProspectData},
		execute: func(*outreach.Context) outreach.ToolResult {
			t.Fatal("execute must not run on precondition failure")
			return outreach.ToolResult{}
		},
	}

	res := outreach.Run(context.Background(), tool, ec, nil)
	if res.Success {
		t.Fatalf("expected failure, got %#v", res)
	}
	if !strings.Contains(res.ErrorMessage, outreach.KeyEmailDraft) {
		t.Fatalf("error must name the missing key: %q", res.ErrorMessage)
	}
	if strings.Contains(res.ErrorMessage, outreach.KeyProspectData) {
		t.Fatalf("error must not name present keys: %q", res.ErrorMessage)
	}
	if len(ec.ToolCalls) != 1 {
		t.Fatalf("failed attempt must still be logged, got %d entries", len(ec.ToolCalls))
	}
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	t.Parallel()

	ec := outreach.NewContext(testProspect())
	tool := fakeTool{
		name:     "explodes",
		required: []string{outreach.KeyProspectData},
		execute: func(*outreach.Context) outreach.ToolResult {
			panic("boom")
		},
	}

	res := outreach.Run(context.Background(), tool, ec, nil)
	if res.Success {
		t.Fatalf("expected failure, got %#v", res)
	}
	if !strings.Contains(res.ErrorMessage, "boom") {
		t.Fatalf("panic message lost: %q", res.ErrorMessage)
	}
	if len(ec.Errors) != 1 {
		t.Fatalf("expected 1 error trail entry, got %d", len(ec.Errors))
	}
	if len(ec.ToolCalls) != 1 {
		t.Fatalf("failed attempt must still be logged, got %d entries", len(ec.ToolCalls))
	}
}

func TestRun_FailureMessageGoesToErrorTrail(t *testing.T) {
	t.Parallel()

	ec := outreach.NewContext(testProspect())
	tool := fakeTool{
		name:     "fails",
		required: []string{outreach.KeyProspectData},
		execute: func(*outreach.Context) outreach.ToolResult {
			return outreach.Failure("No company name provided")
		},
	}

	res := outreach.Run(context.Background(), tool, ec, nil)
	if res.Success {
		t.Fatalf("expected failure")
	}
	if len(ec.Errors) != 1 || !strings.Contains(ec.Errors[0], "No company name provided") {
		t.Fatalf("unexpected error trail: %#v", ec.Errors)
	}
}
