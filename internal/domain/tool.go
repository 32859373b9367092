package domain

import (
	"context"
	"strings"
)

// ToolKind identifies one of the agent's tools. The set is closed: adding or
// removing a tool is a compile-time change to this enum and to the
// dispatcher's switch, not a runtime registration.
type ToolKind int

const (
	ToolUnknown ToolKind = iota
	ToolSearchInventory
	ToolCalculate
	ToolWebSearch
	ToolMonthlyReport
)

// String returns the wire name of the tool as it appears in prompts and in
// the model's TOOL: directives.
func (k ToolKind) String() string {
	switch k {
	case ToolSearchInventory:
		return "search_inventory"
	case ToolCalculate:
		return "calculate"
	case ToolWebSearch:
		return "web_search"
	case ToolMonthlyReport:
		return "generate_monthly_report"
	default:
		return "unknown"
	}
}

// ToolKindOf maps a tool name to its kind. Matching is case-insensitive;
// unrecognized names map to ToolUnknown.
func ToolKindOf(name string) ToolKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "search_inventory":
		return ToolSearchInventory
	case "calculate":
		return ToolCalculate
	case "web_search":
		return ToolWebSearch
	case "generate_monthly_report":
		return ToolMonthlyReport
	default:
		return ToolUnknown
	}
}

// ToolNames returns the wire names of all valid tools, in prompt order.
func ToolNames() []string {
	return []string{
		ToolSearchInventory.String(),
		ToolCalculate.String(),
		ToolWebSearch.String(),
		ToolMonthlyReport.String(),
	}
}

// ToolDescriptor describes a tool for prompting. Params is informal prose,
// not a schema: the model consumes it as natural language.
type ToolDescriptor struct {
	Name        string
	Description string
	Params      string
}

// ToolIntent is a structured tool invocation extracted from model output.
// It lives only within a single query's processing.
type ToolIntent struct {
	Tool   string
	Params map[string]string
}

// ToolRunner abstracts tool dispatch for the orchestrator. Execute never
// panics and never returns an error: every failure is folded into the
// returned text, which the synthesis pass treats as tool output.
type ToolRunner interface {
	Execute(ctx context.Context, name string, params map[string]string) string
	Descriptors() []ToolDescriptor
}
