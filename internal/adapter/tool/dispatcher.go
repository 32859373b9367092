package tool

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"pantry-ai/internal/domain"
	"pantry-ai/internal/infra/tracer"
)

const defaultTopK = 2

// Dispatcher routes a parsed tool invocation to its implementation. The tool
// set is closed; routing is an exhaustive switch over domain.ToolKind rather
// than a registration map, so an unhandled tool is a compile-time smell
// instead of a runtime surprise.
type Dispatcher struct {
	retriever domain.Retriever
	logger    *slog.Logger
	topK      int
}

// NewDispatcher creates a dispatcher over the given retriever. topK bounds
// inventory search results; zero or negative selects the default of 2.
func NewDispatcher(retriever domain.Retriever, topK int, logger *slog.Logger) *Dispatcher {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Dispatcher{
		retriever: retriever,
		logger:    logger,
		topK:      topK,
	}
}

// Execute implements domain.ToolRunner. It never panics and never fails:
// unknown tools and internal errors come back as text, which the synthesis
// pass presents as tool output.
func (d *Dispatcher) Execute(ctx context.Context, name string, params map[string]string) (result string) {
	ctx, span := tracer.StartSpan(ctx, "tool.execute",
		trace.WithAttributes(tracer.StringAttr("tool.name", name)),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool panicked", "tool", name, "panic", r)
			result = fmt.Sprintf("Error executing tool %s: internal error", name)
		}
	}()

	kind := domain.ToolKindOf(name)
	d.logger.Info("executing tool", "tool", kind.String(), "params", params)

	switch kind {
	case domain.ToolSearchInventory:
		result = d.searchInventory(ctx, params)
	case domain.ToolCalculate:
		result = d.calculate(params)
	case domain.ToolWebSearch:
		result = d.webSearch(params)
	case domain.ToolMonthlyReport:
		result = d.monthlyReport(ctx)
	default:
		err := domain.NewDomainError("Dispatcher.Execute", domain.ErrToolNotFound, name)
		tracer.RecordError(span, err)
		return fmt.Sprintf("Unknown tool: %s. Available tools: %s",
			name, joinNames(domain.ToolNames()))
	}

	tracer.SetOK(span)
	return result
}

// Descriptors implements domain.ToolRunner. The descriptions feed the
// tool-selection prompt verbatim.
func (d *Dispatcher) Descriptors() []domain.ToolDescriptor {
	return []domain.ToolDescriptor{
		{
			Name:        domain.ToolSearchInventory.String(),
			Description: "Search the inventory database for information about specific items, stock levels, locations, or suppliers. Use this when the user asks about what we have in stock.",
			Params:      "query (string): the item name to search for, e.g. 'olive oil' or 'flour'",
		},
		{
			Name:        domain.ToolCalculate.String(),
			Description: "Perform mathematical calculations. Use this for conversions, quantity calculations, or any math operations.",
			Params:      "expression (string): mathematical expression like '3.5 * 1000 / 15' or '25 - 5'",
		},
		{
			Name:        domain.ToolWebSearch.String(),
			Description: "Search the web for information not in the inventory database, such as recipes, substitutions, market prices, or supplier information.",
			Params:      "query (string): what to search for online, e.g. 'olive oil substitutes'",
		},
		{
			Name:        domain.ToolMonthlyReport.String(),
			Description: "Generate a complete inventory report showing all items, quantities, and details. Use this when user asks for a full inventory report or summary.",
			Params:      "none - this tool takes no parameters",
		},
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// Compile-time interface check.
var _ domain.ToolRunner = (*Dispatcher)(nil)
