package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"pantry-ai/internal/domain"
	"pantry-ai/internal/infra/tracer"
)

// AgentDeps holds injected dependencies for the agent.
type AgentDeps struct {
	Generator    domain.Generator
	Tools        domain.ToolRunner
	History      *domain.History
	Logger       *slog.Logger
	SystemPrompt string // empty = DefaultSystemPrompt
	Temperature  float64
	MaxTokens    int
}

// Agent orchestrates the two-pass flow for one user query: a tool-selection
// model call, at most one tool execution, then a synthesis model call
// grounded in the tool output.
type Agent struct {
	deps AgentDeps
}

// NewAgent creates an agent with the given dependencies.
func NewAgent(deps AgentDeps) *Agent {
	if deps.SystemPrompt == "" {
		deps.SystemPrompt = DefaultSystemPrompt
	}
	return &Agent{deps: deps}
}

// Respond processes one user query and returns the answer text. It never
// fails: every error is folded into a human-readable response, so the REPL
// always has something to print.
func (a *Agent) Respond(ctx context.Context, query string) string {
	ctx, span := tracer.StartSpan(ctx, "agent.respond")
	defer span.End()

	// Pass 1: ask the model which tool, if any, fits the query.
	selection, err := a.generate(ctx, toolSelectionPrompt(query, a.deps.Tools.Descriptors()))
	if err != nil {
		a.deps.Logger.Warn("tool selection failed, answering without tools", "error", err)
		tracer.RecordError(span, err)
		selection = ""
	}

	var toolResult string
	if intent := ParseToolCall(selection); intent != nil {
		span.AddEvent("tool_selected",
			trace.WithAttributes(tracer.StringAttr("tool.name", intent.Tool)))
		a.deps.Logger.Info("tool selected", "tool", intent.Tool)
		toolResult = a.deps.Tools.Execute(ctx, intent.Tool, intent.Params)
	} else {
		a.deps.Logger.Debug("no tool selected, answering directly")
	}

	// Pass 2: synthesize the final answer, grounded in the tool output.
	answer, err := a.generate(ctx, synthesisPrompt(query, toolResult))
	if err != nil {
		tracer.RecordError(span, err)
		answer = errorAnswer(err)
	}

	// A canceled query never becomes history; only completed turns count.
	if ctx.Err() == nil {
		turn := a.deps.History.Append(query, answer)
		a.deps.Logger.Debug("turn recorded", "turn_id", turn.ID, "turns", a.deps.History.Len())
	}

	tracer.SetOK(span)
	return answer
}

func (a *Agent) generate(ctx context.Context, prompt string) (string, error) {
	return a.deps.Generator.Generate(ctx, domain.GenerateRequest{
		Prompt:      prompt,
		System:      a.deps.SystemPrompt,
		Temperature: a.deps.Temperature,
		MaxTokens:   a.deps.MaxTokens,
	})
}

// errorAnswer maps a synthesis failure to user-facing text. Each failure
// mode gets a distinct message so the user can tell a slow model from a
// stopped one.
func errorAnswer(err error) string {
	switch {
	case errors.Is(err, domain.ErrLLMTimeout):
		return "The language model took too long to respond. Try again, or check that the model server is not overloaded."
	case errors.Is(err, domain.ErrLLMUnreachable):
		return "Could not reach the language model server. Check that Ollama is running and reachable."
	case errors.Is(err, domain.ErrLLMStatus):
		return "The language model server rejected the request. Check that the configured model is available."
	case errors.Is(err, domain.ErrLLMMalformed):
		return "The language model returned an unreadable response. Try again."
	default:
		return "Error generating a response: " + err.Error()
	}
}
