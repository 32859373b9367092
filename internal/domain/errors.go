package domain

import "fmt"

// Sentinel errors for the domain layer.
var (
	ErrToolNotFound    = fmt.Errorf("tool not found")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrConfigLoad      = fmt.Errorf("failed to load configuration")
	ErrEmbeddingFailed = fmt.Errorf("embedding generation failed")
	ErrStoreFailed     = fmt.Errorf("document store operation failed")

	// Gateway errors. Each maps to a distinct user-visible message: the
	// orchestrator embeds these in its answer, so the wording matters.
	ErrLLMTimeout     = fmt.Errorf("language model request timed out")
	ErrLLMUnreachable = fmt.Errorf("language model unreachable")
	ErrLLMMalformed   = fmt.Errorf("malformed language model response")
	ErrLLMStatus      = fmt.Errorf("language model returned an error")
)

// DomainError wraps a sentinel error with operation context.
type DomainError struct {
	Op     string // operation name (e.g., "Dispatcher.Execute")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
