package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Turn is one completed question/answer exchange.
type Turn struct {
	ID     string    `json:"id"`
	Query  string    `json:"query"`
	Answer string    `json:"answer"`
	At     time.Time `json:"at"`
}

// History is the append-only record of completed turns. It is write-only by
// design: turns are never re-injected into later prompts, which keeps every
// query stateless. Only the single active orchestration flow touches it, so
// no locking is needed.
type History struct {
	turns []Turn
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append records a completed turn and returns it with ID and timestamp set.
func (h *History) Append(query, answer string) Turn {
	t := Turn{
		ID:     ulid.Make().String(),
		Query:  query,
		Answer: answer,
		At:     time.Now().UTC(),
	}
	h.turns = append(h.turns, t)
	return t
}

// Len returns the number of recorded turns.
func (h *History) Len() int { return len(h.turns) }

// Turns returns a copy of the recorded turns in order.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}
