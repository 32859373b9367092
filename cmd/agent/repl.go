package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const welcomeBanner = `============================================================
Kitchen Inventory Assistant
============================================================
Ask about stock levels, run calculations, search for
external info, or request a monthly report.

Type 'quit', 'exit', or 'bye' to leave.
`

const farewell = "Goodbye! Have a great day in the kitchen."

// responder answers one query at a time.
type responder interface {
	Respond(ctx context.Context, query string) string
}

// runREPL reads queries line by line and prints answers until the input
// closes, an exit word arrives, or the context is canceled. Queries are
// processed one at a time; the single-user flow has no concurrent handling.
func runREPL(ctx context.Context, agent responder, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, welcomeBanner+"\n")

	scanner := bufio.NewScanner(in)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\n"+farewell)
			return nil
		default:
		}

		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n"+farewell)
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if isExitWord(query) {
			fmt.Fprintln(out, farewell)
			return nil
		}

		answer := agent.Respond(ctx, query)
		fmt.Fprintf(out, "\nAssistant: %s\n\n", answer)
	}
}

// isExitWord reports whether the input is one of the quit commands,
// case-insensitively.
func isExitWord(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "bye":
		return true
	}
	return false
}
