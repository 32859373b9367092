package domain

import "context"

// Retriever maps a query to the most similar stored inventory documents.
type Retriever interface {
	// Search returns up to topK document texts ranked by similarity.
	// An embedding failure yields an empty result, not an error; errors
	// are reserved for store-level failures.
	Search(ctx context.Context, query string, topK int) ([]string, error)
	// All returns every stored document text in insertion order.
	All(ctx context.Context) ([]string, error)
}
