package tool

import (
	"context"
	"strings"
)

const noInventoryFound = "No inventory information found for that query."

// searchInventory looks up the query in the inventory store and joins the
// top matches. A missing or empty query, a retrieval failure, and an empty
// result all collapse to the same "nothing found" sentinel: the synthesis
// pass needs grounded text either way.
func (d *Dispatcher) searchInventory(ctx context.Context, params map[string]string) string {
	query := firstParam(params, "query", "item", "search_term", "search")
	if query == "" {
		return noInventoryFound
	}

	results, err := d.retriever.Search(ctx, query, d.topK)
	if err != nil {
		d.logger.Warn("inventory search failed", "query", query, "error", err)
		return noInventoryFound
	}
	if len(results) == 0 {
		return noInventoryFound
	}

	return strings.Join(results, "\n\n")
}
