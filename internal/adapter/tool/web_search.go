package tool

import (
	"fmt"
	"strings"
)

// cannedResult pairs a trigger substring with a fixed response body. The
// web search is a stub: no network calls leave the process. Matching order
// is fixed so the same query always yields the same result.
type cannedResult struct {
	key      string
	response string
}

var cannedResults = []cannedResult{
	{
		key: "olive oil",
		response: "Common olive oil substitutes:\n" +
			"- Canola oil (neutral flavor, good for high heat)\n" +
			"- Avocado oil (similar health benefits, high smoke point)\n" +
			"- Grapeseed oil (light flavor, versatile)\n" +
			"- Sunflower oil (economical alternative)",
	},
	{
		key: "flour",
		response: "Types of flour and uses:\n" +
			"- All-purpose: General baking and cooking\n" +
			"- Bread flour: High protein, best for yeast breads\n" +
			"- Cake flour: Low protein, tender baked goods\n" +
			"- Whole wheat: Higher fiber, denser texture",
	},
	{
		key: "suppliers",
		response: "Finding reliable food suppliers:\n" +
			"1. Check local wholesaler directories\n" +
			"2. Join restaurant industry associations\n" +
			"3. Attend food trade shows\n" +
			"4. Get recommendations from other restaurants\n" +
			"5. Compare pricing and delivery terms",
	},
}

// webSearch returns a canned response for known query topics. Unknown
// queries get a placeholder naming the query; replacing this stub with a
// real search API leaves the dispatcher untouched.
func (d *Dispatcher) webSearch(params map[string]string) string {
	query := firstParam(params, "query", "search_term", "q")

	queryLower := strings.ToLower(query)
	for _, c := range cannedResults {
		if strings.Contains(queryLower, c.key) {
			return "Web Search Results:\n" + c.response
		}
	}

	return fmt.Sprintf("Web search for '%s' would be performed here. In production, this would use a real search API.", query)
}
