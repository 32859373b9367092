package usecase

import (
	"fmt"
	"strings"

	"pantry-ai/internal/domain"
)

// DefaultSystemPrompt defines the assistant's role, tool inventory, and the
// exact TOOL:/PARAMETERS: format. It is sent verbatim as the system message
// on both model passes unless overridden in config.
const DefaultSystemPrompt = `You are an AI assistant for a restaurant kitchen inventory management system.

ROLE:
You help restaurant staff check inventory levels, perform calculations, search for information, and generate reports.

CAPABILITIES:
You have access to these tools:
1. search_inventory - Look up items in the inventory database
2. calculate - Perform mathematical calculations
3. web_search - Search online for external information
4. generate_monthly_report - Create full inventory reports

GUIDELINES:
- Always be helpful, accurate, and professional
- When asked about inventory, use the search_inventory tool first
- For calculations (conversions, quantities), use the calculate tool
- For information not in inventory (recipes, substitutions), use web_search
- For monthly reports, use generate_monthly_report
- Provide specific quantities with units (kg, L, g, mL)

CRITICAL - TOOL CALL FORMAT:
When you need to use a tool, you MUST format it EXACTLY like this:

TOOL: search_inventory
PARAMETERS: {"query": "olive oil"}

OR

TOOL: calculate
PARAMETERS: {"expression": "3.5 * 1000 / 15"}

OR

TOOL: web_search
PARAMETERS: {"query": "olive oil substitutes"}

OR

TOOL: generate_monthly_report
PARAMETERS: {}

IMPORTANT RULES:
1. Always use "query" as the parameter name for search_inventory and web_search
2. Always use "expression" as the parameter name for calculate
3. Use {} (empty braces) for generate_monthly_report
4. Do NOT make up inventory numbers - always use search_inventory
5. Do NOT guess at calculations - always use the calculate tool
6. Wait for the tool result before continuing your response`

// antiHallucinationInstructions is injected into every synthesis prompt to
// keep the model grounded in tool output.
const antiHallucinationInstructions = `CRITICAL - PREVENTING ERRORS:

1. NEVER invent inventory quantities
2. NEVER guess at calculations
3. NEVER fabricate supplier information
4. If information isn't in the database, say so clearly
5. If uncertain, qualify your statements ("Based on the inventory data, ...")

ALWAYS use tools rather than guessing. It's better to say "I don't know" than to provide incorrect information.`

// toolSelectionPrompt builds the first-pass prompt: given the user query and
// the tool catalog, the model either emits a TOOL: directive or answers
// directly.
func toolSelectionPrompt(userQuery string, descriptors []domain.ToolDescriptor) string {
	var tools strings.Builder
	for _, d := range descriptors {
		fmt.Fprintf(&tools, "- %s: %s\n  Parameters: %s\n", d.Name, d.Description, d.Params)
	}

	return fmt.Sprintf(`Given this user query: %q

Available tools:
%s
Analyze the query and determine:
1. Which tool is needed (if any)
2. What parameters to pass to it

Think step by step:
- Does this ask about inventory? Use search_inventory
- Does this need math? Use calculate
- Does this need external info? Use web_search
- Does this ask for a report? Use generate_monthly_report

If a tool is needed, format the tool call like this:
TOOL: tool_name
PARAMETERS: {"param": "value"}

If no tool is needed, answer the query directly.`, userQuery, tools.String())
}

// synthesisPrompt builds the second-pass prompt. With tool output it
// instructs the model to answer from that output alone; without it the
// model answers from general knowledge of the system.
func synthesisPrompt(userQuery, toolResult string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "User Query: %s\n\n", userQuery)
	sb.WriteString(antiHallucinationInstructions)
	sb.WriteString("\n\n")

	if toolResult != "" {
		fmt.Fprintf(&sb, "Tool Results:\n%s\n\n", toolResult)
		sb.WriteString("Using the tool results above, answer the user's query accurately and concisely.\n")
	} else {
		sb.WriteString("Answer the user's query based on your knowledge of the inventory system.\n")
	}
	return sb.String()
}
