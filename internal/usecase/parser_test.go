package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolCall(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantTool   string
		wantParams map[string]string
	}{
		{
			name:       "standard search call",
			output:     "TOOL: search_inventory\nPARAMETERS: {\"query\": \"olive oil\"}",
			wantTool:   "search_inventory",
			wantParams: map[string]string{"query": "olive oil"},
		},
		{
			name:       "calculate call",
			output:     "I will compute that.\n\nTOOL: calculate\nPARAMETERS: {\"expression\": \"3.5 * 1000 / 15\"}",
			wantTool:   "calculate",
			wantParams: map[string]string{"expression": "3.5 * 1000 / 15"},
		},
		{
			name:       "report call with empty params",
			output:     "TOOL: generate_monthly_report\nPARAMETERS: {}",
			wantTool:   "generate_monthly_report",
			wantParams: map[string]string{},
		},
		{
			name:       "lowercased tool name",
			output:     "TOOL: Search_Inventory\nPARAMETERS: {\"query\": \"flour\"}",
			wantTool:   "search_inventory",
			wantParams: map[string]string{"query": "flour"},
		},
		{
			name:       "directive without parameters",
			output:     "TOOL: generate_monthly_report",
			wantTool:   "generate_monthly_report",
			wantParams: map[string]string{},
		},
		{
			name:       "params across lines",
			output:     "TOOL: web_search\nPARAMETERS: {\n  \"query\": \"olive oil substitutes\"\n}",
			wantTool:   "web_search",
			wantParams: map[string]string{"query": "olive oil substitutes"},
		},
		{
			name:       "first directive wins",
			output:     "TOOL: calculate\nPARAMETERS: {\"expression\": \"1+1\"}\n\nTOOL: web_search\nPARAMETERS: {\"query\": \"x\"}",
			wantTool:   "calculate",
			wantParams: map[string]string{"expression": "1+1"},
		},
		{
			name:       "numeric parameter stringified",
			output:     "TOOL: search_inventory\nPARAMETERS: {\"query\": \"oil\", \"limit\": 2}",
			wantTool:   "search_inventory",
			wantParams: map[string]string{"query": "oil", "limit": "2"},
		},
		{
			name:       "malformed json falls back to query",
			output:     "TOOL: search_inventory\nPARAMETERS: {query: olive oil}",
			wantTool:   "search_inventory",
			wantParams: map[string]string{"query": "olive oil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ParseToolCall(tt.output)
			require.NotNil(t, intent)
			assert.Equal(t, tt.wantTool, intent.Tool)
			assert.Equal(t, tt.wantParams, intent.Params)
		})
	}
}

func TestParseToolCallNoDirective(t *testing.T) {
	outputs := []string{
		"",
		"You currently have 3.5L of olive oil in stock.",
		"The tools available are search_inventory and calculate.",
		"PARAMETERS: {\"query\": \"oil\"}",
	}

	for _, output := range outputs {
		assert.Nil(t, ParseToolCall(output), "output: %q", output)
	}
}

func TestFallbackParam(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{query: olive oil}`, "olive oil"},
		{`{"query": olive oil}`, "olive oil"},
		{`{just text}`, "just text"},
		{`{}`, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fallbackParam(tt.raw), "raw: %q", tt.raw)
	}
}
