package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pantry-ai/internal/domain"
)

var (
	toolDirectiveRe   = regexp.MustCompile(`(?i)TOOL:\s*([A-Za-z_][A-Za-z0-9_]*)`)
	paramsDirectiveRe = regexp.MustCompile(`(?is)PARAMETERS:\s*(\{.*?\})`)
)

// ParseToolCall extracts a tool invocation from model output. Only the first
// TOOL: directive counts; anything after it is ignored. Returns nil when the
// output contains no directive, which the orchestrator reads as "answer
// directly".
//
// Parameters are parsed as strict JSON first. When the model emits something
// braced but unparsable, the inner text becomes a single "query" parameter
// rather than failing the whole call; a wrong parameter shape should degrade
// the tool call, not kill it.
func ParseToolCall(output string) *domain.ToolIntent {
	toolMatch := toolDirectiveRe.FindStringSubmatch(output)
	if toolMatch == nil {
		return nil
	}

	intent := &domain.ToolIntent{
		Tool:   strings.ToLower(toolMatch[1]),
		Params: map[string]string{},
	}

	paramsMatch := paramsDirectiveRe.FindStringSubmatch(output)
	if paramsMatch == nil {
		return intent
	}

	raw := paramsMatch[1]
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if fallback := fallbackParam(raw); fallback != "" {
			intent.Params["query"] = fallback
		}
		return intent
	}

	for k, v := range parsed {
		intent.Params[k] = stringifyParam(v)
	}
	return intent
}

// fallbackParam salvages a value from malformed parameter JSON. It strips
// the braces, splits on the first colon, and unquotes both sides.
func fallbackParam(raw string) string {
	inner := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "{}"))
	if inner == "" {
		return ""
	}
	if _, value, found := strings.Cut(inner, ":"); found {
		return strings.Trim(strings.TrimSpace(value), `"`)
	}
	return strings.Trim(inner, `"`)
}

// stringifyParam renders a decoded JSON value as the string the tools
// consume. Numbers keep their shortest representation.
func stringifyParam(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
