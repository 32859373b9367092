package tool

import (
	"fmt"
	"regexp"
	"strconv"
)

// nonMathChars strips anything outside digits, operators, parentheses,
// decimal points, and whitespace before evaluation.
var nonMathChars = regexp.MustCompile(`[^0-9+\-*/().\s]`)

// calculate evaluates an arithmetic expression and formats the result.
// The expression is sanitized then parsed by a recursive-descent evaluator;
// there is no dynamic evaluation of any kind.
func (d *Dispatcher) calculate(params map[string]string) string {
	expr := firstParam(params, "expression", "expr", "query")
	if expr == "" {
		return "Error calculating: empty expression"
	}

	safe := nonMathChars.ReplaceAllString(expr, "")

	result, err := evalExpression(safe)
	if err != nil {
		return fmt.Sprintf("Error calculating: %s", err)
	}

	return "Result: " + strconv.FormatFloat(result, 'g', -1, 64)
}
