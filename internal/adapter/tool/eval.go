package tool

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// evalExpression evaluates basic arithmetic over float64: + - * /, unary
// minus, parentheses, decimal literals. Standard precedence, left
// associativity. Division by zero is an error rather than Inf.
func evalExpression(input string) (float64, error) {
	p := &exprParser{input: strings.TrimSpace(input)}
	if p.input == "" {
		return 0, errors.New("empty expression")
	}

	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

// parseExpr handles + and -.
func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		ch, ok := p.peek()
		if !ok || (ch != '+' && ch != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if ch == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

// parseTerm handles * and /.
func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		ch, ok := p.peek()
		if !ok || (ch != '*' && ch != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if ch == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, errors.New("division by zero")
			}
			left /= right
		}
	}
}

// parseUnary handles a leading sign.
func (p *exprParser) parseUnary() (float64, error) {
	ch, ok := p.peek()
	if ok && (ch == '-' || ch == '+') {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if ch == '-' {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

// parsePrimary handles numbers and parenthesized subexpressions.
func (p *exprParser) parsePrimary() (float64, error) {
	ch, ok := p.peek()
	if !ok {
		return 0, errors.New("unexpected end of expression")
	}

	if ch == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		ch, ok = p.peek()
		if !ok || ch != ')' {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}

	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("unexpected character %q at position %d", ch, p.pos)
	}

	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
