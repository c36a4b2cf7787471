package dynamotest

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// evaluator understands the subset of DynamoDB condition syntax that the
// expression builder emits: comparisons, contains, begins_with,
// attribute_exists, attribute_not_exists, AND, OR, NOT and parentheses.
type evaluator struct {
	tokens []string
	pos    int
	names  map[string]string
	values map[string]types.AttributeValue
	item   map[string]types.AttributeValue
}

func evaluate(expr string, names map[string]string, values map[string]types.AttributeValue, item map[string]types.AttributeValue) (bool, error) {
	if strings.TrimSpace(expr) == "" {
		return true, nil
	}
	e := &evaluator{
		tokens: tokenize(expr),
		names:  names,
		values: values,
		item:   item,
	}
	result, err := e.parseOr()
	if err != nil {
		return false, err
	}
	if e.pos != len(e.tokens) {
		return false, fmt.Errorf("unexpected token %q in %q", e.tokens[e.pos], expr)
	}
	return result, nil
}

func tokenize(expr string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(expr)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '(' || r == ')' || r == ',' || r == '=':
			flush()
			tokens = append(tokens, string(r))
		case r == '<' || r == '>':
			flush()
			if i+1 < len(runes) && (runes[i+1] == '>' || runes[i+1] == '=') {
				tokens = append(tokens, string(runes[i:i+2]))
				i++
			} else {
				tokens = append(tokens, string(r))
			}
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func (e *evaluator) peek() string {
	if e.pos < len(e.tokens) {
		return e.tokens[e.pos]
	}
	return ""
}

func (e *evaluator) next() string {
	t := e.peek()
	e.pos++
	return t
}

func (e *evaluator) expect(token string) error {
	if got := e.next(); got != token {
		return fmt.Errorf("expected %q, got %q", token, got)
	}
	return nil
}

func (e *evaluator) parseOr() (bool, error) {
	left, err := e.parseAnd()
	if err != nil {
		return false, err
	}
	for strings.EqualFold(e.peek(), "OR") {
		e.next()
		right, err := e.parseAnd()
		if err != nil {
			return false, err
		}
		left = left || right
	}
	return left, nil
}

func (e *evaluator) parseAnd() (bool, error) {
	left, err := e.parseUnary()
	if err != nil {
		return false, err
	}
	for strings.EqualFold(e.peek(), "AND") {
		e.next()
		right, err := e.parseUnary()
		if err != nil {
			return false, err
		}
		left = left && right
	}
	return left, nil
}

func (e *evaluator) parseUnary() (bool, error) {
	switch tok := e.peek(); {
	case strings.EqualFold(tok, "NOT"):
		e.next()
		v, err := e.parseUnary()
		return !v, err
	case tok == "(":
		e.next()
		v, err := e.parseOr()
		if err != nil {
			return false, err
		}
		return v, e.expect(")")
	case strings.HasPrefix(tok, "#") || strings.HasPrefix(tok, ":"):
		return e.parseComparison()
	default:
		return e.parseFunction()
	}
}

func (e *evaluator) parseFunction() (bool, error) {
	name := strings.ToLower(e.next())
	if err := e.expect("("); err != nil {
		return false, err
	}
	var args []string
	for e.peek() != ")" {
		if e.peek() == "" {
			return false, fmt.Errorf("unterminated call to %s", name)
		}
		args = append(args, e.next())
		if e.peek() == "," {
			e.next()
		}
	}
	e.next()

	switch name {
	case "attribute_exists", "attribute_not_exists":
		if len(args) != 1 {
			return false, fmt.Errorf("%s takes one argument", name)
		}
		_, ok := e.item[e.names[args[0]]]
		if name == "attribute_exists" {
			return ok, nil
		}
		return !ok, nil
	case "contains", "begins_with":
		if len(args) != 2 {
			return false, fmt.Errorf("%s takes two arguments", name)
		}
		haystack, ok1 := stringOf(e.operand(args[0]))
		needle, ok2 := stringOf(e.operand(args[1]))
		if !ok1 || !ok2 {
			return false, nil
		}
		if name == "contains" {
			return strings.Contains(haystack, needle), nil
		}
		return strings.HasPrefix(haystack, needle), nil
	default:
		return false, fmt.Errorf("unsupported function %q", name)
	}
}

func (e *evaluator) parseComparison() (bool, error) {
	left, lok := stringOf(e.operand(e.next()))
	op := e.next()
	right, rok := stringOf(e.operand(e.next()))

	if op == "<>" {
		return !lok || !rok || left != right, nil
	}
	if !lok || !rok {
		return false, nil
	}
	switch op {
	case "=":
		return left == right, nil
	case "<":
		return left < right, nil
	case "<=":
		return left <= right, nil
	case ">":
		return left > right, nil
	case ">=":
		return left >= right, nil
	default:
		return false, fmt.Errorf("unsupported operator %q", op)
	}
}

func (e *evaluator) operand(token string) types.AttributeValue {
	if strings.HasPrefix(token, ":") {
		return e.values[token]
	}
	if strings.HasPrefix(token, "#") {
		return e.item[e.names[token]]
	}
	return e.item[token]
}

func stringOf(v types.AttributeValue) (string, bool) {
	switch av := v.(type) {
	case *types.AttributeValueMemberS:
		return av.Value, true
	case *types.AttributeValueMemberN:
		return av.Value, true
	default:
		return "", false
	}
}
