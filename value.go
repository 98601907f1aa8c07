package at

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the Value variants.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueString
	ValueInteger
	ValueRange
	ValueBareword
	ValueArray
	ValueBracketedArray
)

// Value is a tagged variant of a single token (or comma-joined list of
// tokens) found in an AT response line: a quoted string, an unsigned
// integer, an integer range "N-M", a bareword, the empty value, or an
// array of Values — either the top-level comma-joined list a line's
// payload decomposes into, or one nested in parentheses.
type Value struct {
	Kind ValueKind

	Str     string
	Int     uint64
	RangeLo uint64
	RangeHi uint64
	Array   []Value
}

func StringValue(s string) Value    { return Value{Kind: ValueString, Str: s} }
func IntegerValue(n uint64) Value   { return Value{Kind: ValueInteger, Int: n} }
func BarewordValue(s string) Value  { return Value{Kind: ValueBareword, Str: s} }
func RangeValue(lo, hi uint64) Value {
	return Value{Kind: ValueRange, RangeLo: lo, RangeHi: hi}
}
func ArrayValue(vs []Value) Value { return Value{Kind: ValueArray, Array: vs} }
func BracketedArrayValue(vs []Value) Value {
	return Value{Kind: ValueBracketedArray, Array: vs}
}

var emptyValue = Value{Kind: ValueEmpty}

// String renders the Value back into the grammar form ParseValue accepts.
func (v Value) String() string {
	switch v.Kind {
	case ValueEmpty:
		return ""
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueInteger:
		return strconv.FormatUint(v.Int, 10)
	case ValueRange:
		return fmt.Sprintf("%d-%d", v.RangeLo, v.RangeHi)
	case ValueBareword:
		return v.Str
	case ValueArray:
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = e.String()
		}
		return strings.Join(parts, ",")
	case ValueBracketedArray:
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	return ""
}

// ParseValue parses the payload of an information response (everything
// after "<param>: "): a single token parses to that token's Value, two or
// more comma-separated tokens to a top-level Array of Values.
func ParseValue(s string) Value {
	tokens := splitTopLevel(s)
	if len(tokens) == 1 {
		return parseSingle(tokens[0])
	}
	vals := make([]Value, len(tokens))
	for i, t := range tokens {
		vals[i] = parseSingle(t)
	}
	return ArrayValue(vals)
}

// splitTopLevel splits s on commas that are not nested inside parentheses
// or a quoted string.
func splitTopLevel(s string) []string {
	var tokens []string
	depth := 0
	inQuote := false
	start := 0
	for i, c := range s {
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
			// inside a quoted string, commas and parens don't count
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			tokens = append(tokens, s[start:i])
			start = i + 1
		}
	}
	tokens = append(tokens, s[start:])
	return tokens
}

func parseSingle(tok string) Value {
	tok = strings.TrimSpace(tok)
	switch {
	case tok == "":
		return emptyValue
	case strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")"):
		inner := tok[1 : len(tok)-1]
		if inner == "" {
			return BracketedArrayValue(nil)
		}
		innerTokens := splitTopLevel(inner)
		vals := make([]Value, len(innerTokens))
		for i, t := range innerTokens {
			vals[i] = parseSingle(t)
		}
		return BracketedArrayValue(vals)
	case strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2:
		return StringValue(tok[1 : len(tok)-1])
	case isRange(tok):
		lo, hi := splitRange(tok)
		return RangeValue(lo, hi)
	case isUint(tok):
		n, _ := strconv.ParseUint(tok, 10, 64)
		return IntegerValue(n)
	default:
		return BarewordValue(tok)
	}
}

func isUint(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isRange(s string) bool {
	i := strings.IndexByte(s, '-')
	if i <= 0 || i == len(s)-1 {
		return false
	}
	return isUint(s[:i]) && isUint(s[i+1:])
}

func splitRange(s string) (uint64, uint64) {
	i := strings.IndexByte(s, '-')
	lo, _ := strconv.ParseUint(s[:i], 10, 64)
	hi, _ := strconv.ParseUint(s[i+1:], 10, 64)
	return lo, hi
}
