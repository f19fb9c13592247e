package lua

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatFloat renders a double the way reference Lua 5.2 does:
// "%.14g", with "nan"/"inf"/"-inf" for the non-finite cases instead of
// Go's "NaN"/"+Inf"/"-Inf".
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', 14, 64)
	}
}

// numberString renders a Lua number value (integer or double) the way
// `..` and `tostring` do: integers as "%d", doubles per formatFloat.
func numberString(v Value) string {
	if v.kind == KindInt {
		return strconv.FormatInt(int64(v.i), 10)
	}
	return formatFloat(v.f)
}

// parseNumber parses s as a Lua 5.2 numeric literal: an optional sign, a
// decimal integer/float (including scientific notation) or a "0x"/"0X"
// hexadecimal integer. Unlike strconv.ParseFloat, it rejects the
// "inf"/"nan" word forms Go accepts but Lua's tonumber does not.
func parseNumber(s string) (Value, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Nil, false
	}

	neg := false
	rest := t
	switch rest[0] {
	case '+', '-':
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	if rest == "" {
		return Nil, false
	}

	if len(rest) > 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		u, err := strconv.ParseUint(rest[2:], 16, 64)
		if err != nil {
			return Nil, false
		}
		n := float64(u)
		if neg {
			n = -n
		}
		return ValueOf(n), true
	}

	for _, c := range rest {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-':
		default:
			return Nil, false
		}
	}

	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return Nil, false
	}
	return ValueOf(f), true
}

// compareStrings implements Lua's lexicographic-by-unsigned-byte-value
// string ordering. Go's native string comparison already compares
// byte-for-byte on unsigned values, so this is a thin, documented wrapper
// rather than a reimplementation.
func compareStrings(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default:
		panic("lua: unknown string comparison operator " + op)
	}
}

// concatString returns the byte representation `..` uses for v: the
// string itself for a string value, or the numeric format from
// numberString for a number. ok is false for anything else, signalling
// that concatenation must fall back to metamethod dispatch instead of
// the concat buffer.
func concatString(v Value) (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindInt, KindFloat:
		return numberString(v), true
	default:
		return "", false
	}
}

// ConcatBuffer is mutable scratch for building a string out of repeated
// prepend/append operations in amortized O(total bytes), instead of the
// O(n²) blowup of pairwise `..` concatenation across a chain of many
// fragments. Prepends and appends are independent of each other and of
// their relative interleaving: every prepend moves the front of the
// final string, every append moves the back, so the buffer only needs
// to remember the two operation sequences and join them once, in
// Value(), rather than resizing a single backing string on every call.
type ConcatBuffer struct {
	prepends []string // insertion order; reversed when assembled
	base     string
	appends  []string
}

// Append adds a string-or-number fragment to the end of the buffer. It
// returns an error if v is neither, which the caller (the `..` operator surface)
// must treat as a signal to defer to __concat metamethod dispatch
// instead of using the buffer.
func (b *ConcatBuffer) Append(v Value) error {
	s, ok := concatString(v)
	if !ok {
		return errConcatBuffer(v)
	}
	b.appends = append(b.appends, s)
	return nil
}

// Prepend adds a string-or-number fragment to the front of the buffer.
func (b *ConcatBuffer) Prepend(v Value) error {
	s, ok := concatString(v)
	if !ok {
		return errConcatBuffer(v)
	}
	b.prepends = append(b.prepends, s)
	return nil
}

// SetValue replaces the buffer's entire contents with a single
// string-or-number fragment.
func (b *ConcatBuffer) SetValue(v Value) error {
	s, ok := concatString(v)
	if !ok {
		return errConcatBuffer(v)
	}
	b.prepends = b.prepends[:0]
	b.appends = b.appends[:0]
	b.base = s
	return nil
}

// Value assembles the buffer's current contents into one Str, most
// recently prepended fragment first, then the base, then appended
// fragments in append order.
func (b *ConcatBuffer) Value() Value {
	if len(b.prepends) == 0 && len(b.appends) == 0 {
		return Str(b.base)
	}

	n := len(b.base)
	for _, s := range b.prepends {
		n += len(s)
	}
	for _, s := range b.appends {
		n += len(s)
	}

	var sb strings.Builder
	sb.Grow(n)
	for i := len(b.prepends) - 1; i >= 0; i-- {
		sb.WriteString(b.prepends[i])
	}
	sb.WriteString(b.base)
	for _, s := range b.appends {
		sb.WriteString(s)
	}
	return Str(sb.String())
}

func errConcatBuffer(v Value) error {
	return fmt.Errorf("attempt to concatenate a %s value", v.TypeName())
}
