package value

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimalPattern = regexp.MustCompile(`\A[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?\z`)
var infinityPattern = regexp.MustCompile(`\A([+-]?)Infinity\z`)
var radixPattern = regexp.MustCompile(`\A0([xXoObB])([0-9a-fA-F]+)\z`)

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return `NaN`
	case math.IsInf(f, 1):
		return `Infinity`
	case math.IsInf(f, -1):
		return `-Infinity`
	case f == 0:
		return `0`
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// JavaScript does not zero pad the exponent
		if i := strings.IndexByte(s, 'e'); i >= 0 {
			exp := s[i+2:]
			for len(exp) > 1 && exp[0] == '0' {
				exp = exp[1:]
			}
			s = s[:i+2] + exp
		}
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToNumber performs numeric coercion of the given value. Undefined, maps, functions and opaque
// values other than dates yield NaN. Null yields 0, booleans yield 0 or 1, strings are parsed
// after trimming white space (the empty string yields 0), dates yield milliseconds since the epoch
// and arrays are coerced through their string form.
func ToNumber(v Value) float64 {
	switch v := v.(type) {
	case nullValue:
		return 0
	case Bool:
		if v {
			return 1
		}
		return 0
	case Number:
		return float64(v)
	case String:
		return stringToNumber(string(v))
	case *Array:
		return stringToNumber(ToText(v))
	case *Date:
		return float64(v.t.UnixNano() / 1e6)
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == `` {
		return 0
	}
	if decimalPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return math.NaN()
	}
	if m := infinityPattern.FindStringSubmatch(s); m != nil {
		if m[1] == `-` {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	if m := radixPattern.FindStringSubmatch(s); m != nil {
		base := 16
		switch m[1] {
		case `o`, `O`:
			base = 8
		case `b`, `B`:
			base = 2
		}
		if i, err := strconv.ParseUint(m[2], base, 64); err == nil {
			return float64(i)
		}
	}
	return math.NaN()
}

// ToText performs string coercion of the given value. Undefined becomes "undefined", arrays are
// joined with comma where null and undefined elements are empty, and maps become "[object Object]".
func ToText(v Value) string {
	b := &strings.Builder{}
	writeText(b, v, make(map[*Array]bool))
	return b.String()
}

func writeText(b *strings.Builder, v Value, inProgress map[*Array]bool) {
	switch v := v.(type) {
	case nil:
		b.WriteString(`undefined`)
	case *Array:
		if inProgress[v] {
			return
		}
		inProgress[v] = true
		for i, e := range v.elements {
			if i > 0 {
				b.WriteByte(',')
			}
			if e == nil || e == Null {
				continue
			}
			writeText(b, e, inProgress)
		}
		delete(inProgress, v)
	case *Map:
		b.WriteString(`[object Object]`)
	default:
		b.WriteString(v.String())
	}
}

// Truthy returns false for undefined, Null, false, 0, NaN and the empty string. All other values
// are truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, nullValue:
		return false
	case Bool:
		return bool(v)
	case Number:
		return !(v == 0 || math.IsNaN(float64(v)))
	case String:
		return v != ``
	}
	return true
}
