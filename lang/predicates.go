// Package lang contains type predicates and other basic language helpers that operate on dynamic
// values.
package lang

import (
	"math"

	"github.com/modil-io/devutils/value"
)

// IsArray returns true if x is an array
func IsArray(x value.Value) bool {
	_, ok := x.(*value.Array)
	return ok
}

// IsBoolean returns true if x is a boolean
func IsBoolean(x value.Value) bool {
	_, ok := x.(value.Bool)
	return ok
}

// IsDate returns true if x is a date
func IsDate(x value.Value) bool {
	_, ok := x.(*value.Date)
	return ok
}

// IsElement returns true if x wraps a Go value that implements value.Element
func IsElement(x value.Value) bool {
	if o, ok := x.(*value.Opaque); ok {
		_, ok = o.Native().(value.Element)
		return ok
	}
	return false
}

// IsEmpty returns true if x is undefined, null, an empty string, an empty array or a map
// without entries. All other values except non-empty strings, arrays and maps, such as numbers,
// booleans and functions, are also considered empty since they have no enumerable content.
func IsEmpty(x value.Value) bool {
	switch x := x.(type) {
	case value.String:
		return len(x) == 0
	case *value.Array:
		return x.Len() == 0
	case *value.Map:
		return x.Len() == 0
	}
	return true
}

// IsFunction returns true if x is a function
func IsFunction(x value.Value) bool {
	_, ok := x.(*value.Function)
	return ok
}

// IsInteger returns true if x is a finite number without a fractional part
func IsInteger(x value.Value) bool {
	if n, ok := x.(value.Number); ok {
		f := float64(n)
		return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
	}
	return false
}

// IsNumber returns true if x is a number. NaN is a number.
func IsNumber(x value.Value) bool {
	_, ok := x.(value.Number)
	return ok
}

// IsNumberLike returns true if x is neither null nor undefined and its numeric coercion is not
// NaN. Booleans, dates, numeric strings, the empty string and empty arrays are all number-like.
func IsNumberLike(x value.Value) bool {
	return x != nil && x != value.Null && !math.IsNaN(value.ToNumber(x))
}

// IsObjectLike returns true if x is an array, a map or an opaque value such as a date or a regular
// expression. Functions are not object-like.
func IsObjectLike(x value.Value) bool {
	switch value.KindOf(x) {
	case value.KindArray, value.KindMap, value.KindOpaque:
		return true
	}
	return false
}

// IsPlainObject returns true if x is a map
func IsPlainObject(x value.Value) bool {
	_, ok := x.(*value.Map)
	return ok
}

// IsRegExp returns true if x is a regular expression
func IsRegExp(x value.Value) bool {
	_, ok := x.(*value.Regexp)
	return ok
}

// IsString returns true if x is a string
func IsString(x value.Value) bool {
	_, ok := x.(value.String)
	return ok
}

// IsUndefined returns true if x is undefined
func IsUndefined(x value.Value) bool {
	return x == nil
}

// Clone returns a shallow copy of x
func Clone(x value.Value) value.Value {
	return value.Clone(x)
}

// CloneDeep returns a copy of x that shares no mutable structure with x
func CloneDeep(x value.Value) value.Value {
	return value.CloneDeep(x)
}
