// Package value contains the dynamic value model used by the devutils helpers. A Value is a tagged
// variant. The Go nil interface represents an undefined value while Null represents an explicit null.
package value

import (
	"fmt"
	"regexp"
	"time"
)

// Kind is the variant tag of a Value
type Kind int

const (
	// KindNull is the kind of the Null value
	KindNull = Kind(iota + 1)

	// KindBool is the kind of Bool values
	KindBool

	// KindNumber is the kind of Number values
	KindNumber

	// KindString is the kind of String values
	KindString

	// KindArray is the kind of *Array values
	KindArray

	// KindMap is the kind of *Map values. A map is what other languages call a plain object.
	KindMap

	// KindFunction is the kind of *Function values
	KindFunction

	// KindOpaque is the kind of values that are object-like but never plain, such as dates,
	// regular expressions and wrapped Go instances.
	KindOpaque
)

var kindNames = map[Kind]string{
	KindNull:     `null`,
	KindBool:     `bool`,
	KindNumber:   `number`,
	KindString:   `string`,
	KindArray:    `array`,
	KindMap:      `map`,
	KindFunction: `function`,
	KindOpaque:   `opaque`,
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return `undefined`
}

type (
	// Value is implemented by all variants
	Value interface {
		// Kind returns the variant tag
		Kind() Kind

		// String returns the string coercion of the value
		String() string
	}

	nullValue struct{}

	// Bool is a boolean value
	Bool bool

	// Number is a numeric value. All numbers are float64.
	Number float64

	// String is a string value
	String string

	// Function is a callable value. Functions are passed by reference.
	Function struct {
		name string
		fn   func(args ...Value) Value
	}

	// Date is an object-like value that holds a point in time
	Date struct {
		t time.Time
	}

	// Regexp is an object-like value that holds a compiled regular expression
	Regexp struct {
		re *regexp.Regexp
	}

	// Opaque wraps an arbitrary Go value. It is object-like but never a plain object.
	Opaque struct {
		v interface{}
	}

	// Element is implemented by Go values that represent UI elements. An Opaque that wraps
	// an Element is considered an element.
	Element interface {
		TagName() string
	}
)

// Null is the explicit null value
var Null Value = nullValue{}

func (nullValue) Kind() Kind {
	return KindNull
}

func (nullValue) String() string {
	return `null`
}

// Kind returns KindBool
func (v Bool) Kind() Kind {
	return KindBool
}

func (v Bool) String() string {
	if v {
		return `true`
	}
	return `false`
}

// Kind returns KindNumber
func (v Number) Kind() Kind {
	return KindNumber
}

func (v Number) String() string {
	return formatNumber(float64(v))
}

// Kind returns KindString
func (v String) Kind() Kind {
	return KindString
}

func (v String) String() string {
	return string(v)
}

// NewFunction wraps the given function in a Function value
func NewFunction(fn func(args ...Value) Value) *Function {
	return &Function{fn: fn}
}

// NewNamedFunction wraps the given function in a Function value that has a name
func NewNamedFunction(name string, fn func(args ...Value) Value) *Function {
	return &Function{name: name, fn: fn}
}

// Call calls the function with the given arguments. A nil result is undefined.
func (f *Function) Call(args ...Value) Value {
	return f.fn(args...)
}

// Kind returns KindFunction
func (f *Function) Kind() Kind {
	return KindFunction
}

// Name returns the name of the function or an empty string for anonymous functions
func (f *Function) Name() string {
	return f.name
}

func (f *Function) String() string {
	return fmt.Sprintf(`function %s() { [native code] }`, f.name)
}

// NewDate creates a Date value
func NewDate(t time.Time) *Date {
	return &Date{t}
}

// Kind returns KindOpaque
func (d *Date) Kind() Kind {
	return KindOpaque
}

// Time returns the point in time held by the date
func (d *Date) Time() time.Time {
	return d.t
}

func (d *Date) String() string {
	return d.t.Format(time.RFC3339Nano)
}

// NewRegexp creates a Regexp value
func NewRegexp(re *regexp.Regexp) *Regexp {
	return &Regexp{re}
}

// Kind returns KindOpaque
func (r *Regexp) Kind() Kind {
	return KindOpaque
}

// Regexp returns the compiled regular expression
func (r *Regexp) Regexp() *regexp.Regexp {
	return r.re
}

func (r *Regexp) String() string {
	return `/` + r.re.String() + `/`
}

// NewOpaque wraps the given Go value
func NewOpaque(v interface{}) *Opaque {
	return &Opaque{v}
}

// Kind returns KindOpaque
func (o *Opaque) Kind() Kind {
	return KindOpaque
}

// Native returns the wrapped Go value
func (o *Opaque) Native() interface{} {
	return o.v
}

func (o *Opaque) String() string {
	if s, ok := o.v.(fmt.Stringer); ok {
		return s.String()
	}
	return `[object Object]`
}

// KindOf returns the kind of the given value. The zero Kind is returned for undefined.
func KindOf(v Value) Kind {
	if v == nil {
		return 0
	}
	return v.Kind()
}
