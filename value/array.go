package value

// Array is a mutable ordered sequence of values. Elements may be undefined (nil).
type Array struct {
	elements []Value
}

// NewArray creates an array of the given elements, each converted using FromNative
func NewArray(elements ...interface{}) *Array {
	vs := make([]Value, len(elements))
	for i, e := range elements {
		vs[i] = FromNative(e)
	}
	return &Array{vs}
}

// WrapSlice creates an array that takes ownership of the given slice
func WrapSlice(elements []Value) *Array {
	return &Array{elements}
}

// Kind returns KindArray
func (a *Array) Kind() Kind {
	return KindArray
}

func (a *Array) String() string {
	return ToText(a)
}

// Len returns the number of elements
func (a *Array) Len() int {
	return len(a.elements)
}

// Get returns the element at the given index or nil if the index is out of range
func (a *Array) Get(index int) Value {
	if index >= 0 && index < len(a.elements) {
		return a.elements[index]
	}
	return nil
}

// Set assigns the element at the given index. The array grows with undefined elements when the
// index is beyond its current length. Negative indexes are ignored.
func (a *Array) Set(index int, v Value) {
	if index < 0 {
		return
	}
	for index >= len(a.elements) {
		a.elements = append(a.elements, nil)
	}
	a.elements[index] = v
}

// Append adds the given values to the end of the array
func (a *Array) Append(vs ...Value) {
	a.elements = append(a.elements, vs...)
}

// Splice removes deleteCount elements starting at start, inserts the given values at that
// position and returns the removed elements. A negative start counts from the end of the array
// and both start and deleteCount are clamped to the array bounds.
func (a *Array) Splice(start, deleteCount int, insert ...Value) []Value {
	n := len(a.elements)
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	} else if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	} else if deleteCount > n-start {
		deleteCount = n - start
	}

	removed := make([]Value, deleteCount)
	copy(removed, a.elements[start:start+deleteCount])

	es := make([]Value, 0, n-deleteCount+len(insert))
	es = append(es, a.elements[:start]...)
	es = append(es, insert...)
	es = append(es, a.elements[start+deleteCount:]...)
	a.elements = es
	return removed
}

// Slice returns a new array holding the elements from start to the end of this array
func (a *Array) Slice(start int) *Array {
	if start < 0 {
		start = 0
	}
	if start >= len(a.elements) {
		return &Array{[]Value{}}
	}
	es := make([]Value, len(a.elements)-start)
	copy(es, a.elements[start:])
	return &Array{es}
}

// Elements returns a copy of the elements
func (a *Array) Elements() []Value {
	es := make([]Value, len(a.elements))
	copy(es, a.elements)
	return es
}

// Each calls the given function once for each element
func (a *Array) Each(f func(index int, v Value)) {
	for i, e := range a.elements {
		f(i, e)
	}
}
