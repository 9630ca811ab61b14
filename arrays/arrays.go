// Package arrays contains helpers that manipulate arrays in place
package arrays

import (
	"math"

	"github.com/modil-io/devutils/value"
)

// NoEnd can be passed as the end index to RemoveAndInsert to insert without removing anything
const NoEnd = -1

// Merge appends all elements of from to the end of to. Nothing happens when to is not an array
// and nothing is appended when from is not an array.
func Merge(to, from value.Value) {
	if a, ok := to.(*value.Array); ok {
		RemoveAndInsert(a, a.Len(), NoEnd, from)
	}
}

// RemoveAt removes the element at the given index. Nothing happens when arr is not an array or
// when the index is out of range.
func RemoveAt(arr value.Value, index int) {
	if a, ok := arr.(*value.Array); ok && index >= 0 && index < a.Len() {
		a.Splice(index, 1)
	}
}

// RemoveAndInsert removes the elements from startIndex to endIndex, both inclusive, and inserts the
// elements of insertArr at startIndex. Nothing is removed when endIndex is less than startIndex.
// A non-array insertArr counts as an empty array. Nothing happens when arr is not an array or
// when startIndex is negative. Removal stops at the end of the array and a startIndex beyond the end
// of the array appends.
func RemoveAndInsert(arr value.Value, startIndex, endIndex int, insertArr value.Value) {
	a, ok := arr.(*value.Array)
	if !ok || startIndex < 0 {
		return
	}
	numItems := 0
	if endIndex >= startIndex {
		numItems = endIndex - startIndex + 1
	}
	var insert []value.Value
	if ia, ok := insertArr.(*value.Array); ok {
		insert = ia.Elements()
	}
	a.Splice(startIndex, numItems, insert...)
}

// Uniq returns a new array with the elements of arr where only the first occurrence of each
// element is kept. Primitives are equal when their values are equal (NaN equals NaN) while arrays,
// maps, functions and opaque values are equal only when they are the same instance. An empty array
// is returned when arr is not an array.
func Uniq(arr value.Value) *value.Array {
	a, ok := arr.(*value.Array)
	if !ok {
		return value.WrapSlice([]value.Value{})
	}
	seen := make(map[value.Value]bool, a.Len())
	seenNaN := false
	es := make([]value.Value, 0, a.Len())
	a.Each(func(_ int, e value.Value) {
		if n, ok := e.(value.Number); ok && math.IsNaN(float64(n)) {
			if seenNaN {
				return
			}
			seenNaN = true
		} else {
			if seen[e] {
				return
			}
			seen[e] = true
		}
		es = append(es, e)
	})
	return value.WrapSlice(es)
}

// StrictEquals compares two values the way strict equality does. Primitives are compared by
// value, NaN is not equal to anything and all other values are compared by identity.
func StrictEquals(a, b value.Value) bool {
	if n, ok := a.(value.Number); ok && math.IsNaN(float64(n)) {
		return false
	}
	return a == b
}

// IndexOf returns the index of the first element in arr, at or after fromIndex, that is equal to
// searchElement. Equality is determined by isEqual or by StrictEquals when isEqual is nil. A negative
// fromIndex is treated as zero. -1 is returned when nothing is found or when arr is not an array.
func IndexOf(arr value.Value, searchElement value.Value, fromIndex int, isEqual func(a, b value.Value) bool) int {
	a, ok := arr.(*value.Array)
	if !ok {
		return -1
	}
	if fromIndex < 0 {
		fromIndex = 0
	}
	if isEqual == nil {
		isEqual = StrictEquals
	}
	for i := fromIndex; i < a.Len(); i++ {
		if isEqual(a.Get(i), searchElement) {
			return i
		}
	}
	return -1
}
