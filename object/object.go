// Package object contains helpers that inspect plain objects, i.e. maps.
package object

import (
	"github.com/modil-io/devutils/lang"
	"github.com/modil-io/devutils/value"
)

// Keys returns the keys of the given map in insertion order. An empty slice is returned when obj
// is not a map.
func Keys(obj value.Value) []string {
	if m, ok := obj.(*value.Map); ok {
		return m.Keys()
	}
	return []string{}
}

// Values returns the values of the given map in key insertion order. An empty slice is returned
// when obj is not a map.
func Values(obj value.Value) []value.Value {
	if m, ok := obj.(*value.Map); ok {
		return m.Values()
	}
	return []value.Value{}
}

// ContainsKey returns true if obj is a map that contains the given key
func ContainsKey(obj value.Value, key string) bool {
	if m, ok := obj.(*value.Map); ok {
		return m.ContainsKey(key)
	}
	return false
}

// GetValue returns the value stored under key in obj. The defaultValue is returned when obj is not
// a map or has no such key, and Null is returned in that case when defaultValue is undefined.
func GetValue(obj value.Value, key string, defaultValue value.Value) value.Value {
	if m, ok := obj.(*value.Map); ok {
		if v, ok := m.Get(key); ok {
			return v
		}
	}
	if defaultValue == nil {
		return value.Null
	}
	return defaultValue
}

// IsPlainObjectArray returns true if v is an array where all elements are maps. When recursive is
// true, elements may also be arrays that satisfy the same condition. An empty array is a plain
// object array.
func IsPlainObjectArray(v value.Value, recursive bool) bool {
	a, ok := v.(*value.Array)
	if !ok {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		e := a.Get(i)
		if !lang.IsPlainObject(e) && (!recursive || !IsPlainObjectArray(e, recursive)) {
			return false
		}
	}
	return true
}
