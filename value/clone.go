package value

// Clone returns a shallow copy of the given value. Arrays, maps and dates are copied. All
// other values are returned as is.
func Clone(v Value) Value {
	switch v := v.(type) {
	case *Array:
		return &Array{v.Elements()}
	case *Map:
		c := MapWithCapacity(v.Len())
		v.EachEntry(c.Put)
		return c
	case *Date:
		return NewDate(v.t)
	}
	return v
}

// CloneDeep returns a copy of the given value that shares no mutable structure with the original.
// Arrays, maps and dates are copied recursively. A container that is reachable more than once from
// the given value is copied once, so shared references and cycles within the graph are retained in
// the copy. Functions, regular expressions and opaque values are immutable from the perspective of
// this package and are returned as is.
func CloneDeep(v Value) Value {
	return cloneDeep(v, make(map[Value]Value))
}

func cloneDeep(v Value, copies map[Value]Value) Value {
	switch v := v.(type) {
	case *Array:
		if c, ok := copies[v]; ok {
			return c
		}
		c := &Array{make([]Value, len(v.elements))}
		copies[v] = c
		for i, e := range v.elements {
			c.elements[i] = cloneDeep(e, copies)
		}
		return c
	case *Map:
		if c, ok := copies[v]; ok {
			return c
		}
		c := MapWithCapacity(v.Len())
		copies[v] = c
		v.EachEntry(func(k string, e Value) {
			c.Put(k, cloneDeep(e, copies))
		})
		return c
	case *Date:
		if c, ok := copies[v]; ok {
			return c
		}
		c := NewDate(v.t)
		copies[v] = c
		return c
	}
	return v
}
