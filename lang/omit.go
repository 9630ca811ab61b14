package lang

import "github.com/modil-io/devutils/value"

// OmitDeep returns a deep copy of x where entries with any of the given keys have been removed
// from every map in the graph, including maps nested in arrays.
func OmitDeep(x value.Value, keys ...string) value.Value {
	c := value.CloneDeep(x)
	if len(keys) == 0 {
		return c
	}
	omit := make(map[string]bool, len(keys))
	for _, k := range keys {
		omit[k] = true
	}
	omitIn(c, omit, make(map[value.Value]bool))
	return c
}

func omitIn(x value.Value, omit map[string]bool, seen map[value.Value]bool) {
	switch x := x.(type) {
	case *value.Map:
		if seen[x] {
			return
		}
		seen[x] = true
		for _, k := range x.Keys() {
			if omit[k] {
				x.Remove(k)
				continue
			}
			v, _ := x.Get(k)
			omitIn(v, omit, seen)
		}
	case *value.Array:
		if seen[x] {
			return
		}
		seen[x] = true
		x.Each(func(_ int, e value.Value) {
			omitIn(e, omit, seen)
		})
	}
}
