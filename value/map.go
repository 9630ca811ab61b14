package value

// Map is a mutable string keyed map that retains the insertion order of its keys. A Map is
// what other languages call a plain object. The zero value is an empty map ready to use.
type Map struct {
	keys    []string
	entries map[string]Value
}

// NewMap creates a map from the given key, value pairs. Each key must be a string and each value
// is converted using FromNative.
func NewMap(kv ...interface{}) *Map {
	m := MapWithCapacity(len(kv) / 2)
	for i := 0; i+1 < len(kv); i += 2 {
		m.Put(kv[i].(string), FromNative(kv[i+1]))
	}
	return m
}

// MapWithCapacity creates an empty map with the given initial capacity
func MapWithCapacity(capacity int) *Map {
	return &Map{keys: make([]string, 0, capacity), entries: make(map[string]Value, capacity)}
}

// Kind returns KindMap
func (m *Map) Kind() Kind {
	return KindMap
}

func (m *Map) String() string {
	return ToText(m)
}

// Len returns the number of entries
func (m *Map) Len() int {
	return len(m.keys)
}

// Get returns the value stored under the given key and true, or nil and false when no such key
// exists. A key may be present and hold an undefined (nil) value.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// ContainsKey returns true if the map has an entry for the given key
func (m *Map) ContainsKey(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Put stores a value under the given key. New keys are appended to the key order.
func (m *Map) Put(key string, v Value) {
	if m.entries == nil {
		m.entries = make(map[string]Value)
	}
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

// Remove deletes the entry for the given key and returns the value that it held
func (m *Map) Remove(key string) Value {
	v, ok := m.entries[key]
	if !ok {
		return nil
	}
	delete(m.entries, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return v
}

// Keys returns a copy of the keys in insertion order
func (m *Map) Keys() []string {
	ks := make([]string, len(m.keys))
	copy(ks, m.keys)
	return ks
}

// Values returns the values in key insertion order
func (m *Map) Values() []Value {
	vs := make([]Value, len(m.keys))
	for i, k := range m.keys {
		vs[i] = m.entries[k]
	}
	return vs
}

// EachEntry calls the given function once for each entry in key insertion order. The function
// must not add or remove keys.
func (m *Map) EachEntry(f func(key string, v Value)) {
	for _, k := range m.keys {
		f(k, m.entries[k])
	}
}
