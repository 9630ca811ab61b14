package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// ToJSON renders the given value as JSON. Map entries with undefined or function values are
// omitted, the same values in arrays become null, and so do NaN and infinite numbers. Containers
// that refer back to themselves yield an error.
func ToJSON(v Value) ([]byte, error) {
	b := &bytes.Buffer{}
	if err := writeJSON(b, v, make(map[Value]bool)); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func omittedInJSON(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(*Function)
	return ok
}

func writeJSON(b *bytes.Buffer, v Value, inProgress map[Value]bool) error {
	switch v := v.(type) {
	case nil, nullValue, *Function:
		b.WriteString(`null`)
	case Bool:
		b.WriteString(v.String())
	case Number:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			b.WriteString(`null`)
		} else {
			b.WriteString(formatNumber(f))
		}
	case String:
		return writeJSONString(b, string(v))
	case *Date:
		return writeJSONString(b, v.String())
	case *Regexp:
		b.WriteString(`{}`)
	case *Opaque:
		bs, err := json.Marshal(v.v)
		if err != nil {
			return err
		}
		b.Write(bs)
	case *Array:
		if inProgress[v] {
			return fmt.Errorf(`converting circular structure to JSON`)
		}
		inProgress[v] = true
		b.WriteByte('[')
		for i, e := range v.elements {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, e, inProgress); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		delete(inProgress, v)
	case *Map:
		if inProgress[v] {
			return fmt.Errorf(`converting circular structure to JSON`)
		}
		inProgress[v] = true
		b.WriteByte('{')
		first := true
		for _, k := range v.keys {
			e := v.entries[k]
			if omittedInJSON(e) {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			if err := writeJSONString(b, k); err != nil {
				return err
			}
			b.WriteByte(':')
			if err := writeJSON(b, e, inProgress); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		delete(inProgress, v)
	}
	return nil
}

func writeJSONString(b *bytes.Buffer, s string) error {
	bs, err := json.Marshal(s)
	if err != nil {
		return err
	}
	b.Write(bs)
	return nil
}

// MarshalJSON renders the map as a JSON object with keys in insertion order
func (m *Map) MarshalJSON() ([]byte, error) {
	return ToJSON(m)
}

// UnmarshalJSON replaces the contents of the map with the given JSON object
func (m *Map) UnmarshalJSON(data []byte) error {
	v, err := FromJSON(data)
	if err != nil {
		return err
	}
	src, ok := v.(*Map)
	if !ok {
		return fmt.Errorf(`expected a JSON object but got %s`, v.Kind())
	}
	*m = *src
	return nil
}

// MarshalJSON renders the array as a JSON array
func (a *Array) MarshalJSON() ([]byte, error) {
	return ToJSON(a)
}

// UnmarshalJSON replaces the contents of the array with the given JSON array
func (a *Array) UnmarshalJSON(data []byte) error {
	v, err := FromJSON(data)
	if err != nil {
		return err
	}
	src, ok := v.(*Array)
	if !ok {
		return fmt.Errorf(`expected a JSON array but got %s`, v.Kind())
	}
	*a = *src
	return nil
}
