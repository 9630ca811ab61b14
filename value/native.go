package value

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"time"
)

var valueType = reflect.TypeOf((*Value)(nil)).Elem()

// FromNative converts a Go value into a Value. Maps with string keys become *Map, slices and
// arrays become *Array, numbers, bools and strings become their primitive counterparts and
// functions become *Function. A Go nil becomes Null. Anything else is wrapped in an *Opaque.
//
// Go maps are unordered so the keys of a converted map are sorted.
func FromNative(x interface{}) Value {
	switch x := x.(type) {
	case nil:
		return Null
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case int:
		return Number(x)
	case int8:
		return Number(x)
	case int16:
		return Number(x)
	case int32:
		return Number(x)
	case int64:
		return Number(x)
	case uint:
		return Number(x)
	case uint8:
		return Number(x)
	case uint16:
		return Number(x)
	case uint32:
		return Number(x)
	case uint64:
		return Number(x)
	case float32:
		return Number(x)
	case float64:
		return Number(x)
	case time.Time:
		return NewDate(x)
	case *regexp.Regexp:
		return NewRegexp(x)
	case []Value:
		return WrapSlice(x)
	case []interface{}:
		vs := make([]Value, len(x))
		for i, e := range x {
			vs[i] = FromNative(e)
		}
		return WrapSlice(vs)
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := MapWithCapacity(len(keys))
		for _, k := range keys {
			m.Put(k, FromNative(x[k]))
		}
		return m
	case func(args ...Value) Value:
		return NewFunction(x)
	}
	return fromReflected(reflect.ValueOf(x))
}

func fromReflected(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null
		}
		top := rv.Len()
		vs := make([]Value, top)
		for i := 0; i < top; i++ {
			vs[i] = FromNative(rv.Index(i).Interface())
		}
		return WrapSlice(vs)
	case reflect.Map:
		if rv.IsNil() {
			return Null
		}
		keys := rv.MapKeys()
		ks := make([]string, len(keys))
		byName := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			ks[i] = fmt.Sprint(k.Interface())
			byName[ks[i]] = k
		}
		sort.Strings(ks)
		m := MapWithCapacity(len(ks))
		for _, k := range ks {
			m.Put(k, FromNative(rv.MapIndex(byName[k]).Interface()))
		}
		return m
	case reflect.Func:
		if rv.IsNil() {
			return Null
		}
		return NewFunction(reflectedCall(rv))
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return String(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	}
	return NewOpaque(rv.Interface())
}

// reflectedCall adapts an arbitrary Go function to the Function signature. Arguments are converted
// using ToNative and must be assignable to the parameter types. The function panics when they are not.
func reflectedCall(fv reflect.Value) func(args ...Value) Value {
	ft := fv.Type()
	return func(args ...Value) Value {
		top := ft.NumIn()
		in := make([]reflect.Value, 0, len(args))
		for i, a := range args {
			var pt reflect.Type
			switch {
			case ft.IsVariadic() && i >= top-1:
				pt = ft.In(top - 1).Elem()
			case i < top:
				pt = ft.In(i)
			default:
				continue
			}
			in = append(in, argumentFor(pt, a))
		}
		for len(in) < top && !(ft.IsVariadic() && len(in) == top-1) {
			in = append(in, reflect.Zero(ft.In(len(in))))
		}
		out := fv.Call(in)
		if len(out) == 0 {
			return nil
		}
		return FromNative(out[0].Interface())
	}
}

func argumentFor(pt reflect.Type, a Value) reflect.Value {
	if pt == valueType {
		if a == nil {
			return reflect.Zero(pt)
		}
		return reflect.ValueOf(a)
	}
	n := ToNative(a)
	if n == nil {
		return reflect.Zero(pt)
	}
	av := reflect.ValueOf(n)
	if av.Type().AssignableTo(pt) {
		return av
	}
	if av.Type().ConvertibleTo(pt) {
		return av.Convert(pt)
	}
	panic(fmt.Errorf(`cannot use %s as %s in function argument`, av.Type(), pt))
}

// ToNative converts a Value into plain Go data. Maps become map[string]interface{}, arrays become
// []interface{}, numbers become float64 and both Null and undefined become nil. References that
// lead back into a container that is being converted are cut and become nil.
func ToNative(v Value) interface{} {
	return toNative(v, make(map[Value]bool))
}

func toNative(v Value, inProgress map[Value]bool) interface{} {
	switch v := v.(type) {
	case nil, nullValue:
		return nil
	case Bool:
		return bool(v)
	case Number:
		return float64(v)
	case String:
		return string(v)
	case *Array:
		if inProgress[v] {
			return nil
		}
		inProgress[v] = true
		es := make([]interface{}, len(v.elements))
		for i, e := range v.elements {
			es[i] = toNative(e, inProgress)
		}
		delete(inProgress, v)
		return es
	case *Map:
		if inProgress[v] {
			return nil
		}
		inProgress[v] = true
		m := make(map[string]interface{}, v.Len())
		v.EachEntry(func(k string, e Value) {
			m[k] = toNative(e, inProgress)
		})
		delete(inProgress, v)
		return m
	case *Function:
		return v.fn
	case *Date:
		return v.t
	case *Regexp:
		return v.re
	case *Opaque:
		return v.v
	}
	return v
}
