// Package merge contains the structural merge that folds one map into another
package merge

import (
	"github.com/modil-io/devutils/arrays"
	"github.com/modil-io/devutils/lang"
	"github.com/modil-io/devutils/object"
	"github.com/modil-io/devutils/value"
)

// Options control how Merge combines the entries of the source with the entries of the target
type Options struct {
	// Recursive enables merging of nested maps and nested arrays of maps. When false, only the
	// entries of the top level maps are considered.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// NotOverride preserves an entry that already exists in the target.
	NotOverride bool `json:"notOverride" yaml:"notOverride"`

	// IgnoreNull makes NotOverride treat a falsy target entry as absent.
	IgnoreNull bool `json:"ignoreNull" yaml:"ignoreNull"`

	// ExtendObjectArray appends the source array to the target array instead of merging the
	// arrays index by index when both are arrays of maps.
	ExtendObjectArray bool `json:"extendObjectArray" yaml:"extendObjectArray"`
}

// Merge folds the entries of source into target. The target is modified in place and the source
// is never modified. Object like values from the source are deep copied before they are assigned
// so that target and source share no mutable structure once the merge is done.
//
// The call is a no-op unless both target and source are maps.
func Merge(target, source value.Value, opts Options) {
	tm, ok := target.(*value.Map)
	if !ok {
		return
	}
	sm, ok := source.(*value.Map)
	if !ok {
		return
	}
	opts.mergeMaps(tm, sm)
}

// All merges each of the given sources into target in order
func All(target value.Value, opts Options, sources ...value.Value) {
	for _, source := range sources {
		Merge(target, source, opts)
	}
}

func (o *Options) mergeMaps(target, source *value.Map) {
	for _, key := range source.Keys() {
		sv, _ := source.Get(key)
		tv, _ := target.Get(key)

		if o.Recursive {
			if tm, ok := tv.(*value.Map); ok {
				if sm, ok := sv.(*value.Map); ok {
					o.mergeMaps(tm, sm)
					continue
				}
			}
			if object.IsPlainObjectArray(tv, false) && object.IsPlainObjectArray(sv, false) {
				o.mergeArrays(tv.(*value.Array), sv.(*value.Array))
				continue
			}
		}

		if !o.NotOverride || !target.ContainsKey(key) || (o.IgnoreNull && !value.Truthy(tv)) {
			if lang.IsObjectLike(sv) {
				sv = value.CloneDeep(sv)
			}
			target.Put(key, sv)
		}
	}
}

func (o *Options) mergeArrays(target, source *value.Array) {
	if o.ExtendObjectArray {
		arrays.Merge(target, value.CloneDeep(source))
		return
	}
	top := target.Len()
	for i := 0; i < top; i++ {
		if tm, ok := target.Get(i).(*value.Map); ok {
			if sm, ok := source.Get(i).(*value.Map); ok {
				o.mergeMaps(tm, sm)
			}
		}
	}
	arrays.Merge(target, value.CloneDeep(source.Slice(top)))
}
