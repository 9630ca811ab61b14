package merge

import (
	"github.com/modil-io/devutils/api"
)

// The names of the merge strategies
const (
	Shallow  = `shallow`
	Deep     = `deep`
	Defaults = `defaults`
	Fill     = `fill`
	Extend   = `extend`
)

var strategies = []struct {
	name  string
	label string
	opts  Options
}{
	{Shallow, `shallow merge strategy`, Options{}},
	{Deep, `deep merge strategy`, Options{Recursive: true}},
	{Defaults, `defaults merge strategy`, Options{Recursive: true, NotOverride: true}},
	{Fill, `fill merge strategy`, Options{Recursive: true, NotOverride: true, IgnoreNull: true}},
	{Extend, `extend merge strategy`, Options{Recursive: true, ExtendObjectArray: true}},
}

// GetStrategy returns the Options that corresponds to the given strategy name.
func GetStrategy(n string) (Options, error) {
	for _, s := range strategies {
		if s.name == n {
			return s.opts, nil
		}
	}
	return Options{}, api.UnknownStrategy(n)
}

// StrategyNames returns the names of all strategies
func StrategyNames() []string {
	ns := make([]string, len(strategies))
	for i, s := range strategies {
		ns[i] = s.name
	}
	return ns
}

// Name returns the name of the strategy that these options correspond to or an empty string
// when there is no such strategy.
func (o Options) Name() string {
	for _, s := range strategies {
		if s.opts == o {
			return s.name
		}
	}
	return ``
}

// Label returns a short descriptive label of these options
func (o Options) Label() string {
	for _, s := range strategies {
		if s.opts == o {
			return s.label
		}
	}
	return `custom merge strategy`
}
