// Package regexputil contains a registry of commonly used regular expressions
package regexputil

import (
	"regexp"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/modil-io/devutils/value"
)

// registry is initialized once and never modified
var registry = map[string]string{
	`date`:       `^(0[1-9]|1[012])[- /.](0[1-9]|[12][0-9]|3[01])[- /.](19|20)\d\d$`,
	`time`:       `^(1[0-2]|0[1-9]):[0-5][0-9]s(AM|am|PM|pm)$`,
	`email`:      `^([a-zA-Z0-9_\-.]+)@(([[0-9]{1,3}.[0-9]{1,3}.[0-9]{1,3}.)|(([a-zA-Z0-9-]+.)+))([a-zA-Z]{2,4}|[0-9]{1,3})(]?)$$`,
	`phone`:      `^\d{3}[-]\d{3}[-]\d{4}$`,
	`extension`:  `^\d{5}$`,
	`zip5`:       `^\d{5}$`,
	`zip4`:       `^\d{4}$`,
	`percentage`: `^0$|^[1-9][0-9]?$|^100$`,
}

// GetRegexp returns the pattern registered under the given name
func GetRegexp(name string) (string, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns the sorted names of all registered patterns
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Test returns true if the given pattern matches the string form of text. False is returned when
// text is Null and when the pattern cannot be compiled. An undefined text is tested as the string
// "undefined".
func Test(pattern string, text value.Value) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		hclog.Default().Error(`invalid regular expression`, `pattern`, pattern, `error`, err.Error())
		return false
	}
	if text == value.Null {
		return false
	}
	return re.MatchString(value.ToText(text))
}
