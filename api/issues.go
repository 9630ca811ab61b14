package api

import (
	"fmt"
)

// NotAMap creates an error with a descriptive text and returns it.
func NotAMap(path string) error {
	return fmt.Errorf(`file '%s' does not contain a YAML, JSON, or TOML map`, path)
}

// UnknownStrategy creates an error with a descriptive text and returns it.
func UnknownStrategy(name string) error {
	return fmt.Errorf(`unknown merge strategy '%s'`, name)
}

// UnknownRendering creates an error with a descriptive text and returns it.
func UnknownRendering(name string) error {
	return fmt.Errorf(`unknown rendering '%s'`, name)
}

// UnparsableVariable creates an error with a descriptive text and returns it.
func UnparsableVariable(s string) error {
	return fmt.Errorf(`unable to parse variable '%s'`, s)
}

// UnknownRegexp creates an error with a descriptive text and returns it.
func UnknownRegexp(name string) error {
	return fmt.Errorf(`no regular expression is registered under the name '%s'`, name)
}

// UnsupportedFormat creates an error with a descriptive text and returns it.
func UnsupportedFormat(path string) error {
	return fmt.Errorf(`file '%s' has an unsupported format, expected .yaml, .yml, .json, or .toml`, path)
}
