// Package api contains constants and error constructors that are used throughout the devutils code base
package api

// ConfigFileName is the name of the optional configuration file that is read from the current working directory
const ConfigFileName = `.devutils.yaml`

// Stdin is the file name that denotes standard input
const Stdin = `-`

// The names of the renderings that the CLI and the REST server can produce
const (
	YAML = `yaml`
	JSON = `json`
	Text = `s`
)
