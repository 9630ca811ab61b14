// Package provider reads the YAML, JSON, and TOML documents that the devutils commands operate on
package provider

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar"
	"github.com/hashicorp/go-hclog"
	"github.com/modil-io/devutils/api"
	"github.com/modil-io/devutils/value"
	"github.com/pkg/errors"
)

// The document formats
const (
	YAML = `yaml`
	JSON = `json`
	TOML = `toml`
)

// Stdin is read when Load is called with api.Stdin
var Stdin io.Reader = os.Stdin

// FormatOf returns the document format that corresponds to the extension of the given path. Paths
// without a known extension, standard input included, are YAML, which also covers JSON.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case `.json`:
		return JSON
	case `.toml`:
		return TOML
	default:
		return YAML
	}
}

// Load reads the document at the given path and returns it as a Map. The path api.Stdin denotes
// standard input. An empty Map is returned when the file does not exist, and an error is returned
// when the document is not a map.
func Load(path string) (*value.Map, error) {
	if path == api.Stdin {
		return Read(path, Stdin, YAML)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			hclog.Default().Debug(`data file not found`, `path`, path)
			return value.NewMap(), nil
		}
		return nil, errors.Wrapf(err, `unable to open '%s'`, path)
	}
	defer f.Close()
	return Read(path, f, FormatOf(path))
}

// Read reads a document of the given format from r. The path is used in error messages.
func Read(path string, r io.Reader, format string) (*value.Map, error) {
	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, `unable to read '%s'`, path)
	}

	var v value.Value
	switch format {
	case YAML, JSON:
		v, err = value.FromYAML(bs)
	case TOML:
		v, err = fromTOML(bs)
	default:
		return nil, api.UnsupportedFormat(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, `unable to parse '%s'`, path)
	}
	switch v := v.(type) {
	case *value.Map:
		return v, nil
	case nil:
		return value.NewMap(), nil
	}
	if v == value.Null {
		return value.NewMap(), nil
	}
	return nil, api.NotAMap(path)
}

// Expand returns the paths of all files that match the given patterns. A pattern may use the
// ** wildcard to match any number of directories. Patterns without wildcards, and api.Stdin, are
// returned as is. The matches of each pattern are sorted.
func Expand(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		if p == api.Stdin || !strings.ContainsAny(p, `*?[{`) {
			paths = append(paths, p)
			continue
		}
		matches, err := doublestar.Glob(p)
		if err != nil {
			return nil, errors.Wrapf(err, `invalid pattern '%s'`, p)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// fromTOML decodes the given TOML document. Keys are kept in the order they appear in the
// document.
func fromTOML(bs []byte) (value.Value, error) {
	data := make(map[string]interface{})
	md, err := toml.Decode(string(bs), &data)
	if err != nil {
		return nil, err
	}
	order := make(map[string][]string)
	for _, k := range md.Keys() {
		parent := strings.Join(k[:len(k)-1], "\x00")
		order[parent] = append(order[parent], k[len(k)-1])
	}
	return tomlValue(data, nil, order), nil
}

func tomlValue(x interface{}, path []string, order map[string][]string) value.Value {
	switch x := x.(type) {
	case map[string]interface{}:
		m := value.MapWithCapacity(len(x))
		for _, k := range order[strings.Join(path, "\x00")] {
			if v, ok := x[k]; ok && !m.ContainsKey(k) {
				m.Put(k, tomlValue(v, append(path[:len(path):len(path)], k), order))
			}
		}
		if m.Len() < len(x) {
			rest := make([]string, 0, len(x)-m.Len())
			for k := range x {
				if !m.ContainsKey(k) {
					rest = append(rest, k)
				}
			}
			sort.Strings(rest)
			for _, k := range rest {
				m.Put(k, tomlValue(x[k], append(path[:len(path):len(path)], k), order))
			}
		}
		return m
	case []map[string]interface{}:
		es := make([]value.Value, len(x))
		for i, e := range x {
			es[i] = tomlValue(e, path, order)
		}
		return value.WrapSlice(es)
	case []interface{}:
		es := make([]value.Value, len(x))
		for i, e := range x {
			es[i] = tomlValue(e, path, order)
		}
		return value.WrapSlice(es)
	}
	return value.FromNative(x)
}
