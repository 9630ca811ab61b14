// Package tool contains the functions that the devutils CLI and REST server use to apply the devutils
// helpers to documents.
package tool

import (
	"io"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/modil-io/devutils/api"
	"github.com/modil-io/devutils/config"
	"github.com/modil-io/devutils/lang"
	"github.com/modil-io/devutils/merge"
	"github.com/modil-io/devutils/provider"
	"github.com/modil-io/devutils/regexputil"
	"github.com/modil-io/devutils/render"
	"github.com/modil-io/devutils/stringutil"
	"github.com/modil-io/devutils/value"
	"github.com/pkg/errors"
)

// A CommandOptions contains the options given to a CLI command or a REST invocation.
type CommandOptions struct {
	// Merge selects the merge options
	Merge config.MergeConfig

	// RenderAs is the name of the desired rendering
	RenderAs string

	// Diff should be set to true to render a diff between the first document and the merge result
	Diff bool

	// Patch should be set to true to render a JSON merge patch that transforms the first document into
	// the merge result
	Patch bool

	// Color forces colored diff output. When false, colors are used when the output is a terminal.
	Color bool

	// VarPaths are optional paths to files containing variables
	VarPaths []string

	// Variables are optional key:value or key=value strings
	Variables []string
}

// varSplit splits on either ':' or '=' but not on '::', ':=', '=:' or '=='
var varSplit = regexp.MustCompile(`\A(.*?[^:=])[:=]([^:=].*)\z`)
var needParsePrefix = []string{`{`, `[`, `"`, `'`}

// MergeAndRender loads the documents at the given paths and merges them, in order, into the first
// document. The result is rendered on out in accordance with the RenderAs, Diff, and Patch options.
func MergeAndRender(opts *CommandOptions, paths []string, out io.Writer) error {
	mo, err := opts.Merge.Options()
	if err != nil {
		return err
	}
	if paths, err = provider.Expand(paths); err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New(`no documents to merge`)
	}

	docs := make([]value.Value, len(paths))
	for i, p := range paths {
		m, err := provider.Load(p)
		if err != nil {
			return err
		}
		docs[i] = m
	}

	target := docs[0]
	before := value.CloneDeep(target)
	hclog.Default().Debug(`merging documents`, `count`, len(docs), `strategy`, mo.Label())
	merge.All(target, mo, docs[1:]...)

	switch {
	case opts.Patch:
		patch, err := render.Patch(before, target)
		if err != nil {
			return err
		}
		_, err = out.Write(append(patch, '\n'))
		return err
	case opts.Diff:
		return render.Diff(before, target, out, opts.Color || render.UseColor(out))
	}
	return render.Render(renderName(opts.RenderAs, render.YAML), target, out)
}

// InterpolateAndRender interpolates the given template using the variables that are given in the
// command options and renders the result on out.
func InterpolateAndRender(opts *CommandOptions, template string, out io.Writer) error {
	scope, err := CreateScope(opts)
	if err != nil {
		return err
	}
	s, err := stringutil.Interpolate(value.String(template), scope)
	if err != nil {
		return err
	}
	return render.Render(renderName(opts.RenderAs, render.Text), s, out)
}

// QueryAndRender loads the document at the given path and renders the value found at the given
// query path on out. False is returned when no value was found.
func QueryAndRender(opts *CommandOptions, path, query string, out io.Writer) (bool, error) {
	doc, err := provider.Load(path)
	if err != nil {
		return false, err
	}
	if _, err = lang.ParsePath(query); err != nil {
		return false, err
	}
	found := lang.Query(doc, value.String(query))
	if found == nil {
		return false, nil
	}
	return true, render.Render(renderName(opts.RenderAs, render.YAML), found, out)
}

// ResolvePattern returns the registered pattern when patternOrName is the name of a registered
// pattern. Otherwise, patternOrName is returned.
func ResolvePattern(patternOrName string) string {
	if p, ok := regexputil.GetRegexp(patternOrName); ok {
		return p
	}
	return patternOrName
}

// CreateScope creates a Map of variables from the Variables and VarPaths options. Entries read from
// VarPaths take precedence.
func CreateScope(opts *CommandOptions) (*value.Map, error) {
	scope := value.NewMap()
	for _, e := range opts.Variables {
		m := varSplit.FindStringSubmatch(e)
		if m == nil {
			return nil, api.UnparsableVariable(e)
		}
		v, err := parseCommandLineValue(m[2])
		if err != nil {
			return nil, err
		}
		scope.Put(strings.TrimSpace(m[1]), v)
	}

	paths, err := provider.Expand(opts.VarPaths)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		vars, err := provider.Load(p)
		if err != nil {
			return nil, err
		}
		vars.EachEntry(scope.Put)
	}
	return scope, nil
}

func parseCommandLineValue(vs string) (value.Value, error) {
	vs = strings.TrimSpace(vs)
	for _, pfx := range needParsePrefix {
		if strings.HasPrefix(vs, pfx) {
			v, err := value.FromYAML([]byte(vs))
			if err != nil {
				return nil, errors.Wrapf(err, `unable to parse value '%s'`, vs)
			}
			return v, nil
		}
	}
	return value.String(vs), nil
}

func renderName(n string, dflt render.Name) render.Name {
	if n == `` {
		return dflt
	}
	return render.Name(n)
}
