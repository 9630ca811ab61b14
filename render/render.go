// Package render writes values as YAML, JSON, or text, and shows how a value changed
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/modil-io/devutils/api"
	"github.com/modil-io/devutils/value"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Name is the name of the option value that describes how to render output
type Name string

const (
	// YAML render output in YAML
	YAML = Name(api.YAML)
	// JSON render output in JSON
	JSON = Name(api.JSON)
	// Text render output as plain text
	Text = Name(api.Text)
)

// Render renders a value on a writer using a specified Name
func Render(renderAs Name, v value.Value, out io.Writer) error {
	switch renderAs {
	case JSON:
		if v == nil {
			_, err := io.WriteString(out, "null\n")
			return err
		}
		bs, err := value.ToJSON(v)
		if err != nil {
			return err
		}
		_, err = out.Write(append(bs, '\n'))
		return err
	case YAML:
		if v == nil || v == value.Null {
			_, err := io.WriteString(out, "\n")
			return err
		}
		bs, err := value.ToYAML(v)
		if err != nil {
			return err
		}
		_, err = out.Write(bs)
		return err
	case Text:
		_, err := fmt.Fprintln(out, value.ToText(v))
		return err
	default:
		return api.UnknownRendering(string(renderAs))
	}
}

// UseColor returns true when out is a terminal
func UseColor(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Diff writes a line by line diff of the YAML renderings of before and after. Removed lines are
// prefixed with "- " and added lines with "+ ". Lines are colored red and green when colored is true.
func Diff(before, after value.Value, out io.Writer, colored bool) error {
	bt, err := yamlText(before)
	if err != nil {
		return err
	}
	at, err := yamlText(after)
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	bc, ac, lines := dmp.DiffLinesToChars(bt, at)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(bc, ac, false), lines)

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	equal := color.New(color.Reset)
	for _, c := range []*color.Color{added, removed, equal} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range diffs {
		var prefix string
		c := equal
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, c = `+ `, added
		case diffmatchpatch.DiffDelete:
			prefix, c = `- `, removed
		default:
			prefix = `  `
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == `` {
				continue
			}
			if _, err = io.WriteString(out, c.Sprint(prefix+strings.TrimSuffix(line, "\n"))+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Patch returns the RFC 7386 JSON merge patch that transforms before into after
func Patch(before, after value.Value) ([]byte, error) {
	bj, err := value.ToJSON(before)
	if err != nil {
		return nil, err
	}
	aj, err := value.ToJSON(after)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(bj, aj)
	if err != nil {
		return nil, errors.Wrap(err, `unable to create merge patch`)
	}
	return patch, nil
}

func yamlText(v value.Value) (string, error) {
	if v == nil {
		return ``, nil
	}
	bs, err := value.ToYAML(v)
	if err != nil {
		return ``, err
	}
	return string(bs), nil
}
