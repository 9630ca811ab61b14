// Package stringutil contains the string template interpolation
package stringutil

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
	"github.com/modil-io/devutils/lang"
	"github.com/modil-io/devutils/value"
	"github.com/pkg/errors"
)

// UndefinedReferenceError is returned when a placeholder refers to a name that is not present in
// the parameters.
type UndefinedReferenceError struct {
	Name string
}

func (e *UndefinedReferenceError) Error() string {
	return e.Name + ` is not defined`
}

// DefaultCacheSize is the number of compiled expressions that an Interpolator created with
// NewInterpolator keeps
const DefaultCacheSize = 512

// Interpolator replaces ${expression} placeholders in templates. The compiled form of each
// expression is cached, and an Interpolator is safe for concurrent use.
type Interpolator struct {
	lock     sync.RWMutex
	limit    int
	programs map[string]*vm.Program
	order    []string
}

type segment struct {
	text   string
	isExpr bool
}

var identifier = regexp.MustCompile(`\A\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\z`)

var defaultInterpolator = NewInterpolator()

// NewInterpolator creates a new Interpolator that caches up to DefaultCacheSize compiled expressions
func NewInterpolator() *Interpolator {
	return NewInterpolatorWithLimit(DefaultCacheSize)
}

// NewInterpolatorWithLimit creates a new Interpolator that caches up to limit compiled expressions.
// The oldest expression is evicted when the cache is full.
func NewInterpolatorWithLimit(limit int) *Interpolator {
	if limit < 1 {
		limit = 1
	}
	return &Interpolator{limit: limit, programs: make(map[string]*vm.Program, limit)}
}

// Len returns the number of compiled expressions in the cache
func (ip *Interpolator) Len() int {
	ip.lock.RLock()
	defer ip.lock.RUnlock()
	return len(ip.programs)
}

// Interpolate replaces all ${expression} placeholders in the given template using the default
// Interpolator.
//
// Null is returned when the template is not a String and the template is returned unchanged when
// params is not a Map.
func Interpolate(template, params value.Value) (value.Value, error) {
	return defaultInterpolator.Interpolate(template, params)
}

// Interpolate replaces all ${expression} placeholders in the given template. Each expression is
// evaluated with the entries of params as variables and the result is converted to a string. A
// placeholder can be escaped with a backslash, i.e. \${ is rendered as ${.
//
// A placeholder that consists of a single name is looked up directly in params, so a parameter can
// be named like an expression keyword or builtin function. Parameters also take precedence over
// builtin functions inside expressions.
//
// Entries of params with number like keys and entries with undefined, function, or opaque values are
// not available as variables. An *UndefinedReferenceError is returned when an expression refers to a
// name that is not available.
func (ip *Interpolator) Interpolate(template, params value.Value) (value.Value, error) {
	ts, ok := template.(value.String)
	if !ok {
		return value.Null, nil
	}
	pm, ok := params.(*value.Map)
	if !ok {
		return template, nil
	}

	segments, err := splitTemplate(string(ts))
	if err != nil {
		return nil, err
	}
	filtered := filterParams(pm)
	var vars map[string]interface{}
	envKey := ``
	b := strings.Builder{}
	for _, s := range segments {
		if !s.isExpr {
			b.WriteString(s.text)
			continue
		}
		if m := identifier.FindStringSubmatch(s.text); m != nil {
			if v, ok := filtered.Get(m[1]); ok {
				b.WriteString(value.ToText(v))
				continue
			}
		}
		if vars == nil {
			vars = lang.ExprEnv(filtered)
			envKey = environmentKey(vars)
		}
		p, err := ip.program(s.text, envKey, vars)
		if err != nil {
			return nil, err
		}
		r, err := expr.Run(p, vars)
		if err != nil {
			return nil, errors.Wrapf(err, `unable to evaluate placeholder '${%s}'`, s.text)
		}
		b.WriteString(value.ToText(value.FromNative(r)))
	}
	return value.String(b.String()), nil
}

// environmentKey returns a string that identifies the names and types of the given variables. A
// program compiled for one environment can be reused for every environment with the same key.
func environmentKey(vars map[string]interface{}) string {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	b := strings.Builder{}
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte(':')
		if t := reflect.TypeOf(vars[n]); t != nil {
			b.WriteString(t.String())
		}
		b.WriteByte(0)
	}
	return b.String()
}

func (ip *Interpolator) program(src, envKey string, vars map[string]interface{}) (*vm.Program, error) {
	key := src + "\x00\x00" + envKey
	ip.lock.RLock()
	p, ok := ip.programs[key]
	ip.lock.RUnlock()
	if !ok {
		tree, err := parser.Parse(src)
		if err != nil {
			return nil, errors.Wrapf(err, `unable to parse placeholder '${%s}'`, src)
		}
		nc := &nameCollector{declared: make(map[string]bool)}
		ast.Walk(&tree.Node, nc)
		for _, n := range nc.freeNames() {
			if _, ok := vars[n]; !ok {
				return nil, &UndefinedReferenceError{Name: n}
			}
		}

		if p, err = expr.Compile(src, expr.Env(vars)); err != nil {
			return nil, errors.Wrapf(err, `unable to parse placeholder '${%s}'`, src)
		}
		ip.store(key, p)
	}
	return p, nil
}

func (ip *Interpolator) store(key string, p *vm.Program) {
	ip.lock.Lock()
	defer ip.lock.Unlock()
	if _, ok := ip.programs[key]; ok {
		return
	}
	for len(ip.order) >= ip.limit {
		delete(ip.programs, ip.order[0])
		ip.order = ip.order[1:]
	}
	ip.programs[key] = p
	ip.order = append(ip.order, key)
}

// nameCollector collects the names of all variables that an expression refers to
type nameCollector struct {
	names    []string
	declared map[string]bool
}

func (nc *nameCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		nc.names = append(nc.names, n.Value)
	case *ast.VariableDeclaratorNode:
		nc.declared[n.Name] = true
	}
}

func (nc *nameCollector) freeNames() []string {
	seen := make(map[string]bool, len(nc.names))
	free := make([]string, 0, len(nc.names))
	for _, n := range nc.names {
		if !nc.declared[n] && !seen[n] {
			seen[n] = true
			free = append(free, n)
		}
	}
	return free
}

// filterParams returns a deep copy of params without the entries that cannot be used as variables
func filterParams(params *value.Map) *value.Map {
	filtered := value.CloneDeep(params).(*value.Map)
	for _, k := range filtered.Keys() {
		v, _ := filtered.Get(k)
		if v == nil || lang.IsNumberLike(value.String(k)) || lang.IsFunction(v) || value.KindOf(v) == value.KindOpaque {
			filtered.Remove(k)
		}
	}
	return filtered
}

func splitTemplate(s string) ([]segment, error) {
	var segments []segment
	lit := strings.Builder{}
	n := len(s)
	for i := 0; i < n; {
		c := s[i]
		if c == '\\' && strings.HasPrefix(s[i+1:], `${`) {
			lit.WriteString(`${`)
			i += 3
			continue
		}
		if c != '$' || i+1 >= n || s[i+1] != '{' {
			lit.WriteByte(c)
			i++
			continue
		}
		end, err := placeholderEnd(s, i+2)
		if err != nil {
			return nil, err
		}
		if lit.Len() > 0 {
			segments = append(segments, segment{text: lit.String()})
			lit.Reset()
		}
		segments = append(segments, segment{text: s[i+2 : end], isExpr: true})
		i = end + 1
	}
	if lit.Len() > 0 {
		segments = append(segments, segment{text: lit.String()})
	}
	return segments, nil
}

// placeholderEnd returns the position of the brace that closes the placeholder whose expression
// starts at start. Braces inside quoted strings are ignored.
func placeholderEnd(s string, start int) (int, error) {
	depth := 1
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, errors.Errorf(`unterminated placeholder at position %d`, start-2)
}
