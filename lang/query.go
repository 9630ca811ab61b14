package lang

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/modil-io/devutils/value"
)

// A Path is a parsed version of a dot and bracket separated query path. The parts of a path are
// strings or integers.
type Path struct {
	source string
	parts  []interface{}
}

// ParsePath parses the given string into a Path. Segments are separated by dots or expressed as
// bracketed indexes. A segment can be quoted with single or double quotes to include dots.
//
//	a.b.c     => [a b c]
//	a[1].b    => [a 1 b]
//	a.'b.c'   => [a b.c]
//	a["b.c"]  => [a b.c]
func ParsePath(str string) (*Path, error) {
	b := &bytes.Buffer{}
	parts, err := parseUnquoted(b, str, str, []interface{}{})
	if err != nil {
		return nil, err
	}
	return &Path{source: str, parts: parts}, nil
}

// Parts returns the parts of this path. Each part is either a string or an int
func (p *Path) Parts() []interface{} {
	return p.parts
}

// Source returns the string that this path was created from
func (p *Path) Source() string {
	return p.source
}

// Dig returns the value found by using the parts of this path to dig into the given value. Nil
// (undefined) is returned unless the dig was a success.
func (p *Path) Dig(v value.Value) value.Value {
	for _, part := range p.parts {
		switch vc := v.(type) {
		case *value.Array:
			ix, ok := part.(int)
			if !ok {
				var err error
				if ix, err = strconv.Atoi(part.(string)); err != nil {
					return nil
				}
			}
			v = vc.Get(ix)
		case *value.Map:
			var key string
			if ix, ok := part.(int); ok {
				key = strconv.Itoa(ix)
			} else {
				key = part.(string)
			}
			v, _ = vc.Get(key)
		default:
			return nil
		}
		if v == nil {
			return nil
		}
	}
	return v
}

// Query returns the value at the given path in json. The path is either a String that is parsed
// using ParsePath or an Array of String and Number segments. Null is returned when json is neither
// an array nor a map or when the path is neither a string nor an array. Undefined is returned when
// nothing is found.
func Query(json value.Value, path value.Value) value.Value {
	if !(IsArray(json) || IsPlainObject(json)) {
		return value.Null
	}
	switch path := path.(type) {
	case value.String:
		p, err := ParsePath(string(path))
		if err != nil {
			return nil
		}
		return p.Dig(json)
	case *value.Array:
		parts := make([]interface{}, 0, path.Len())
		path.Each(func(_ int, e value.Value) {
			if IsInteger(e) {
				parts = append(parts, int(e.(value.Number)))
			} else {
				parts = append(parts, value.ToText(e))
			}
		})
		return (&Path{source: path.String(), parts: parts}).Dig(json)
	}
	return value.Null
}

func mungedPart(part string) interface{} {
	if i, err := strconv.ParseInt(part, 10, 32); err == nil {
		return int(i)
	}
	return part
}

func parseUnquoted(b *bytes.Buffer, path, part string, parts []interface{}) ([]interface{}, error) {
	for i := 0; i < len(part); i++ {
		c := part[i]
		switch c {
		case '\'', '"':
			return parseQuoted(b, c, path, part[i+1:], parts)
		case '.':
			if b.Len() > 0 {
				parts = append(parts, mungedPart(b.String()))
				b.Reset()
			} else if i == 0 && len(parts) == 0 {
				return nil, fmt.Errorf(`path '%s' contains an empty segment`, path)
			}
		case '[':
			if b.Len() > 0 {
				parts = append(parts, mungedPart(b.String()))
				b.Reset()
			}
			return parseBracket(b, path, part[i+1:], parts)
		default:
			b.WriteByte(c)
		}
	}
	if b.Len() > 0 {
		parts = append(parts, mungedPart(b.String()))
		b.Reset()
	} else if len(parts) == 0 {
		return nil, fmt.Errorf(`path '%s' contains an empty segment`, path)
	}
	return parts, nil
}

func parseQuoted(b *bytes.Buffer, q byte, path, part string, parts []interface{}) ([]interface{}, error) {
	for i := 0; i < len(part); i++ {
		c := part[i]
		if c == q {
			parts = append(parts, b.String())
			b.Reset()
			return parseUnquoted(b, path, part[i+1:], parts)
		}
		b.WriteByte(c)
	}
	return nil, fmt.Errorf(`unterminated quote in path '%s'`, path)
}

func parseBracket(b *bytes.Buffer, path, part string, parts []interface{}) ([]interface{}, error) {
	if len(part) > 0 && (part[0] == '\'' || part[0] == '"') {
		q := part[0]
		for i := 1; i < len(part); i++ {
			if part[i] == q {
				if i+1 >= len(part) || part[i+1] != ']' {
					break
				}
				parts = append(parts, b.String())
				b.Reset()
				return parseUnquoted(b, path, part[i+2:], parts)
			}
			b.WriteByte(part[i])
		}
		return nil, fmt.Errorf(`unterminated bracket in path '%s'`, path)
	}
	for i := 0; i < len(part); i++ {
		if part[i] == ']' {
			seg := b.String()
			b.Reset()
			if seg == `` {
				return nil, fmt.Errorf(`path '%s' contains an empty segment`, path)
			}
			parts = append(parts, mungedPart(seg))
			return parseUnquoted(b, path, part[i+1:], parts)
		}
		b.WriteByte(part[i])
	}
	return nil, fmt.Errorf(`unterminated bracket in path '%s'`, path)
}
