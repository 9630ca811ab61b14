package value

import (
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// FromYAML parses the given YAML (or JSON) document into a Value. The key order of mappings is
// retained and anchors that are referenced by aliases yield the same container instance. An empty
// document yields Null.
func FromYAML(data []byte) (Value, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return newNodeDecoder().decode(&n)
}

// FromJSON parses the given JSON document into a Value. JSON is decoded by the YAML decoder and
// so retains the key order of objects.
func FromJSON(data []byte) (Value, error) {
	return FromYAML(data)
}

type nodeDecoder struct {
	anchors map[*yaml.Node]Value
}

func newNodeDecoder() *nodeDecoder {
	return &nodeDecoder{anchors: make(map[*yaml.Node]Value)}
}

func (d *nodeDecoder) decode(n *yaml.Node) (Value, error) {
	if v, ok := d.anchors[n]; ok {
		return v, nil
	}
	switch n.Kind {
	case 0:
		return Null, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null, nil
		}
		return d.decode(n.Content[0])
	case yaml.AliasNode:
		return d.decode(n.Alias)
	case yaml.SequenceNode:
		a := &Array{make([]Value, 0, len(n.Content))}
		d.anchors[n] = a
		for _, c := range n.Content {
			e, err := d.decode(c)
			if err != nil {
				return nil, err
			}
			a.elements = append(a.elements, e)
		}
		return a, nil
	case yaml.MappingNode:
		m := MapWithCapacity(len(n.Content) / 2)
		d.anchors[n] = m
		if err := d.decodeEntries(m, n); err != nil {
			return nil, err
		}
		return m, nil
	}
	return d.decodeScalar(n)
}

func (d *nodeDecoder) decodeEntries(m *Map, n *yaml.Node) error {
	var merged []*Map
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		if kn.ShortTag() == `!!merge` {
			ms, err := d.mergeSources(vn)
			if err != nil {
				return err
			}
			merged = append(merged, ms...)
			continue
		}
		k, err := d.decode(kn)
		if err != nil {
			return err
		}
		v, err := d.decode(vn)
		if err != nil {
			return err
		}
		m.Put(ToText(k), v)
	}

	// Explicit keys take precedence over merged keys and earlier merge sources take precedence
	// over later ones.
	for _, src := range merged {
		src.EachEntry(func(k string, v Value) {
			if !m.ContainsKey(k) {
				m.Put(k, v)
			}
		})
	}
	return nil
}

func (d *nodeDecoder) mergeSources(vn *yaml.Node) ([]*Map, error) {
	v, err := d.decode(vn)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case *Map:
		return []*Map{v}, nil
	case *Array:
		ms := make([]*Map, 0, v.Len())
		for _, e := range v.elements {
			if em, ok := e.(*Map); ok {
				ms = append(ms, em)
				continue
			}
			return nil, fmt.Errorf(`line %d: map merge requires a map or a sequence of maps`, vn.Line)
		}
		return ms, nil
	}
	return nil, fmt.Errorf(`line %d: map merge requires a map or a sequence of maps`, vn.Line)
}

func (d *nodeDecoder) decodeScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case `!!null`:
		return Null, nil
	case `!!bool`:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case `!!int`, `!!float`:
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return Number(f), nil
	case `!!timestamp`:
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, err
		}
		return NewDate(t), nil
	}
	return String(n.Value), nil
}

// ToYAML renders the given value as a YAML document
func ToYAML(v Value) ([]byte, error) {
	return yaml.Marshal(ToNode(v))
}

// ToNode converts the given value into a yaml.Node. Functions and opaque values other than dates are
// rendered using their string form. Containers that refer back to themselves are rendered as null at
// the point of recursion.
func ToNode(v Value) *yaml.Node {
	return toNode(v, make(map[Value]bool))
}

func toNode(v Value, inProgress map[Value]bool) *yaml.Node {
	switch v := v.(type) {
	case nil, nullValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!null`, Value: `null`}
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!bool`, Value: v.String()}
	case Number:
		return numberNode(float64(v))
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!str`, Value: string(v)}
	case *Date:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!timestamp`, Value: v.String()}
	case *Array:
		if inProgress[v] {
			return toNode(Null, inProgress)
		}
		inProgress[v] = true
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: `!!seq`, Content: make([]*yaml.Node, len(v.elements))}
		for i, e := range v.elements {
			n.Content[i] = toNode(e, inProgress)
		}
		delete(inProgress, v)
		return n
	case *Map:
		if inProgress[v] {
			return toNode(Null, inProgress)
		}
		inProgress[v] = true
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: `!!map`, Content: make([]*yaml.Node, 0, v.Len()*2)}
		v.EachEntry(func(k string, e Value) {
			n.Content = append(n.Content, toNode(String(k), inProgress), toNode(e, inProgress))
		})
		delete(inProgress, v)
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!str`, Value: v.String()}
}

func numberNode(f float64) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!float`, Value: `.nan`}
	case math.IsInf(f, 1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!float`, Value: `.inf`}
	case math.IsInf(f, -1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!float`, Value: `-.inf`}
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!int`, Value: formatNumber(f)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!float`, Value: formatNumber(f)}
}
