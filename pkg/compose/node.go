package compose

import (
	"iter"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Node holds.
type Kind int

const (
	// ScalarKind is a leaf text value.
	ScalarKind Kind = iota + 1
	// SequenceKind is an ordered list of nodes.
	SequenceKind
	// MappingKind is an ordered string-keyed map of nodes.
	MappingKind
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is one of *Scalar, *Sequence or *Mapping.
type Node interface {
	Kind() Kind

	encode() *yaml.Node
	clone() Node
}

const (
	nullTag = "!!null"
	strTag  = "!!str"
)

// Scalar is a leaf node. Text is the literal value as written, without quotes.
type Scalar struct {
	Text string

	tag   string
	style yaml.Style
}

// NewScalar returns a plain string scalar.
func NewScalar(text string) *Scalar {
	return &Scalar{Text: text, tag: strTag}
}

// Kind implements Node.
func (s *Scalar) Kind() Kind { return ScalarKind }

// IsNull reports whether the scalar is a YAML null (`~`, `null` or an empty value).
func (s *Scalar) IsNull() bool { return s.tag == nullTag }

// IsString reports whether the scalar resolves to a YAML string.
func (s *Scalar) IsString() bool { return s.tag == strTag }

// SetText replaces the scalar text, keeping its quoting style. The scalar becomes a string.
func (s *Scalar) SetText(text string) {
	s.Text = text
	s.tag = strTag
}

func (s *Scalar) encode() *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   s.tag,
		Value: s.Text,
		Style: s.style,
	}
}

func (s *Scalar) clone() Node {
	cp := *s

	return &cp
}

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items []Node

	flow bool
}

// Kind implements Node.
func (s *Sequence) Kind() Kind { return SequenceKind }

// Len returns the number of items.
func (s *Sequence) Len() int { return len(s.Items) }

func (s *Sequence) encode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if s.flow {
		node.Style = yaml.FlowStyle
	}

	for _, item := range s.Items {
		node.Content = append(node.Content, item.encode())
	}

	return node
}

func (s *Sequence) clone() Node {
	cp := &Sequence{Items: make([]Node, len(s.Items)), flow: s.flow}
	for i, item := range s.Items {
		cp.Items[i] = item.clone()
	}

	return cp
}

type mappingEntry struct {
	key   *Scalar
	value Node
}

// Mapping is an ordered map with unique keys. Iteration follows insertion order.
type Mapping struct {
	entries []mappingEntry
	index   map[string]int

	flow bool
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{index: map[string]int{}}
}

// Kind implements Node.
func (m *Mapping) Kind() Kind { return MappingKind }

// Len returns the number of keys.
func (m *Mapping) Len() int { return len(m.entries) }

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.entries[i].value, true
}

// Set stores value under key. An existing key keeps its position; a new key is appended.
func (m *Mapping) Set(key string, value Node) {
	m.set(NewScalar(key), value)
}

func (m *Mapping) set(key *Scalar, value Node) {
	if i, ok := m.index[key.Text]; ok {
		m.entries[i].value = value

		return
	}

	if m.index == nil {
		m.index = map[string]int{}
	}

	m.index[key.Text] = len(m.entries)
	m.entries = append(m.entries, mappingEntry{key: key, value: value})
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		keys = append(keys, entry.key.Text)
	}

	return keys
}

// All iterates over key/value pairs in insertion order.
func (m *Mapping) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, entry := range m.entries {
			if !yield(entry.key.Text, entry.value) {
				return
			}
		}
	}
}

func (m *Mapping) encode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m.flow {
		node.Style = yaml.FlowStyle
	}

	for _, entry := range m.entries {
		node.Content = append(node.Content, entry.key.encode(), entry.value.encode())
	}

	return node
}

func (m *Mapping) clone() Node {
	cp := &Mapping{
		entries: make([]mappingEntry, len(m.entries)),
		index:   make(map[string]int, len(m.index)),
		flow:    m.flow,
	}

	for i, entry := range m.entries {
		key, _ := entry.key.clone().(*Scalar)
		cp.entries[i] = mappingEntry{key: key, value: entry.value.clone()}
		cp.index[key.Text] = i
	}

	return cp
}

// AsScalar narrows n to a scalar.
func AsScalar(n Node) (*Scalar, bool) {
	scalar, ok := n.(*Scalar)

	return scalar, ok && scalar != nil
}

// AsSequence narrows n to a sequence.
func AsSequence(n Node) (*Sequence, bool) {
	seq, ok := n.(*Sequence)

	return seq, ok && seq != nil
}

// AsMapping narrows n to a mapping.
func AsMapping(n Node) (*Mapping, bool) {
	mapping, ok := n.(*Mapping)

	return mapping, ok && mapping != nil
}

// ScalarText returns the text of n when it is a non-null scalar.
func ScalarText(n Node) (string, bool) {
	scalar, ok := AsScalar(n)
	if !ok || scalar.IsNull() {
		return "", false
	}

	return scalar.Text, true
}
