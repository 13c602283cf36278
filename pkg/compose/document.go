package compose

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// serializeIndent is the indentation used when rendering a document, matching the
// layout `docker compose config` produces.
const serializeIndent = 2

// Document is a parsed compose document. It owns its root mapping.
type Document struct {
	root *Mapping
}

// Parse builds a Document from YAML text. It fails with a *ParseError wrapping
// ErrInvalidYAML on malformed syntax, or ErrNotMapping when the top-level node is
// anything other than a mapping.
func Parse(text string) (*Document, error) {
	var raw yaml.Node

	err := yaml.Unmarshal([]byte(text), &raw)
	if err != nil {
		return nil, &ParseError{Reason: ErrInvalidYAML, Cause: err}
	}

	top := &raw
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = top.Content[0]
	}

	top = resolveAlias(top)
	if top.Kind != yaml.MappingNode {
		return nil, &ParseError{Reason: ErrNotMapping}
	}

	root, err := decodeMapping(top)
	if err != nil {
		return nil, &ParseError{Reason: ErrInvalidYAML, Cause: err}
	}

	return &Document{root: root}, nil
}

// Root returns the document's root mapping.
func (d *Document) Root() *Mapping {
	return d.root
}

// Get walks the mapping path from the root and returns the node found there.
// Get() with no keys returns the root itself.
func (d *Document) Get(path ...string) (Node, bool) {
	var current Node = d.root

	for _, key := range path {
		mapping, ok := AsMapping(current)
		if !ok {
			return nil, false
		}

		current, ok = mapping.Get(key)
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	root, _ := d.root.clone().(*Mapping)

	return &Document{root: root}
}

// Serialize renders the document as YAML text, keeping the parse order of every
// mapping and the literal text of every scalar.
func (d *Document) Serialize() (string, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(serializeIndent)

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{d.root.encode()}}

	err := encoder.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("encode compose document: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return "", fmt.Errorf("close compose encoder: %w", err)
	}

	return buf.String(), nil
}

// String renders the document, returning an empty string if it cannot be encoded.
func (d *Document) String() string {
	text, err := d.Serialize()
	if err != nil {
		return ""
	}

	return text
}

// --- internals ---

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func decodeNode(node *yaml.Node) (Node, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.SequenceNode:
		return decodeSequence(node)
	case yaml.ScalarNode:
		return decodeScalar(node), nil
	default:
		return nil, fmt.Errorf(
			"%w: unexpected node kind %d at line %d",
			ErrInvalidYAML,
			node.Kind,
			node.Line,
		)
	}
}

func decodeScalar(node *yaml.Node) *Scalar {
	return &Scalar{
		Text:  node.Value,
		tag:   node.ShortTag(),
		style: node.Style,
	}
}

func decodeSequence(node *yaml.Node) (*Sequence, error) {
	seq := &Sequence{
		Items: make([]Node, 0, len(node.Content)),
		flow:  node.Style&yaml.FlowStyle != 0,
	}

	for _, child := range node.Content {
		item, err := decodeNode(child)
		if err != nil {
			return nil, err
		}

		seq.Items = append(seq.Items, item)
	}

	return seq, nil
}

func decodeMapping(node *yaml.Node) (*Mapping, error) {
	mapping := NewMapping()
	mapping.flow = node.Style&yaml.FlowStyle != 0

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveAlias(node.Content[i])
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w at line %d", ErrUnsupportedKey, keyNode.Line)
		}

		value, err := decodeNode(node.Content[i+1])
		if err != nil {
			return nil, err
		}

		mapping.set(decodeScalar(keyNode), value)
	}

	return mapping, nil
}
