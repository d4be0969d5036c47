// Package note models a managed note: a YAML frontmatter block followed
// by free-form body text. The body is preserved verbatim across updates;
// frontmatter keys keep their on-disk order, with newly merged keys
// appended at the end.
package note

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Frontmatter is an order-preserving key/value block. Values are string
// or []string.
type Frontmatter struct {
	keys   []string
	values map[string]any
}

// NewFrontmatter returns an empty frontmatter block.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{values: make(map[string]any)}
}

// Keys returns all keys in order.
func (fm *Frontmatter) Keys() []string {
	return fm.keys
}

// Len returns the number of keys.
func (fm *Frontmatter) Len() int {
	return len(fm.keys)
}

// Get returns the raw value (string or []string) for key.
func (fm *Frontmatter) Get(key string) (any, bool) {
	v, ok := fm.values[key]
	return v, ok
}

// GetString returns the scalar value for key, or the first element when
// the value is a list, or "" when the key is absent or empty.
func (fm *Frontmatter) GetString(key string) string {
	switch v := fm.values[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// Set stores a value, keeping the key's existing position or appending it.
func (fm *Frontmatter) Set(key string, value any) {
	if _, ok := fm.values[key]; !ok {
		fm.keys = append(fm.keys, key)
	}
	fm.values[key] = value
}

// Clone returns an independent copy.
func (fm *Frontmatter) Clone() *Frontmatter {
	out := NewFrontmatter()
	for _, k := range fm.keys {
		out.Set(k, fm.values[k])
	}
	return out
}

// Merge returns a new frontmatter combining existing user keys with
// generated sync keys. Existing keys keep their order; generated keys
// overwrite same-named existing keys in place, and new keys are appended
// in the generated order. Neither input is mutated.
func Merge(existing, generated *Frontmatter) *Frontmatter {
	out := existing.Clone()
	for _, k := range generated.keys {
		out.Set(k, generated.values[k])
	}
	return out
}

// Note is one parsed note file.
type Note struct {
	Frontmatter *Frontmatter
	Body        string
}

// Parse splits content into frontmatter and body. A missing or malformed
// frontmatter block yields an empty frontmatter and leaves the remaining
// text as the body; parse failures are data-quality conditions, not
// errors.
func Parse(content []byte) *Note {
	text := string(content)

	block, body, ok := splitFrontmatter(text)
	if !ok {
		return &Note{Frontmatter: NewFrontmatter(), Body: text}
	}

	fm, err := parseBlock(block)
	if err != nil {
		return &Note{Frontmatter: NewFrontmatter(), Body: body}
	}
	return &Note{Frontmatter: fm, Body: body}
}

func splitFrontmatter(text string) (block, body string, ok bool) {
	if !strings.HasPrefix(text, delimiter+"\n") {
		return "", "", false
	}
	rest := text[len(delimiter)+1:]
	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return "", "", false
	}
	block = rest[:end]
	body = rest[end+1+len(delimiter):]
	// Drop the newline terminating the closing delimiter line.
	body = strings.TrimPrefix(body, "\n")
	return block, body, true
}

func parseBlock(block string) (*Frontmatter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter is not a mapping")
	}

	fm := NewFrontmatter()
	mapping := doc.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valNode := mapping.Content[i], mapping.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			continue
		}
		switch valNode.Kind {
		case yaml.ScalarNode:
			fm.Set(keyNode.Value, valNode.Value)
		case yaml.SequenceNode:
			items := make([]string, 0, len(valNode.Content))
			for _, item := range valNode.Content {
				if item.Kind == yaml.ScalarNode {
					items = append(items, item.Value)
				}
			}
			fm.Set(keyNode.Value, items)
		}
	}
	return fm, nil
}

// Render serializes the note back to file content. A note with no
// frontmatter keys renders as its bare body.
func (n *Note) Render() ([]byte, error) {
	if n.Frontmatter == nil || n.Frontmatter.Len() == 0 {
		return []byte(n.Body), nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range n.Frontmatter.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valNode, err := valueNode(n.Frontmatter.values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode frontmatter key %q: %w", key, err)
		}
		mapping.Content = append(mapping.Content, keyNode, valNode)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	buf.WriteString(delimiter + "\n")
	buf.WriteString(n.Body)
	return buf.Bytes(), nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v}, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: item})
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
