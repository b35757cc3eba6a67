// Package frontmatter splits, mutates, and re-serialises the YAML
// frontmatter block of a Markdown note. Key order is preserved across a
// read-modify-write cycle, so unmanaged properties come back exactly where
// the user put them.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delim = "---"

// Mapping is an ordered frontmatter key/value block backed by a yaml.Node.
type Mapping struct {
	node *yaml.Node // kind MappingNode
}

// NewMapping returns an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// Split separates the frontmatter block (between leading --- delimiters)
// from the Markdown body. ok is false when the content has no block, the
// block is unterminated, or the YAML does not parse — in all of those cases
// the entire content is returned as body.
func Split(data []byte) (m *Mapping, body string, ok bool) {
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), false
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data), false
	}

	block := rest[:idx]
	after := rest[idx+1+len(delim):]
	body = strings.TrimLeft(string(after), "\n\r")

	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, string(data), false
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, string(data), false
	}
	return &Mapping{node: doc.Content[0]}, body, true
}

// Render reassembles a note from a mapping and body. The mapping is
// fully re-serialised, so the result is always a syntactically valid block.
func Render(m *Mapping, body string) ([]byte, error) {
	block, err := yaml.Marshal(m.node)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: marshal: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(delim + "\n")
	buf.Write(block)
	buf.WriteString(delim + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
	}
	return buf.Bytes(), nil
}

// Get returns the value node for key.
func (m *Mapping) Get(key string) (*yaml.Node, bool) {
	c := m.node.Content
	for i := 0; i+1 < len(c); i += 2 {
		if c[i].Value == key {
			return c[i+1], true
		}
	}
	return nil, false
}

// GetString returns the scalar string value for key, or false when the key
// is absent or holds a non-scalar.
func (m *Mapping) GetString(key string) (string, bool) {
	n, ok := m.Get(key)
	if !ok || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.Value, true
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set writes value under key, overwriting in place when the key exists and
// appending otherwise. Supported values are anything yaml.Node can encode
// (strings, ints, []string, structs).
func (m *Mapping) Set(key string, value any) error {
	var vn yaml.Node
	if err := vn.Encode(value); err != nil {
		return fmt.Errorf("frontmatter: encode %s: %w", key, err)
	}

	c := m.node.Content
	for i := 0; i+1 < len(c); i += 2 {
		if c[i].Value == key {
			c[i+1] = &vn
			return nil
		}
	}
	m.node.Content = append(m.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&vn,
	)
	return nil
}

// Keys returns the property names in order.
func (m *Mapping) Keys() []string {
	c := m.node.Content
	out := make([]string, 0, len(c)/2)
	for i := 0; i+1 < len(c); i += 2 {
		out = append(out, c[i].Value)
	}
	return out
}

// SeedIdentifier guarantees that raw note content carries a frontmatter
// block whose property holds id. It operates on raw text so it can run
// before a note exists on disk: a missing block is synthesised, a missing
// property is inserted as the first entry, and an existing property has its
// value overwritten.
func SeedIdentifier(content []byte, property, id string) []byte {
	line := property + ": " + id

	synthesize := func() []byte {
		var buf bytes.Buffer
		buf.WriteString(delim + "\n" + line + "\n" + delim + "\n")
		if len(content) > 0 {
			buf.WriteString("\n")
			buf.Write(content)
		}
		return buf.Bytes()
	}

	trimmed := bytes.TrimLeft(content, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return synthesize()
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// Unterminated block is body, same as Split treats it.
		return synthesize()
	}

	block := strings.TrimPrefix(string(rest[:idx]), "\n")
	tail := rest[idx:]

	lines := strings.Split(block, "\n")
	replaced := false
	for i, l := range lines {
		name, _, found := strings.Cut(l, ":")
		if found && strings.TrimSpace(name) == property {
			lines[i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append([]string{line}, lines...)
	}

	var buf bytes.Buffer
	buf.WriteString(delim + "\n")
	if joined := strings.Join(lines, "\n"); joined != "" {
		buf.WriteString(joined)
	}
	buf.Write(tail)
	return buf.Bytes()
}
