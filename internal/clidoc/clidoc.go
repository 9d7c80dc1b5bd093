// Package clidoc edits the external CLI's configuration document.
//
// The document belongs to the spacetime CLI, not to this tool, and may
// contain keys, comments, and ordering this tool never interprets. It is
// therefore held as a yaml node tree and edited structurally: only the
// nodes this tool touches change, everything else survives round-trip
// byte for byte.
package clidoc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// RegistryKey is the array-of-tables key holding one server entry per
// profile nickname.
const RegistryKey = "server_configs"

// Document is the external CLI's configuration document.
type Document struct {
	root *yaml.Node // top-level mapping
}

// ServerEntry is one row of the server registry.
type ServerEntry struct {
	Nickname string
	Host     string
	Protocol string
}

// New returns an empty document.
func New() *Document {
	return &Document{root: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// Parse parses document bytes. Empty input is a valid empty document.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing CLI config: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return New(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing CLI config: expected mapping at top level")
	}
	return &Document{root: root}, nil
}

// Load reads and parses the document at path. A missing file is an
// error; use LoadOrInit where a fresh document should be created instead.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading CLI config at %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrInit loads the document, creating parent directories and
// returning an empty in-memory document when none exists on disk yet.
func LoadOrInit(path string) (*Document, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating CLI config directory: %w", err)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CLI config at %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal serializes the document.
func (d *Document) Marshal() ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{d.root}}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding CLI config: %w", err)
	}
	return data, nil
}

// Save writes the document to path in one pass.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing CLI config: %w", err)
	}
	return nil
}

// Scalar returns the string value of a top-level key.
func (d *Document) Scalar(key string) (string, bool) {
	val := mapGet(d.root, key)
	if val == nil || val.Kind != yaml.ScalarNode {
		return "", false
	}
	return val.Value, true
}

// SetScalar sets a top-level string key, appending it when absent.
func (d *Document) SetScalar(key, value string) {
	mapSet(d.root, key, value)
}

// UpsertServer updates the host and protocol of the registry row with
// the given nickname, appending a new row when none matches. Rows are
// matched by exact nickname equality; other fields of an existing row
// are left alone.
func (d *Document) UpsertServer(nickname, host, protocol string) {
	seq := d.registry(true)
	for _, row := range seq.Content {
		if row.Kind != yaml.MappingNode {
			continue
		}
		if nick := mapGet(row, "nickname"); nick != nil && nick.Value == nickname {
			mapSet(row, "host", host)
			mapSet(row, "protocol", protocol)
			return
		}
	}
	row := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	mapSet(row, "nickname", nickname)
	mapSet(row, "host", host)
	mapSet(row, "protocol", protocol)
	seq.Content = append(seq.Content, row)
}

// FindServer returns the registry row with the given nickname.
func (d *Document) FindServer(nickname string) (ServerEntry, bool) {
	seq := d.registry(false)
	if seq == nil {
		return ServerEntry{}, false
	}
	for _, row := range seq.Content {
		if row.Kind != yaml.MappingNode {
			continue
		}
		nick := mapGet(row, "nickname")
		if nick == nil || nick.Value != nickname {
			continue
		}
		entry := ServerEntry{Nickname: nickname}
		if h := mapGet(row, "host"); h != nil {
			entry.Host = h.Value
		}
		if p := mapGet(row, "protocol"); p != nil {
			entry.Protocol = p.Value
		}
		return entry, true
	}
	return ServerEntry{}, false
}

// ServerCount returns the number of registry rows.
func (d *Document) ServerCount() int {
	seq := d.registry(false)
	if seq == nil {
		return 0
	}
	return len(seq.Content)
}

// registry returns the server_configs sequence node, creating it when
// create is true. An existing key of the wrong shape is coerced to an
// empty sequence rather than corrupting the edit.
func (d *Document) registry(create bool) *yaml.Node {
	if val := mapGet(d.root, RegistryKey); val != nil {
		if val.Kind != yaml.SequenceNode {
			if !create {
				return nil
			}
			val.Kind = yaml.SequenceNode
			val.Tag = "!!seq"
			val.Value = ""
			val.Content = nil
		}
		return val
	}
	if !create {
		return nil
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	d.root.Content = append(d.root.Content, scalarNode(RegistryKey), seq)
	return seq
}

// mapGet returns the value node for key in a mapping node.
func mapGet(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// mapSet sets key to a string scalar in a mapping node, reusing the
// existing value node so attached comments stay in place.
func mapSet(m *yaml.Node, key, value string) {
	if val := mapGet(m, key); val != nil {
		val.Kind = yaml.ScalarNode
		val.Tag = "!!str"
		val.Value = value
		val.Content = nil
		return
	}
	m.Content = append(m.Content, scalarNode(key), scalarNode(value))
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"}
}
