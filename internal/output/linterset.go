package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// PluginCommand is the Command value of a linter provided by a plugin rather
// than an external executable.
const PluginCommand = "plugin"

// LinterInfo describes one registered linter.
type LinterInfo struct {
	Language    string `json:"language" yaml:"language"`
	Installed   bool   `json:"installed" yaml:"installed"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	CanFix      bool   `json:"canFix" yaml:"canFix"`
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description" yaml:"description"`
}

// IsPlugin reports whether the linter is plugin-backed.
func (l LinterInfo) IsPlugin() bool {
	return l.Command == PluginCommand
}

// LinterSet maps linter names to their info and remembers insertion order.
// The zero value is ready to use.
type LinterSet struct {
	m *orderedmap.OrderedMap[string, LinterInfo]
}

// NewLinterSet creates an empty LinterSet.
func NewLinterSet() *LinterSet {
	return &LinterSet{m: orderedmap.New[string, LinterInfo]()}
}

func (s *LinterSet) ensureMap() {
	if s.m == nil {
		s.m = orderedmap.New[string, LinterInfo]()
	}
}

// Set adds or replaces a linter. Replacing keeps the original position.
func (s *LinterSet) Set(name string, info LinterInfo) {
	s.ensureMap()
	s.m.Set(name, info)
}

// Get returns the linter registered under name.
func (s *LinterSet) Get(name string) (LinterInfo, bool) {
	if s.m == nil {
		return LinterInfo{}, false
	}
	return s.m.Get(name)
}

// Len returns the number of linters.
func (s *LinterSet) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Names returns the linter names in insertion order.
func (s *LinterSet) Names() []string {
	names := make([]string, 0, s.Len())
	for name := range s.All() {
		names = append(names, name)
	}
	return names
}

// All iterates over the linters in insertion order.
func (s *LinterSet) All() iter.Seq2[string, LinterInfo] {
	return func(yield func(string, LinterInfo) bool) {
		if s.m == nil {
			return
		}
		for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// MarshalJSON encodes the set as an object whose keys keep insertion order.
// Values are not HTML-escaped, matching the rest of the JSON output;
// OrderedMap.MarshalJSON would write '<' in a description as \u003c.
func (s *LinterSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for name, info := range s.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := encodeCompact(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeCompact(&buf, info); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeCompact appends the JSON encoding of v to buf without HTML escaping.
func encodeCompact(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // drop the newline Encode appends
	return nil
}

// UnmarshalJSON decodes an object, keeping the order of its keys. Existing
// entries are discarded.
func (s *LinterSet) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, LinterInfo]()
	if err := m.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("linter set: %w", err)
	}
	s.m = m
	return nil
}

// UnmarshalYAML decodes a mapping node, keeping the order of its keys.
// Existing entries are discarded.
func (s *LinterSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("linter set: line %d: expected mapping", node.Line)
	}
	m := orderedmap.New[string, LinterInfo]()
	if err := m.UnmarshalYAML(node); err != nil {
		return fmt.Errorf("linter set: %w", err)
	}
	s.m = m
	return nil
}
