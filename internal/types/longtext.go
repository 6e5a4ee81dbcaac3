package types

import "gopkg.in/yaml.v3"

// LongText is a string that serializes as a YAML literal block scalar when
// it spans multiple lines, so free-text fields (description, acceptance,
// design, notes) round-trip as readable block text rather than an escaped
// flow scalar full of "\n" sequences. Single-line values marshal as plain
// scalars.
type LongText string

// MarshalYAML implements yaml.Marshaler.
func (t LongText) MarshalYAML() (any, error) {
	s := string(t)
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if containsNewline(s) {
		node.Style = yaml.LiteralStyle
	}
	return node, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *LongText) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*t = LongText(s)
	return nil
}

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}
