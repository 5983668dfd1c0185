package parser

import (
	"strconv"
	"strings"
)

// MessageTemplate represents a parsed message template.
type MessageTemplate struct {
	// Raw is the original template string.
	Raw string

	// Tokens are the parsed tokens from the template.
	Tokens []MessageTemplateToken
}

// Empty returns a template with no text and no tokens.
func Empty() *MessageTemplate {
	return &MessageTemplate{Tokens: []MessageTemplateToken{}}
}

// Render generates the final message using the provided properties.
func (mt *MessageTemplate) Render(properties map[string]any) string {
	if mt == nil {
		return ""
	}
	var sb strings.Builder
	for _, token := range mt.Tokens {
		sb.WriteString(token.Render(properties))
	}
	return sb.String()
}

// RenderArgs renders the template binding property tokens to args, either by
// index for positional templates or in order of first appearance otherwise.
func (mt *MessageTemplate) RenderArgs(args ...any) string {
	if mt == nil {
		return ""
	}
	properties := make(map[string]any, len(args))
	if mt.IsPositional() {
		for i, arg := range args {
			properties[strconv.Itoa(i)] = arg
		}
	} else {
		for i, name := range mt.PropertyNames() {
			if i < len(args) {
				properties[name] = args[i]
			}
		}
	}
	return mt.Render(properties)
}

// PropertyTokens returns the property tokens in template order, including repeats.
func (mt *MessageTemplate) PropertyTokens() []*PropertyToken {
	if mt == nil {
		return nil
	}
	props := make([]*PropertyToken, 0, len(mt.Tokens)/2+1)
	for _, token := range mt.Tokens {
		if prop, ok := token.(*PropertyToken); ok {
			props = append(props, prop)
		}
	}
	return props
}

// PropertyNames returns the distinct property names in order of first appearance.
func (mt *MessageTemplate) PropertyNames() []string {
	if mt == nil {
		return []string{}
	}
	names := make([]string, 0, len(mt.Tokens)/2+1)
	seen := make(map[string]bool)
	for _, token := range mt.Tokens {
		if prop, ok := token.(*PropertyToken); ok && !seen[prop.PropertyName] {
			names = append(names, prop.PropertyName)
			seen[prop.PropertyName] = true
		}
	}
	return names
}

// IsPositional reports whether the template has property tokens and every one
// of them is a numeric index such as {0}.
func (mt *MessageTemplate) IsPositional() bool {
	props := mt.PropertyTokens()
	if len(props) == 0 {
		return false
	}
	for _, p := range props {
		if !p.IsPositional() {
			return false
		}
	}
	return true
}

// String returns the raw template text.
func (mt *MessageTemplate) String() string {
	if mt == nil {
		return ""
	}
	return mt.Raw
}
