// Package parser parses message templates such as "User {UserId} logged in from {0}".
//
// Property tokens support capturing hints ({@Name} to destructure, {$Name} to
// stringify), alignment ({Name,10} or {Name,-10}) and format strings
// ({Elapsed:F2}). Doubled braces ({{ and }}) render as literal braces.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidTemplate is returned when a template cannot be parsed.
var ErrInvalidTemplate = errors.New("invalid message template")

// Parse parses a message template string into a MessageTemplate.
// Malformed property tokens are kept as literal text; only input that is not
// valid UTF-8 is rejected.
func Parse(template string) (*MessageTemplate, error) {
	if !utf8.ValidString(template) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidTemplate)
	}
	if template == "" {
		return &MessageTemplate{Raw: template, Tokens: []MessageTemplateToken{}}, nil
	}

	tokens := make([]MessageTemplateToken, 0, 4)
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, &TextToken{Text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(template) {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			text.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			text.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end == -1 {
				// Unclosed property, the remainder is text.
				text.WriteString(template[i:])
				i = len(template)
				continue
			}
			content := template[i+1 : i+1+end]
			if prop, ok := parsePropertyToken(content); ok {
				flush()
				tokens = append(tokens, prop)
			} else {
				text.WriteString(template[i : i+2+end])
			}
			i += end + 2
		default:
			text.WriteByte(c)
			i++
		}
	}
	flush()

	return &MessageTemplate{Raw: template, Tokens: tokens}, nil
}

// parsePropertyToken parses the content between braces. It reports false when
// the content is not a valid property token.
func parsePropertyToken(content string) (*PropertyToken, bool) {
	capturing := Default
	name := content

	if len(name) > 0 {
		switch name[0] {
		case '@':
			capturing = Capture
			name = name[1:]
		case '$':
			capturing = Stringify
			name = name[1:]
		}
	}

	format := ""
	alignment := 0

	// {Name}, {Name:format}, {Name,alignment}, {Name,alignment:format}
	commaIdx := strings.IndexByte(name, ',')
	colonIdx := strings.IndexByte(name, ':')
	if commaIdx != -1 && (colonIdx == -1 || commaIdx < colonIdx) {
		rest := name[commaIdx+1:]
		name = name[:commaIdx]
		alignStr := rest
		if c := strings.IndexByte(rest, ':'); c != -1 {
			alignStr = rest[:c]
			format = rest[c+1:]
		}
		a, err := parseAlignment(strings.TrimSpace(alignStr))
		if err != nil {
			return nil, false
		}
		alignment = a
	} else if colonIdx != -1 {
		format = name[colonIdx+1:]
		name = name[:colonIdx]
	}

	if !isValidPropertyName(name) {
		return nil, false
	}

	return &PropertyToken{
		PropertyName: name,
		Capturing:    capturing,
		Format:       format,
		Alignment:    alignment,
		raw:          "{" + content + "}",
	}, true
}

// MaxAlignment is the widest alignment a property token may request. Wider
// tokens are kept as literal text.
const MaxAlignment = 1024

// parseAlignment parses an alignment specification.
// Positive numbers mean right-align, negative mean left-align.
func parseAlignment(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty alignment")
	}

	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("invalid alignment")
	}

	width := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("invalid alignment: %s", s)
		}
		width = width*10 + int(ch-'0')
		if width > MaxAlignment {
			return 0, fmt.Errorf("alignment exceeds %d: %s", MaxAlignment, s)
		}
	}

	if negative {
		width = -width
	}
	return width, nil
}

// isValidPropertyName checks if a string is a valid property name.
// Numeric indexes ("0", "12") are valid; otherwise names start with a letter
// or underscore and continue with letters, digits, '_', '-' or '.'.
func isValidPropertyName(name string) bool {
	if name == "" {
		return false
	}
	if isNumericIndex(name) {
		return true
	}

	for i, r := range name {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

// isNumericIndex checks if a string is a numeric index like "0", "1", etc.
func isNumericIndex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ExtractPropertyNames returns the distinct property names of a template in
// order of first appearance.
func ExtractPropertyNames(template string) []string {
	mt, err := Parse(template)
	if err != nil {
		return []string{}
	}
	return mt.PropertyNames()
}
