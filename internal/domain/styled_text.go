package domain

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StyledText is a nested chat component as sent by the game server. Only the
// character content matters to the bot, the style fields are carried so
// decoding stays lossless.
type StyledText struct {
	Text          string       `json:"text,omitempty"`
	Translate     string       `json:"translate,omitempty"`
	Fallback      string       `json:"fallback,omitempty"`
	With          []StyledText `json:"with,omitempty"`
	Extra         []StyledText `json:"extra,omitempty"`
	Color         string       `json:"color,omitempty"`
	Font          string       `json:"font,omitempty"`
	Insertion     string       `json:"insertion,omitempty"`
	Bold          *bool        `json:"bold,omitempty"`
	Italic        *bool        `json:"italic,omitempty"`
	Underlined    *bool        `json:"underlined,omitempty"`
	Strikethrough *bool        `json:"strikethrough,omitempty"`
	Obfuscated    *bool        `json:"obfuscated,omitempty"`
}

// PlainText is a label with every style removed.
type PlainText string

const legacyFormatMarker = '§'

func Text(s string) StyledText {
	return StyledText{Text: s}
}

// UnmarshalJSON accepts the three shapes a component may take on the wire:
// a bare string, an array whose tail is appended to the head's extras, or an
// object.
func (t *StyledText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty styled text")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := statusJSON.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode text string: %w", err)
		}
		*t = StyledText{Text: s}
		return nil
	case '[':
		var parts []StyledText
		if err := statusJSON.Unmarshal(trimmed, &parts); err != nil {
			return fmt.Errorf("decode text array: %w", err)
		}
		if len(parts) == 0 {
			*t = StyledText{}
			return nil
		}
		head := parts[0]
		head.Extra = append(head.Extra, parts[1:]...)
		*t = head
		return nil
	case '{':
		type plain StyledText
		var decoded plain
		if err := statusJSON.Unmarshal(trimmed, &decoded); err != nil {
			return fmt.Errorf("decode text object: %w", err)
		}
		*t = StyledText(decoded)
		return nil
	case 'n':
		*t = StyledText{}
		return nil
	default:
		// numbers and booleans are valid components and render verbatim
		*t = StyledText{Text: string(trimmed)}
		return nil
	}
}

// Render flattens the component tree into plain text, depth first: a node's
// own content comes before its extras.
func Render(t StyledText) PlainText {
	var b strings.Builder
	renderInto(&b, t)
	return PlainText(b.String())
}

func renderInto(b *strings.Builder, t StyledText) {
	switch {
	case t.Translate != "":
		b.WriteString(renderTranslation(t))
	default:
		b.WriteString(stripLegacyFormatting(t.Text))
	}

	for _, child := range t.Extra {
		renderInto(b, child)
	}
}

// renderTranslation substitutes %s and %N$s placeholders with the rendered
// arguments. No client-side language table is available, so the fallback or
// the raw key is used as the pattern.
func renderTranslation(t StyledText) string {
	pattern := t.Translate
	if t.Fallback != "" {
		pattern = t.Fallback
	}
	pattern = stripLegacyFormatting(pattern)

	args := make([]string, len(t.With))
	for i, arg := range t.With {
		args[i] = string(Render(arg))
	}

	var b strings.Builder
	next := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}

		rest := pattern[i+1:]
		switch {
		case rest[0] == '%':
			b.WriteByte('%')
			i++
		case rest[0] == 's':
			if next < len(args) {
				b.WriteString(args[next])
			}
			next++
			i++
		default:
			dollar := strings.Index(rest, "$s")
			if dollar <= 0 {
				b.WriteByte('%')
				continue
			}
			index, err := strconv.Atoi(rest[:dollar])
			if err != nil {
				b.WriteByte('%')
				continue
			}
			if index >= 1 && index <= len(args) {
				b.WriteString(args[index-1])
			}
			i += dollar + 2
		}
	}

	return b.String()
}

func stripLegacyFormatting(s string) string {
	if !strings.ContainsRune(s, legacyFormatMarker) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	skip := false
	for _, r := range s {
		if skip {
			skip = false
			continue
		}
		if r == legacyFormatMarker {
			skip = true
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
