// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package articles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidLiteral is returned when a cell is not a well-formed list literal.
var ErrInvalidLiteral = errors.New("invalid list literal")

// parseListLiteral parses the textual list encoding used by the dataset
// exports, e.g. ['a', 'b'] or [(4, 'x', 'id', 0.83, 1, 'because')].
//
// Supported values: single or double quoted strings with backslash escapes,
// integers, floats, True/False/None, and nested lists or tuples. Tuples are
// returned as []any like lists.
func parseListLiteral(raw string) ([]any, error) {
	p := &literalParser{src: strings.TrimSpace(raw)}
	if !strings.HasPrefix(p.src, "[") {
		return nil, ErrInvalidLiteral
	}

	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: trailing data at offset %d", ErrInvalidLiteral, p.pos)
	}

	list, ok := v.([]any)
	if !ok {
		return nil, ErrInvalidLiteral
	}
	return list, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrInvalidLiteral, fmt.Sprintf(format, args...), p.pos)
}

func (p *literalParser) value() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}

	switch c := p.src[p.pos]; {
	case c == '[':
		return p.sequence('[', ']')
	case c == '(':
		return p.sequence('(', ')')
	case c == '\'' || c == '"':
		return p.str()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	default:
		return p.keyword()
	}
}

func (p *literalParser) sequence(open, closing byte) ([]any, error) {
	if p.src[p.pos] != open {
		return nil, p.errorf("expected %q", open)
	}
	p.pos++

	items := make([]any, 0, 4)
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated sequence")
		}
		if p.src[p.pos] == closing {
			p.pos++
			return items, nil
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated sequence")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case closing:
			p.pos++
			return items, nil
		default:
			return nil, p.errorf("unexpected %q", p.src[p.pos])
		}
	}
}

func (p *literalParser) str() (string, error) {
	quote := p.src[p.pos]
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if p.pos+1 >= len(p.src) {
				return "", p.errorf("dangling escape")
			}
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
	return "", p.errorf("unterminated string")
}

// escape consumes a backslash sequence starting at p.pos.
func (p *literalParser) escape(b *strings.Builder) error {
	c := p.src[p.pos+1]
	p.pos += 2
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '0':
		b.WriteByte(0)
	case '\\', '\'', '"':
		b.WriteByte(c)
	case '\n':
		// line continuation
	case 'x':
		return p.hexEscape(b, 2)
	case 'u':
		return p.hexEscape(b, 4)
	case 'U':
		return p.hexEscape(b, 8)
	default:
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (p *literalParser) hexEscape(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.errorf("short hex escape")
	}
	code, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return p.errorf("bad hex escape")
	}
	b.WriteRune(rune(code))
	p.pos += digits
	return nil
}

func (p *literalParser) number() (any, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' || c == '_' {
			p.pos++
			continue
		}
		break
	}

	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("bad number %q", text)
	}
	return f, nil
}

func (p *literalParser) keyword() (any, error) {
	for _, kw := range []struct {
		text  string
		value any
	}{
		{"True", true},
		{"False", false},
		{"None", nil},
	} {
		if strings.HasPrefix(p.src[p.pos:], kw.text) {
			p.pos += len(kw.text)
			return kw.value, nil
		}
	}
	return nil, p.errorf("unexpected token")
}

// stringList parses a list cell into its string elements. Non-string
// elements are formatted, malformed cells give an empty slice.
func stringList(raw string) []string {
	items, err := parseListLiteral(raw)
	if err != nil {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case nil:
			continue
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

// numberValue converts a parsed literal or a numeric string to float64.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
