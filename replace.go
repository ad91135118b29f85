package pcre4j

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// AppendReplacement appends to dst the subject text between the end of the
// previous append and the start of the current match, followed by the
// expansion of the replacement template. It requires a current match.
//
// The template grammar: $N references group N, where N is the longest run
// of digits that still names an existing group; ${name} references a named
// group, or a numbered one when name starts with a digit; a backslash
// escapes the following character. Non-participating groups expand to
// nothing. On a template error dst may already hold partial output.
func (m *Matcher) AppendReplacement(dst *strings.Builder, template string) error {
	if err := m.checkMatch(); err != nil {
		return err
	}
	if m.appendPos > m.first {
		return fmt.Errorf("%w: append position %d past match start %d", ErrOutOfRange, m.appendPos, m.first)
	}
	dst.WriteString(m.slice(m.appendPos, m.first))
	if err := m.expandTemplate(dst, template); err != nil {
		return err
	}
	m.appendPos = m.last
	return nil
}

// AppendTail appends the subject text remaining after the last append,
// through the end of the region, and returns dst.
func (m *Matcher) AppendTail(dst *strings.Builder) *strings.Builder {
	if m.appendPos < m.regionEnd {
		dst.WriteString(m.slice(m.appendPos, m.regionEnd))
	}
	return dst
}

// expandTemplate writes the template's expansion against the current match
// into dst.
func (m *Matcher) expandTemplate(dst *strings.Builder, template string) error {
	for i := 0; i < len(template); {
		switch template[i] {
		case '\\':
			if i+1 >= len(template) {
				return fmt.Errorf("%w: trailing backslash", ErrBadTemplate)
			}
			r, size := utf8.DecodeRuneInString(template[i+1:])
			dst.WriteRune(r)
			i += 1 + size
		case '$':
			n, err := m.expandRef(dst, template[i+1:])
			if err != nil {
				return err
			}
			i += 1 + n
		default:
			dst.WriteByte(template[i])
			i++
		}
	}
	return nil
}

// expandRef expands one group reference, s being the template text after the
// $, and returns how much of s was consumed.
func (m *Matcher) expandRef(dst *strings.Builder, s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: lone $ at end of template", ErrBadTemplate)
	}

	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, fmt.Errorf("%w: unterminated ${", ErrBadTemplate)
		}
		name := s[1:end]
		if name == "" {
			return 0, fmt.Errorf("%w: empty ${} reference", ErrBadTemplate)
		}
		if name[0] >= '0' && name[0] <= '9' {
			g := 0
			for i := 0; i < len(name); i++ {
				d := name[i]
				if d < '0' || d > '9' {
					return 0, fmt.Errorf("%w: malformed group reference ${%s}", ErrBadTemplate, name)
				}
				g = g*10 + int(d-'0')
			}
			if g > m.pat.groups {
				return 0, fmt.Errorf("%w: ${%d}", ErrNoSuchGroup, g)
			}
			m.appendGroup(dst, g)
			return end + 1, nil
		}
		idx, ok := m.pat.names[name]
		if !ok {
			return 0, fmt.Errorf("%w: ${%s}", ErrNoSuchGroup, name)
		}
		m.appendGroup(dst, idx)
		return end + 1, nil
	}

	if s[0] < '0' || s[0] > '9' {
		return 0, fmt.Errorf("%w: unexpected %q after $", ErrBadTemplate, s[0])
	}

	// Consume digits greedily, but only while the number still names an
	// existing group: with two groups, $12 is group 1 followed by "2".
	g := int(s[0] - '0')
	n := 1
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		next := g*10 + int(s[n]-'0')
		if next > m.pat.groups {
			break
		}
		g = next
		n++
	}
	if g > m.pat.groups {
		return 0, fmt.Errorf("%w: $%d", ErrNoSuchGroup, g)
	}
	m.appendGroup(dst, g)
	return n, nil
}

// appendGroup writes group g's captured text; non-participating groups write
// nothing.
func (m *Matcher) appendGroup(dst *strings.Builder, g int) {
	start := m.groups[2*g]
	if start < 0 {
		return
	}
	dst.WriteString(m.slice(start, m.groups[2*g+1]))
}

// replace rewrites up to limit matches (all when limit < 0) using repl to
// produce each substitution, inserted literally.
func (m *Matcher) replace(repl func(*MatchResult) string, limit int) (string, error) {
	m.Reset()
	var b strings.Builder
	for n := 0; limit < 0 || n < limit; n++ {
		ok, err := m.Find()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		b.WriteString(m.slice(m.appendPos, m.first))
		b.WriteString(repl(m.snapshot()))
		m.appendPos = m.last
	}
	m.AppendTail(&b)
	return b.String(), nil
}

// replaceTemplate rewrites up to limit matches using a replacement template.
func (m *Matcher) replaceTemplate(template string, limit int) (string, error) {
	m.Reset()
	var b strings.Builder
	for n := 0; limit < 0 || n < limit; n++ {
		ok, err := m.Find()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if err := m.AppendReplacement(&b, template); err != nil {
			return "", err
		}
	}
	m.AppendTail(&b)
	return b.String(), nil
}

// ReplaceAll returns the subject with every match of the pattern replaced by
// the expansion of template. The matcher is reset before and left past the
// last match after.
func (m *Matcher) ReplaceAll(template string) (string, error) {
	return m.replaceTemplate(template, -1)
}

// ReplaceFirst returns the subject with the first match of the pattern
// replaced by the expansion of template.
func (m *Matcher) ReplaceFirst(template string) (string, error) {
	return m.replaceTemplate(template, 1)
}

// ReplaceAllFunc returns the subject with every match replaced by the result
// of repl. The replacement is inserted literally; no template expansion is
// applied to it.
func (m *Matcher) ReplaceAllFunc(repl func(*MatchResult) string) (string, error) {
	return m.replace(repl, -1)
}

// ReplaceFirstFunc returns the subject with the first match replaced by the
// result of repl, inserted literally.
func (m *Matcher) ReplaceFirstFunc(repl func(*MatchResult) string) (string, error) {
	return m.replace(repl, 1)
}
