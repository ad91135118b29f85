// Package pcre4j provides a java.util.regex-shaped Pattern/Matcher API over
// pluggable byte-oriented match engines.
//
// The package bridges two indexing schemes: callers address subjects by
// UTF-16 code unit, exactly as java.util.regex does (a supplementary-plane
// character counts as two units), while the engines underneath operate on
// UTF-8 bytes. All offsets accepted and returned by this package — match
// bounds, group bounds, regions, search positions — are code-unit offsets.
//
// Engines are injected explicitly; there is no process-wide default. The
// available backends register themselves under a name when their package is
// imported:
//
//	import (
//	    "github.com/alexey-pelykh/pcre4j-sub002/engine/pcre2"
//	)
//
//	eng, err := pcre2.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := pcre4j.Compile(eng, `(?P<word>\w+)`, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	m, err := p.Matcher("hello world")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//	for ok, err := m.Find(); ok && err == nil; ok, err = m.Find() {
//	    g, _ := m.Group(0)
//	    fmt.Println(g)
//	}
//
// A Pattern is immutable after compilation and safe to share across
// goroutines; each goroutine needs its own Matcher. Compiled-pattern handles
// are native resources: release them with Pattern.Close, and matchers with
// Matcher.Close.
package pcre4j

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/alexey-pelykh/pcre4j-sub002/engine"
)

// Flags select pattern compilation behavior, mirroring the java.util.regex
// flag set.
type Flags uint32

const (
	// CaseInsensitive enables case-insensitive matching.
	CaseInsensitive Flags = 1 << iota
	// Multiline lets ^ and $ match at line boundaries.
	Multiline
	// DotAll lets . match line terminators.
	DotAll
	// Literal treats the whole pattern as literal text.
	Literal
	// Comments permits whitespace and # comments in the pattern.
	Comments
	// UnicodeClasses gives \w, \d, \b and friends Unicode semantics.
	UnicodeClasses
	// UnixLines restricts line terminators to \n.
	UnixLines
	// CanonEq matches by canonical equivalence, approximated by normalizing
	// both pattern and subject to canonical decomposition form (NFD).
	//
	// Known divergences of the approximation: character classes containing
	// precomposed characters, and backreference or alternation patterns
	// whose branches have length-varying canonical equivalents, may not
	// behave as true canonical equivalence would.
	CanonEq
)

func (f Flags) compileOptions() engine.CompileOptions {
	var o engine.CompileOptions
	if f&CaseInsensitive != 0 {
		o |= engine.CompileCaseless
	}
	if f&Multiline != 0 {
		o |= engine.CompileMultiline
	}
	if f&DotAll != 0 {
		o |= engine.CompileDotAll
	}
	if f&Literal != 0 {
		o |= engine.CompileLiteral
	}
	if f&Comments != 0 {
		o |= engine.CompileExtended
	}
	if f&UnicodeClasses != 0 {
		o |= engine.CompileUCP
	}
	if f&UnixLines != 0 {
		o |= engine.CompileNewlineLF
	}
	// CanonEq has no engine option; normalization happens in this layer.
	return o
}

// anchorMode selects which compiled variant a search uses.
type anchorMode int

const (
	anchorNone  anchorMode = iota // Find
	anchorStart                   // LookingAt
	anchorBoth                    // Matches
	anchorModes                   // count
)

func (m anchorMode) matchOptions() engine.MatchOptions {
	switch m {
	case anchorStart:
		return engine.MatchAnchored
	case anchorBoth:
		return engine.MatchAnchored | engine.MatchEndAnchored
	}
	return 0
}

// Pattern is a compiled pattern. It is immutable after compilation; see the
// package documentation for the sharing rules.
type Pattern struct {
	eng   engine.Engine
	expr  string // original pattern text
	text  string // text handed to the engine (NFD form under CanonEq)
	flags Flags

	// codes holds one engine handle per anchor mode. The anchored entries
	// are optional optimizations; a nil entry means the general handle is
	// used with match-time anchor options instead.
	codes [anchorModes]engine.Pattern

	groups int
	names  map[string]int
}

// Compile compiles a pattern for the given engine.
//
// Malformed patterns are reported as *CompileError carrying the pattern
// text, the engine's message, and a code-unit offset into the pattern.
func Compile(eng engine.Engine, expr string, flags Flags) (*Pattern, error) {
	if eng == nil {
		return nil, errors.New("pcre4j: nil engine")
	}

	text := expr
	if flags&CanonEq != 0 {
		text = norm.NFD.String(text)
	}

	opts := flags.compileOptions()
	general, err := eng.Compile([]byte(text), opts)
	if err != nil {
		return nil, compileError(expr, text, err)
	}

	p := &Pattern{
		eng:    eng,
		expr:   expr,
		text:   text,
		flags:  flags,
		groups: general.GroupCount(),
		names:  general.GroupNames(),
	}
	p.codes[anchorNone] = general

	// Anchored variants are optimizations; when the engine cannot compile
	// one, searches fall back to per-call anchor options.
	if c, err := eng.Compile([]byte(text), opts|engine.CompileAnchored); err == nil {
		p.codes[anchorStart] = c
	}
	if c, err := eng.Compile([]byte(text), opts|engine.CompileAnchored|engine.CompileEndAnchored); err == nil {
		p.codes[anchorBoth] = c
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Useful for patterns known
// to be valid at build time.
func MustCompile(eng engine.Engine, expr string, flags Flags) *Pattern {
	p, err := Compile(eng, expr, flags)
	if err != nil {
		panic("pcre4j: Compile(`" + expr + "`): " + err.Error())
	}
	return p
}

// Matches reports whether pattern matches the whole subject. It is a
// convenience for one-off checks; compile the pattern once when matching
// repeatedly.
func Matches(eng engine.Engine, pattern, subject string) (bool, error) {
	p, err := Compile(eng, pattern, 0)
	if err != nil {
		return false, err
	}
	defer p.Close()

	m, err := p.Matcher(subject)
	if err != nil {
		return false, err
	}
	defer m.Close()

	return m.Matches()
}

// Quote returns a pattern that matches s literally, using \Q...\E quoting
// so the result stays literal under every supported engine.
func Quote(s string) string {
	if !strings.Contains(s, `\E`) {
		return `\Q` + s + `\E`
	}

	var b strings.Builder
	b.WriteString(`\Q`)
	for {
		i := strings.Index(s, `\E`)
		if i < 0 {
			b.WriteString(s)
			break
		}
		// End quoting, emit the \E literally, resume quoting.
		b.WriteString(s[:i])
		b.WriteString(`\E\\E\Q`)
		s = s[i+2:]
	}
	b.WriteString(`\E`)
	return b.String()
}

// String returns the original pattern text.
func (p *Pattern) String() string { return p.expr }

// Flags returns the flags the pattern was compiled with.
func (p *Pattern) Flags() Flags { return p.flags }

// GroupCount returns the number of capturing groups in the pattern,
// excluding the implicit group 0 for the whole match.
func (p *Pattern) GroupCount() int { return p.groups }

// NamedGroups returns the name to group-index table. The returned map is
// shared and must not be modified. Nil when the pattern has no named groups.
func (p *Pattern) NamedGroups() map[string]int { return p.names }

// Close releases the pattern's engine handles. It is idempotent. Matchers
// created from the pattern must be closed before the pattern is.
func (p *Pattern) Close() error {
	for _, c := range p.codes {
		if c != nil {
			c.Release()
		}
	}
	return nil
}

// codeFor returns the engine handle for the requested anchor mode, falling
// back to the general handle plus match-time anchor options when the
// specialized variant is absent.
func (p *Pattern) codeFor(mode anchorMode) (engine.Pattern, engine.MatchOptions) {
	if c := p.codes[mode]; c != nil {
		return c, 0
	}
	return p.codes[anchorNone], mode.matchOptions()
}

// Split slices subject around matches of the pattern, with java.util.regex
// limit semantics:
//
//	limit > 0: at most limit substrings, the last being the unsplit rest
//	limit == 0: all substrings, trailing empty strings removed
//	limit < 0: all substrings
//
// A zero-width match at the beginning of the subject never produces a
// leading empty substring.
func (p *Pattern) Split(subject string, limit int) ([]string, error) {
	m, err := p.Matcher(subject)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	var parts []string
	index := 0 // code units
	for {
		ok, err := m.Find()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if limit > 0 && len(parts) == limit-1 {
			break
		}
		start, _ := m.Start(0)
		end, _ := m.End(0)
		if index == 0 && start == 0 && start == end {
			continue
		}
		parts = append(parts, m.slice(index, start))
		index = end
	}

	if index == 0 && parts == nil {
		// No match at all: the whole subject is the single field.
		return []string{subject}, nil
	}
	parts = append(parts, m.slice(index, m.om.Units()))

	if limit == 0 {
		for len(parts) > 0 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
	}
	return parts, nil
}
