// Package native adapts the standard library regexp engine to the backend
// capability set, as a pure-Go fallback that needs no shared library.
//
// The backend is capability-reduced and fails loudly where it cannot comply:
//
//   - CompileExtended is not expressible in RE2 syntax and is rejected.
//   - MatchNotBOL, MatchNotEOL, and MatchPartialSoft are rejected at match
//     time.
//   - A non-zero start offset is emulated by re-slicing the subject, so
//     position-sensitive constructs (\b, ^, lookbehind-free anchors) observe
//     the slice start instead of the true position. Use the pcre2 backend
//     when exact continuation semantics matter.
//   - CompileNewlineLF is accepted as a no-op: RE2's multiline mode only
//     recognizes \n anyway, which makes the LF convention the only one this
//     backend can offer.
//
// Match semantics are RE2 leftmost-first per Go's regexp package.
package native

import (
	"fmt"
	"regexp"

	"github.com/alexey-pelykh/pcre4j-sub002/engine"
)

func init() {
	err := engine.Register("native", func() (engine.Engine, error) {
		return New(), nil
	})
	if err != nil {
		panic(err.Error())
	}
}

// Engine is the stdlib regexp backend.
type Engine struct{}

// New returns the backend. Construction cannot fail.
func New() *Engine { return &Engine{} }

// Name implements engine.Engine.
func (e *Engine) Name() string { return "native" }

// Compile implements engine.Engine. Flags are rendered as inline (?flags)
// prefixes and anchoring as a \A(?:...)\z wrap, so all three anchor-mode
// variants compile without match-time options.
func (e *Engine) Compile(pattern []byte, opts engine.CompileOptions) (engine.Pattern, error) {
	if opts&engine.CompileExtended != 0 {
		return nil, fmt.Errorf("native: extended pattern syntax: %w", engine.ErrUnsupportedOption)
	}

	expr := string(pattern)
	if opts&engine.CompileLiteral != 0 {
		expr = regexp.QuoteMeta(expr)
	}

	var inline string
	if opts&engine.CompileCaseless != 0 {
		inline += "i"
	}
	if opts&engine.CompileMultiline != 0 {
		inline += "m"
	}
	if opts&engine.CompileDotAll != 0 {
		inline += "s"
	}
	if inline != "" {
		expr = "(?" + inline + ")" + expr
	}

	if opts&engine.CompileAnchored != 0 {
		expr = `\A(?:` + expr + `)`
		if opts&engine.CompileEndAnchored != 0 {
			expr += `\z`
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &engine.CompileError{Message: err.Error(), Offset: -1}
	}

	var names map[string]int
	for i, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		if names == nil {
			names = make(map[string]int)
		}
		names[name] = i
	}

	return &code{re: re, names: names}, nil
}

// code is a compiled stdlib pattern.
type code struct {
	re    *regexp.Regexp
	names map[string]int
}

// Match implements engine.Pattern.
func (c *code) Match(subject []byte, start int, opts engine.MatchOptions, _ engine.Scratch) (engine.Outcome, error) {
	if opts != 0 {
		return engine.Outcome{}, fmt.Errorf("native: match options %#x: %w", uint32(opts), engine.ErrUnsupportedOption)
	}
	if start < 0 || start > len(subject) {
		return engine.Outcome{Kind: engine.NoMatch}, nil
	}

	loc := c.re.FindSubmatchIndex(subject[start:])
	if loc == nil {
		return engine.Outcome{Kind: engine.NoMatch}, nil
	}

	pairs := make([]engine.Pair, len(loc)/2)
	for i := range pairs {
		if loc[2*i] < 0 {
			pairs[i] = engine.Pair{Start: engine.Unset, End: engine.Unset}
			continue
		}
		pairs[i] = engine.Pair{Start: start + loc[2*i], End: start + loc[2*i+1]}
	}
	return engine.Outcome{Kind: engine.Matched, Pairs: pairs}, nil
}

// NewScratch implements engine.Pattern. The stdlib engine manages its own
// per-call state, so the scratch is a placeholder.
func (c *code) NewScratch() (engine.Scratch, error) { return noScratch{}, nil }

// GroupCount implements engine.Pattern.
func (c *code) GroupCount() int { return c.re.NumSubexp() }

// GroupNames implements engine.Pattern.
func (c *code) GroupNames() map[string]int { return c.names }

// Release implements engine.Pattern. No native resources to free.
func (c *code) Release() {}

type noScratch struct{}

func (noScratch) Release() {}
