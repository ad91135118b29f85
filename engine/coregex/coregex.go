// Package coregex adapts the coregex engine to the backend capability set.
//
// coregex compiles stdlib-compatible pattern syntax into its own NFA/DFA
// strategies, so the backend renders options exactly like the native one:
// flags as inline (?flags) prefixes and anchoring as a \A(?:...)\z wrap.
// The capability reductions also mirror the native backend:
//
//   - CompileExtended is not expressible and is rejected.
//   - MatchNotBOL, MatchNotEOL, and MatchPartialSoft are rejected at match
//     time.
//   - A non-zero start offset is emulated by re-slicing the subject, so
//     position-sensitive constructs observe the slice start instead of the
//     true position.
//   - CompileNewlineLF is accepted as a no-op; \n is the only line
//     terminator coregex recognizes.
//
// Match semantics are leftmost-longest, which can pick a different (longer)
// match than a backtracking engine would for the same pattern.
package coregex

import (
	"fmt"
	"regexp"

	cre "github.com/coregx/coregex"

	"github.com/alexey-pelykh/pcre4j-sub002/engine"
)

func init() {
	err := engine.Register("coregex", func() (engine.Engine, error) {
		return New(), nil
	})
	if err != nil {
		panic(err.Error())
	}
}

// Engine is the coregex backend.
type Engine struct{}

// New returns the backend. Construction cannot fail.
func New() *Engine { return &Engine{} }

// Name implements engine.Engine.
func (e *Engine) Name() string { return "coregex" }

// Compile implements engine.Engine.
func (e *Engine) Compile(pattern []byte, opts engine.CompileOptions) (engine.Pattern, error) {
	if opts&engine.CompileExtended != 0 {
		return nil, fmt.Errorf("coregex: extended pattern syntax: %w", engine.ErrUnsupportedOption)
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

	re, err := cre.Compile(expr)
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

// code is a compiled coregex pattern.
type code struct {
	re    *cre.Regex
	names map[string]int
}

// Match implements engine.Pattern.
func (c *code) Match(subject []byte, start int, opts engine.MatchOptions, _ engine.Scratch) (engine.Outcome, error) {
	if opts != 0 {
		return engine.Outcome{}, fmt.Errorf("coregex: match options %#x: %w", uint32(opts), engine.ErrUnsupportedOption)
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

// NewScratch implements engine.Pattern. coregex pools its per-search state
// internally, so the scratch is a placeholder.
func (c *code) NewScratch() (engine.Scratch, error) { return noScratch{}, nil }

// GroupCount implements engine.Pattern. coregex counts the whole match as a
// capture, so one is subtracted to match the capability contract.
func (c *code) GroupCount() int {
	n := c.re.NumSubexp()
	if n > 0 {
		n--
	}
	return n
}

// GroupNames implements engine.Pattern.
func (c *code) GroupNames() map[string]int { return c.names }

// Release implements engine.Pattern. No native resources to free.
func (c *code) Release() {}

type noScratch struct{}

func (noScratch) Release() {}
