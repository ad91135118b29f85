// Package engine defines the capability set a byte-oriented match engine
// provides to the matching layer: compile a pattern into an opaque handle,
// run a match from a byte offset, and release the handle.
//
// Backends register themselves by name (see Register) from their package
// init functions; callers pick a backend explicitly, either by constructing
// one directly or by looking it up with New. There is no process-wide
// default engine.
//
// All offsets at this boundary are byte offsets into the UTF-8 subject.
// Translation to caller-visible code-unit offsets happens above this layer.
package engine

// CompileOptions selects pattern compilation behavior. A backend that cannot
// honor a requested option must fail the compile with ErrUnsupportedOption
// rather than silently ignore it, except where its package documentation
// states an accepted divergence.
type CompileOptions uint32

const (
	// CompileCaseless makes matching case-insensitive.
	CompileCaseless CompileOptions = 1 << iota
	// CompileMultiline lets ^ and $ match at line boundaries.
	CompileMultiline
	// CompileDotAll lets . match line terminators.
	CompileDotAll
	// CompileExtended ignores unescaped whitespace and # comments in the
	// pattern.
	CompileExtended
	// CompileLiteral treats the whole pattern as literal text.
	CompileLiteral
	// CompileUCP applies Unicode semantics to \w, \d, \b and friends.
	CompileUCP
	// CompileNewlineLF recognizes only \n as a line terminator; the default
	// convention treats any Unicode line terminator as one.
	CompileNewlineLF
	// CompileAnchored anchors the match at the start offset.
	CompileAnchored
	// CompileEndAnchored additionally anchors the match at the subject end.
	CompileEndAnchored
)

// MatchOptions adjust a single match call.
type MatchOptions uint32

const (
	// MatchNotBOL states that the subject start is not the beginning of a
	// line, suppressing ^ there.
	MatchNotBOL MatchOptions = 1 << iota
	// MatchNotEOL states that the subject end is not the end of a line,
	// suppressing $ there.
	MatchNotEOL
	// MatchAnchored anchors this call at the start offset. Used as the
	// fallback when no start-anchored compiled variant exists.
	MatchAnchored
	// MatchEndAnchored anchors this call at the subject end.
	MatchEndAnchored
	// MatchPartialSoft reports a partial match (matched up to the end of
	// input but could continue) as Partial instead of NoMatch.
	MatchPartialSoft
)

// Kind classifies a match outcome.
type Kind uint8

const (
	// NoMatch means the pattern does not match at or after the start offset.
	NoMatch Kind = iota
	// Matched means a match was found and Pairs holds the capture vector.
	Matched
	// Partial means the subject ended while a match was still possible.
	Partial
)

func (k Kind) String() string {
	switch k {
	case NoMatch:
		return "no match"
	case Matched:
		return "matched"
	case Partial:
		return "partial match"
	}
	return "unknown"
}

// Unset marks a capture pair for a group that did not participate in the
// match.
const Unset = -1

// Pair is a half-open [Start,End) byte range, or {Unset,Unset} for a group
// that did not participate.
type Pair struct {
	Start, End int
}

// Participated reports whether the group captured anything. A group that
// matched empty text participates with Start == End.
func (p Pair) Participated() bool {
	return p.Start != Unset
}

// Outcome is the normalized result of one match call.
type Outcome struct {
	Kind Kind
	// Pairs holds one pair per group, index 0 being the whole match. Only
	// populated when Kind is Matched.
	Pairs []Pair
	// Mark is the out-of-band marker string set by the pattern, if any.
	Mark string
}

// Engine compiles patterns for one backend.
type Engine interface {
	// Name returns the registry name of the backend.
	Name() string

	// Compile translates pattern into an executable handle. Pattern syntax
	// errors are reported as *CompileError; unsupported options wrap
	// ErrUnsupportedOption.
	Compile(pattern []byte, opts CompileOptions) (Pattern, error)
}

// Pattern is an opaque compiled-pattern handle. It is read-only after
// compilation and may be shared across goroutines, provided every concurrent
// Match call uses its own Scratch.
type Pattern interface {
	// Match runs the pattern over subject starting at the given byte
	// offset. A failed match is an Outcome, not an error; errors are
	// reserved for fatal engine conditions (*Error) and unsupported
	// options.
	Match(subject []byte, start int, opts MatchOptions, scratch Scratch) (Outcome, error)

	// NewScratch allocates the per-session resources Match needs (match
	// data, auxiliary execution stack). A Scratch must never be used by two
	// in-flight calls at once.
	NewScratch() (Scratch, error)

	// GroupCount returns the number of capturing groups, excluding the
	// implicit group 0.
	GroupCount() int

	// GroupNames returns the name to group-index table. The returned map is
	// shared and must not be modified. Nil when the pattern has no named
	// groups.
	GroupNames() map[string]int

	// Release frees the handle. It is idempotent; using the Pattern after
	// Release is undefined.
	Release()
}

// Scratch holds per-session match resources.
type Scratch interface {
	// Release frees the resources. Idempotent.
	Release()
}
