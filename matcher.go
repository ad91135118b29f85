package pcre4j

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/alexey-pelykh/pcre4j-sub002/engine"
	"github.com/alexey-pelykh/pcre4j-sub002/internal/offsets"
)

// matchState tracks where the matcher is in its search lifecycle.
type matchState uint8

const (
	stateFresh   matchState = iota // no attempt yet
	stateNoMatch                   // last attempt failed
	stateMatch                     // last attempt succeeded, captures valid
)

// Matcher performs match operations on a subject by interpreting a Pattern.
//
// All positions are UTF-16 code-unit offsets into the subject. Matching is
// confined to the region, [RegionStart, RegionEnd), which defaults to the
// whole subject.
//
// A Matcher is stateful and not safe for concurrent use; create one per
// goroutine from the shared Pattern. Close releases the matcher's engine
// scratch resources.
type Matcher struct {
	pat *Pattern

	subject string // NFD form of the caller's subject under CanonEq
	bytes   []byte
	om      *offsets.Map

	scratch engine.Scratch

	regionStart int // code units
	regionEnd   int
	anchoring   bool // region bounds act as true string bounds for ^ and $
	partialOK   bool
	partialHit  bool

	state  matchState
	groups []int // 2*(GroupCount()+1) code-unit offsets; -1 pairs for absent groups
	mark   string
	first  int // start of current match, -1 when none
	last   int // end of most recent match; next Find resumes here

	appendPos int // code units; monotonic within one append sequence
}

// Matcher creates a matcher for subject. Under CanonEq the subject is
// normalized to NFD first, and all reported offsets refer to the normalized
// text.
func (p *Pattern) Matcher(subject string) (*Matcher, error) {
	scratch, err := p.codes[anchorNone].NewScratch()
	if err != nil {
		return nil, fmt.Errorf("pcre4j: matcher: %w", err)
	}
	m := &Matcher{pat: p, scratch: scratch, anchoring: true}
	m.setSubject(subject)
	return m, nil
}

func (m *Matcher) setSubject(subject string) {
	if m.pat.flags&CanonEq != 0 {
		subject = norm.NFD.String(subject)
	}
	m.subject = subject
	m.bytes = []byte(subject)
	m.om = offsets.NewMap(subject)
	m.clearState()
}

// clearState discards match state, restores the full-subject region, and
// rewinds the append cursor.
func (m *Matcher) clearState() {
	m.regionStart = 0
	m.regionEnd = m.om.Units()
	m.state = stateFresh
	m.groups = nil
	m.mark = ""
	m.first = -1
	m.last = 0
	m.appendPos = 0
	m.partialHit = false
}

// slice returns the subject text between two code-unit offsets.
func (m *Matcher) slice(fromUnit, toUnit int) string {
	return m.subject[m.om.ByteOffset(fromUnit):m.om.ByteOffset(toUnit)]
}

// Pattern returns the pattern the matcher currently interprets.
func (m *Matcher) Pattern() *Pattern { return m.pat }

// Subject returns the subject text the matcher operates on (the normalized
// form under CanonEq).
func (m *Matcher) Subject() string { return m.subject }

// Close releases the matcher's engine scratch resources. Idempotent.
func (m *Matcher) Close() error {
	if m.scratch != nil {
		m.scratch.Release()
		m.scratch = nil
	}
	return nil
}

// Reset discards match state, restores the full-subject region, and rewinds
// the append cursor.
func (m *Matcher) Reset() {
	m.clearState()
}

// ResetSubject resets the matcher with a new subject.
func (m *Matcher) ResetSubject(subject string) {
	m.setSubject(subject)
}

// UsePattern swaps the pattern the matcher interprets, rebuilding the
// per-matcher engine resources. The position in the subject, the region,
// and the append cursor are maintained; match state is discarded.
func (m *Matcher) UsePattern(p *Pattern) error {
	if p == nil {
		return errors.New("pcre4j: nil pattern")
	}
	scratch, err := p.codes[anchorNone].NewScratch()
	if err != nil {
		return fmt.Errorf("pcre4j: use pattern: %w", err)
	}
	if m.scratch != nil {
		m.scratch.Release()
	}
	m.scratch = scratch
	m.pat = p
	m.state = stateFresh
	m.groups = nil
	m.mark = ""
	m.first = -1
	m.partialHit = false
	return nil
}

// Region confines matching to [start, end) and discards match state.
//
// The engine only ever sees the region's bytes, never the text around it,
// so boundary-sensitive constructs such as \b and lookbehind cannot observe
// characters outside the region (no "transparent bounds").
func (m *Matcher) Region(start, end int) error {
	if start < 0 || start > end || end > m.om.Units() {
		return fmt.Errorf("%w: region [%d,%d) of %d code units", ErrOutOfRange, start, end, m.om.Units())
	}
	m.clearState()
	m.regionStart = start
	m.regionEnd = end
	return nil
}

// RegionStart returns the region's start, in code units.
func (m *Matcher) RegionStart() int { return m.regionStart }

// RegionEnd returns the region's end, in code units.
func (m *Matcher) RegionEnd() int { return m.regionEnd }

// UseAnchoringBounds toggles anchoring bounds: when on (the default), the
// region boundaries behave as true string boundaries for ^ and $; when off,
// they are ordinary positions. Takes effect on the next search.
func (m *Matcher) UseAnchoringBounds(b bool) {
	m.anchoring = b
}

// HasAnchoringBounds reports whether anchoring bounds are in effect.
func (m *Matcher) HasAnchoringBounds() bool { return m.anchoring }

// UsePartialMatching toggles partial-match reporting. When on, a search that
// reaches the end of the region while a match is still possible fails as
// usual but HasPartialMatch reports true afterwards.
func (m *Matcher) UsePartialMatching(b bool) {
	m.partialOK = b
}

// HasPartialMatch reports whether the most recent failed search ended in a
// partial match. Only meaningful when partial matching is enabled.
func (m *Matcher) HasPartialMatch() bool { return m.partialHit }

// Find searches for the next match of the pattern, resuming after the
// previous match; a zero-length match is resumed one code unit later so
// repeated calls always make progress.
func (m *Matcher) Find() (bool, error) {
	next := m.last
	if next == m.first {
		// Previous match was zero-length. Advance one code unit; when that
		// lands on the low surrogate of a pair it maps to the same byte
		// position, so step over it to guarantee progress.
		next++
		if next < m.om.Units() && m.om.ByteOffset(next) == m.om.ByteOffset(next-1) {
			next++
		}
	}
	if next < m.regionStart {
		next = m.regionStart
	}
	if next > m.regionEnd {
		m.toNoMatch()
		return false, nil
	}
	return m.search(next, anchorNone)
}

// FindAt resets the matcher (including the region) and searches from the
// given code-unit offset.
func (m *Matcher) FindAt(start int) (bool, error) {
	if start < 0 || start > m.om.Units() {
		return false, fmt.Errorf("%w: find start %d of %d code units", ErrOutOfRange, start, m.om.Units())
	}
	m.clearState()
	return m.search(start, anchorNone)
}

// LookingAt reports whether the pattern matches at the beginning of the
// region. The match need not reach the region end.
func (m *Matcher) LookingAt() (bool, error) {
	return m.search(m.regionStart, anchorStart)
}

// Matches reports whether the pattern matches the region in its entirety.
func (m *Matcher) Matches() (bool, error) {
	return m.search(m.regionStart, anchorBoth)
}

// search runs one engine call over the region-limited subject and installs
// the outcome as the new match state.
func (m *Matcher) search(from int, mode anchorMode) (bool, error) {
	code, opts := m.pat.codeFor(mode)
	if !m.anchoring {
		// Region edges are ordinary positions: tell the engine they are
		// not line boundaries unless they coincide with the true subject
		// bounds.
		if m.regionStart > 0 {
			opts |= engine.MatchNotBOL
		}
		if m.regionEnd < m.om.Units() {
			opts |= engine.MatchNotEOL
		}
	}
	if m.partialOK {
		opts |= engine.MatchPartialSoft
	}

	regionStartByte := m.om.ByteOffset(m.regionStart)
	regionEndByte := m.om.ByteOffset(m.regionEnd)
	startByte := m.om.ByteOffset(from) - regionStartByte

	m.partialHit = false
	out, err := code.Match(m.bytes[regionStartByte:regionEndByte], startByte, opts, m.scratch)
	if err != nil {
		m.toNoMatch()
		return false, &EngineError{Err: err}
	}

	switch out.Kind {
	case engine.Matched:
		n := m.pat.groups + 1
		groups := make([]int, 2*n)
		for i := 0; i < n; i++ {
			pair := engine.Pair{Start: engine.Unset, End: engine.Unset}
			if i < len(out.Pairs) {
				pair = out.Pairs[i]
			}
			if !pair.Participated() {
				groups[2*i], groups[2*i+1] = -1, -1
				continue
			}
			groups[2*i] = m.om.UnitOffset(regionStartByte + pair.Start)
			groups[2*i+1] = m.om.UnitOffset(regionStartByte + pair.End)
		}
		m.groups = groups
		m.first = groups[0]
		m.last = groups[1]
		m.mark = out.Mark
		m.state = stateMatch
		return true, nil
	case engine.Partial:
		m.partialHit = true
		m.toNoMatch()
		return false, nil
	default:
		m.toNoMatch()
		return false, nil
	}
}

// toNoMatch invalidates capture state but keeps the resume position, so a
// later Find picks up where the last successful match ended.
func (m *Matcher) toNoMatch() {
	m.state = stateNoMatch
	m.groups = nil
	m.mark = ""
	m.first = -1
}

func (m *Matcher) checkMatch() error {
	if m.state != stateMatch {
		return ErrNoMatch
	}
	return nil
}

func (m *Matcher) checkGroup(n int) error {
	if n < 0 || n > m.pat.groups {
		return fmt.Errorf("%w: %d", ErrNoSuchGroup, n)
	}
	return nil
}

func (m *Matcher) groupIndex(name string) (int, error) {
	if idx, ok := m.pat.names[name]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNoSuchGroup, name)
}

// Start returns the start offset of group n in the current match, group 0
// being the whole match. A group that did not participate reports -1.
func (m *Matcher) Start(n int) (int, error) {
	if err := m.checkMatch(); err != nil {
		return -1, err
	}
	if err := m.checkGroup(n); err != nil {
		return -1, err
	}
	return m.groups[2*n], nil
}

// End returns the end offset of group n in the current match. A group that
// did not participate reports -1.
func (m *Matcher) End(n int) (int, error) {
	if err := m.checkMatch(); err != nil {
		return -1, err
	}
	if err := m.checkGroup(n); err != nil {
		return -1, err
	}
	return m.groups[2*n+1], nil
}

// Group returns the text captured by group n in the current match, group 0
// being the whole match. A group that participated but captured empty text
// returns ""; a group that did not participate at all also returns "" with
// no error, distinguishable via Start(n) == -1.
func (m *Matcher) Group(n int) (string, error) {
	start, err := m.Start(n)
	if err != nil {
		return "", err
	}
	if start < 0 {
		return "", nil
	}
	end, _ := m.End(n)
	return m.slice(start, end), nil
}

// StartNamed is Start for a named group.
func (m *Matcher) StartNamed(name string) (int, error) {
	idx, err := m.groupIndex(name)
	if err != nil {
		return -1, err
	}
	return m.Start(idx)
}

// EndNamed is End for a named group.
func (m *Matcher) EndNamed(name string) (int, error) {
	idx, err := m.groupIndex(name)
	if err != nil {
		return -1, err
	}
	return m.End(idx)
}

// GroupNamed is Group for a named group.
func (m *Matcher) GroupNamed(name string) (string, error) {
	idx, err := m.groupIndex(name)
	if err != nil {
		return "", err
	}
	return m.Group(idx)
}

// GroupCount returns the number of capturing groups in the matcher's
// pattern, excluding group 0.
func (m *Matcher) GroupCount() int { return m.pat.groups }

// NamedGroups returns the pattern's name to group-index table. The returned
// map is shared and must not be modified.
func (m *Matcher) NamedGroups() map[string]int { return m.pat.names }

// Mark returns the out-of-band marker string set by the current match, or
// "" when the pattern set none.
func (m *Matcher) Mark() string { return m.mark }
