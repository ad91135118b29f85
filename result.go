package pcre4j

import (
	"fmt"
	"iter"

	"github.com/alexey-pelykh/pcre4j-sub002/internal/offsets"
)

// MatchResult is an immutable snapshot of one match. Unlike the Matcher it
// was taken from, it stays valid after further searches and is safe to read
// from multiple goroutines.
type MatchResult struct {
	subject string
	om      *offsets.Map
	groups  []int
	count   int
	names   map[string]int
	mark    string
}

// snapshot captures the current match; callers must have verified the state.
func (m *Matcher) snapshot() *MatchResult {
	return &MatchResult{
		subject: m.subject,
		om:      m.om,
		groups:  append([]int(nil), m.groups...),
		count:   m.pat.groups,
		names:   m.pat.names,
		mark:    m.mark,
	}
}

// ToMatchResult returns an immutable snapshot of the current match.
func (m *Matcher) ToMatchResult() (*MatchResult, error) {
	if err := m.checkMatch(); err != nil {
		return nil, err
	}
	return m.snapshot(), nil
}

func (r *MatchResult) checkGroup(n int) error {
	if n < 0 || n > r.count {
		return fmt.Errorf("%w: %d", ErrNoSuchGroup, n)
	}
	return nil
}

// Start returns the start offset of group n, in code units. A group that did
// not participate reports -1.
func (r *MatchResult) Start(n int) (int, error) {
	if err := r.checkGroup(n); err != nil {
		return -1, err
	}
	return r.groups[2*n], nil
}

// End returns the end offset of group n, in code units. A group that did not
// participate reports -1.
func (r *MatchResult) End(n int) (int, error) {
	if err := r.checkGroup(n); err != nil {
		return -1, err
	}
	return r.groups[2*n+1], nil
}

// Group returns the text captured by group n, group 0 being the whole match.
// A non-participating group returns "" with no error.
func (r *MatchResult) Group(n int) (string, error) {
	start, err := r.Start(n)
	if err != nil {
		return "", err
	}
	if start < 0 {
		return "", nil
	}
	return r.subject[r.om.ByteOffset(start):r.om.ByteOffset(r.groups[2*n+1])], nil
}

func (r *MatchResult) groupIndex(name string) (int, error) {
	if idx, ok := r.names[name]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNoSuchGroup, name)
}

// StartNamed is Start for a named group.
func (r *MatchResult) StartNamed(name string) (int, error) {
	idx, err := r.groupIndex(name)
	if err != nil {
		return -1, err
	}
	return r.Start(idx)
}

// EndNamed is End for a named group.
func (r *MatchResult) EndNamed(name string) (int, error) {
	idx, err := r.groupIndex(name)
	if err != nil {
		return -1, err
	}
	return r.End(idx)
}

// GroupNamed is Group for a named group.
func (r *MatchResult) GroupNamed(name string) (string, error) {
	idx, err := r.groupIndex(name)
	if err != nil {
		return "", err
	}
	return r.Group(idx)
}

// GroupCount returns the number of capturing groups, excluding group 0.
func (r *MatchResult) GroupCount() int { return r.count }

// Mark returns the out-of-band marker string set by the match, or "".
func (r *MatchResult) Mark() string { return r.mark }

// Results returns an iterator over all matches in the subject, as immutable
// snapshots. The matcher is reset first; each step advances it with Find, so
// the sequence observes the region and anchoring settings in effect.
//
// A fatal engine condition is yielded as the final pair's error with a nil
// result, after which the sequence stops.
func (m *Matcher) Results() iter.Seq2[*MatchResult, error] {
	return func(yield func(*MatchResult, error) bool) {
		m.Reset()
		for {
			ok, err := m.Find()
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}
			if !yield(m.snapshot(), nil) {
				return
			}
		}
	}
}
