package pcre4j

import (
	"errors"
	"testing"
)

func TestToMatchResultRequiresMatch(t *testing.T) {
	_, m := mustMatcher(t, `a`, "a", 0)
	if _, err := m.ToMatchResult(); !errors.Is(err, ErrNoMatch) {
		t.Errorf("ToMatchResult before Find: err = %v, want ErrNoMatch", err)
	}
}

func TestMatchResultSurvivesFurtherSearches(t *testing.T) {
	_, m := mustMatcher(t, `\w+`, "one two", 0)
	if ok, err := m.Find(); err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	r, err := m.ToMatchResult()
	if err != nil {
		t.Fatalf("ToMatchResult: %v", err)
	}

	if ok, err := m.Find(); err != nil || !ok {
		t.Fatalf("second Find = %v, %v", ok, err)
	}
	// The matcher moved on; the snapshot did not.
	if g, _ := m.Group(0); g != "two" {
		t.Errorf("matcher Group(0) = %q, want %q", g, "two")
	}
	if g, _ := r.Group(0); g != "one" {
		t.Errorf("snapshot Group(0) = %q, want %q", g, "one")
	}
	if start, _ := r.Start(0); start != 0 {
		t.Errorf("snapshot Start(0) = %d, want 0", start)
	}
	if end, _ := r.End(0); end != 3 {
		t.Errorf("snapshot End(0) = %d, want 3", end)
	}
}

func TestMatchResultGroups(t *testing.T) {
	_, m := mustMatcher(t, `(?P<k>\w+)=(\w+)|(z)`, "a=1", 0)
	if ok, err := m.Find(); err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	r, err := m.ToMatchResult()
	if err != nil {
		t.Fatalf("ToMatchResult: %v", err)
	}

	if got := r.GroupCount(); got != 3 {
		t.Errorf("GroupCount() = %d, want 3", got)
	}
	if g, err := r.GroupNamed("k"); err != nil || g != "a" {
		t.Errorf("GroupNamed(k) = %q, %v, want %q", g, err, "a")
	}
	if start, err := r.StartNamed("k"); err != nil || start != 0 {
		t.Errorf("StartNamed(k) = %d, %v, want 0", start, err)
	}
	if end, err := r.EndNamed("k"); err != nil || end != 1 {
		t.Errorf("EndNamed(k) = %d, %v, want 1", end, err)
	}
	if _, err := r.StartNamed("nope"); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("StartNamed(nope) err = %v, want ErrNoSuchGroup", err)
	}
	if _, err := r.EndNamed("nope"); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("EndNamed(nope) err = %v, want ErrNoSuchGroup", err)
	}
	if start, err := r.Start(3); err != nil || start != -1 {
		t.Errorf("Start(3) = %d, %v, want -1, nil", start, err)
	}
	if g, err := r.Group(3); err != nil || g != "" {
		t.Errorf("Group(3) = %q, %v, want empty, nil", g, err)
	}
	if _, err := r.Group(9); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("Group(9) err = %v, want ErrNoSuchGroup", err)
	}
	if _, err := r.GroupNamed("nope"); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("GroupNamed(nope) err = %v, want ErrNoSuchGroup", err)
	}
}

func TestResultsIteration(t *testing.T) {
	_, m := mustMatcher(t, `\w+`, "a bb ccc", 0)
	var got []string
	for r, err := range m.Results() {
		if err != nil {
			t.Fatalf("Results: %v", err)
		}
		g, _ := r.Group(0)
		got = append(got, g)
	}
	want := []string{"a", "bb", "ccc"}
	if len(got) != len(want) {
		t.Fatalf("Results yielded %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResultsRestartsFromBeginning(t *testing.T) {
	_, m := mustMatcher(t, `a`, "aa", 0)
	if ok, err := m.Find(); err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	n := 0
	for _, err := range m.Results() {
		if err != nil {
			t.Fatalf("Results: %v", err)
		}
		n++
	}
	if n != 2 {
		t.Errorf("Results after a prior Find yielded %d matches, want 2", n)
	}
}

func TestResultsEarlyBreak(t *testing.T) {
	_, m := mustMatcher(t, `\w+`, "a bb ccc", 0)
	n := 0
	for _, err := range m.Results() {
		if err != nil {
			t.Fatalf("Results: %v", err)
		}
		n++
		if n == 1 {
			break
		}
	}
	if n != 1 {
		t.Errorf("broke after %d results, want 1", n)
	}
	// The matcher still works after an abandoned iteration.
	if ok, err := m.Find(); err != nil || !ok {
		t.Errorf("Find after break = %v, %v, want a match", ok, err)
	}
}
