package pcre4j

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alexey-pelykh/pcre4j-sub002/engine"
	"github.com/alexey-pelykh/pcre4j-sub002/engine/enginetest"
)

// The tests in this file assert the exact bytes, offsets, and option bits
// the matching layer hands to an engine, using the scripted fake backend.

func TestEngineSeesRegionSliceOnly(t *testing.T) {
	fake := &enginetest.Engine{}
	p := MustCompile(fake, `p`, 0)
	defer p.Close()
	m, err := p.Matcher("hello world")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	if err := m.Region(3, 8); err != nil {
		t.Fatalf("Region: %v", err)
	}
	if _, err := m.Find(); err != nil {
		t.Fatalf("Find: %v", err)
	}

	call := fake.LastCall()
	if call == nil {
		t.Fatal("no match call recorded")
	}
	if want := []byte("lo wo"); !bytes.Equal(call.Subject, want) {
		t.Errorf("engine subject = %q, want %q", call.Subject, want)
	}
	if call.Start != 0 {
		t.Errorf("engine start = %d, want 0 (relative to region)", call.Start)
	}
	if call.Opts != 0 {
		t.Errorf("engine opts = %#x, want 0 with anchoring bounds on", call.Opts)
	}
}

func TestNonAnchoringBoundsSetNotBOLNotEOL(t *testing.T) {
	fake := &enginetest.Engine{}
	p := MustCompile(fake, `p`, 0)
	defer p.Close()
	m, err := p.Matcher("hello world")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	m.UseAnchoringBounds(false)

	// Interior region: both edges are ordinary positions.
	if err := m.Region(3, 8); err != nil {
		t.Fatalf("Region: %v", err)
	}
	if _, err := m.Find(); err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := engine.MatchNotBOL | engine.MatchNotEOL
	if got := fake.LastCall().Opts; got != want {
		t.Errorf("interior region opts = %#x, want %#x", got, want)
	}

	// Region flush with the true subject bounds: no suppression needed.
	if err := m.Region(0, 11); err != nil {
		t.Fatalf("Region: %v", err)
	}
	if _, err := m.Find(); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := fake.LastCall().Opts; got != 0 {
		t.Errorf("full region opts = %#x, want 0", got)
	}
}

func TestAnchoredVariantPreferred(t *testing.T) {
	fake := &enginetest.Engine{}
	p := MustCompile(fake, `p`, 0)
	defer p.Close()
	m, err := p.Matcher("abc")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	if _, err := m.Matches(); err != nil {
		t.Fatalf("Matches: %v", err)
	}
	call := fake.LastCall()
	wantCompile := engine.CompileAnchored | engine.CompileEndAnchored
	if call.CompileOpts&wantCompile != wantCompile {
		t.Errorf("Matches used compile opts %#x, want anchored variant", call.CompileOpts)
	}
	if call.Opts != 0 {
		t.Errorf("Matches opts = %#x, want 0 via compiled variant", call.Opts)
	}

	if _, err := m.LookingAt(); err != nil {
		t.Fatalf("LookingAt: %v", err)
	}
	call = fake.LastCall()
	if call.CompileOpts&engine.CompileAnchored == 0 {
		t.Errorf("LookingAt used compile opts %#x, want start-anchored variant", call.CompileOpts)
	}
}

func TestAnchorOptionFallback(t *testing.T) {
	fake := &enginetest.Engine{RefuseAnchored: true}
	p := MustCompile(fake, `p`, 0)
	defer p.Close()

	if len(fake.Compiles) != 1 {
		t.Fatalf("compiled variants = %d, want 1 (anchored refused)", len(fake.Compiles))
	}

	m, err := p.Matcher("abc")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	if _, err := m.Matches(); err != nil {
		t.Fatalf("Matches: %v", err)
	}
	call := fake.LastCall()
	if call.CompileOpts != 0 {
		t.Errorf("fallback used compile opts %#x, want general variant", call.CompileOpts)
	}
	want := engine.MatchAnchored | engine.MatchEndAnchored
	if call.Opts != want {
		t.Errorf("fallback opts = %#x, want %#x", call.Opts, want)
	}

	if _, err := m.LookingAt(); err != nil {
		t.Fatalf("LookingAt: %v", err)
	}
	if got := fake.LastCall().Opts; got != engine.MatchAnchored {
		t.Errorf("LookingAt fallback opts = %#x, want %#x", got, engine.MatchAnchored)
	}
}

func TestScriptedMatchInstallsState(t *testing.T) {
	fake := &enginetest.Engine{Groups: 1}
	fake.Script(engine.Outcome{
		Kind: engine.Matched,
		Pairs: []engine.Pair{
			{Start: 0, End: 5},
			{Start: engine.Unset, End: engine.Unset},
		},
		Mark: "route-a",
	})
	p := MustCompile(fake, `p`, 0)
	defer p.Close()
	m, err := p.Matcher("hello")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	ok, err := m.Find()
	if err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	if g, _ := m.Group(0); g != "hello" {
		t.Errorf("Group(0) = %q, want %q", g, "hello")
	}
	if start, _ := m.Start(1); start != -1 {
		t.Errorf("Start(1) = %d, want -1", start)
	}
	if m.Mark() != "route-a" {
		t.Errorf("Mark() = %q, want %q", m.Mark(), "route-a")
	}
}

func TestShortPairVectorPadsUnset(t *testing.T) {
	// An engine may omit trailing non-participating pairs; they must still
	// read as absent groups.
	fake := &enginetest.Engine{Groups: 2}
	fake.Script(engine.Outcome{
		Kind:  engine.Matched,
		Pairs: []engine.Pair{{Start: 0, End: 2}, {Start: 0, End: 2}},
	})
	p := MustCompile(fake, `p`, 0)
	defer p.Close()
	m, err := p.Matcher("ab")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	ok, err := m.Find()
	if err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	if start, err := m.Start(2); err != nil || start != -1 {
		t.Errorf("Start(2) = %d, %v, want -1, nil", start, err)
	}
}

func TestPartialMatchReporting(t *testing.T) {
	fake := &enginetest.Engine{}
	fake.Script(
		engine.Outcome{Kind: engine.Partial},
		engine.Outcome{Kind: engine.Matched, Pairs: []engine.Pair{{Start: 0, End: 1}}},
	)
	p := MustCompile(fake, `p`, 0)
	defer p.Close()
	m, err := p.Matcher("ab")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	m.UsePartialMatching(true)
	ok, err := m.Find()
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Error("partial outcome reported as a match")
	}
	if !m.HasPartialMatch() {
		t.Error("HasPartialMatch() = false after Partial outcome")
	}
	if fake.LastCall().Opts&engine.MatchPartialSoft == 0 {
		t.Error("MatchPartialSoft not requested")
	}

	if ok, err := m.FindAt(0); err != nil || !ok {
		t.Fatalf("FindAt = %v, %v", ok, err)
	}
	if m.HasPartialMatch() {
		t.Error("HasPartialMatch() still true after a real match")
	}
}

func TestEngineFailureClearsPartialFlag(t *testing.T) {
	fake := &enginetest.Engine{}
	fake.Script(engine.Outcome{Kind: engine.Partial})
	p := MustCompile(fake, `p`, 0)
	defer p.Close()
	m, err := p.Matcher("ab")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	m.UsePartialMatching(true)
	if ok, err := m.Find(); err != nil || ok {
		t.Fatalf("Find = %v, %v, want partial-as-failure", ok, err)
	}
	if !m.HasPartialMatch() {
		t.Fatal("HasPartialMatch() = false after Partial outcome")
	}

	// A failed engine call must not leave the earlier partial flag behind.
	fake.MatchErr = &engine.Error{Code: -32, Message: "JIT stack limit reached"}
	if _, err := m.Find(); err == nil {
		t.Fatal("Find with a failing engine did not error")
	}
	if m.HasPartialMatch() {
		t.Error("HasPartialMatch() = true after an engine failure")
	}
}

func TestEngineFailureSurfaces(t *testing.T) {
	fake := &enginetest.Engine{MatchErr: &engine.Error{Code: -21, Message: "match limit exceeded"}}
	p := MustCompile(fake, `p`, 0)
	defer p.Close()
	m, err := p.Matcher("ab")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()

	ok, err := m.Find()
	if ok {
		t.Error("Find reported a match despite the engine failing")
	}
	var ee *EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("error type = %T, want *EngineError", err)
	}
	var raw *engine.Error
	if !errors.As(err, &raw) || raw.Code != -21 {
		t.Errorf("unwrapped engine error = %v, want code -21", err)
	}

	if _, err := m.Group(0); !errors.Is(err, ErrNoMatch) {
		t.Errorf("Group after failure: err = %v, want ErrNoMatch", err)
	}
}

func TestHandleAndScratchLifecycle(t *testing.T) {
	fake := &enginetest.Engine{}
	p := MustCompile(fake, `p`, 0)

	m1, err := p.Matcher("a")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	m2, err := p.Matcher("b")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	if fake.LiveScratches != 2 {
		t.Errorf("live scratches = %d, want 2", fake.LiveScratches)
	}

	m1.Close()
	m1.Close() // idempotent
	m2.Close()
	if fake.LiveScratches != 0 {
		t.Errorf("live scratches after Close = %d, want 0", fake.LiveScratches)
	}

	p.Close()
	p.Close() // idempotent
	if fake.Released != len(fake.Compiles) {
		t.Errorf("released handles = %d, want %d", fake.Released, len(fake.Compiles))
	}
}

func TestUsePatternSwapsScratch(t *testing.T) {
	fake := &enginetest.Engine{}
	p1 := MustCompile(fake, `p1`, 0)
	defer p1.Close()
	p2 := MustCompile(fake, `p2`, 0)
	defer p2.Close()

	m, err := p1.Matcher("a")
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	defer m.Close()
	if err := m.UsePattern(p2); err != nil {
		t.Fatalf("UsePattern: %v", err)
	}
	if fake.LiveScratches != 1 {
		t.Errorf("live scratches after UsePattern = %d, want 1", fake.LiveScratches)
	}
}
