// Package enginetest provides a scripted in-memory engine for testing the
// matching layer without a real backend.
//
// The fake records every compile and match call it receives and replays a
// queue of canned outcomes, so tests can assert exactly which subject bytes,
// start offsets, and option bits the layer above sends, and that handles and
// scratches are released.
package enginetest

import (
	"github.com/alexey-pelykh/pcre4j-sub002/engine"
)

// Call records one match invocation.
type Call struct {
	// CompileOpts identifies which compiled variant received the call.
	CompileOpts engine.CompileOptions
	// Subject is a copy of the byte slice handed to the engine.
	Subject []byte
	// Start is the byte offset the search started from.
	Start int
	// Opts are the match options for the call.
	Opts engine.MatchOptions
}

// Engine is a scripted engine. The zero value compiles patterns with no
// groups and reports NoMatch for every call. Not safe for concurrent use.
type Engine struct {
	// Groups and Names describe the fake pattern's capture metadata.
	Groups int
	Names  map[string]int

	// CompileErr, when set, fails every compile.
	CompileErr error
	// MatchErr, when set, fails every match call after recording it.
	MatchErr error
	// RefuseAnchored fails compiles that request anchoring, forcing the
	// caller onto the match-time option fallback.
	RefuseAnchored bool

	// Outcomes is the queue of results Match replays, one per call.
	// Exhausted queues report NoMatch.
	Outcomes []engine.Outcome

	// Recorded activity.
	Compiles      []engine.CompileOptions
	Calls         []Call
	Released      int
	LiveScratches int

	next int
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "fake" }

// Compile implements engine.Engine.
func (e *Engine) Compile(pattern []byte, opts engine.CompileOptions) (engine.Pattern, error) {
	if e.CompileErr != nil {
		return nil, e.CompileErr
	}
	if e.RefuseAnchored && opts&(engine.CompileAnchored|engine.CompileEndAnchored) != 0 {
		return nil, engine.ErrUnsupportedOption
	}
	e.Compiles = append(e.Compiles, opts)
	return &code{eng: e, opts: opts}, nil
}

// Script appends outcomes to the replay queue.
func (e *Engine) Script(outcomes ...engine.Outcome) {
	e.Outcomes = append(e.Outcomes, outcomes...)
}

// LastCall returns the most recent match call, or nil when none happened.
func (e *Engine) LastCall() *Call {
	if len(e.Calls) == 0 {
		return nil
	}
	return &e.Calls[len(e.Calls)-1]
}

type code struct {
	eng      *Engine
	opts     engine.CompileOptions
	released bool
}

func (p *code) Match(subject []byte, start int, opts engine.MatchOptions, _ engine.Scratch) (engine.Outcome, error) {
	e := p.eng
	e.Calls = append(e.Calls, Call{
		CompileOpts: p.opts,
		Subject:     append([]byte(nil), subject...),
		Start:       start,
		Opts:        opts,
	})
	if e.MatchErr != nil {
		return engine.Outcome{}, e.MatchErr
	}
	if e.next >= len(e.Outcomes) {
		return engine.Outcome{Kind: engine.NoMatch}, nil
	}
	out := e.Outcomes[e.next]
	e.next++
	return out, nil
}

func (p *code) NewScratch() (engine.Scratch, error) {
	p.eng.LiveScratches++
	return &scratch{eng: p.eng}, nil
}

func (p *code) GroupCount() int { return p.eng.Groups }

func (p *code) GroupNames() map[string]int { return p.eng.Names }

func (p *code) Release() {
	if !p.released {
		p.released = true
		p.eng.Released++
	}
}

type scratch struct {
	eng      *Engine
	released bool
}

func (s *scratch) Release() {
	if !s.released {
		s.released = true
		s.eng.LiveScratches--
	}
}
