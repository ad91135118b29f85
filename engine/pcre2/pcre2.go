// Package pcre2 implements the engine capability set on top of libpcre2-8.
//
// The library is loaded at run time with purego (dlopen), so no cgo is
// involved; New fails with an error when the shared library is not present.
// Patterns are always compiled in UTF mode and JIT-compiled on a best-effort
// basis. Every scratch carries its own match data, match context, and JIT
// stack, so a compiled pattern can be shared across goroutines as long as
// each concurrent match call brings its own scratch.
package pcre2

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/alexey-pelykh/pcre4j-sub002/engine"
)

func init() {
	err := engine.Register("pcre2", func() (engine.Engine, error) {
		return New()
	})
	if err != nil {
		panic(err.Error())
	}
}

// Engine is the libpcre2-8 backend.
type Engine struct{}

// New loads libpcre2-8 if necessary and returns the backend.
func New() (*Engine, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return &Engine{}, nil
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "pcre2" }

// Compile implements engine.Engine.
func (e *Engine) Compile(pattern []byte, opts engine.CompileOptions) (engine.Pattern, error) {
	cctx := pcre2CompileContextCreate(0)
	if cctx == 0 {
		return nil, errors.New("pcre2: cannot allocate compile context")
	}
	defer pcre2CompileContextFree(cctx)

	newline := pcre2NewlineAny
	if opts&engine.CompileNewlineLF != 0 {
		newline = pcre2NewlineLF
	}
	pcre2SetNewline(cctx, newline)

	var (
		errCode int32
		errOff  uint64
	)
	ptr := pcre2Compile(bytePtr(pattern), uint64(len(pattern)), compileFlags(opts), &errCode, &errOff, cctx)
	runtime.KeepAlive(pattern)
	if ptr == 0 {
		return nil, &engine.CompileError{
			Message: errorMessage(errCode),
			Offset:  int(errOff),
		}
	}

	// JIT compilation is an optimization only; on failure the interpreter
	// handles the pattern.
	pcre2JITCompile(ptr, pcre2JITComplete)

	var count uint32
	pcre2PatternInfo(ptr, pcre2InfoCaptureCount, uintptr(unsafe.Pointer(&count)))

	return &code{
		ptr:    ptr,
		groups: int(count),
		names:  readNameTable(ptr),
	}, nil
}

func compileFlags(opts engine.CompileOptions) uint32 {
	flags := pcre2UTF
	if opts&engine.CompileCaseless != 0 {
		flags |= pcre2Caseless
	}
	if opts&engine.CompileMultiline != 0 {
		flags |= pcre2Multiline
	}
	if opts&engine.CompileDotAll != 0 {
		flags |= pcre2DotAll
	}
	if opts&engine.CompileExtended != 0 {
		flags |= pcre2Extended
	}
	if opts&engine.CompileLiteral != 0 {
		flags |= pcre2Literal
	}
	if opts&engine.CompileUCP != 0 {
		flags |= pcre2UCP
	}
	if opts&engine.CompileAnchored != 0 {
		flags |= pcre2Anchored
	}
	if opts&engine.CompileEndAnchored != 0 {
		flags |= pcre2EndAnchored
	}
	return flags
}

func matchFlags(opts engine.MatchOptions) uint32 {
	var flags uint32
	if opts&engine.MatchNotBOL != 0 {
		flags |= pcre2NotBOL
	}
	if opts&engine.MatchNotEOL != 0 {
		flags |= pcre2NotEOL
	}
	if opts&engine.MatchAnchored != 0 {
		flags |= pcre2Anchored
	}
	if opts&engine.MatchEndAnchored != 0 {
		flags |= pcre2EndAnchored
	}
	if opts&engine.MatchPartialSoft != 0 {
		flags |= pcre2PartialSoft
	}
	return flags
}

// readNameTable parses the compiled pattern's name table: entries of
// entrySize bytes each, two big-endian index bytes followed by the
// NUL-terminated group name.
func readNameTable(ptr uintptr) map[string]int {
	var nameCount, entrySize uint32
	pcre2PatternInfo(ptr, pcre2InfoNameCount, uintptr(unsafe.Pointer(&nameCount)))
	if nameCount == 0 {
		return nil
	}
	pcre2PatternInfo(ptr, pcre2InfoNameEntrySize, uintptr(unsafe.Pointer(&entrySize)))

	var table *uint8
	pcre2PatternInfo(ptr, pcre2InfoNameTable, uintptr(unsafe.Pointer(&table)))
	if table == nil {
		return nil
	}

	raw := unsafe.Slice(table, int(nameCount)*int(entrySize))
	names := make(map[string]int, nameCount)
	for i := 0; i < int(nameCount); i++ {
		entry := raw[i*int(entrySize) : (i+1)*int(entrySize)]
		idx := int(entry[0])<<8 | int(entry[1])
		name := entry[2:]
		for j, b := range name {
			if b == 0 {
				name = name[:j]
				break
			}
		}
		names[string(name)] = idx
	}
	return names
}

func errorMessage(errCode int32) string {
	var buf [256]byte
	n := pcre2GetErrorMessage(errCode, &buf[0], uint64(len(buf)))
	if n < 0 {
		return "unknown error"
	}
	return string(buf[:n])
}

// bytePtr returns a pointer to the first byte of b, or to a static zero
// byte for an empty slice so the native call always receives a valid
// address.
var zeroByte = [1]byte{}

func bytePtr(b []byte) *uint8 {
	if len(b) == 0 {
		return &zeroByte[0]
	}
	return &b[0]
}

// code is a compiled pcre2 pattern handle.
type code struct {
	ptr    uintptr
	groups int
	names  map[string]int
}

// Match implements engine.Pattern.
func (c *code) Match(subject []byte, start int, opts engine.MatchOptions, scr engine.Scratch) (engine.Outcome, error) {
	s, ok := scr.(*scratch)
	if !ok || s.matchData == 0 {
		return engine.Outcome{}, errors.New("pcre2: match requires a live pcre2 scratch")
	}

	rc := pcre2Match(c.ptr, bytePtr(subject), uint64(len(subject)), uint64(start), matchFlags(opts), s.matchData, s.matchContext)
	runtime.KeepAlive(subject)

	switch {
	case rc == pcre2ErrNoMatch:
		return engine.Outcome{Kind: engine.NoMatch}, nil
	case rc == pcre2ErrPartial:
		return engine.Outcome{Kind: engine.Partial}, nil
	case rc < 0:
		return engine.Outcome{}, &engine.Error{Code: int(rc), Message: errorMessage(rc)}
	}

	n := c.groups + 1
	ovector := unsafe.Slice(pcre2GetOvectorPointer(s.matchData), 2*n)
	pairs := make([]engine.Pair, n)
	for i := 0; i < n; i++ {
		so, eo := ovector[2*i], ovector[2*i+1]
		if so == pcre2Unset {
			pairs[i] = engine.Pair{Start: engine.Unset, End: engine.Unset}
			continue
		}
		pairs[i] = engine.Pair{Start: int(so), End: int(eo)}
	}

	var mark string
	if mp := pcre2GetMark(s.matchData); mp != nil {
		mark = goString(mp)
	}

	return engine.Outcome{Kind: engine.Matched, Pairs: pairs, Mark: mark}, nil
}

// NewScratch implements engine.Pattern. The JIT stack is created eagerly and
// assigned to the match context so JIT-compiled patterns never share stacks
// across sessions.
func (c *code) NewScratch() (engine.Scratch, error) {
	matchData := pcre2MatchDataCreateFromPattern(c.ptr, 0)
	if matchData == 0 {
		return nil, errors.New("pcre2: cannot allocate match data")
	}
	matchContext := pcre2MatchContextCreate(0)
	jitStack := pcre2JITStackCreate(jitStackStartSize, jitStackMaxSize, 0)
	if matchContext != 0 && jitStack != 0 {
		pcre2JITStackAssign(matchContext, 0, jitStack)
	}
	return &scratch{
		matchData:    matchData,
		matchContext: matchContext,
		jitStack:     jitStack,
	}, nil
}

// GroupCount implements engine.Pattern.
func (c *code) GroupCount() int { return c.groups }

// GroupNames implements engine.Pattern.
func (c *code) GroupNames() map[string]int { return c.names }

// Release implements engine.Pattern.
func (c *code) Release() {
	if c.ptr != 0 {
		pcre2CodeFree(c.ptr)
		c.ptr = 0
	}
}

// scratch bundles the per-session native resources.
type scratch struct {
	matchData    uintptr
	matchContext uintptr
	jitStack     uintptr
}

// Release implements engine.Scratch.
func (s *scratch) Release() {
	if s.matchData != 0 {
		pcre2MatchDataFree(s.matchData)
		s.matchData = 0
	}
	if s.matchContext != 0 {
		pcre2MatchContextFree(s.matchContext)
		s.matchContext = 0
	}
	if s.jitStack != 0 {
		pcre2JITStackFree(s.jitStack)
		s.jitStack = 0
	}
}

// goString reads a NUL-terminated byte sequence starting at p.
func goString(p *uint8) string {
	var out []byte
	for i := 0; ; i++ {
		b := *(*uint8)(unsafe.Add(unsafe.Pointer(p), i))
		if b == 0 {
			return string(out)
		}
		out = append(out, b)
	}
}
