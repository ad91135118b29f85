//go:build darwin || linux || freebsd

package pcre2

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	loadOnce sync.Once
	loadErr  error
)

// load opens libpcre2-8 and binds the function variables. The library is
// loaded at most once per process.
func load() error {
	loadOnce.Do(func() {
		lib, err := dlopen()
		if err != nil {
			loadErr = err
			return
		}
		register(lib)
	})
	return loadErr
}

func dlopen() (uintptr, error) {
	var lastErr error
	for _, name := range libNames() {
		lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return lib, nil
		}
		lastErr = err
	}
	return 0, fmt.Errorf("pcre2: cannot load libpcre2-8: %w", lastErr)
}

func libNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{
			"libpcre2-8.dylib",
			"/opt/homebrew/lib/libpcre2-8.dylib",
			"/usr/local/lib/libpcre2-8.dylib",
		}
	}
	return []string{"libpcre2-8.so.0", "libpcre2-8.so"}
}

func register(lib uintptr) {
	purego.RegisterLibFunc(&pcre2Compile, lib, "pcre2_compile_8")
	purego.RegisterLibFunc(&pcre2CodeFree, lib, "pcre2_code_free_8")
	purego.RegisterLibFunc(&pcre2PatternInfo, lib, "pcre2_pattern_info_8")
	purego.RegisterLibFunc(&pcre2Match, lib, "pcre2_match_8")
	purego.RegisterLibFunc(&pcre2MatchDataCreateFromPattern, lib, "pcre2_match_data_create_from_pattern_8")
	purego.RegisterLibFunc(&pcre2MatchDataFree, lib, "pcre2_match_data_free_8")
	purego.RegisterLibFunc(&pcre2GetOvectorPointer, lib, "pcre2_get_ovector_pointer_8")
	purego.RegisterLibFunc(&pcre2GetMark, lib, "pcre2_get_mark_8")
	purego.RegisterLibFunc(&pcre2GetErrorMessage, lib, "pcre2_get_error_message_8")
	purego.RegisterLibFunc(&pcre2JITCompile, lib, "pcre2_jit_compile_8")
	purego.RegisterLibFunc(&pcre2JITStackCreate, lib, "pcre2_jit_stack_create_8")
	purego.RegisterLibFunc(&pcre2JITStackFree, lib, "pcre2_jit_stack_free_8")
	purego.RegisterLibFunc(&pcre2JITStackAssign, lib, "pcre2_jit_stack_assign_8")
	purego.RegisterLibFunc(&pcre2MatchContextCreate, lib, "pcre2_match_context_create_8")
	purego.RegisterLibFunc(&pcre2MatchContextFree, lib, "pcre2_match_context_free_8")
	purego.RegisterLibFunc(&pcre2CompileContextCreate, lib, "pcre2_compile_context_create_8")
	purego.RegisterLibFunc(&pcre2CompileContextFree, lib, "pcre2_compile_context_free_8")
	purego.RegisterLibFunc(&pcre2SetNewline, lib, "pcre2_set_newline_8")
}
