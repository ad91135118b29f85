package pcre2

// Function variables bound to libpcre2-8 at load time. The comments give the
// C prototypes the registrations must stay in sync with; PCRE2_SIZE is
// size_t and PCRE2_SPTR is const uint8_t* in the 8-bit library.
var (
	// pcre2_code *pcre2_compile_8(PCRE2_SPTR pattern, PCRE2_SIZE length,
	//     uint32_t options, int *errorcode, PCRE2_SIZE *erroroffset,
	//     pcre2_compile_context *ccontext);
	pcre2Compile func(pattern *uint8, length uint64, options uint32, errorcode *int32, erroroffset *uint64, ccontext uintptr) uintptr

	// void pcre2_code_free_8(pcre2_code *code);
	pcre2CodeFree func(code uintptr)

	// int pcre2_pattern_info_8(const pcre2_code *code, uint32_t what,
	//     void *where);
	pcre2PatternInfo func(code uintptr, what uint32, where uintptr) int32

	// int pcre2_match_8(const pcre2_code *code, PCRE2_SPTR subject,
	//     PCRE2_SIZE length, PCRE2_SIZE startoffset, uint32_t options,
	//     pcre2_match_data *match_data, pcre2_match_context *mcontext);
	pcre2Match func(code uintptr, subject *uint8, length uint64, startoffset uint64, options uint32, matchData uintptr, mcontext uintptr) int32

	// pcre2_match_data *pcre2_match_data_create_from_pattern_8(
	//     const pcre2_code *code, pcre2_general_context *gcontext);
	pcre2MatchDataCreateFromPattern func(code uintptr, gcontext uintptr) uintptr

	// void pcre2_match_data_free_8(pcre2_match_data *match_data);
	pcre2MatchDataFree func(matchData uintptr)

	// PCRE2_SIZE *pcre2_get_ovector_pointer_8(pcre2_match_data *match_data);
	pcre2GetOvectorPointer func(matchData uintptr) *uint64

	// PCRE2_SPTR pcre2_get_mark_8(pcre2_match_data *match_data);
	pcre2GetMark func(matchData uintptr) *uint8

	// int pcre2_get_error_message_8(int errorcode, PCRE2_UCHAR *buffer,
	//     PCRE2_SIZE bufflen);
	pcre2GetErrorMessage func(errorcode int32, buffer *uint8, bufflen uint64) int32

	// int pcre2_jit_compile_8(pcre2_code *code, uint32_t options);
	pcre2JITCompile func(code uintptr, options uint32) int32

	// pcre2_jit_stack *pcre2_jit_stack_create_8(PCRE2_SIZE startsize,
	//     PCRE2_SIZE maxsize, pcre2_general_context *gcontext);
	pcre2JITStackCreate func(startsize uint64, maxsize uint64, gcontext uintptr) uintptr

	// void pcre2_jit_stack_free_8(pcre2_jit_stack *stack);
	pcre2JITStackFree func(stack uintptr)

	// void pcre2_jit_stack_assign_8(pcre2_match_context *mcontext,
	//     pcre2_jit_callback callback, void *data);
	pcre2JITStackAssign func(mcontext uintptr, callback uintptr, data uintptr)

	// pcre2_match_context *pcre2_match_context_create_8(
	//     pcre2_general_context *gcontext);
	pcre2MatchContextCreate func(gcontext uintptr) uintptr

	// void pcre2_match_context_free_8(pcre2_match_context *mcontext);
	pcre2MatchContextFree func(mcontext uintptr)

	// pcre2_compile_context *pcre2_compile_context_create_8(
	//     pcre2_general_context *gcontext);
	pcre2CompileContextCreate func(gcontext uintptr) uintptr

	// void pcre2_compile_context_free_8(pcre2_compile_context *ccontext);
	pcre2CompileContextFree func(ccontext uintptr)

	// int pcre2_set_newline_8(pcre2_compile_context *ccontext,
	//     uint32_t value);
	pcre2SetNewline func(ccontext uintptr, value uint32) int32
)
