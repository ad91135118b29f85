package pcre2

// Option bits and info codes from pcre2.h, 8-bit code unit width.
const (
	pcre2Caseless    uint32 = 0x00000008
	pcre2DotAll      uint32 = 0x00000020
	pcre2Extended    uint32 = 0x00000080
	pcre2Multiline   uint32 = 0x00000400
	pcre2UCP         uint32 = 0x00020000
	pcre2UTF         uint32 = 0x00080000
	pcre2Literal     uint32 = 0x02000000
	pcre2EndAnchored uint32 = 0x20000000
	pcre2Anchored    uint32 = 0x80000000

	pcre2NotBOL      uint32 = 0x00000001
	pcre2NotEOL      uint32 = 0x00000002
	pcre2PartialSoft uint32 = 0x00000010

	pcre2NewlineLF  uint32 = 2
	pcre2NewlineAny uint32 = 4

	pcre2InfoCaptureCount  uint32 = 4
	pcre2InfoNameCount     uint32 = 17
	pcre2InfoNameEntrySize uint32 = 18
	pcre2InfoNameTable     uint32 = 19

	pcre2JITComplete uint32 = 0x00000001

	pcre2ErrNoMatch int32 = -1
	pcre2ErrPartial int32 = -2

	// PCRE2_UNSET, the ovector value for a group that did not participate.
	pcre2Unset = ^uint64(0)
)

// JIT stack sizing for the per-matcher auxiliary execution stack.
const (
	jitStackStartSize = 32 * 1024
	jitStackMaxSize   = 512 * 1024
)
