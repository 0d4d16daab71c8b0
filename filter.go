package stringsext

import "strings"

// afMask is a 128-bit bitmask indexed by ASCII code 0..127 (bit i set =>
// ASCII byte i passes). Go has no native 128-bit integer, so the mask is
// split into two 64-bit words, mirroring original_source/src/mission.rs's
// `pub af: u128` one-to-one: lo holds bits 0..63, hi holds bits 64..127.
type afMask struct {
	lo, hi uint64
}

func (m afMask) bit(b byte) bool {
	if b < 64 {
		return m.lo&(uint64(1)<<uint(b)) != 0
	}
	return m.hi&(uint64(1)<<uint(b-64)) != 0
}

func (m afMask) not() afMask {
	return afMask{lo: ^m.lo, hi: ^m.hi}
}

func (m afMask) and(o afMask) afMask {
	return afMask{lo: m.lo & o.lo, hi: m.hi & o.hi}
}

func (m afMask) or(o afMask) afMask {
	return afMask{lo: m.lo | o.lo, hi: m.hi | o.hi}
}

// less implements the bitwise-negated-ascending tiebreak from
// original_source/src/mission.rs's `impl Ord for Utf8Filter`: compares by
// !af, high word first. Documented in DESIGN.md as an intentional, if
// weakly motivated, choice carried over from the original.
func (m afMask) less(o afMask) bool {
	na, nb := m.not(), o.not()
	if na.hi != nb.hi {
		return na.hi < nb.hi
	}
	return na.lo < nb.lo
}

func (m afMask) equal(o afMask) bool { return m.lo == o.lo && m.hi == o.hi }

// Bit masks, split hi/lo, transcribed from original_source/src/mission.rs.
var (
	afAll          = afMask{lo: 0xfffffffffffffffe, hi: 0xffffffffffffffff}
	afNone         = afMask{lo: 0x0000000000000000, hi: 0x0000000000000000}
	afCtrl         = afMask{lo: 0x00000000ffffffff, hi: 0x8000000000000000}
	afWhitespace   = afMask{lo: 0x0000000100001e00, hi: 0x0000000000000000}
	afDefault      = afAll.and(afCtrl.not())
)

const (
	ubfAll      uint64 = 0xffffffffffffffff
	ubfNone     uint64 = 0x0000000000000000
	ubfInvalid  uint64 = 0xffe0000000000003
	ubfLatin    uint64 = 0x00000000000001fc
	ubfAccents  uint64 = 0x0000000000003000
	ubfGreek    uint64 = 0x000000000000c000
	ubfCyrillic uint64 = 0x00000000001f0000
	ubfArmenian uint64 = 0x0000000000200000
	ubfHebrew   uint64 = 0x0000000000c00000
	ubfArabic   uint64 = 0x000000002f000000
	ubfSyriac   uint64 = 0x0000000010000000
	ubfAfrican  uint64 = 0x00000000ffe00000
	ubfCommon   uint64 = 0x00000000fffffffc
	ubfKana     uint64 = 0x0000000800000000
	ubfCjk      uint64 = 0x000003f000000000
	ubfHangul   uint64 = 0x0000380000000000
	ubfAsian    uint64 = 0x00003ffc00000000
	ubfPua      uint64 = 0x0010400000000000
	ubfUncommon uint64 = 0x000f000000000000
)

var ubfAllValid = ubfAll &^ ubfInvalid

// asciiFilterAlias is one entry of the prefix-matched ASCII filter alias
// table (original_source/src/mission.rs's ASCII_FILTER_ALIASSE).
type asciiFilterAlias struct {
	name string
	mask afMask
	help string
}

// AsciiFilterAliases mirrors ASCII_FILTER_ALIASSE verbatim (name, mask,
// help text), matched by case-sensitive prefix.
var AsciiFilterAliases = []asciiFilterAlias{
	{"All", afAll, "all ASCII = pass all"},
	{"All-Ctrl", afAll.and(afCtrl.not()), "all-control"},
	{"All-Ctrl+Wsp", afAll.and(afCtrl.not()).or(afWhitespace), "all-control+whitespace"},
	{"Default", afDefault, "all-control"},
	{"None", afNone, "block all 1-byte UTF-8"},
	{"Wsp", afWhitespace, "only white-space"},
}

type unicodeBlockFilterAlias struct {
	name string
	mask uint64
	help string
}

// UnicodeBlockFilterAliases mirrors UNICODE_BLOCK_FILTER_ALIASSE verbatim.
var UnicodeBlockFilterAliases = []unicodeBlockFilterAlias{
	{"African", ubfAfrican, "all in U+540..U+800"},
	{"All-Asian", ubfAll &^ ubfInvalid &^ ubfAsian, "all, except Asian"},
	{"All", ubfAllValid, "all valid multibyte UTF-8"},
	{"Arabic", ubfArabic | ubfSyriac, "Arabic+Syriac"},
	{"Armenian", ubfArmenian, "Armenian"},
	{"Asian", ubfAsian, "all in U+3000..U+E000"},
	{"Cjk", ubfCjk, "CJK: U+4000..U+A000"},
	{"Common", ubfCommon, "all 2-byte-UFT-8"},
	{"Cyrillic", ubfCyrillic, "Cyrillic"},
	{"Default", ubfAllValid, "all valid multibyte UTF-8"},
	{"Greek", ubfGreek, "Greek"},
	{"Hangul", ubfHangul, "Hangul: U+B000..U+E000"},
	{"Hebrew", ubfHebrew, "Hebrew"},
	{"Kana", ubfKana, "Kana: U+3000..U+4000"},
	{"Latin", ubfLatin | ubfAccents, "Latin + accents"},
	{"None", ^ubfAll, "block all multibyte UTF-8"},
	{"Private", ubfPua, "private use areas"},
	{"Uncommon", ubfUncommon | ubfPua, "private + all>=U+10_000"},
}

// matchAsciiAlias resolves a case-sensitive prefix of s against
// AsciiFilterAliases, mirroring parse_filter_parameter!'s loop in
// original_source/src/mission.rs.
func matchAsciiAlias(s string) (afMask, bool) {
	for _, a := range AsciiFilterAliases {
		if len(s) <= len(a.name) && strings.HasPrefix(a.name, s) {
			return a.mask, true
		}
	}
	return afMask{}, false
}

func matchUnicodeBlockAlias(s string) (uint64, bool) {
	for _, a := range UnicodeBlockFilterAliases {
		if len(s) <= len(a.name) && strings.HasPrefix(a.name, s) {
			return a.mask, true
		}
	}
	return 0, false
}

// Utf8Filter gates which decoded code points may belong to a run.
// Mirrors original_source/src/mission.rs's Utf8Filter. Fields are
// exported so mission.go's copier.Copy (reflection-based, exported
// fields only) can clone a mode-default filter before selectively
// overriding it.
type Utf8Filter struct {
	AF       afMask // gates ASCII bytes (0..127)
	UBF      uint64 // gates multi-byte leading-byte blocks, indexed by low 6 bits
	GrepChar *byte  // optional: a run must contain this ASCII byte to be emitted
}

// PassAFFilter reports whether ASCII byte b (b < 0x80) passes the filter.
func (f Utf8Filter) PassAFFilter(b byte) bool {
	return f.AF.bit(b)
}

// PassUBFFilter reports whether a multi-byte leading byte b (b >= 0x80)
// passes the filter, gated by its low 6 bits.
func (f Utf8Filter) PassUBFFilter(b byte) bool {
	return (uint64(1)<<uint(b&0x3f))&f.UBF != 0
}

// Equal implements the equality used by spec.md §4.5 ("encoding.name ==
// encoding.name) AND (filter == filter) AND (s == s)").
func (f Utf8Filter) Equal(o Utf8Filter) bool {
	if !f.AF.equal(o.AF) || f.UBF != o.UBF {
		return false
	}
	if (f.GrepChar == nil) != (o.GrepChar == nil) {
		return false
	}
	if f.GrepChar != nil && *f.GrepChar != *o.GrepChar {
		return false
	}
	return true
}

// Less implements the total order from spec.md §4.5's tiebreak ladder,
// steps 3-4: ubf ascending, then the bitwise-negated af ascending.
func (f Utf8Filter) Less(o Utf8Filter) bool {
	if f.UBF != o.UBF {
		return f.UBF < o.UBF
	}
	return f.AF.less(o.AF)
}
