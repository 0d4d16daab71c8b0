package stringsext

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Defaults mirrored from original_source/src/options.rs.
const (
	AsciiEncLabel              = "ascii"
	EncodingDefault             = "UTF-8"
	CharsMinDefault        uint8 = 4
	CounterOffsetDefault  ByteCounter = 0
	OutputLineCharNbMaxDefault int = 64
	OutputLineCharNbMin    int = 6

	// Buffer constants (production), per spec.md §6.
	InputBufLenDefault  int = 4096
	OutputBufLenDefault int = 0x9192
)

// Radix selects the base used when a caller formats a Finding's byte
// position for display. The core never formats positions itself (that's
// out of scope per spec.md §1); Radix exists purely so cmd/stringsext can
// share one vocabulary with the library, mirroring
// original_source/src/options.rs's Radix enum.
type Radix int

const (
	RadixDecimal Radix = iota
	RadixOctal
	RadixHex
)

func (r Radix) String() string {
	switch r {
	case RadixOctal:
		return "o"
	case RadixHex:
		return "x"
	default:
		return "d"
	}
}

// ParseRadix parses a single-letter radix flag value ("o", "x", "d"),
// case-insensitively.
func ParseRadix(s string) (Radix, error) {
	switch s {
	case "o", "O":
		return RadixOctal, nil
	case "x", "X":
		return RadixHex, nil
	case "d", "D":
		return RadixDecimal, nil
	default:
		return RadixDecimal, fmt.Errorf("can not convert radix variant %q", s)
	}
}

// Options configures a Scanner. All fields are optional; a zero value
// means "use the built-in default", following bsearch.go's Options
// struct (Blocksize int64, Compare func, ..., Logger *zerolog.Logger).
type Options struct {
	// CounterOffset is the initial byte offset added to every mission's
	// reported positions. It is taken as a number: NewMissions uses it as
	// given and does no decimal or "0x"-hex string parsing for it.
	CounterOffset *ByteCounter

	// Encodings lists one mission spec per entry:
	// "encoding_name[,chars_min[,ascii_filter[,ubf_filter[,grep_char]]]]".
	// Empty fields inherit the matching global option below. An empty
	// slice means "one UTF-8 mission with all other defaults".
	Encodings []string

	// CharsMin is the global default minimum run length in code points.
	CharsMin *uint8

	// SameUnicodeBlock enforces per-run Unicode-block homogeneity.
	SameUnicodeBlock bool

	// AsciiFilter / UnicodeBlockFilter are either "0x..." hex literals
	// or a prefix-matched alias from AsciiFilterAliases /
	// UnicodeBlockFilterAliases.
	AsciiFilter        *string
	UnicodeBlockFilter *string

	// GrepChar restricts every mission's output to runs containing this
	// ASCII byte (0..127).
	GrepChar *uint8

	// OutputLineLen is the per-run byte cap (must be >= OutputLineCharNbMin).
	OutputLineLen *int

	// MissionsFile optionally names a YAML file (see missionfile.go)
	// describing missions and global defaults. Its mission list is used
	// only when Encodings is empty; a non-empty Encodings replaces it.
	// Its global defaults fill only the fields left unset here.
	MissionsFile string

	// InputBufLen overrides the Slicer's window size (default
	// InputBufLenDefault). Production code should leave this zero; tests
	// shrink it to exercise window-boundary behavior (spec.md §9).
	InputBufLen int

	// OutputBufLen overrides each FindingCollection's fixed output
	// buffer size (default OutputBufLenDefault).
	OutputBufLen int

	// Logger receives structured diagnostics (buffer overflow, per-file
	// open failures). Defaults to a no-op logger,
	// mirroring bsearch.go's "if options.Logger != nil { s.logger = ... }".
	Logger *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	nop := zerolog.Nop()
	return nop
}
