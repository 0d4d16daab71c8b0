package stringsext

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// decodeResult classifies the outcome of one Decoder.
// DecodeToStringWithoutReplacement call, per spec.md §3:
// InputEmpty, OutputFull or Malformed.
type decodeResult int

const (
	inputEmpty decodeResult = iota
	outputFull
	malformed
)

// Decoder is the per-mission incremental decoder contract of spec.md §3:
// a stateful object that consumes input bytes and appends decoded UTF-8
// to a caller-supplied output buffer.
type Decoder interface {
	Name() string
	DecodeToStringWithoutReplacement(src, dst []byte, atEOF bool) (result decodeResult, bytesRead, bytesWritten int)
}

// Encoding is an opaque handle identifying one of the well-known
// character encodings, or the "ascii" pseudo-encoding, per spec.md §3.
// Each Encoding can manufacture a fresh, independently-stateful Decoder.
type Encoding struct {
	label      string
	newDecoder func() Decoder
}

// Name returns the canonical label used for display.
func (e Encoding) Name() string { return e.label }

// NewDecoder returns a fresh incremental decoder for this encoding.
func (e Encoding) NewDecoder() Decoder { return e.newDecoder() }

// resolveEncoding resolves a user-supplied label against the WHATWG
// standard label set via golang.org/x/text/encoding/htmlindex, special
// casing "ascii" (mapped internally to the x-user-defined raw byte
// pass-through, per spec.md §6 and original_source/src/mission.rs),
// before dispatching the canonical label to one of this package's
// incremental decoders.
func resolveEncoding(label string) (Encoding, error) {
	if label == AsciiEncLabel {
		return Encoding{label: "x-user-defined", newDecoder: func() Decoder { return newASCIIDecoder() }}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return Encoding{}, fmt.Errorf("%w: %s", ErrEncoding, label)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = strings.ToLower(label)
	}

	switch canonical {
	case "utf-8":
		return Encoding{label: "UTF-8", newDecoder: func() Decoder { return newUTF8Decoder() }}, nil
	case "utf-16le":
		return Encoding{label: "UTF-16LE", newDecoder: func() Decoder { return newUTF16Decoder(false) }}, nil
	case "utf-16be":
		return Encoding{label: "UTF-16BE", newDecoder: func() Decoder { return newUTF16Decoder(true) }}, nil
	case "x-user-defined":
		return Encoding{label: "x-user-defined", newDecoder: func() Decoder { return newASCIIDecoder() }}, nil
	}

	if cm, ok := charmapByLabel[canonical]; ok {
		name := canonical
		return Encoding{label: name, newDecoder: func() Decoder { return newCharmapDecoder(name, cm) }}, nil
	}

	return Encoding{}, fmt.Errorf("%w: %s (legacy multi-byte codepages are out of scope)", ErrEncoding, label)
}
