package stringsext

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/charmap"
)

func decodeAll(t *testing.T, d Decoder, src []byte) []byte {
	t.Helper()
	dst := make([]byte, 0, 256)
	out := make([]byte, 256)
	for len(src) > 0 {
		result, nRead, nWritten := d.DecodeToStringWithoutReplacement(src, out, true)
		dst = append(dst, out[:nWritten]...)
		src = src[nRead:]
		if result == malformed && nRead == 0 {
			t.Fatalf("decoder made no progress on malformed input")
		}
		if result == outputFull {
			t.Fatalf("decode buffer unexpectedly exhausted")
		}
	}
	return dst
}

func TestUTF8DecoderPassesThroughValidInput(t *testing.T) {
	d := newUTF8Decoder()
	src := []byte("abc\xC3\xA9def") // "abcédef"
	got := decodeAll(t, d, src)
	assert.Equal(t, src, got)
}

func TestUTF8DecoderReportsMalformedWithoutSubstitution(t *testing.T) {
	d := newUTF8Decoder()
	out := make([]byte, 16)
	result, nRead, nWritten := d.DecodeToStringWithoutReplacement([]byte{0xFF, 'a'}, out, true)
	if result != malformed {
		t.Fatalf("result = %v, want malformed", result)
	}
	if nRead != 1 {
		t.Errorf("bytesRead = %d, want 1 (advance past the single bad byte)", nRead)
	}
	if nWritten != 0 {
		t.Errorf("bytesWritten = %d, want 0", nWritten)
	}
	if bytes.Contains(out[:nWritten], []byte("�")) {
		t.Error("decoder must never emit the replacement character")
	}
}

func TestUTF8DecoderBuffersPartialSequenceAcrossCalls(t *testing.T) {
	d := newUTF8Decoder()
	out := make([]byte, 16)
	result, nRead, nWritten := d.DecodeToStringWithoutReplacement([]byte{0xC3}, out, false)
	if result != inputEmpty || nWritten != 0 {
		t.Fatalf("first call: result=%v nWritten=%d, want inputEmpty/0", result, nWritten)
	}
	if nRead != 0 {
		t.Errorf("first call bytesRead = %d, want 0 (byte held as pending)", nRead)
	}
	if d.pendingLen() != 1 {
		t.Errorf("pendingLen() = %d, want 1", d.pendingLen())
	}
	result, _, nWritten = d.DecodeToStringWithoutReplacement([]byte{0xA9}, out, true)
	if result != inputEmpty {
		t.Fatalf("second call result = %v, want inputEmpty", result)
	}
	if !bytes.Equal(out[:nWritten], []byte{0xC3, 0xA9}) {
		t.Errorf("reassembled sequence = % x, want c3 a9", out[:nWritten])
	}
	if d.pendingLen() != 0 {
		t.Errorf("pendingLen() after completion = %d, want 0", d.pendingLen())
	}
}

func TestUTF16LEDecoderBasicASCII(t *testing.T) {
	d := newUTF16Decoder(false)
	src := []byte{'h', 0, 'i', 0}
	got := decodeAll(t, d, src)
	if string(got) != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestUTF16DecoderSurrogatePair(t *testing.T) {
	d := newUTF16Decoder(false)
	// U+1F600 "grinning face" = surrogate pair D83D DE00, little-endian.
	src := []byte{0x3D, 0xD8, 0x00, 0xDE}
	out := make([]byte, 16)
	result, _, nWritten := d.DecodeToStringWithoutReplacement(src, out, true)
	if result != inputEmpty {
		t.Fatalf("result = %v, want inputEmpty", result)
	}
	r := []rune(string(out[:nWritten]))
	if len(r) != 1 || r[0] != 0x1F600 {
		t.Errorf("decoded rune = %v, want [U+1F600]", r)
	}
}

func TestUTF16DecoderUnpairedSurrogateIsMalformed(t *testing.T) {
	d := newUTF16Decoder(false)
	out := make([]byte, 16)
	// Lone high surrogate followed by an ordinary ASCII unit.
	result, nRead, _ := d.DecodeToStringWithoutReplacement([]byte{0x00, 0xD8, 'a', 0}, out, true)
	if result != malformed {
		t.Fatalf("result = %v, want malformed", result)
	}
	if nRead != 2 {
		t.Errorf("bytesRead = %d, want 2 (consume only the bad unit)", nRead)
	}
}

func TestAsciiDecoderMapsHighBytesToPrivateUse(t *testing.T) {
	d := newASCIIDecoder()
	out := make([]byte, 16)
	result, nRead, nWritten := d.DecodeToStringWithoutReplacement([]byte{'a', 0xFF}, out, true)
	if result != inputEmpty || nRead != 2 {
		t.Fatalf("result=%v nRead=%d, want inputEmpty/2", result, nRead)
	}
	r := []rune(string(out[:nWritten]))
	if len(r) != 2 || r[0] != 'a' || r[1] != 0xF780+0xFF-0x80 {
		t.Errorf("decoded runes = %v, want ['a', U+F7FF]", r)
	}
}

func TestCharmapDecoderWindows1252(t *testing.T) {
	d := newCharmapDecoder("windows-1252", charmap.Windows1252)
	out := make([]byte, 16)
	// 0xE9 in Windows-1252 is U+00E9 ("é").
	result, nRead, nWritten := d.DecodeToStringWithoutReplacement([]byte{0xE9}, out, true)
	if result != inputEmpty || nRead != 1 {
		t.Fatalf("result=%v nRead=%d, want inputEmpty/1", result, nRead)
	}
	if string(out[:nWritten]) != "é" {
		t.Errorf("got %q, want %q", out[:nWritten], "é")
	}
}

func TestResolveEncodingKnownLabels(t *testing.T) {
	var tests = []struct {
		label string
		want  string
	}{
		{"utf-8", "UTF-8"},
		{"UTF-8", "UTF-8"},
		{"utf-16le", "UTF-16LE"},
		{"utf-16be", "UTF-16BE"},
		{"ascii", "x-user-defined"},
		{"windows-1252", "windows-1252"},
	}
	for _, tc := range tests {
		enc, err := resolveEncoding(tc.label)
		if err != nil {
			t.Fatalf("resolveEncoding(%q): %v", tc.label, err)
		}
		if enc.Name() != tc.want {
			t.Errorf("resolveEncoding(%q).Name() = %q, want %q", tc.label, enc.Name(), tc.want)
		}
	}
}

func TestResolveEncodingRejectsUnknownLabel(t *testing.T) {
	_, err := resolveEncoding("totally-bogus-label")
	if err == nil {
		t.Error("expected an error for an unresolvable label")
	}
}
