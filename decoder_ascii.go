package stringsext

// asciiDecoder implements the "ascii" pseudo-encoding: a raw single-byte
// pass-through, internally relabeled to the WHATWG x-user-defined
// encoding (bytes 0x00-0x7F map to themselves, bytes 0x80-0xFF map to
// U+F780 + (byte-0x80)), per spec.md §3 and
// original_source/src/mission.rs's `enc_name = "x-user-defined"`
// relabeling. Every byte value maps to a code point, so this decoder
// never reports Malformed and never buffers partial state.
type asciiDecoder struct{}

func newASCIIDecoder() *asciiDecoder { return &asciiDecoder{} }

func (d *asciiDecoder) Name() string { return "x-user-defined" }

func (d *asciiDecoder) DecodeToStringWithoutReplacement(src []byte, dst []byte, atEOF bool) (result decodeResult, bytesRead, bytesWritten int) {
	consumed, written := 0, 0
	for consumed < len(src) {
		b := src[consumed]
		var cp rune
		if b < 0x80 {
			cp = rune(b)
		} else {
			cp = 0xF780 + rune(b) - 0x80
		}
		n := utf8Len(cp)
		if written+n > len(dst) {
			return outputFull, consumed, written
		}
		written += encodeRuneUTF8(dst[written:], cp)
		consumed++
	}
	return inputEmpty, consumed, written
}
