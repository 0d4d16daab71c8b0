package stringsext

import "golang.org/x/text/encoding/charmap"

// charmapDecoder backs a legacy single-byte codepage mission (the
// "legacy single-byte codepages" case from spec.md §2/§6) with the real
// WHATWG-specified mapping table from golang.org/x/text/encoding/charmap.
// Unlike multi-byte legacy encodings, a single-byte codepage is a total
// function over the 256 possible byte values, so it can never trigger
// x/text's internal replacement-character fallback and is therefore safe
// to wire directly to the ecosystem library (see DESIGN.md).
type charmapDecoder struct {
	name string
	cm   *charmap.Charmap
}

func newCharmapDecoder(name string, cm *charmap.Charmap) *charmapDecoder {
	return &charmapDecoder{name: name, cm: cm}
}

func (d *charmapDecoder) Name() string { return d.name }

func (d *charmapDecoder) DecodeToStringWithoutReplacement(src []byte, dst []byte, atEOF bool) (result decodeResult, bytesRead, bytesWritten int) {
	consumed, written := 0, 0
	for consumed < len(src) {
		r := d.cm.DecodeByte(src[consumed])
		n := utf8Len(r)
		if written+n > len(dst) {
			return outputFull, consumed, written
		}
		written += encodeRuneUTF8(dst[written:], r)
		consumed++
	}
	return inputEmpty, consumed, written
}

// charmapByLabel maps a WHATWG-ish label to the golang.org/x/text
// single-byte charmap table that implements it. Only single-byte
// codepages are listed; resolveEncoding falls back to ErrEncoding for
// anything else.
var charmapByLabel = map[string]*charmap.Charmap{
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1253": charmap.Windows1253,
	"windows-1254": charmap.Windows1254,
	"windows-1255": charmap.Windows1255,
	"windows-1256": charmap.Windows1256,
	"windows-1257": charmap.Windows1257,
	"windows-1258": charmap.Windows1258,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-3":   charmap.ISO8859_3,
	"iso-8859-4":   charmap.ISO8859_4,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-6":   charmap.ISO8859_6,
	"iso-8859-7":   charmap.ISO8859_7,
	"iso-8859-8":   charmap.ISO8859_8,
	"iso-8859-9":   charmap.ISO8859_9,
	"iso-8859-10":  charmap.ISO8859_10,
	"iso-8859-13":  charmap.ISO8859_13,
	"iso-8859-14":  charmap.ISO8859_14,
	"iso-8859-15":  charmap.ISO8859_15,
	"iso-8859-16":  charmap.ISO8859_16,
	"koi8-r":       charmap.KOI8R,
	"koi8-u":       charmap.KOI8U,
	"macintosh":    charmap.Macintosh,
}
