package stringsext

import "unicode/utf8"

// Chunk is one piece yielded by SplitStrings: spec.md §4.2's
// `{s, s_completes_previous_s, s_is_maybe_cut, s_is_to_be_filtered_again}`.
// S borrows directly from the buf passed to SplitStrings. The collector
// passes a region of its FindingCollection's output buffer as buf, so
// its chunks already point into that buffer and are used without a copy.
type Chunk struct {
	S                    []byte
	Start                int // byte offset of S within the buf passed to SplitStrings
	SCompletesPreviousS  bool
	SIsMaybeCut          bool
	SIsToBeFilteredAgain bool
}

func passesByte(f Utf8Filter, lead byte) bool {
	if lead < 0x80 {
		return f.PassAFFilter(lead)
	}
	return f.PassUBFFilter(lead)
}

func containsByte(b []byte, needle byte) bool {
	for _, c := range b {
		if c == needle {
			return true
		}
	}
	return false
}

// decodeRuneSize returns the byte length of the code point starting at
// b[0], tolerating malformed input (size 1) since buf is expected to
// already be valid UTF-8 produced by one of this package's decoders.
func decodeRuneSize(b []byte) int {
	_, size := utf8.DecodeRune(b)
	if size == 0 {
		return 1
	}
	return size
}

// splitAtBoundary splits b into chunks of at most max bytes each,
// cutting only at code point boundaries (spec.md §4.2 step 5).
func splitAtBoundary(b []byte, max int) [][]byte {
	if max <= 0 || len(b) <= max {
		return [][]byte{b}
	}
	var out [][]byte
	start, cur := 0, 0
	for cur < len(b) {
		size := decodeRuneSize(b[cur:])
		if cur-start+size > max && cur > start {
			out = append(out, b[start:cur])
			start = cur
		}
		cur += size
	}
	out = append(out, b[start:])
	return out
}

// SplitStrings is the Split-String Extractor of spec.md §4.2. It walks a
// contiguous, already-decoded UTF-8 slice buf code point by code point,
// groups maximal runs of passing code points, and yields them (split to
// respect outputLineCharNbMax) as a slice of Chunk.
//
// continueStrIfPossible signals that buf is itself a continuation of a
// run already emitted by the previous window; invalidBytesFollow signals
// that whatever comes after buf in the decoder stream is known-malformed
// or end-of-input, so a trailing run genuinely ends at len(buf) rather
// than merely being cut off by the window boundary.
func SplitStrings(buf []byte, f Utf8Filter, charsMinNb uint8, requireSameUnicodeBlock bool, continueStrIfPossible bool, invalidBytesFollow bool, outputLineCharNbMax int) []Chunk {
	var chunks []Chunk
	i := 0
	for i < len(buf) {
		for i < len(buf) && !passesByte(f, buf[i]) {
			i += decodeRuneSize(buf[i:])
		}
		if i >= len(buf) {
			break
		}

		runStart := i
		isAtBufStart := runStart == 0
		haveBlockBit := false
		blockBit := 0
		runeCount := 0
		for i < len(buf) {
			lead := buf[i]
			if !passesByte(f, lead) {
				break
			}
			if requireSameUnicodeBlock && lead >= 0x80 {
				bit := int(lead & 0x3f)
				if !haveBlockBit {
					blockBit = bit
					haveBlockBit = true
				} else if bit != blockBit {
					break
				}
			}
			i += decodeRuneSize(buf[i:])
			runeCount++
		}
		runEnd := i
		runBytes := buf[runStart:runEnd]
		completesPrevious := isAtBufStart && continueStrIfPossible

		// Step 7: a run reaching the end of buf with no known-invalid
		// bytes immediately after it cannot yet be finalized -- it may
		// be extended by the next window's opening bytes. Defer it
		// whole, bypassing the minimum-length and grep_char rules,
		// which only make sense once the run is known to be complete.
		if runEnd == len(buf) && !invalidBytesFollow {
			chunks = append(chunks, Chunk{
				S:                    runBytes,
				Start:                runStart,
				SCompletesPreviousS:  completesPrevious,
				SIsMaybeCut:          true,
				SIsToBeFilteredAgain: true,
			})
			continue
		}

		if !completesPrevious && runeCount < int(charsMinNb) {
			continue
		}
		if f.GrepChar != nil && !containsByte(runBytes, *f.GrepChar) {
			continue
		}

		pieceOffset := runStart
		for idx, piece := range splitAtBoundary(runBytes, outputLineCharNbMax) {
			chunks = append(chunks, Chunk{
				S:                   piece,
				Start:               pieceOffset,
				SCompletesPreviousS: completesPrevious || idx > 0,
			})
			pieceOffset += len(piece)
		}
	}
	return chunks
}
