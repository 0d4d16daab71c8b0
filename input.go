package stringsext

import (
	"io"
	"os"
	"regexp"

	"github.com/DataDog/zstd"
	"github.com/rs/zerolog"
)

// ByteCounter is a byte position/offset in the concatenated input stream.
type ByteCounter uint64

// reCompressedInput mirrors bsearch.go's reCompressed: a zstd-compressed
// input is transparently decompressed on open, exactly like bsearch
// transparently decompresses its index file.
var reCompressedInput = regexp.MustCompile(`\.zst$`)

// window is one triple yielded by the Slicer: up to InputBufLen bytes
// read from the current input, the 1-origin (saturating at 255) id of
// that input, and whether this is the final window of the final input.
type window struct {
	bytes       []byte
	inputFileID uint8
	isLastWindow bool
}

// Slicer is the Input Slicer of spec.md §4.1: a lazy iterator over fixed
// size windows across a sequence of concatenated input paths. It opens
// inputs lazily, one at a time, and never holds more than one open file
// handle.
type Slicer struct {
	paths       []string
	bufLen      int
	logger      zerolog.Logger
	pathIdx     int
	current     io.ReadCloser
	currentID   uint8
	exhausted   bool
	fatalErr    error
}

// NewSlicer builds a Slicer over paths, reading InputBufLen-sized windows
// (InputBufLenDefault unless overridden). An empty paths slice is
// rejected with ErrEmptyPaths, mirroring original_source's CLI-level
// validation that at least one input must be named.
func NewSlicer(paths []string, bufLen int, logger zerolog.Logger) (*Slicer, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyPaths
	}
	if bufLen <= 0 {
		bufLen = InputBufLenDefault
	}
	return &Slicer{paths: paths, bufLen: bufLen, logger: logger}, nil
}

// saturatingFileID returns a 1-origin input id for pathIdx, saturating at
// 255 once more than 255 inputs have been consumed (spec.md §4.1).
func saturatingFileID(pathIdx int) uint8 {
	id := pathIdx + 1
	if id > 255 {
		return 255
	}
	return uint8(id)
}

// openNext lazily opens the next path in sequence, transparently
// decompressing ".zst"-suffixed inputs via github.com/DataDog/zstd,
// exactly as bsearch.go's LoadIndex wraps a *.zst file handle in
// zstd.NewReader. A per-file open failure is logged as a diagnostic and
// the file is skipped (its window contributes zero bytes), matching
// spec.md §4.1's "substitutes an empty source so scanning continues".
func (s *Slicer) openNext() (io.ReadCloser, uint8, bool) {
	for s.pathIdx < len(s.paths) {
		path := s.paths[s.pathIdx]
		id := saturatingFileID(s.pathIdx)
		s.pathIdx++

		fh, err := os.Open(path)
		if err != nil {
			s.logger.Error().Err(err).Str("path", path).Msg("failed to open input, skipping")
			continue
		}

		if reCompressedInput.MatchString(path) {
			return zstd.NewReader(fh), id, true
		}
		return fh, id, true
	}
	return nil, 0, false
}

// Next returns the next window, or (window{}, false) once every input has
// yielded its final zero-byte window. A read error on an already-open
// file is fatal: Next returns false and Err reports the cause (spec.md
// §4.1 "On read failure, aborts with a fatal error").
func (s *Slicer) Next() (window, bool) {
	if s.exhausted {
		return window{}, false
	}

	for {
		if s.current == nil {
			rc, id, ok := s.openNext()
			if !ok {
				// The remaining inputs all failed to open: yield the final
				// zero-byte window so the last-window flag still surfaces.
				s.exhausted = true
				return window{inputFileID: saturatingFileID(len(s.paths) - 1), isLastWindow: true}, true
			}
			s.current = rc
			s.currentID = id
		}

		buf := make([]byte, s.bufLen)
		n, err := s.current.Read(buf)
		if n == 0 && err == io.EOF {
			s.current.Close()
			s.current = nil
			isLast := s.pathIdx >= len(s.paths)
			if isLast {
				s.exhausted = true
				return window{bytes: nil, inputFileID: s.currentID, isLastWindow: true}, true
			}
			continue
		}
		if err != nil && err != io.EOF {
			s.current.Close()
			s.current = nil
			s.exhausted = true
			s.fatalErr = err
			return window{}, false
		}

		isLast := n == 0 && s.pathIdx >= len(s.paths)
		return window{bytes: buf[:n], inputFileID: s.currentID, isLastWindow: isLast}, true
	}
}

// Err returns the fatal read error that stopped iteration, if any.
func (s *Slicer) Err() error { return s.fatalErr }

// Close releases the currently open input, if one is held.
func (s *Slicer) Close() error {
	if s.current != nil {
		return s.current.Close()
	}
	return nil
}
