package stringsext

// Precision classifies how trustworthy a Finding's reported position is,
// per spec.md §3.
type Precision int

const (
	// Exact: the run's start is byte-aligned with a known decoded code
	// point boundary.
	Exact Precision = iota
	// Before: the run's actual start is strictly before the reported
	// position (leftover splicing, or the window started mid-multibyte).
	Before
	// After: the reported position is a coarse upper bound (a later
	// run reusing the same decoder_input_start within one decode call).
	After
)

func (p Precision) String() string {
	switch p {
	case Before:
		return "Before"
	case After:
		return "After"
	default:
		return "Exact"
	}
}

// Finding is one emitted string run, per spec.md §3. S borrows from its
// enclosing FindingCollection's OutputBuf. The merger keeps the Finding
// records as they are, with S still referencing that buffer; Run copies
// each S into a string.
type Finding struct {
	InputFileID         *uint8 // 0..255, or nil for "none"
	Mission             *Mission
	Position            ByteCounter
	Precision           Precision
	S                    []byte
	SCompletesPreviousS bool
}

// Equal implements the equality from spec.md §4.5, used for
// deduplication/testing: position, precision, encoding name, filter and
// string bytes must all match.
func (f Finding) Equal(o Finding) bool {
	if f.Position != o.Position || f.Precision != o.Precision {
		return false
	}
	if f.Mission.Encoding.Name() != o.Mission.Encoding.Name() {
		return false
	}
	if !f.Mission.Filter.Equal(o.Mission.Filter) {
		return false
	}
	return string(f.S) == string(o.S)
}

// Less implements the total order tie-break ladder of spec.md §4.5:
// position, then mission_id, then filter.ubf, then filter.af.
func (f Finding) Less(o Finding) bool {
	if f.Position != o.Position {
		return f.Position < o.Position
	}
	if f.Mission.MissionID != o.Mission.MissionID {
		return f.Mission.MissionID < o.Mission.MissionID
	}
	if f.Mission.Filter.UBF != o.Mission.Filter.UBF {
		return f.Mission.Filter.UBF < o.Mission.Filter.UBF
	}
	return f.Mission.Filter.AF.less(o.Mission.Filter.AF)
}

// FindingCollection is one per (mission, window): it owns a fixed,
// address-stable byte buffer that every Finding.S in it borrows from
// (spec.md §3). The buffer is allocated once at OUTPUT_BUF_LEN and never
// grown, so its backing array never moves and borrowed slices stay
// valid for the collection's lifetime.
type FindingCollection struct {
	OutputBuf         []byte
	Len               int
	Findings          []Finding
	FirstBytePosition ByteCounter
	StrBufOverflow    bool
}

// NewFindingCollection allocates a collection with a bufLen-byte output
// buffer (OutputBufLenDefault unless the caller overrides it for tests).
func NewFindingCollection(bufLen int, firstBytePosition ByteCounter) *FindingCollection {
	if bufLen <= 0 {
		bufLen = OutputBufLenDefault
	}
	return &FindingCollection{
		OutputBuf:         make([]byte, bufLen),
		FirstBytePosition: firstBytePosition,
	}
}

// Append copies s into the collection's output buffer starting at the
// current write offset, returning the slice view into OutputBuf and
// whether it fit. A false return means the buffer is full and nothing
// was copied. collector.go does not use Append: its decoder writes into
// OutputBuf directly.
func (c *FindingCollection) Append(s []byte) ([]byte, bool) {
	if c.Len+len(s) > len(c.OutputBuf) {
		return nil, false
	}
	start := c.Len
	copy(c.OutputBuf[start:], s)
	c.Len += len(s)
	return c.OutputBuf[start:c.Len:c.Len], true
}

// AddFinding appends a Finding built from a slice already written into
// OutputBuf (by the decoder in collector.go, or via Append).
func (c *FindingCollection) AddFinding(inputFileID *uint8, mission *Mission, position ByteCounter, precision Precision, s []byte, completesPrevious bool) {
	c.Findings = append(c.Findings, Finding{
		InputFileID:         inputFileID,
		Mission:             mission,
		Position:            position,
		Precision:           precision,
		S:                   s,
		SCompletesPreviousS: completesPrevious,
	})
}

// ClearAndMarkIncomplete discards every Finding accumulated so far,
// marks the collection overflowed, and rewinds the write offset to 0 so
// window processing can continue sacrificing this window's data rather
// than retrying it, per spec.md §4.3's OutputFull handling.
func (c *FindingCollection) ClearAndMarkIncomplete() {
	c.Findings = nil
	c.StrBufOverflow = true
	c.Len = 0
}
