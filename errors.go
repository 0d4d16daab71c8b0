package stringsext

import "fmt"

// Sentinel errors returned from configuration and construction. Compare
// with errors.Is, mirroring bsearch's ErrNotFound/ErrKeyExceedsBlocksize
// package-level var block.
var (
	ErrInvalidFilterName        = fmt.Errorf("invalid filter alias name")
	ErrGrepChar                 = fmt.Errorf("grep char must be an ASCII byte (0..127)")
	ErrMinimumOutputLineLength  = fmt.Errorf("output line length below minimum")
	ErrEncoding                 = fmt.Errorf("unknown or unsupported encoding label")
	ErrTooManyEncodingFields    = fmt.Errorf("mission spec has more than 5 comma-separated fields")
	ErrNoMissions               = fmt.Errorf("at least one mission is required")
	ErrEmptyPaths               = fmt.Errorf("at least one input path is required")
)

// ScanError wraps a non-fatal, per-mission runtime condition (buffer
// overflow, read failure on a substituted empty source, ...) with the
// byte range and mission letter it occurred in, following
// original_source/src/error.rs's ScannerMinimumOutputLineLength /
// ScanerGrepCode pattern of carrying a mission letter alongside the
// underlying condition.
type ScanError struct {
	Mission    string // mission letter, e.g. "a"
	RangeStart uint64
	RangeEnd   uint64
	Reason     string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("mission %s: %s (bytes 0x%x..0x%x)", e.Mission, e.Reason, e.RangeStart, e.RangeEnd)
}

// ParseIntError is returned when a numeric option fails to parse,
// mirroring original_source/src/error.rs's ParseInt(#[from] ParseIntError).
type ParseIntError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseIntError) Error() string {
	return fmt.Sprintf("option %s: can not parse %q: %s", e.Field, e.Value, e.Err)
}

func (e *ParseIntError) Unwrap() error { return e.Err }
