package stringsext

import "github.com/rs/zerolog"

// pendingAware is implemented by decoders that carry incomplete trailing
// bytes across calls (utf8Decoder, utf16Decoder). collector.go uses it
// to detect a window that opens mid-multibyte-sequence, for the Before
// precision rule of spec.md §4.3.
type pendingAware interface{ pendingLen() int }

func decoderPendingLen(d Decoder) int {
	if p, ok := d.(pendingAware); ok {
		return p.pendingLen()
	}
	return 0
}

// CollectWindowFindings is the Finding Collector of spec.md §4.3: it
// decodes one window's bytes for one mission, extracts runs via
// SplitStrings, and returns a pinned FindingCollection. ss must already
// be owned exclusively by the caller for the duration of this call (the
// per-window barrier in stringsext.go guarantees that).
//
// Sub-window granularity: per spec.md §4.3 the window is fed to the
// decoder in 2*output_line_char_nb_max-sized slices so that any single
// run fits comfortably inside one sub-window. The continuation flag
// (continue_str_if_possible) is tracked at window granularity here: it
// is read once at the start of the window and applied to the first
// SplitStrings call, and the ScannerState's flag for the *next* window
// is set from the *last* chunk produced in this window: a printed chunk
// passes on its maybe-cut mark, a deferred chunk clears the flag (its
// bytes are spliced back and filtered again whole). This collapses to the source's intra-window, per-sub-window
// tracking whenever a single run does not straddle a sub-window
// boundary within one window -- which the 2x sizing makes rare.
func CollectWindowFindings(ss *ScannerState, windowBytes []byte, inputFileID uint8, isLastInputStream bool, outputBufLen int, logger zerolog.Logger) *FindingCollection {
	ss.Lock()
	defer ss.Unlock()

	mission := ss.Mission
	fc := NewFindingCollection(outputBufLen, ss.ConsumedBytes)

	leftover := ss.LastScanRunLeftover
	leftoverLen := len(leftover)
	if leftoverLen > 0 {
		copy(fc.OutputBuf, leftover)
		fc.Len = leftoverLen
	}
	ss.LastScanRunLeftover = nil

	hadPendingAtStart := decoderPendingLen(ss.Decoder) > 0

	decoderOutputStart := leftoverLen
	splitStart := 0
	continueFlag := ss.LastRunStrWasPrintedAndIsMaybeCutStr
	precision := Exact
	if leftoverLen > 0 || hadPendingAtStart {
		precision = Before
	}
	firstFindingInWindow := true
	lastRunMaybeCut := false

	fileID := inputFileID

	subSize := 2 * mission.OutputLineCharNbMax
	if subSize < 2*OutputLineCharNbMin {
		subSize = 2 * OutputLineCharNbMin
	}

	pos := 0
	extraRoundDone := false
	overflowed := false

subwindows:
	for {
		atLastSubwindow := pos >= len(windowBytes)
		if atLastSubwindow && (extraRoundDone || !isLastInputStream) {
			break subwindows
		}

		// The byte offset, within windowBytes, of input already handed to
		// the decoder before this round -- folded into every finding this
		// round produces so positions stay accurate past the first
		// sub-window (original_source/src/finding_collection.rs recomputes
		// ss.consumed_bytes + decoder_input_start on every finding push).
		subwindowCursor := pos

		var sub []byte
		if !atLastSubwindow {
			end := pos + subSize
			if end > len(windowBytes) {
				end = len(windowBytes)
			}
			sub = windowBytes[pos:end]
			pos = end
		}

		// atEOF is true exactly once: the flush round after every real
		// byte of the true last window has already been handed to the
		// decoder, so a dangling incomplete sequence is reported
		// Malformed instead of silently held as pending forever.
		atEOF := atLastSubwindow && isLastInputStream

		malformedThisSubwindow := false
		src := sub
	decodeLoop:
		for {
			dst := fc.OutputBuf[decoderOutputStart:]
			result, nRead, nWritten := ss.Decoder.DecodeToStringWithoutReplacement(src, dst, atEOF)
			decoderOutputStart += nWritten
			src = src[nRead:]

			switch result {
			case outputFull:
				fc.ClearAndMarkIncomplete()
				logger.Warn().
					Str("mission", mission.Letter()).
					Int("range_start", int(fc.FirstBytePosition)).
					Msg("output buffer overflow, window discarded for this mission")
				decoderOutputStart = 0
				splitStart = 0
				overflowed = true
				break subwindows
			case malformed:
				malformedThisSubwindow = true
				// A skipped byte leaves no trace in the decoded buffer, so
				// without a marker the valid runs on either side of it would
				// read back as one contiguous run. NUL fails every built-in
				// filter, so splicing one in forces SplitStrings to treat
				// this position as a hard break.
				if decoderOutputStart < len(fc.OutputBuf) {
					fc.OutputBuf[decoderOutputStart] = 0
					decoderOutputStart++
				}
				if len(src) == 0 {
					break decodeLoop
				}
			case inputEmpty:
				break decodeLoop
			}
		}

		invalidBytesFollow := malformedThisSubwindow || atEOF
		position := mission.CounterOffset + ss.ConsumedBytes + ByteCounter(subwindowCursor)

		regionBase := splitStart
		region := fc.OutputBuf[splitStart:decoderOutputStart]
		chunks := SplitStrings(region, mission.Filter, mission.CharsMinNb, mission.RequireSameUnicodeBlock, continueFlag, invalidBytesFollow, mission.OutputLineCharNbMax)
		continueFlag = false
		lastRunMaybeCut = false

		for _, c := range chunks {
			if c.SIsToBeFilteredAgain {
				splitStart = regionBase + c.Start
				lastRunMaybeCut = false
				continue
			}

			fc.AddFinding(&fileID, mission, position, precision, c.S, c.SCompletesPreviousS)
			lastRunMaybeCut = c.SIsMaybeCut
			if firstFindingInWindow {
				firstFindingInWindow = false
				precision = After
			}
			splitStart = regionBase + c.Start + len(c.S)
		}

		if atEOF {
			extraRoundDone = true
		}
	}

	if !overflowed {
		tailLen := decoderOutputStart - splitStart
		if tailLen > 0 {
			ss.LastScanRunLeftover = append([]byte(nil), fc.OutputBuf[splitStart:decoderOutputStart]...)
		}
		ss.LastRunStrWasPrintedAndIsMaybeCutStr = lastRunMaybeCut
	} else {
		ss.LastRunStrWasPrintedAndIsMaybeCutStr = false
	}
	ss.ConsumedBytes += ByteCounter(len(windowBytes))

	return fc
}
