package stringsext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
)

// Mission holds the immutable parameters of one scan pass: an encoding
// plus filters. Missions are shared read-only by all workers scanning
// under that mission (spec.md §3).
type Mission struct {
	MissionID               uint8
	CounterOffset           ByteCounter
	Encoding                Encoding
	CharsMinNb              uint8
	RequireSameUnicodeBlock bool
	Filter                  Utf8Filter
	OutputLineCharNbMax     int
	PrintEncodingAsASCII    bool
}

// Letter returns the single-letter mission identifier used in
// diagnostics (mission_id + 'a'), mirroring
// original_source/src/finding_collection.rs's
// `char::from(ss.mission.mission_id + 97)`.
func (m *Mission) Letter() string {
	return string(rune('a' + m.MissionID))
}

// Missions is the ordered, immutable list of configured scan passes
// produced by NewMissions.
type Missions []*Mission

// parsedEncOpt holds the per-mission overrides parsed out of one
// "encoding_name[,chars_min[,ascii_filter[,ubf_filter[,grep_char]]]]"
// spec string, mirroring original_source/src/mission.rs's
// parse_enc_opt return tuple.
type parsedEncOpt struct {
	encName    string
	hasEncName bool
	charsMin   *uint8
	af         *afMask
	ubf        *uint64
	grepChar   *byte
}

func parseEncOpt(spec string) (parsedEncOpt, error) {
	fields := strings.Split(spec, ",")
	if len(fields) > 5 {
		return parsedEncOpt{}, fmt.Errorf("%w: %q", ErrTooManyEncodingFields, spec)
	}

	var out parsedEncOpt
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	if s := get(0); s != "" {
		out.encName = s
		out.hasEncName = true
	}

	if s := get(1); s != "" {
		v, err := parseUintField("chars_min", s, 8)
		if err != nil {
			return parsedEncOpt{}, err
		}
		cm := uint8(v)
		out.charsMin = &cm
	}

	if s := get(2); s != "" {
		af, err := parseAsciiFilterField(s)
		if err != nil {
			return parsedEncOpt{}, err
		}
		out.af = &af
	}

	if s := get(3); s != "" {
		ubf, err := parseUnicodeBlockFilterField(s)
		if err != nil {
			return parsedEncOpt{}, err
		}
		out.ubf = &ubf
	}

	if s := get(4); s != "" {
		v, err := parseUintField("grep_char", s, 8)
		if err != nil {
			return parsedEncOpt{}, err
		}
		g := byte(v)
		out.grepChar = &g
	}

	return out, nil
}

// parseUintField parses s as decimal, or as hex when prefixed "0x",
// mirroring original_source/src/mission.rs's parse_integer! macro.
func parseUintField(field, s string, bits int) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") {
		v, err := strconv.ParseUint(s[2:], 16, bits)
		if err != nil {
			return 0, &ParseIntError{Field: field, Value: s, Err: err}
		}
		return v, nil
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, &ParseIntError{Field: field, Value: s, Err: err}
	}
	return v, nil
}

// parseAsciiFilterField accepts either a "0x..." hex literal or a
// prefix-matched alias from AsciiFilterAliases, mirroring
// original_source/src/mission.rs's parse_filter_parameter! macro.
func parseAsciiFilterField(s string) (afMask, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") {
		hi, lo, err := parseHex128(s[2:])
		if err != nil {
			return afMask{}, &ParseIntError{Field: "ascii_filter", Value: s, Err: err}
		}
		return afMask{hi: hi, lo: lo}, nil
	}
	if m, ok := matchAsciiAlias(s); ok {
		return m, nil
	}
	return afMask{}, fmt.Errorf("%w: %q", ErrInvalidFilterName, s)
}

func parseUnicodeBlockFilterField(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, &ParseIntError{Field: "unicode_block_filter", Value: s, Err: err}
		}
		return v, nil
	}
	if m, ok := matchUnicodeBlockAlias(s); ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFilterName, s)
}

// parseHex128 parses a hex string of up to 32 digits into a 128-bit
// value split as (hi, lo).
func parseHex128(hexDigits string) (hi, lo uint64, err error) {
	if len(hexDigits) <= 16 {
		lo, err = strconv.ParseUint(hexDigits, 16, 64)
		return 0, lo, err
	}
	split := len(hexDigits) - 16
	hi, err = strconv.ParseUint(hexDigits[:split], 16, 64)
	if err != nil {
		return 0, 0, err
	}
	lo, err = strconv.ParseUint(hexDigits[split:], 16, 64)
	return hi, lo, err
}

// NewMissions resolves Options into the ordered list of Missions that
// will be scanned, following original_source/src/mission.rs's
// Missions::new option-resolution cascade: a per-mission field inherits
// from the matching global Options field, which inherits from a hard
// default; "ascii" missions get their own default filter pair distinct
// from every other encoding.
func NewMissions(o Options) (Missions, error) {
	counterOffset := CounterOffsetDefault
	if o.CounterOffset != nil {
		counterOffset = *o.CounterOffset
	}

	globalCharsMin := CharsMinDefault
	if o.CharsMin != nil {
		globalCharsMin = *o.CharsMin
	}

	var globalAF *afMask
	if o.AsciiFilter != nil {
		af, err := parseAsciiFilterField(*o.AsciiFilter)
		if err != nil {
			return nil, err
		}
		globalAF = &af
	}

	var globalUBF *uint64
	if o.UnicodeBlockFilter != nil {
		ubf, err := parseUnicodeBlockFilterField(*o.UnicodeBlockFilter)
		if err != nil {
			return nil, err
		}
		globalUBF = &ubf
	}

	var globalGrep *byte
	if o.GrepChar != nil {
		if *o.GrepChar > 127 {
			return nil, fmt.Errorf("%w: %d", ErrGrepChar, *o.GrepChar)
		}
		g := *o.GrepChar
		globalGrep = &g
	}

	globalOutputLineLen := OutputLineCharNbMaxDefault
	if o.OutputLineLen != nil {
		globalOutputLineLen = *o.OutputLineLen
		if globalOutputLineLen < OutputLineCharNbMin {
			return nil, fmt.Errorf("%w: got %d, want >= %d", ErrMinimumOutputLineLength, globalOutputLineLen, OutputLineCharNbMin)
		}
	}

	specs := o.Encodings
	if len(specs) == 0 {
		specs = []string{EncodingDefault}
	}

	missions := make(Missions, 0, len(specs))
	for i, spec := range specs {
		parsed, err := parseEncOpt(spec)
		if err != nil {
			return nil, err
		}

		encName := EncodingDefault
		if parsed.hasEncName {
			encName = parsed.encName
		}

		charsMinNb := globalCharsMin
		if parsed.charsMin != nil {
			charsMinNb = *parsed.charsMin
		}

		outputLineCharNbMax := globalOutputLineLen
		if outputLineCharNbMax < OutputLineCharNbMin {
			return nil, fmt.Errorf("%w: mission %s got %d, want >= %d",
				ErrMinimumOutputLineLength, string(rune('a'+i)), outputLineCharNbMax, OutputLineCharNbMin)
		}

		isAscii := encName == AsciiEncLabel
		defaultFilter := nonASCIIModeDefaultFilter()
		if isAscii {
			defaultFilter = asciiModeDefaultFilter()
		}

		// Resolve this mission's filter starting from the mode default,
		// then overriding whatever the mission spec or global flags set
		// explicitly, using copier.Copy to clone the default struct
		// instead of a hand-written field copy (see DESIGN.md).
		var resolved Utf8Filter
		if err := copier.Copy(&resolved, &defaultFilter); err != nil {
			return nil, fmt.Errorf("resolving mission %d filter: %w", i, err)
		}

		switch {
		case parsed.af != nil:
			resolved.AF = *parsed.af
		case globalAF != nil:
			resolved.AF = *globalAF
		}

		switch {
		case parsed.ubf != nil:
			resolved.UBF = *parsed.ubf
		case globalUBF != nil:
			resolved.UBF = *globalUBF
		}

		switch {
		case parsed.grepChar != nil:
			g := *parsed.grepChar
			resolved.GrepChar = &g
		case globalGrep != nil:
			g := *globalGrep
			resolved.GrepChar = &g
		}

		if resolved.GrepChar != nil && *resolved.GrepChar > 127 {
			return nil, fmt.Errorf("%w: mission %s got %d", ErrGrepChar, string(rune('a'+i)), *resolved.GrepChar)
		}

		printAsASCII := false
		lookupName := encName
		if isAscii {
			printAsASCII = true
			lookupName = "x-user-defined"
		}

		encoding, err := resolveEncoding(lookupName)
		if err != nil {
			return nil, err
		}

		missions = append(missions, &Mission{
			MissionID:               uint8(i),
			CounterOffset:           counterOffset,
			Encoding:                encoding,
			CharsMinNb:              charsMinNb,
			RequireSameUnicodeBlock: o.SameUnicodeBlock,
			Filter:                  resolved,
			OutputLineCharNbMax:     outputLineCharNbMax,
			PrintEncodingAsASCII:    printAsASCII,
		})
	}

	return missions, nil
}

// asciiModeDefaultFilter mirrors UTF8_FILTER_ASCII_MODE_DEFAULT.
func asciiModeDefaultFilter() Utf8Filter {
	return Utf8Filter{AF: afAll.and(afCtrl.not()), UBF: ubfNone}
}

// nonASCIIModeDefaultFilter mirrors UTF8_FILTER_NON_ASCII_MODE_DEFAULT.
func nonASCIIModeDefaultFilter() Utf8Filter {
	return Utf8Filter{AF: afAll.and(afCtrl.not()), UBF: ubfCommon}
}
