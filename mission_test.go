package stringsext

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMissionsDefaultIsSingleUTF8(t *testing.T) {
	missions, err := NewMissions(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(missions) != 1 {
		t.Fatalf("expected 1 default mission, got %d", len(missions))
	}
	m := missions[0]
	if m.Encoding.Name() != "UTF-8" {
		t.Errorf("default encoding = %q, want UTF-8", m.Encoding.Name())
	}
	if m.CharsMinNb != CharsMinDefault {
		t.Errorf("default chars_min = %d, want %d", m.CharsMinNb, CharsMinDefault)
	}
	if m.OutputLineCharNbMax != OutputLineCharNbMaxDefault {
		t.Errorf("default output_line_char_nb_max = %d, want %d", m.OutputLineCharNbMax, OutputLineCharNbMaxDefault)
	}
	if !m.Filter.Equal(nonASCIIModeDefaultFilter()) {
		t.Errorf("default mission filter = %+v, want the non-ASCII mode default", m.Filter)
	}
}

func TestNewMissionsAsciiGetsItsOwnDefaultFilter(t *testing.T) {
	missions, err := NewMissions(Options{Encodings: []string{"ascii"}})
	if err != nil {
		t.Fatal(err)
	}
	m := missions[0]
	if m.Encoding.Name() != "x-user-defined" {
		t.Errorf("ascii mission encoding = %q, want x-user-defined", m.Encoding.Name())
	}
	if !m.PrintEncodingAsASCII {
		t.Error("expected PrintEncodingAsASCII for an ascii mission")
	}
	if !m.Filter.Equal(asciiModeDefaultFilter()) {
		t.Errorf("ascii mission filter = %+v, want the ascii mode default", m.Filter)
	}
}

func TestNewMissionsPerMissionOverridesWin(t *testing.T) {
	missions, err := NewMissions(Options{Encodings: []string{"UTF-8,6"}})
	if err != nil {
		t.Fatal(err)
	}
	if missions[0].CharsMinNb != 6 {
		t.Errorf("chars_min override = %d, want 6", missions[0].CharsMinNb)
	}
}

func TestNewMissionsGlobalFallsBackWhenMissionOmits(t *testing.T) {
	globalMin := uint8(9)
	missions, err := NewMissions(Options{Encodings: []string{"UTF-8"}, CharsMin: &globalMin})
	if err != nil {
		t.Fatal(err)
	}
	if missions[0].CharsMinNb != 9 {
		t.Errorf("chars_min = %d, want global default 9", missions[0].CharsMinNb)
	}
}

func TestNewMissionsTooManyFields(t *testing.T) {
	_, err := NewMissions(Options{Encodings: []string{"UTF-8,1,2,3,4,5"}})
	if !errors.Is(err, ErrTooManyEncodingFields) {
		t.Errorf("err = %v, want ErrTooManyEncodingFields", err)
	}
}

func TestNewMissionsInvalidFilterAlias(t *testing.T) {
	_, err := NewMissions(Options{Encodings: []string{"UTF-8,4,Bogus"}})
	if !errors.Is(err, ErrInvalidFilterName) {
		t.Errorf("err = %v, want ErrInvalidFilterName", err)
	}
}

func TestNewMissionsGrepCharMustBeASCII(t *testing.T) {
	_, err := NewMissions(Options{Encodings: []string{"UTF-8,4,,,200"}})
	if !errors.Is(err, ErrGrepChar) {
		t.Errorf("err = %v, want ErrGrepChar", err)
	}
}

func TestNewMissionsOutputLineLenBelowMinimum(t *testing.T) {
	tooSmall := OutputLineCharNbMin - 1
	_, err := NewMissions(Options{OutputLineLen: &tooSmall})
	if !errors.Is(err, ErrMinimumOutputLineLength) {
		t.Errorf("err = %v, want ErrMinimumOutputLineLength", err)
	}
}

func TestNewMissionsUnknownEncoding(t *testing.T) {
	_, err := NewMissions(Options{Encodings: []string{"not-a-real-encoding"}})
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("err = %v, want ErrEncoding", err)
	}
}

func TestParseEncOptHexFields(t *testing.T) {
	parsed, err := parseEncOpt("UTF-8,0x10,0xff,0xff")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.charsMin == nil || *parsed.charsMin != 0x10 {
		t.Errorf("charsMin = %v, want 16", parsed.charsMin)
	}
	if parsed.af == nil || parsed.af.lo != 0xff {
		t.Errorf("af = %+v, want lo=0xff", parsed.af)
	}
}

func TestParseHex128SplitsAt64Bits(t *testing.T) {
	hi, lo, err := parseHex128("10000000000000000")
	if err != nil {
		t.Fatal(err)
	}
	if hi != 1 || lo != 0 {
		t.Errorf("parseHex128 = (hi=%d, lo=%d), want (1, 0)", hi, lo)
	}
}

func TestMissionLetter(t *testing.T) {
	m := &Mission{MissionID: 2}
	assert.Equal(t, "c", m.Letter())
}
