package stringsext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScannerStateStartsEmpty(t *testing.T) {
	m := &Mission{Encoding: Encoding{label: "UTF-8", newDecoder: func() Decoder { return newUTF8Decoder() }}}
	ss := NewScannerState(m)
	if ss.Mission != m {
		t.Error("expected ScannerState to retain the mission pointer")
	}
	if ss.Decoder == nil {
		t.Error("expected a fresh decoder to be created")
	}
	if ss.ConsumedBytes != 0 {
		t.Errorf("ConsumedBytes = %d, want 0", ss.ConsumedBytes)
	}
	if ss.LastScanRunLeftover != nil {
		t.Error("expected no leftover on a fresh state")
	}
}

func TestNewScannerStatesOnePerMission(t *testing.T) {
	missions, err := NewMissions(Options{Encodings: []string{"UTF-8", "ascii"}})
	if err != nil {
		t.Fatal(err)
	}
	states := NewScannerStates(missions)
	assert.Len(t, states, 2)
	for i, s := range states {
		if s.Mission != missions[i] {
			t.Errorf("state[%d].Mission is not missions[%d]", i, i)
		}
	}
}
