package stringsext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissionsFileBuildsEncodingSpecs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missions.yaml")
	doc := `
chars_min: 5
missions:
  - encoding: UTF-8
    chars_min: 8
  - encoding: ascii
    grep_char: 120
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	merged, err := LoadMissionsFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if merged.CharsMin == nil || *merged.CharsMin != 5 {
		t.Errorf("CharsMin = %v, want 5", merged.CharsMin)
	}
	if len(merged.Encodings) != 2 {
		t.Fatalf("got %d encodings, want 2: %v", len(merged.Encodings), merged.Encodings)
	}
	assert.Equal(t, "UTF-8,8,,,", merged.Encodings[0])
	assert.Equal(t, "ascii,,,,120", merged.Encodings[1])

	missions, err := NewMissions(merged)
	if err != nil {
		t.Fatal(err)
	}
	if len(missions) != 2 {
		t.Fatalf("got %d missions, want 2", len(missions))
	}
	if missions[0].CharsMinNb != 8 {
		t.Errorf("mission[0].CharsMinNb = %d, want 8", missions[0].CharsMinNb)
	}
}

func TestLoadMissionsFileExplicitEncodingsOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missions.yaml")
	os.WriteFile(path, []byte("missions:\n  - encoding: UTF-16LE\n"), 0o644)

	merged, err := LoadMissionsFile(path, Options{Encodings: []string{"UTF-8"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(merged.Encodings) != 1 || merged.Encodings[0] != "UTF-8" {
		t.Errorf("Encodings = %v, want the caller's explicit [UTF-8] to win", merged.Encodings)
	}
}
