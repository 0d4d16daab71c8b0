package stringsext

import (
	"os"

	"gopkg.in/yaml.v3"
)

// missionSpec is one entry of a missions file: the YAML-tagged mirror of
// one "encoding_name[,chars_min[,ascii_filter[,ubf_filter[,grep_char]]]]"
// spec string, following index.go's IndexEntry/Index convention of
// short yaml tags on an otherwise ordinary struct.
type missionSpec struct {
	Encoding     string  `yaml:"encoding"`
	CharsMin     *uint8  `yaml:"chars_min,omitempty"`
	AsciiFilter  *string `yaml:"ascii_filter,omitempty"`
	UbfFilter    *string `yaml:"ubf_filter,omitempty"`
	GrepChar     *uint8  `yaml:"grep_char,omitempty"`
}

// missionDocument is the top-level shape of a --missions-file YAML
// document: a list of mission specs plus the global defaults that would
// otherwise come from command-line flags.
type missionDocument struct {
	CounterOffset      *uint64       `yaml:"counter_offset,omitempty"`
	CharsMin           *uint8        `yaml:"chars_min,omitempty"`
	SameUnicodeBlock   bool          `yaml:"same_unicode_block,omitempty"`
	AsciiFilter        *string       `yaml:"ascii_filter,omitempty"`
	UnicodeBlockFilter *string       `yaml:"unicode_block_filter,omitempty"`
	GrepChar           *uint8        `yaml:"grep_char,omitempty"`
	OutputLineLen      *int          `yaml:"output_line_len,omitempty"`
	Missions           []missionSpec `yaml:"missions"`
}

// encode renders one missionSpec back into the comma-separated form
// NewMissions's parseEncOpt expects, so a missions file and --encoding
// flags feed the very same resolution cascade.
func (m missionSpec) encode() string {
	s := m.Encoding
	if m.CharsMin == nil && m.AsciiFilter == nil && m.UbfFilter == nil && m.GrepChar == nil {
		return s
	}
	field := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	charsMin := ""
	if m.CharsMin != nil {
		charsMin = uitoa(uint64(*m.CharsMin))
	}
	grep := ""
	if m.GrepChar != nil {
		grep = uitoa(uint64(*m.GrepChar))
	}
	return s + "," + charsMin + "," + field(m.AsciiFilter) + "," + field(m.UbfFilter) + "," + grep
}

func uitoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// LoadMissionsFile reads a YAML missions document from path and merges it
// into o, using the file's mission list as o.Encodings when o.Encodings is
// empty and filling any global option left unset in o. Explicit fields already set on o
// take precedence over the file, following spec.md §6's general
// "explicit flag beats default" resolution order.
func LoadMissionsFile(path string, o Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return o, err
	}

	var doc missionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return o, err
	}

	if o.CounterOffset == nil && doc.CounterOffset != nil {
		v := ByteCounter(*doc.CounterOffset)
		o.CounterOffset = &v
	}
	if o.CharsMin == nil {
		o.CharsMin = doc.CharsMin
	}
	if !o.SameUnicodeBlock {
		o.SameUnicodeBlock = doc.SameUnicodeBlock
	}
	if o.AsciiFilter == nil {
		o.AsciiFilter = doc.AsciiFilter
	}
	if o.UnicodeBlockFilter == nil {
		o.UnicodeBlockFilter = doc.UnicodeBlockFilter
	}
	if o.GrepChar == nil {
		o.GrepChar = doc.GrepChar
	}
	if o.OutputLineLen == nil {
		o.OutputLineLen = doc.OutputLineLen
	}

	if len(o.Encodings) == 0 {
		specs := make([]string, 0, len(doc.Missions))
		for _, m := range doc.Missions {
			specs = append(specs, m.encode())
		}
		o.Encodings = specs
	}

	return o, nil
}
