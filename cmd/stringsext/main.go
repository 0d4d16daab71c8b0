/*
stringsext extracts human-readable strings from one or more binary
inputs, analogous to the classic strings(1) utility but with a
generalized multi-encoding, filter-driven, parallel pipeline.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/ProfoundNetworks/stringsext"
)

// Options
var opts struct {
	Verbose            bool     `short:"v" long:"verbose" description:"display verbose debug output"`
	Encodings          []string `short:"e" long:"encoding" description:"encoding_name[,chars_min[,ascii_filter[,ubf_filter[,grep_char]]]]; may be given more than once"`
	CharsMin           uint8    `short:"n" long:"chars-min" description:"global default minimum run length in code points" default:"4"`
	SameUnicodeBlock   bool     `short:"u" long:"same-unicode-block" description:"require a run's multi-byte characters to stay in one Unicode block"`
	AsciiFilter        string   `short:"f" long:"ascii-filter" description:"global ASCII filter: a 0x... mask or an alias (All, Default, None, Wsp, ...)"`
	UnicodeBlockFilter string   `short:"b" long:"unicode-block-filter" description:"global Unicode block filter: a 0x... mask or an alias (Latin, Greek, Cjk, ...)"`
	GrepChar           uint8    `short:"g" long:"grep-char" description:"only emit runs containing this ASCII byte"`
	OutputLineLen      int      `short:"l" long:"output-line-len" description:"hard cap on a run's length in bytes" default:"64"`
	CounterOffset      uint64   `short:"c" long:"counter-offset" description:"initial byte offset added to every reported position"`
	MissionsFile       string   `short:"m" long:"missions-file" description:"YAML file describing missions; its mission list is used only when no --encoding is given"`
	Radix              string   `short:"t" long:"radix" description:"position radix for display: d(ecimal), o(ctal), x(hex)" default:"d"`
	Args               struct {
		Filenames []string `positional-arg-name:"file"`
	} `positional-args:"yes" required:"yes"`
}

// Disable flags.PrintErrors for more control, mirroring
// cmd/bsearch_selftest's parser construction.
var parser = flags.NewParser(&opts, flags.Default&^flags.PrintErrors)

func usage() {
	parser.WriteHelp(os.Stderr)
	os.Exit(2)
}

func main() {
	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type != flags.ErrHelp {
			fmt.Fprintf(os.Stderr, "%s\n\n", err)
		}
		usage()
	}

	log.SetFlags(0)

	radix, err := stringsext.ParseRadix(opts.Radix)
	if err != nil {
		log.Fatal(err)
	}

	logLevel := zerolog.WarnLevel
	if opts.Verbose {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(logLevel).With().Timestamp().Logger()

	o := stringsext.Options{
		Encodings:        opts.Encodings,
		SameUnicodeBlock: opts.SameUnicodeBlock,
		MissionsFile:     opts.MissionsFile,
		Logger:           &logger,
	}
	if opts.CharsMin != 0 {
		o.CharsMin = &opts.CharsMin
	}
	if opts.AsciiFilter != "" {
		o.AsciiFilter = &opts.AsciiFilter
	}
	if opts.UnicodeBlockFilter != "" {
		o.UnicodeBlockFilter = &opts.UnicodeBlockFilter
	}
	if opts.GrepChar != 0 {
		o.GrepChar = &opts.GrepChar
	}
	if opts.OutputLineLen != 0 {
		o.OutputLineLen = &opts.OutputLineLen
	}
	if opts.CounterOffset != 0 {
		counterOffset := stringsext.ByteCounter(opts.CounterOffset)
		o.CounterOffset = &counterOffset
	}

	scanner, err := stringsext.NewScanner(o)
	if err != nil {
		log.Fatal(err)
	}

	findings, err := scanner.RunFindings(opts.Args.Filenames)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\xef\xbb\xbf")
	for _, f := range findings {
		fmt.Printf("%s: %s\n", formatPosition(f.Position, radix), f.S)
	}
}

// formatPosition renders a finding's byte position in the radix
// selected by -t/--radix (decimal, octal or hex), mirroring
// original_source/src/options.rs's Radix enum, which options.go's
// Radix/ParseRadix ports.
func formatPosition(pos stringsext.ByteCounter, radix stringsext.Radix) string {
	base := 10
	switch radix {
	case stringsext.RadixOctal:
		base = 8
	case stringsext.RadixHex:
		base = 16
	}
	return strconv.FormatUint(uint64(pos), base)
}
