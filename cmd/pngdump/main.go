// Command pngdump decodes a PNG file and prints a diagnostic dump of its
// metadata and pixels.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/brackenforge/pngcore"
	"github.com/brackenforge/pngcore/internal/chunk"
)

type CommandOptions struct {
	Input  string
	Strict bool
	JSON   bool
}

var Options CommandOptions
var ShowHelper bool

func init() {
	flag.BoolVar(&ShowHelper, "h", false, "show this help")
	flag.StringVar(&Options.Input, "i", "", "png `file` to decode")
	flag.BoolVar(&Options.Strict, "strict", false, "also verify every chunk's CRC32 and report mismatches")
	flag.BoolVar(&Options.JSON, "json", false, "emit the dump as JSON instead of the text table")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, `pngdump: PNG core decoder diagnostic dump
Usage: pngdump -i file.png [-strict] [-json]

Options:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if ShowHelper || Options.Input == "" {
		flag.Usage()
		os.Exit(0)
	}
	if err := run(Options); err != nil {
		log.Fatal(err)
	}
}

func run(opts CommandOptions) error {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return err
	}

	img, err := pngcore.Decode(data)
	if err != nil {
		return err
	}

	if opts.Strict {
		reportCRC(data)
	}

	if opts.JSON {
		encoded, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(img, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	fmt.Print(img.Dump())
	return nil
}

// reportCRC re-splits the raw file into chunks and checks every one's
// CRC32, independent of pngcore.Decode (which never verifies CRCs). A
// chunk failing this check still decoded fine; this is purely diagnostic.
func reportCRC(data []byte) {
	chunks, err := chunk.Split(data)
	if err != nil {
		log.Printf("strict: could not re-split chunks for CRC check: %v", err)
		return
	}
	bad := 0
	for i, c := range chunks {
		if !chunk.VerifyCRC32(c) {
			bad++
			log.Printf("strict: chunk %d (%s) failed CRC32 check", i, c.Type)
		}
	}
	if bad == 0 {
		log.Printf("strict: all %d chunks passed CRC32", len(chunks))
	}
}
