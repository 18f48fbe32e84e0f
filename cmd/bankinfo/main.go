// This tool reads a wavetable bank back and reports its format, metadata
// and the range of every table.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/cwbudde/wavetable"
	"github.com/cwbudde/wavetable/wav"
	"go.uber.org/zap"
)

const missingPathMessage = "You must pass the path of the bank to inspect"

var (
	errMissingPath = errors.New("missing path argument")
	errInvalidBank = errors.New("not a 16-bit PCM wav file")
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	logger, lerr := zap.NewProduction()
	if lerr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Fatal("failed to inspect bank", zap.String("path", os.Args[1]), zap.Error(err))
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() || dec.BitDepth != wavetable.BitDepth {
		return fmt.Errorf("%s: %w", args[0], errInvalidBank)
	}

	dec.ReadMetadata()

	if err := dec.Err(); err != nil {
		return err
	}

	cycleLength := dec.CycleLength
	if cycleLength == 0 {
		cycleLength = wavetable.WaveLength
	}

	if err := dec.Rewind(); err != nil {
		return err
	}

	pcm, err := dec.PCMBytes()
	if err != nil {
		return err
	}

	bank, err := wavetable.Decode(pcm, cycleLength)
	if err != nil {
		return fmt.Errorf("failed to split %s into tables: %w", args[0], err)
	}

	fmt.Fprintf(out, "Format: %d Hz, %d bit, %d channel(s)\n", dec.SampleRate, dec.BitDepth, dec.NumChans)

	if dec.Metadata != nil {
		fmt.Fprintf(out, "Title: %s\n", dec.Metadata.Title)
		fmt.Fprintf(out, "Artist: %s\n", dec.Metadata.Artist)
		fmt.Fprintf(out, "Comments: %s\n", dec.Metadata.Comments)
		fmt.Fprintf(out, "Software: %s\n", dec.Metadata.Software)
	} else {
		fmt.Fprintln(out, "No metadata present")
	}

	fmt.Fprintf(out, "Cycle length: %d\n", cycleLength)
	fmt.Fprintf(out, "Tables: %d\n", len(bank))

	for i, table := range bank {
		lo, hi := slices.Min(table), slices.Max(table)
		fmt.Fprintf(out, "\ttable [%d]:\tmin=%d max=%d peak=%d\n", i, lo, hi, max(hi, -lo))
	}

	return nil
}
