// This tool assembles a wavetable bank and writes it as a mono 16-bit wav
// (or aiff) file that wavetable synths can load.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/wavetable"
	"github.com/cwbudde/wavetable/wav"
	"github.com/go-audio/aiff"
	"go.uber.org/zap"
)

var errUnknownFormat = errors.New("unknown output format")

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], logger); err != nil {
		logger.Fatal("failed to write the wavetable bank", zap.Error(err))
	}
}

func run(args []string, logger *zap.Logger) error {
	flagSet := flag.NewFlagSet("wavetables", flag.ContinueOnError)

	output := flagSet.String("output", "", "filename to write to (default <preset>.wav or <preset>.aif)")
	preset := flagSet.String("preset", "basics", fmt.Sprintf("bank to generate, one of %v", wavetable.PresetNames()))
	format := flagSet.String("format", "wav", "container to write, wav or aiff")
	cycleMarker := flagSet.Bool("cycle-marker", true, "announce the cycle length in a clm chunk (wav only)")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	var (
		ext   string
		write func(*os.File, wavetable.Bank) (int, error)
	)

	switch *format {
	case "wav":
		ext = ".wav"
		write = func(f *os.File, bank wavetable.Bank) (int, error) {
			return writeWav(f, bank, *preset, *cycleMarker)
		}
	case "aiff":
		ext = ".aif"
		write = writeAiff
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, *format)
	}

	if *output == "" {
		*output = *preset + ext
	}

	recipe, err := wavetable.Preset(*preset)
	if err != nil {
		return err
	}

	// the whole bank is built before the file exists so a failing
	// generator leaves nothing behind
	bank, err := recipe.Build(context.Background())
	if err != nil {
		return fmt.Errorf("failed to assemble %s: %w", *preset, err)
	}

	logger.Info("assembled bank",
		zap.String("preset", *preset),
		zap.Int("tables", len(bank)),
		zap.Int("frames", bank.Frames()),
	)

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer file.Close()

	written, err := write(file, bank)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}

	logger.Info("wrote bank",
		zap.String("path", *output),
		zap.String("format", *format),
		zap.Int("bytes", written),
	)

	return nil
}

func writeWav(f *os.File, bank wavetable.Bank, title string, cycleMarker bool) (int, error) {
	enc := wav.NewEncoder(f, wavetable.SampleRate, wavetable.BitDepth, wavetable.NumChannels)
	enc.Metadata = &wav.Metadata{
		Title:    title,
		Software: "wavetable",
	}

	if cycleMarker {
		enc.SetRawChunks([]wav.RawChunk{wav.CycleChunk(wavetable.WaveLength)})
	}

	if err := enc.WritePCM(wavetable.Encode(bank)); err != nil {
		return 0, err
	}

	if err := enc.Close(); err != nil {
		return 0, err
	}

	return enc.WrittenBytes, nil
}

// writeAiff stores the clamped bank as big-endian aiff frames.
func writeAiff(f *os.File, bank wavetable.Bank) (int, error) {
	enc := aiff.NewEncoder(f, wavetable.SampleRate, wavetable.BitDepth, wavetable.NumChannels)

	if err := enc.Write(bank.IntBuffer()); err != nil {
		return 0, err
	}

	if err := enc.Close(); err != nil {
		return 0, err
	}

	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	return int(fi.Size()), nil
}
