// This tool converts a wavetable bank into an AIFF file with the same
// frames and stores it in the same folder as the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/wavetable/wav"
	"github.com/go-audio/aiff"
	"go.uber.org/zap"
)

var (
	errMissingPath = errors.New("you must set the -path flag")
	errInvalidWav  = errors.New("invalid WAV file")
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], logger); err != nil {
		logger.Fatal("conversion failed", zap.Error(err))
	}
}

func run(args []string, logger *zap.Logger) error {
	flagSet := flag.NewFlagSet("banktoaiff", flag.ContinueOnError)
	sourcePath := flagSet.String("path", "", "The path to the bank to convert to aiff")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *sourcePath == "" {
		return errMissingPath
	}

	file, err := os.Open(*sourcePath)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", *sourcePath, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return fmt.Errorf("%s: %w", *sourcePath, errInvalidWav)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *sourcePath, err)
	}

	outPath := (*sourcePath)[:len(*sourcePath)-len(filepath.Ext(*sourcePath))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, int(decoder.SampleRate), int(decoder.BitDepth), int(decoder.NumChans))

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", outPath, err)
	}

	logger.Info("bank converted",
		zap.String("path", outPath),
		zap.Int("frames", len(buf.Data)/buf.Format.NumChannels),
	)

	return nil
}
