// This command line tool tags wavetable banks by rewriting their INFO
// metadata. The cycle length marker and any chunk it doesn't know about are
// carried over. Tagged copies are stored in a banktagger folder next to the
// original files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cwbudde/wavetable/wav"
	"go.uber.org/zap"
)

var errNothingToTag = errors.New("pass -file or -dir to indicate what file or folder content to tag")

type tags struct {
	titleRegexp *regexp.Regexp
	title       string
	artist      string
	comments    string
	copyright   string
	genre       string
	keywords    string
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], logger); err != nil {
		logger.Fatal("tagging failed", zap.Error(err))
	}
}

func run(args []string, logger *zap.Logger) error {
	flagSet := flag.NewFlagSet("banktagger", flag.ContinueOnError)

	fileToTag := flagSet.String("file", "", "Path to the bank to tag")
	dirToTag := flagSet.String("dir", "", "Directory containing all the banks to tag")
	titleRegexp := flagSet.String("regexp", "", `submatch regexp to use to set the title dynamically by extracting it from the filename (ignoring the extension), example: 'bank_\d\d_(.*)'`)

	var t tags

	flagSet.StringVar(&t.title, "title", "", "Bank's title")
	flagSet.StringVar(&t.artist, "artist", "", "Bank's artist")
	flagSet.StringVar(&t.comments, "comments", "", "Bank's comments")
	flagSet.StringVar(&t.copyright, "copyright", "", "Bank's copyright")
	flagSet.StringVar(&t.genre, "genre", "", "Bank's genre")
	flagSet.StringVar(&t.keywords, "keywords", "", "Bank's keywords")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *fileToTag == "" && *dirToTag == "" {
		return errNothingToTag
	}

	if *titleRegexp != "" {
		re, err := regexp.Compile(*titleRegexp)
		if err != nil {
			return fmt.Errorf("invalid title regexp: %w", err)
		}

		t.titleRegexp = re
	}

	if *fileToTag != "" {
		outPath, err := tagFile(*fileToTag, t, logger)
		if err != nil {
			return fmt.Errorf("failed to tag %s: %w", *fileToTag, err)
		}

		logger.Info("tagged bank", zap.String("path", outPath))
	}

	if *dirToTag == "" {
		return nil
	}

	entries, err := os.ReadDir(*dirToTag)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", *dirToTag, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(strings.ToLower(filepath.Ext(entry.Name())), ".wav") {
			continue
		}

		filePath := filepath.Join(*dirToTag, entry.Name())

		outPath, err := tagFile(filePath, t, logger)
		if err != nil {
			logger.Warn("failed to tag bank", zap.String("path", filePath), zap.Error(err))

			continue
		}

		logger.Info("tagged bank", zap.String("path", outPath))
	}

	return nil
}

// apply overlays the non-empty tags on m.
func (t tags) apply(m *wav.Metadata, path string, logger *zap.Logger) {
	if t.titleRegexp != nil {
		filename := filepath.Base(path)
		filename = filename[:len(filename)-len(filepath.Ext(path))]

		matches := t.titleRegexp.FindStringSubmatch(filename)
		if len(matches) > 1 {
			m.Title = matches[1]
		} else {
			logger.Info("no title match", zap.String("regexp", t.titleRegexp.String()), zap.String("file", filename))
		}
	}

	for _, field := range []struct {
		dst *string
		val string
	}{
		{&m.Title, t.title},
		{&m.Artist, t.artist},
		{&m.Comments, t.comments},
		{&m.Copyright, t.copyright},
		{&m.Genre, t.genre},
		{&m.Keywords, t.keywords},
	} {
		if field.val != "" {
			*field.dst = field.val
		}
	}
}

func tagFile(path string, t tags, logger *zap.Logger) (outPath string, err error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s - %w", path, err)
	}
	defer in.Close()

	decoder := wav.NewDecoder(in)
	decoder.ReadMetadata()

	if err := decoder.Err(); err != nil {
		return "", fmt.Errorf("couldn't read chunks of %s: %w", path, err)
	}

	if err := decoder.Rewind(); err != nil {
		return "", err
	}

	pcm, err := decoder.PCMBytes()
	if err != nil {
		return "", fmt.Errorf("couldn't read PCM data of %s: %w", path, err)
	}

	outputDir := filepath.Join(filepath.Dir(path), "banktagger")
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	outPath = filepath.Join(outputDir, filepath.Base(path))

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("couldn't create %s %w", outPath, err)
	}

	defer func() {
		cerr := out.Close()
		if cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	encoder := wav.NewEncoder(out,
		int(decoder.SampleRate),
		int(decoder.BitDepth),
		int(decoder.NumChans))

	chunks := decoder.RawChunks()
	if decoder.CycleLength > 0 {
		chunks = append([]wav.RawChunk{wav.CycleChunk(decoder.CycleLength)}, chunks...)
	}

	encoder.SetRawChunks(chunks)

	encoder.Metadata = &wav.Metadata{}
	if decoder.Metadata != nil {
		*encoder.Metadata = *decoder.Metadata
	}

	t.apply(encoder.Metadata, path, logger)

	if err := encoder.WritePCM(pcm); err != nil {
		return "", fmt.Errorf("failed to write PCM data - %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s - %w", outPath, err)
	}

	return outPath, nil
}
