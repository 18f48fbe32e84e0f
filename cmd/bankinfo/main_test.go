package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavetable"
	"github.com/cwbudde/wavetable/wav"
)

func writeBank(t *testing.T, bank wavetable.Bank, extra ...wav.RawChunk) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bank.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, wavetable.SampleRate, wavetable.BitDepth, wavetable.NumChannels)
	enc.Metadata = &wav.Metadata{Title: "test bank"}
	enc.SetRawChunks(extra)

	if err := enc.WritePCM(wavetable.Encode(bank)); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunReportsTables(t *testing.T) {
	square, err := wavetable.SawSquare(1024, 1024)
	if err != nil {
		t.Fatal(err)
	}

	path := writeBank(t, wavetable.Bank{wavetable.Sine(), square}, wav.CycleChunk(wavetable.WaveLength))

	var out bytes.Buffer
	if err := run([]string{path}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Format: 44100 Hz, 16 bit, 1 channel(s)\n",
		"Title: test bank\n",
		"Cycle length: 2048\n",
		"Tables: 2\n",
		"\ttable [0]:\tmin=-32767 max=32767 peak=32767\n",
		"\ttable [1]:\tmin=-32767 max=32767 peak=32767\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
}

func TestRunUsesAnnouncedCycleLength(t *testing.T) {
	table := make(wavetable.Table, wavetable.WaveLength)
	for i := range table {
		table[i] = i
	}

	path := writeBank(t, wavetable.Bank{table}, wav.CycleChunk(wavetable.WaveLength/2))

	var out bytes.Buffer
	if err := run([]string{path}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Tables: 2\n") {
		t.Fatalf("expected two half-length tables:\n%s", got)
	}

	if !strings.Contains(got, "\ttable [1]:\tmin=1024 max=2047 peak=2047\n") {
		t.Fatalf("unexpected stats for the second table:\n%s", got)
	}
}

func TestRunWithoutCycleChunk(t *testing.T) {
	path := writeBank(t, wavetable.Bank{wavetable.Sine()})

	var out bytes.Buffer
	if err := run([]string{path}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "Cycle length: 2048\n") {
		t.Fatalf("expected the default cycle length:\n%s", out.String())
	}
}

func TestRunMissingPath(t *testing.T) {
	err := run(nil, &bytes.Buffer{})
	if !errors.Is(err, errMissingPath) {
		t.Fatalf("err=%v, want errMissingPath", err)
	}
}

func TestRunRejectsOtherBitDepths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eight.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, wavetable.SampleRate, 8, 1)
	if err := enc.WritePCM([]byte{128, 128}); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	f.Close()

	err = run([]string{path}, &bytes.Buffer{})
	if !errors.Is(err, errInvalidBank) {
		t.Fatalf("err=%v, want errInvalidBank", err)
	}
}

func TestRunPartialTable(t *testing.T) {
	path := writeBank(t, wavetable.Bank{wavetable.Sine()}, wav.CycleChunk(3000))

	err := run([]string{path}, &bytes.Buffer{})
	if !errors.Is(err, wavetable.ErrPartialTable) {
		t.Fatalf("err=%v, want ErrPartialTable", err)
	}
}
