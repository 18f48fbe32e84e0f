// Package wavetable synthesizes single-cycle waveform tables and assembles
// them into banks that wavetable synthesizers can load from one mono PCM file.
//
// Generators return pre-quantization integer samples. Some shapes overshoot
// the 16-bit range on purpose; Quantize and Encode clamp every sample before
// it reaches a container:
//
//   - Sine, Triangle, SkewedTriangle, SawSquare and Supersaw build one table
//   - Morph blends two tables of equal length
//   - Recipe.Build assembles an ordered Bank
//   - Encode serializes a Bank as little-endian signed 16-bit frames
//
// The wav subpackage persists the encoded stream as a RIFF/WAVE file.
package wavetable
