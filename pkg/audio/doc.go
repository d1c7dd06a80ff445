// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, the Renderer pull interface and sample conversions
// Package audio provides the fundamental types shared by the synthesis,
// mixing and output packages.
//
// Everything inside the engine is rendered as interleaved float32 stereo:
//   - Format: sample rate and channel count of the rendered stream
//   - Renderer: pull interface implemented by the mix bus and consumed by outputs
//
// Conversion helpers cover the formats output backends need:
//   - float32 ↔ int16
//   - float32 → little-endian byte stream
//
// Example:
//
//	format := audio.DefaultFormat()
//	buf := make([]float32, 512*format.Channels)
//	bus.Render(buf)
//	pcm := audio.SampleToInt16(buf[0])
package audio
