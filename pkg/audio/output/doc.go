// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the pull-model Output interface and its backends
// Package output provides audio playback backends.
//
// Outputs pull interleaved float32 frames from an audio.Renderer (normally
// the mix bus) on the device's own schedule:
//   - Oto: default backend via ebitengine/oto
//   - PortAudio: callback stream, requires building with -tags portaudio
//   - Null: headless, paced by a ticker or pumped manually
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(audio.DefaultFormat(), bus)
//	...
//	out.Suspend()
//	out.Resume()
package output
