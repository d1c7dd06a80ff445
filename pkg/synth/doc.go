// ABOUTME: Signal synthesis package for tones, binaural pairs and colored noise
// ABOUTME: Provides oscillators, the panner law, noise buffers and automation params
// Package synth holds the signal-level building blocks of the engine.
//
// Oscillator renders a sine wave; PanGains places a mono source in the stereo
// field. A binaural pair is two oscillators hard panned left and right, a
// few Hz apart. Binaural beats only work on headphones, since each ear must
// hear exactly one of the two tones.
//
// GenerateNoise builds a two-second loop buffer for white, pink, brown or
// green noise. The filtered colors share one recurrence and differ only in
// their Coefficients:
//
//	buf := synth.GenerateNoise(synth.Brown, 48000, rand.New(rand.NewSource(1)))
//
// Param schedules gain changes on a timeline (set, linear ramp, exponential
// target) the same way every gain stage in the mixer is automated.
package synth
