// ABOUTME: High-level NeuroSonic library API
// ABOUTME: Provides the AudioEngine, guided ScriptPlayer and playback Controller
// Package neurosonic is the main entry point for library users:
//   - AudioEngine: layers tones, binaural beats and noise on one mix bus
//   - ScriptPlayer: narrates guided sessions over an ambient bed
//   - Controller: keeps a single catalog track playing with toggle semantics
//
// For lower-level control, see the synth, mixer, speech and catalog packages.
//
// Binaural beats only work over headphones: each ear hears one tone and the
// beat is perceived, not mixed.
//
// Example:
//
//	engine := neurosonic.NewAudioEngine(neurosonic.EngineConfig{
//	    Output: output.NewOto(),
//	})
//	ctrl := neurosonic.NewController(engine, neurosonic.ControllerConfig{
//	    Locale:       catalog.English,
//	    OnLineChange: func(text string) { fmt.Println(text) },
//	})
//	ctrl.Play("theta")
//	ctrl.SetVolume(0.4)
//	ctrl.Play("theta") // second play of the same track stops it
package neurosonic
