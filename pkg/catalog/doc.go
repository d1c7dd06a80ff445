// ABOUTME: Track catalog package with localized presets and guided scripts
// ABOUTME: Provides SoundTrack, Params variants, locales and YAML script loading
// Package catalog is the static content of the engine.
//
// A Catalog is built once per Locale and never changes. Each SoundTrack
// carries a Params variant that tells the engine how to synthesize it:
// ToneParams, BinauralParams, NoiseParams or GuidedParams.
//
// Guided sessions reference a script by name. Built-in scripts are
// embedded YAML; custom ones can be loaded with LoadScriptFile:
//
//	id: evening
//	locale: en
//	ambient:
//	  beat_hz: 6
//	lines:
//	  - text: "Let the day go..."
//	    hold_ms: 4000
//
// Fields left out of the ambient block keep their DefaultAmbient values.
package catalog
