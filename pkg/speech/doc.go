// ABOUTME: Speech synthesis package for guided narration
// ABOUTME: Provides the Synthesizer interface, voice selection and backends
// Package speech narrates guided-session lines.
//
// A Synthesizer lists voices and speaks one Utterance at a time, blocking
// until the line is done. Cancelling the context passed to Speak stops the
// line immediately. Two backends are provided:
//   - Espeak: runs espeak-ng once per utterance
//   - Paced: silent, waits as long as the line would take to say
//
// SelectVoice prefers a voice for the requested language whose name
// suggests higher quality (see QualityHints):
//
//	voices, _ := synth.Voices(ctx)
//	v, _ := speech.SelectVoice(voices, "pt-BR")
//	err := synth.Speak(ctx, speech.Utterance{Text: line, Lang: "pt-BR", Voice: v, Rate: 0.85, Pitch: 0.9, Volume: 1})
package speech
