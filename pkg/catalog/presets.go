// ABOUTME: Built-in track presets in both supported locales
// ABOUTME: Solfeggio tones, brainwave binaural pairs, noise colors and the NSDR session
package catalog

import "github.com/neurosonic/neurosonic-go/pkg/synth"

// NSDRScript is the script reference of the built-in guided session
const NSDRScript = "nsdr"

type localized struct {
	en, pt string
}

func (l localized) in(locale Locale) string {
	if locale == Portuguese && l.pt != "" {
		return l.pt
	}
	return l.en
}

type preset struct {
	id       string
	title    localized
	desc     localized
	category Category
	accent   Accent
	params   Params
}

// Accent colors are the Tailwind palette values of the original gradients
var presets = []preset{
	{
		id:       "nsdr-session",
		title:    localized{"Immersive NSDR Session (20min)", "Sessão NSDR Imersiva (20min)"},
		desc:     localized{"Guided hypnosis with Theta waves and Pink Noise for neural reset.", "Hipnose guiada com ondas Theta e Ruído Rosa para reset neural."},
		category: Guided,
		accent:   Accent{"#4f46e5", "#581c87"},
		params:   GuidedParams{ScriptRef: NSDRScript},
	},

	{
		id:       "174hz",
		title:    localized{en: "174 Hz - Pain Relief"},
		desc:     localized{"Relief from pain, tension, and physical stress.", "Alívio da dor, tensão e stress físico."},
		category: Solfeggio,
		accent:   Accent{"#a8a29e", "#57534e"},
		params:   ToneParams{FrequencyHz: 174},
	},
	{
		id:       "285hz",
		title:    localized{en: "285 Hz - Restoration"},
		desc:     localized{"Healing tissues and organs. Restoration.", "Regeneração de tecidos e órgãos. Cura."},
		category: Solfeggio,
		accent:   Accent{"#f87171", "#dc2626"},
		params:   ToneParams{FrequencyHz: 285},
	},
	{
		id:       "396hz",
		title:    localized{en: "396 Hz - Liberation"},
		desc:     localized{"Liberating guilt, fear, and grief.", "Liberar medo, culpa e tristeza."},
		category: Solfeggio,
		accent:   Accent{"#fb923c", "#ea580c"},
		params:   ToneParams{FrequencyHz: 396},
	},
	{
		id:       "417hz",
		title:    localized{en: "417 Hz - Change"},
		desc:     localized{"Undoing situations and facilitating change.", "Desfazer situações e facilitar mudanças."},
		category: Solfeggio,
		accent:   Accent{"#fbbf24", "#d97706"},
		params:   ToneParams{FrequencyHz: 417},
	},
	{
		id:       "528hz",
		title:    localized{en: "528 Hz - Miracle Tone"},
		desc:     localized{"DNA Repair, clarity, and peace.", "Reparação de DNA, clareza e paz."},
		category: Solfeggio,
		accent:   Accent{"#4ade80", "#059669"},
		params:   ToneParams{FrequencyHz: 528},
	},
	{
		id:       "639hz",
		title:    localized{en: "639 Hz - Connection"},
		desc:     localized{"Harmonious relationships and communication.", "Harmonia em relacionamentos e comunicação."},
		category: Solfeggio,
		accent:   Accent{"#2dd4bf", "#0891b2"},
		params:   ToneParams{FrequencyHz: 639},
	},
	{
		id:       "741hz",
		title:    localized{en: "741 Hz - Intuition"},
		desc:     localized{"Cleaning toxins and awakening intuition.", "Limpeza de toxinas e despertar da intuição."},
		category: Solfeggio,
		accent:   Accent{"#38bdf8", "#2563eb"},
		params:   ToneParams{FrequencyHz: 741},
	},
	{
		id:       "852hz",
		title:    localized{en: "852 Hz - Spiritual"},
		desc:     localized{"Returning to spiritual order and awareness.", "Retorno à ordem espiritual e consciência."},
		category: Solfeggio,
		accent:   Accent{"#818cf8", "#7c3aed"},
		params:   ToneParams{FrequencyHz: 852},
	},
	{
		id:       "963hz",
		title:    localized{en: "963 Hz - Divine"},
		desc:     localized{"Divine consciousness and enlightenment.", "Consciência divina e iluminação."},
		category: Solfeggio,
		accent:   Accent{"#e879f9", "#9333ea"},
		params:   ToneParams{FrequencyHz: 963},
	},

	{
		id:       "delta",
		title:    localized{en: "Delta (0.5 - 4Hz)"},
		desc:     localized{"Deep dreamless sleep, physical healing.", "Sono profundo sem sonhos, cura física."},
		category: Brainwaves,
		accent:   Accent{"#334155", "#0f172a"},
		params:   BinauralParams{BaseHz: 100, BeatHz: 2},
	},
	{
		id:       "theta",
		title:    localized{en: "Theta (4 - 8Hz)"},
		desc:     localized{"Deep meditation, creativity, REM sleep.", "Meditação profunda, criatividade, REM."},
		category: Brainwaves,
		accent:   Accent{"#8b5cf6", "#6b21a8"},
		params:   BinauralParams{BaseHz: 200, BeatHz: 6},
	},
	{
		id:       "alpha",
		title:    localized{en: "Alpha (8 - 14Hz)"},
		desc:     localized{"Awake relaxation, pre-sleep, calm.", "Relaxamento acordado, pré-sono, calma."},
		category: Brainwaves,
		accent:   Accent{"#60a5fa", "#2563eb"},
		params:   BinauralParams{BaseHz: 200, BeatHz: 10},
	},
	{
		id:       "beta",
		title:    localized{en: "Beta (14 - 30Hz)"},
		desc:     localized{"Active focus, analytical thinking, alert.", "Foco ativo, pensamento analítico, alerta."},
		category: Brainwaves,
		accent:   Accent{"#fbbf24", "#ea580c"},
		params:   BinauralParams{BaseHz: 250, BeatHz: 20},
	},
	{
		id:       "gamma",
		title:    localized{en: "Gamma (30 - 100Hz)"},
		desc:     localized{"High performance processing and insight.", "Processamento de alta performance e insight."},
		category: Brainwaves,
		accent:   Accent{"#f43f5e", "#dc2626"},
		params:   BinauralParams{BaseHz: 400, BeatHz: 40},
	},

	{
		id:       "brown-noise",
		title:    localized{"Brown Noise", "Ruído Marrom"},
		desc:     localized{"Deep and rumbly. Best for ADHD and silencing thoughts.", "Grave e profundo. O melhor para TDAH e silenciar pensamentos."},
		category: Noise,
		accent:   Accent{"#78716c", "#292524"},
		params:   NoiseParams{Color: synth.Brown},
	},
	{
		id:       "green-noise",
		title:    localized{"Green Noise", "Ruído Verde"},
		desc:     localized{"Nature frequencies. Sounds like forest or wind.", "Frequências da natureza. Soa como floresta ou vento."},
		category: Noise,
		accent:   Accent{"#059669", "#166534"},
		params:   NoiseParams{Color: synth.Green},
	},
	{
		id:       "pink-noise",
		title:    localized{"Pink Noise", "Ruído Rosa"},
		desc:     localized{"Balanced like steady rain. Great for reading.", "Balanceado como chuva constante. Ótimo para leitura."},
		category: Noise,
		accent:   Accent{"#f472b6", "#f43f5e"},
		params:   NoiseParams{Color: synth.Pink},
	},
	{
		id:       "white-noise",
		title:    localized{"White Noise", "Ruído Branco"},
		desc:     localized{"Pure static. Total masking of external sounds.", "Estática pura. Máscara total de sons externos."},
		category: Noise,
		accent:   Accent{"#d1d5db", "#6b7280"},
		params:   NoiseParams{Color: synth.White},
	},
}

func buildTracks(l Locale) []SoundTrack {
	tracks := make([]SoundTrack, 0, len(presets))
	for _, p := range presets {
		tracks = append(tracks, SoundTrack{
			ID:          p.id,
			Title:       p.title.in(l),
			Description: p.desc.in(l),
			Category:    p.category,
			Accent:      p.accent,
			Params:      p.params,
		})
	}
	return tracks
}
