// ABOUTME: Localized interface text for the engine front ends
// ABOUTME: Category labels, session prompts, usage guidance and subliminal words
package catalog

// HowTo is the usage and safety guidance shown alongside the catalog
type HowTo struct {
	Title            string
	ConsistencyTitle string
	ConsistencyDesc  string
	HeadphonesTitle  string
	HeadphonesDesc   string
	SafetyTitle      string
	SafetyDesc       string
}

// Strings is the interface text for one locale
type Strings struct {
	Engine      string
	Breathe     string
	Categories  map[Category]string
	HowTo       HowTo
	Guide       map[string]string
	Subliminals []string
}

// CategoryLabel returns the display label for c
func (s Strings) CategoryLabel(c Category) string {
	if label, ok := s.Categories[c]; ok {
		return label
	}
	return string(c)
}

var localeStrings = map[Locale]Strings{
	English: {
		Engine:  "NeuroSonic Engine™",
		Breathe: "Breathe... Relax... Listen.",
		Categories: map[Category]string{
			Guided:     "NSDR / Hypnosis",
			Solfeggio:  "Solfeggio",
			Brainwaves: "Binaural Beats",
			Noise:      "Colored Noise",
		},
		HowTo: HowTo{
			Title:            "How and Why to Use?",
			ConsistencyTitle: "Consistency is Key",
			ConsistencyDesc:  "The brain needs repeated exposure to 'entrain' brainwaves. Use daily for at least 15 minutes.",
			HeadphonesTitle:  "Stereo Headphones",
			HeadphonesDesc:   "Essential for 'Binaural' tracks to create the ghost frequency inside the brain.",
			SafetyTitle:      "Safety & Timing",
			SafetyDesc:       "Do not use NSDR or Delta/Theta frequencies while driving.",
		},
		Guide: map[string]string{
			"gamma": "Extreme Focus & Problem Solving",
			"beta":  "Active Work & Reading",
			"alpha": "Relaxed Flow & Learning",
			"theta": "Deep Meditation & Creativity",
			"delta": "Deep Sleep & Physical Healing",
		},
		Subliminals: []string{"HEAL", "POWER", "FOCUS", "PEACE", "LIFE", "LIGHT", "FLOW", "NOW", "I AM", "LOVE"},
	},
	Portuguese: {
		Engine:  "NeuroSonic Engine™",
		Breathe: "Respire... Relaxe... Escute.",
		Categories: map[Category]string{
			Guided:     "NSDR / Hipnose",
			Solfeggio:  "Solfeggio",
			Brainwaves: "Ondas Binaurais",
			Noise:      "Ruído Colorido",
		},
		HowTo: HowTo{
			Title:            "Como e Por Que Usar?",
			ConsistencyTitle: "Consistência é Chave",
			ConsistencyDesc:  "O cérebro precisa de exposição repetida para 'arrastar' (entrainment) as ondas cerebrais. Use diariamente por pelo menos 15 minutos.",
			HeadphonesTitle:  "Fones de Ouvido Estéreo",
			HeadphonesDesc:   "Essencial para faixas 'Binaurais'. O motor gera tons diferentes para cada ouvido, criando uma frequência fantasma.",
			SafetyTitle:      "Segurança e Timing",
			SafetyDesc:       "Não use NSDR ou frequências Delta/Theta ao dirigir.",
		},
		Guide: map[string]string{
			"gamma": "Foco Extremo & Resolução de Problemas",
			"beta":  "Trabalho Ativo & Leitura",
			"alpha": "Flow Relaxado & Aprendizado",
			"theta": "Meditação Profunda & Criatividade",
			"delta": "Sono Profundo & Cura Física",
		},
		Subliminals: []string{"CURA", "PODER", "FOCO", "PAZ", "VIDA", "LUZ", "FLUIR", "AGORA", "EU SOU", "AMOR"},
	},
}

// StringsFor returns the interface text for l, falling back to English
func StringsFor(l Locale) Strings {
	if s, ok := localeStrings[l]; ok {
		return s
	}
	return localeStrings[DefaultLocale]
}
