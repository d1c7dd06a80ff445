// ABOUTME: Runtime configuration from environment, YAML file and flags
// ABOUTME: Later sources override earlier ones: defaults, env, file, flags
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/neurosonic/neurosonic-go/pkg/audio"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the remote control API port
const DefaultPort = 8928

// Speech backend names
const (
	SpeechAuto   = "auto"
	SpeechEspeak = "espeak"
	SpeechNone   = "none"
)

// Config holds all runtime configuration
type Config struct {
	// Playback
	Locale     string  `yaml:"locale"`
	Volume     float64 `yaml:"volume"`
	Track      string  `yaml:"track"`       // track id to start with
	ScriptFile string  `yaml:"script_file"` // replaces the built-in guided script

	// Audio
	Output     string `yaml:"output"` // oto, portaudio or none
	SampleRate int    `yaml:"sample_rate"`

	// Narration
	Speech       string `yaml:"speech"` // auto, espeak or none
	SpeechBinary string `yaml:"speech_binary"`

	// Remote control
	Port      int    `yaml:"port"`
	NoRemote  bool   `yaml:"no_remote"`
	Name      string `yaml:"name"`
	Advertise bool   `yaml:"advertise"`

	// Logging
	LogFile string `yaml:"log_file"`
	NoTUI   bool   `yaml:"no_tui"`

	// File is the YAML file that was overlaid, if any
	File string `yaml:"-"`
}

// Load reads configuration from environment variables with defaults
func Load() Config {
	return Config{
		Locale:     envStr("NEUROSONIC_LOCALE", string(catalog.DefaultLocale)),
		Volume:     envFloat("NEUROSONIC_VOLUME", 0.5),
		Track:      envStr("NEUROSONIC_TRACK", ""),
		ScriptFile: envStr("NEUROSONIC_SCRIPT_FILE", ""),

		Output:     envStr("NEUROSONIC_OUTPUT", "oto"),
		SampleRate: envInt("NEUROSONIC_SAMPLE_RATE", audio.DefaultSampleRate),

		Speech:       envStr("NEUROSONIC_SPEECH", SpeechAuto),
		SpeechBinary: envStr("NEUROSONIC_SPEECH_BINARY", ""),

		Port:      envInt("NEUROSONIC_PORT", DefaultPort),
		NoRemote:  envBool("NEUROSONIC_NO_REMOTE", false),
		Name:      envStr("NEUROSONIC_NAME", ""),
		Advertise: envBool("NEUROSONIC_ADVERTISE", true),

		LogFile: envStr("NEUROSONIC_LOG_FILE", "neurosonic.log"),
		NoTUI:   envBool("NEUROSONIC_NO_TUI", false),
	}
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the
// file keep their current values.
func (c Config) LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.File = path
	return c, nil
}

// RegisterFlags binds every field to a flag on fs, using the current
// values as defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "YAML config file")
	fs.StringVar(&c.Locale, "locale", c.Locale, "Narration and catalog locale (en, pt)")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "Initial volume 0..1")
	fs.StringVar(&c.Track, "track", c.Track, "Track id to start playing")
	fs.StringVar(&c.ScriptFile, "script", c.ScriptFile, "YAML guided script to use instead of the built-in one")

	fs.StringVar(&c.Output, "output", c.Output, "Audio output: oto, portaudio or none")
	fs.IntVar(&c.SampleRate, "sample-rate", c.SampleRate, "Mix bus sample rate")

	fs.StringVar(&c.Speech, "speech", c.Speech, "Speech backend: auto, espeak or none")
	fs.StringVar(&c.SpeechBinary, "speech-binary", c.SpeechBinary, "Path to espeak-ng")

	fs.IntVar(&c.Port, "port", c.Port, "Remote control API port")
	fs.BoolVar(&c.NoRemote, "no-remote", c.NoRemote, "Disable the remote control API")
	fs.StringVar(&c.Name, "name", c.Name, "Instance name (default: hostname-neurosonic)")
	fs.BoolVar(&c.Advertise, "advertise", c.Advertise, "Advertise the remote API over mDNS")

	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Log file path")
	fs.BoolVar(&c.NoTUI, "no-tui", c.NoTUI, "Disable TUI, use streaming logs instead")
}

// Validate normalizes the configuration. Volume is clamped; unknown
// locales, outputs and speech backends are errors.
func (c *Config) Validate() error {
	l, err := catalog.ParseLocale(c.Locale)
	if err != nil {
		return err
	}
	c.Locale = string(l)

	c.Volume = audio.Clamp(c.Volume, 0, 1)

	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	switch c.Output {
	case "", "oto", "portaudio", "none", "null":
	default:
		return fmt.Errorf("unknown output %q", c.Output)
	}

	c.Speech = strings.ToLower(strings.TrimSpace(c.Speech))
	switch c.Speech {
	case "":
		c.Speech = SpeechAuto
	case SpeechAuto, SpeechEspeak, SpeechNone:
	default:
		return fmt.Errorf("unknown speech backend %q", c.Speech)
	}

	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}

// InstanceName returns Name or a hostname-based default
func (c Config) InstanceName() string {
	if c.Name != "" {
		return c.Name
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-neurosonic", hostname)
}

// FileFromArgs finds a -config value in args before flags are parsed, so
// the file can supply flag defaults. NEUROSONIC_CONFIG is the fallback.
func FileFromArgs(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("NEUROSONIC_CONFIG")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
