// ABOUTME: Entry point for the NeuroSonic player
// ABOUTME: Loads configuration and runs the engine with the TUI, remote API and mDNS
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/neurosonic/neurosonic-go/internal/config"
	"github.com/neurosonic/neurosonic-go/internal/discovery"
	"github.com/neurosonic/neurosonic-go/internal/remote"
	"github.com/neurosonic/neurosonic-go/internal/ui"
	"github.com/neurosonic/neurosonic-go/internal/version"
	"github.com/neurosonic/neurosonic-go/pkg/audio/output"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/neurosonic"
	"github.com/neurosonic/neurosonic-go/pkg/speech"
)

func main() {
	cfg := config.Load()
	if path := config.FileFromArgs(os.Args[1:]); path != "" {
		loaded, err := cfg.LoadFile(path)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	useTUI := !cfg.NoTUI

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	name := cfg.InstanceName()
	log.Printf("Starting %s %s: %s", version.Product, version.Version, name)
	if cfg.File != "" {
		log.Printf("Config file: %s", cfg.File)
	}

	locale := catalog.Locale(cfg.Locale)

	// TUI setup
	var tuiProg *tea.Program
	var controls *ui.Controls

	if useTUI {
		controls = ui.NewControls()
		tuiProg, err = ui.Run(controls, locale, cfg.Volume)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
		}()
	}

	// Helper to update TUI
	updateTUI := func(msg tea.Msg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	out, err := output.New(cfg.Output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}

	narrator := newNarrator(cfg)
	hasSpeech := narrator != nil

	engine := neurosonic.NewAudioEngine(neurosonic.EngineConfig{
		SampleRate: cfg.SampleRate,
		Output:     out,
		Speech:     narrator,
	})

	hub := remote.NewHub()
	ctrlConfig := neurosonic.ControllerConfig{
		Locale: locale,
		Volume: cfg.Volume,
		OnLineChange: func(text string) {
			if !useTUI {
				log.Printf("Narration: %s", text)
			}
			updateTUI(ui.LineMsg(text))
			hub.Broadcast(remote.LineEvent(text))
		},
		OnStateChange: func(st neurosonic.ControllerState) {
			updateTUI(ui.StateMsg(st))
			hub.Broadcast(remote.StateEvent(st))
		},
	}
	if cfg.ScriptFile != "" {
		script, err := catalog.LoadScriptFile(cfg.ScriptFile)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		log.Printf("Using guided script %q from %s", script.ID, cfg.ScriptFile)
		ctrlConfig.Scripts = func(string, catalog.Locale) (catalog.GuidedScript, error) {
			return script, nil
		}
	}
	ctrl := neurosonic.NewController(engine, ctrlConfig)

	updateTUI(ui.StatusMsg{Output: out.Name(), Speech: &hasSpeech})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Remote control API and advertisement
	var disc *discovery.Manager
	if !cfg.NoRemote {
		addr := fmt.Sprintf(":%d", cfg.Port)
		api := remote.NewAPIServer(ctrl, hub)
		go api.Run(ctx, addr)
		log.Printf("Remote API listening on %s", addr)
		updateTUI(ui.StatusMsg{Remote: addr})

		if cfg.Advertise {
			disc = discovery.NewManager(discovery.Config{
				ServiceName: name,
				Port:        cfg.Port,
				Locale:      cfg.Locale,
			})
			if err := disc.Advertise(); err != nil {
				log.Printf("mDNS advertisement failed: %v", err)
			}
		}
	}

	if controls != nil {
		go handleControls(ctx, ctrl, controls)
	}

	if cfg.Track != "" {
		if !ctrl.Play(cfg.Track) {
			log.Printf("Unknown track %q, starting idle", cfg.Track)
		}
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for quit signal from TUI or OS
	if controls != nil {
		select {
		case <-controls.Quit:
			log.Printf("Received quit signal from TUI")
		case <-sigChan:
			log.Printf("Shutdown signal received")
		}
	} else {
		<-sigChan
		log.Printf("Shutdown signal received")
	}

	cancel()
	if disc != nil {
		disc.Stop()
	}
	if tuiProg != nil {
		tuiProg.Quit()
	}
	if err := ctrl.Close(); err != nil {
		log.Printf("Error closing engine: %v", err)
	}

	log.Printf("Player stopped")
}

// newNarrator picks the speech backend. A nil result means subtitles
// are paced without speech.
func newNarrator(cfg config.Config) speech.Synthesizer {
	if cfg.Speech == config.SpeechNone {
		log.Printf("Speech disabled, subtitles only")
		return nil
	}
	es, err := speech.NewEspeak(cfg.SpeechBinary)
	if err != nil {
		if cfg.Speech == config.SpeechEspeak {
			log.Fatalf("Speech backend unavailable: %v", err)
		}
		log.Printf("No speech synthesis: %v", err)
		return nil
	}
	return es
}

// handleControls applies commands from the TUI
func handleControls(ctx context.Context, ctrl *neurosonic.Controller, controls *ui.Controls) {
	for {
		select {
		case cmd := <-controls.Commands:
			switch cmd.Kind {
			case ui.CmdPlay:
				ctrl.Play(cmd.TrackID)
			case ui.CmdStop:
				ctrl.Stop()
			case ui.CmdVolume:
				log.Printf("Volume change: %.0f%%", cmd.Volume*100)
				ctrl.SetVolume(cmd.Volume)
			case ui.CmdMute:
				log.Printf("Mute: %v", cmd.Muted)
				ctrl.Engine().Mute(cmd.Muted)
			case ui.CmdLocale:
				ctrl.SetLocale(cmd.Locale)
			}
		case <-ctx.Done():
			return
		}
	}
}
