// ABOUTME: Command line remote for a running NeuroSonic engine
// ABOUTME: Finds engines over mDNS and drives them through the REST API
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/neurosonic/neurosonic-go/internal/discovery"
	"github.com/neurosonic/neurosonic-go/internal/remote"
)

var (
	addr    = flag.String("addr", "", "Engine address host:port (skip mDNS)")
	timeout = flag.Duration("timeout", 3*time.Second, "mDNS lookup timeout")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	lineStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("255"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: neurosonic-ctl [flags] <command> [args]

Commands:
  discover            list engines on the local network
  tracks [category]   list catalog tracks
  state               show engine state
  play <id>           play a track (playing it again stops it)
  stop                stop playback
  volume <0..1>       set volume
  mute | unmute       mute or unmute output
  session [locale]    start the guided session
  follow              print state changes and narration as they happen

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	log.SetFlags(0)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if args[0] == "discover" {
		if err := discover(); err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		return
	}

	target, err := resolve()
	if err != nil {
		log.Fatalf("%v", err)
	}
	client := remote.NewClient(target)

	if err := run(ctx, client, args); err != nil {
		log.Fatalf("%v", err)
	}
}

// resolve returns -addr or the first engine found over mDNS
func resolve() (string, error) {
	if *addr != "" {
		return *addr, nil
	}
	found, err := discovery.Lookup(*timeout)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", fmt.Errorf("no engine found after %s (use -addr)", *timeout)
	}
	if len(found) > 1 {
		log.Printf("Found %d engines, using %s", len(found), found[0].Name)
	}
	return found[0].Addr(), nil
}

func discover() error {
	found, err := discovery.Lookup(*timeout)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println("No engines found")
		return nil
	}
	for _, inst := range found {
		fmt.Printf("%s  %s  v%s  %s\n", titleStyle.Render(inst.Name), inst.Addr(), inst.Version, faintStyle.Render(inst.Locale))
	}
	return nil
}

func run(ctx context.Context, client *remote.Client, args []string) error {
	cmd, rest := args[0], args[1:]
	arg := func() (string, error) {
		if len(rest) == 0 {
			return "", fmt.Errorf("%s needs an argument", cmd)
		}
		return rest[0], nil
	}
	optional := func() string {
		if len(rest) == 0 {
			return ""
		}
		return rest[0]
	}

	switch cmd {
	case "tracks":
		tracks, err := client.Tracks(ctx, optional())
		if err != nil {
			return err
		}
		for _, t := range tracks {
			fmt.Printf("%-14s %-10s %s\n", t.ID, t.Category, titleStyle.Render(t.Title))
		}

	case "state":
		st, err := client.State(ctx)
		if err != nil {
			return err
		}
		printState(st)

	case "play":
		id, err := arg()
		if err != nil {
			return err
		}
		st, err := client.Play(ctx, id)
		if err != nil {
			return err
		}
		if st.Playing {
			fmt.Printf("Playing %s\n", st.Title)
		} else {
			fmt.Println("Stopped")
		}

	case "stop":
		if _, err := client.Stop(ctx); err != nil {
			return err
		}
		fmt.Println("Stopped")

	case "volume":
		raw, err := arg()
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid volume %q: %w", raw, err)
		}
		st, err := client.SetVolume(ctx, v)
		if err != nil {
			return err
		}
		fmt.Printf("Volume %.0f%%\n", st.Volume*100)

	case "mute", "unmute":
		return client.Mute(ctx, cmd == "mute")

	case "session":
		st, err := client.StartSession(ctx, optional())
		if err != nil {
			return err
		}
		fmt.Printf("Guided session started (%s)\n", st.Locale)

	case "follow":
		return client.Follow(ctx, printEvent)

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func printState(st remote.StateResponse) {
	c := st.Controller
	if c.Playing {
		fmt.Printf("%s %s (%s)\n", titleStyle.Render("Playing"), c.Title, c.Kind)
	} else {
		fmt.Println(titleStyle.Render("Idle"))
	}
	fmt.Printf("Volume %.0f%%  locale %s  master gain %.3f\n", c.Volume*100, c.Locale, st.MasterGain)
	fmt.Printf("Output %v  speech %v\n", st.Capabilities.HasAudioOutput, st.Capabilities.HasSpeechSynthesis)
	if s := st.Session; s.StateName != "idle" {
		fmt.Printf("Session %s  line %d/%d  narrating %v\n", s.StateName, s.LineIndex+1, s.LineCount, s.Narrating)
		if s.LastLine != "" {
			fmt.Println(lineStyle.Render(s.LastLine))
		}
	}
	for _, n := range st.Nodes {
		desc := n.Label
		if n.Frequency > 0 {
			desc = fmt.Sprintf("%.1f Hz", n.Frequency)
		}
		fmt.Println(faintStyle.Render(fmt.Sprintf("  %-10s %-12s pan %+.0f gain %.2f", n.Kind, desc, n.Pan, n.Gain)))
	}
}

func printEvent(ev remote.Event) {
	stamp := faintStyle.Render(ev.Time.Format("15:04:05"))
	switch ev.Type {
	case remote.EventHello:
		fmt.Printf("%s connected to %s %s\n", stamp, ev.Product, ev.Version)
		if ev.State != nil && ev.State.Playing {
			fmt.Printf("%s playing %s\n", stamp, ev.State.Title)
		}
	case remote.EventState:
		if ev.State.Playing {
			fmt.Printf("%s playing %s (volume %.0f%%)\n", stamp, ev.State.Title, ev.State.Volume*100)
		} else {
			fmt.Printf("%s idle (volume %.0f%%)\n", stamp, ev.State.Volume*100)
		}
	case remote.EventLine:
		fmt.Printf("%s %s\n", stamp, lineStyle.Render(ev.Line))
	}
}
