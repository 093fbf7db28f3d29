package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/meadow/assets"
	"github.com/lixenwraith/meadow/audio"
	"github.com/lixenwraith/meadow/config"
	"github.com/lixenwraith/meadow/game"
	"github.com/lixenwraith/meadow/input"
	"github.com/lixenwraith/meadow/loader"
)

var (
	configFlag = flag.String("config", "", "scene configuration file (.json or .yaml); empty uses the built-in scene")
	artFlag    = flag.String("art", "", "load sprite art from this directory instead of the embedded set")
	watchFlag  = flag.Bool("watch", false, "with -art, watch the directory and pick up new sprite widths")
	seedFlag   = flag.Int64("seed", 0, "scene placement seed; 0 derives one from the clock")
	muteFlag   = flag.Bool("mute", false, "start without audio")
	logFlag    = flag.String("log", "", "append log output to this file; default discards it")
)

func main() {
	flag.Parse()

	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	doc, err := loadConfig()
	if err != nil {
		// configuration problems abort before any rendering begins
		fmt.Fprintf(os.Stderr, "meadow: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "meadow: create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "meadow: init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Restore the terminal before the crash report lands on stderr
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nMEADOW CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	var eng *audio.Engine
	if doc.Audio.Enabled && !*muteFlag {
		eng, err = audio.NewEngine(doc.Audio.Tracks)
		if err != nil {
			if errors.Is(err, audio.ErrUnsupported) {
				log.Printf("audio disabled: %v", err)
			} else {
				log.Printf("audio failed to start: %v", err)
			}
		} else {
			eng.Start()
			defer eng.Stop()
		}
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := game.New(doc, screen, &input.ScreenEvents{Screen: screen}, eng, seed)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "meadow: %v\n", err)
		os.Exit(1)
	}

	var src loader.Source = assets.Embedded{}
	if *artFlag != "" {
		src = assets.Dir{Root: *artFlag}
		if *watchFlag {
			stop, err := loader.Watch(*artFlag, g.Registry())
			if err != nil {
				log.Printf("art watch unavailable: %v", err)
			} else {
				defer stop()
			}
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g.StartLoader(ctx, src)
	if err := g.Run(ctx); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "meadow: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Document, error) {
	if *configFlag != "" {
		return config.Load(*configFlag)
	}
	data, err := assets.DefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("embedded config: %w", err)
	}
	return config.Parse(data, config.FormatJSON)
}
