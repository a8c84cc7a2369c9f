package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"

	"github.com/chatter/uinav/internal/app"
	"github.com/chatter/uinav/internal/bindings"
	"github.com/chatter/uinav/internal/config"
	"github.com/chatter/uinav/internal/layout"
	"github.com/chatter/uinav/internal/logger"
)

// version is set from build info or falls back to "dev"
var version = "dev"

func init() {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		var usage *config.UsageError
		if errors.As(err, &usage) {
			fmt.Fprint(os.Stderr, usage.Usage)
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
		}
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("uinav needs an interactive terminal")
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Close()

	profile := colorprofile.Detect(os.Stdout, os.Environ())
	log.Info("terminal detected", "color_profile", profile.String(), "config", cfg.Path, "version", version)

	l, err := layout.Load(cfg.LayoutPath)
	if err != nil {
		return err
	}
	restrictions, err := cfg.Restrictions()
	if err != nil {
		return err
	}
	store := bindings.NewStore(cfg.BindingsPath, restrictions, log)

	model, err := app.New(cfg, l, store, log, version)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model).Run(); err != nil {
		log.Error("program exited with error", "err", err)
		return err
	}
	log.Info("uinav exited")
	return nil
}
