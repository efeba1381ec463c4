// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeltime/main.go
// Summary: Entry point for the terminal life timeline.
// Usage: texeltime [-file path] [-backend file|sqlite]

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
	"path/filepath"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/framegrace/texeltime/apps/texeltime"
	"github.com/framegrace/texeltime/config"
	"github.com/framegrace/texeltime/internal/devshell"
	"github.com/framegrace/texeltime/internal/persist"
	"github.com/framegrace/texeltime/internal/theming"
)

const viewportSection = "texeltime.viewport"

func main() {
	dataFile := flag.String("file", "", "event file (.json, or .db/.sqlite for SQLite)")
	backend := flag.String("backend", "", "storage backend: file or sqlite (default: by extension)")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "texeltime: needs an interactive terminal")
		os.Exit(1)
	}

	if err := run(*dataFile, *backend); err != nil {
		fmt.Fprintf(os.Stderr, "texeltime: %v\n", err)
		os.Exit(1)
	}
}

func run(dataFile, backend string) error {
	if logFile, err := setupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "texeltime: logging disabled: %v\n", err)
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
	}

	cfg := config.App(texeltime.AppName)
	if err := config.Err(); err != nil {
		log.Printf("[CONFIG] %v", err)
	}
	settings, err := resolveSettings(cfg, dataFile, backend)
	if err != nil {
		return err
	}

	store, err := persist.Open(settings.DataFile, settings.Backend)
	if err != nil {
		return err
	}
	defer store.Close()
	records, err := store.Load()
	if err != nil {
		log.Printf("[TEXELTIME] Starting empty: %v", err)
		records = nil
	}

	app := texeltime.New(settings, theming.ForApp(texeltime.AppName), time.Now())
	if skipped := app.Load(records); skipped > 0 {
		log.Printf("[TEXELTIME] Rejected %d records from %s", skipped, store.Path())
	}
	app.SetSaver(store)
	app.SetClipboard(clipboard.ReadAll)
	log.Printf("[TEXELTIME] Loaded %d events from %s", len(app.Records()), store.Path())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runErr := devshell.Run(ctx, app, devshell.Options{
		FrameInterval: settings.FrameInterval(),
		HeldRelease:   settings.HeldRelease,
	})
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if settings.SaveOnExit && app.State().Dirty {
		if err := app.Save(); err != nil {
			return fmt.Errorf("save %s: %w", store.Path(), err)
		}
		log.Printf("[TEXELTIME] Saved %d events on exit", len(app.Records()))
	}
	if settings.RememberScale {
		if err := rememberScale(texeltime.AppName, app.State().View.Scale(), settings.PixelsPerYear); err != nil {
			log.Printf("[CONFIG] Failed to store view scale: %v", err)
		}
	}
	return runErr
}

// resolveSettings applies command-line overrides on top of the app config.
func resolveSettings(cfg config.Config, dataFile, backend string) (texeltime.Settings, error) {
	settings := texeltime.SettingsFromConfig(cfg)
	if dataFile != "" {
		settings.DataFile = dataFile
	}
	if backend != "" {
		settings.Backend = backend
	}
	switch settings.Backend {
	case "", persist.BackendFile, persist.BackendSQLite:
	default:
		return settings, fmt.Errorf("unknown backend %q", settings.Backend)
	}
	if settings.DataFile == "" {
		path, err := config.DefaultDataFile()
		if err != nil {
			return settings, fmt.Errorf("locate data file: %w", err)
		}
		settings.DataFile = path
	}
	if err := os.MkdirAll(filepath.Dir(settings.DataFile), 0o755); err != nil {
		return settings, fmt.Errorf("create data directory: %w", err)
	}
	return settings, nil
}

func setupLogging() (*os.File, error) {
	logPath, err := config.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}

// rememberScale writes the zoom level the session ended at back to the app
// config as its start scale.
func rememberScale(name string, scale, configured float64) error {
	if scale <= 0 || scale == configured {
		return nil
	}
	cfg := config.App(name)
	cfg.RegisterDefaults(viewportSection, config.Section{})
	cfg.Section(viewportSection)["pixels_per_year"] = scale
	config.SetApp(name, cfg)
	return config.SaveApp(name)
}
