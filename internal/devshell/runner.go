// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Hosts a frame-driven app on a local tcell screen.
// Usage: cmd/texeltime builds the app and hands it to Run.

package devshell

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltime/texelui/core"
)

// App is a program driven once per frame by Run.
type App interface {
	Resize(cols, rows int)
	Update(in *core.Input)
	Render() [][]core.Cell
	Done() bool
	GetTitle() string
}

// Options tunes the host loop.
type Options struct {
	// FrameInterval is the tick period. Zero means 60 frames per second.
	FrameInterval time.Duration
	// HeldRelease is passed to the input sampler.
	HeldRelease time.Duration
}

const eventQueue = 256

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run drives app on a tcell screen until it reports Done or ctx ends.
// Events are collected between ticks and delivered as one core.Input per frame.
func Run(ctx context.Context, app App, opts Options) error {
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = time.Second / 60
	}

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.EnablePaste()

	width, height := screen.Size()
	app.Resize(width, height)
	sampler := core.NewInputSampler(opts.HeldRelease)
	sampler.SetSize(width, height)
	draw(screen, app.Render())

	events := make(chan tcell.Event, eventQueue)
	stop := make(chan struct{})
	defer close(stop)
	go pump(screen, events, stop)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			sampler.Feed(ev)
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
			}
		case now := <-ticker.C:
			in := sampler.Frame(now)
			app.Update(&in)
			if app.Done() {
				return nil
			}
			draw(screen, app.Render())
		}
	}
}

// pump forwards screen events until the screen is finalised or stop closes.
func pump(screen tcell.Screen, events chan<- tcell.Event, stop <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

func draw(screen tcell.Screen, buffer [][]core.Cell) {
	if buffer == nil {
		return
	}
	for y, row := range buffer {
		for x, cell := range row {
			// Zero runes trail wide glyphs.
			if cell.Ch == 0 {
				continue
			}
			screen.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	screen.Show()
}
