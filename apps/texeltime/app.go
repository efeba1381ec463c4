// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texeltime/app.go
// Summary: Timeline app: owns the state and routes each frame of input.
// Notes: Everything runs on the frame goroutine. Per frame: fields, then
//   viewport, then lane packing, then the controller against fresh bars.

package texeltime

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltime/internal/effects"
	"github.com/framegrace/texeltime/internal/theming"
	"github.com/framegrace/texeltime/texelui/core"
	"github.com/framegrace/texeltime/texelui/widgets"
	"github.com/framegrace/texeltime/timeline"
)

// AppName is the config namespace and window title.
const AppName = "texeltime"

// Screen rows.
const (
	nameRow         = 0
	descRow         = 1
	descRows        = 2
	rulerLabelRow   = 3
	rulerRow        = 4
	lanesTop        = 5
	labelWidth      = 7
	instantWidth    = 18
	minNameWidth    = 12
	instantFieldCap = 32
)

// In drag-to-zoom mode one row of vertical motion counts as this many pixels.
const zoomRowDelta = 10.0

const (
	statusHold = 3 * time.Second
	statusFade = time.Second
	flashHold  = 250 * time.Millisecond
	flashFade  = 700 * time.Millisecond
	statusKey  = "status"
)

// Initial form contents.
const (
	defaultFormName  = "My Life"
	defaultFormStart = "1990-01-01"
	defaultFormEnd   = "2030-12-31"
)

// Saver persists the record list. persist.Backend satisfies it.
type Saver interface {
	Save([]timeline.Record) error
}

// State is everything the renderer and tests observe.
type State struct {
	Store  *timeline.Store
	View   *timeline.Viewport
	Ctrl   *timeline.Controller
	Layout timeline.Layout
	Bars   []timeline.Bar

	Tooltip    timeline.Tooltip
	HasTooltip bool
	Hovered    timeline.EventID

	ZoomMode bool
	Panning  bool

	Width, Height      int
	PointerX, PointerY int
	Now                time.Time

	Status        string
	StatusIsError bool
	// Dirty is set by every edit and cleared by a successful save.
	Dirty bool
}

// App is the interactive timeline.
type App struct {
	settings Settings
	palette  theming.Palette
	state    State

	ui          *core.UIManager
	Name        *widgets.TextField
	Start       *widgets.TextField
	End         *widgets.TextField
	Description *widgets.TextField

	flash  *effects.Flash
	status *effects.Flash
	saver  Saver
	rng    *rand.Rand

	zoomDrag bool
	quit     bool
}

// New builds the app with an empty store. The view opens HistoryYears before now.
func New(settings Settings, palette theming.Palette, now time.Time) *App {
	a := &App{
		settings: settings,
		palette:  palette,
		ui:       core.NewUIManager(),
		flash:    effects.NewFlash(flashHold, flashFade),
		status:   effects.NewFlash(statusHold, statusFade),
		rng:      rand.New(rand.NewSource(now.UnixNano())),
	}

	view := timeline.NewViewport(
		timeline.AddSeconds(now, -settings.HistoryYears*timeline.SecondsPerYear),
		float64(settings.LeftMargin))
	view.PixelsPerYear = settings.PixelsPerYear
	view.MinScale = settings.MinScale
	view.MaxScale = settings.MaxScale
	view.WheelZoomIn = settings.WheelZoomIn
	view.WheelZoomOut = settings.WheelZoomOut
	view.DragZoomBase = settings.DragZoomBase
	view.DragZoomSens = settings.DragZoomSens

	geom := timeline.DefaultGeometry(lanesTop)
	geom.EdgeGrab = settings.EdgeGrab

	store := timeline.NewStore(timeline.MaxEvents)
	ctrl := timeline.NewController(store, view, geom)
	ctrl.MinDuration = settings.MinDuration.Seconds()
	ctrl.Rand = a.rng

	a.state = State{Store: store, View: view, Ctrl: ctrl, Now: now}

	a.Name = a.newField(timeline.MaxNameLen+1, false)
	a.Start = a.newField(instantFieldCap, false)
	a.End = a.newField(instantFieldCap, false)
	a.Description = a.newField(timeline.MaxDescriptionLen+1, true)
	a.Name.SetText(defaultFormName)
	a.Start.SetText(defaultFormStart)
	a.End.SetText(defaultFormEnd)
	ctrl.Form = timeline.Form{Name: a.Name, Start: a.Start, End: a.End, Description: a.Description}

	a.ui.SetBackground(tcell.StyleDefault.Background(palette.Background).Foreground(palette.Foreground))
	return a
}

func (a *App) newField(capacity int, wrap bool) *widgets.TextField {
	tf := widgets.NewTextField(0, 0, 1, 1, capacity)
	tf.Wrap = wrap
	tf.Repeat = widgets.NewKeyRepeater(a.settings.RepeatDelay, a.settings.RepeatInterval)
	tf.Repeat.Gap = a.settings.RepeatGap
	a.ui.AddWidget(tf)
	return tf
}

// GetTitle returns the window title.
func (a *App) GetTitle() string { return AppName }

// State exposes the app state to the renderer and tests.
func (a *App) State() *State { return &a.state }

// Settings returns the settings the app was built with.
func (a *App) Settings() Settings { return a.settings }

// Done reports whether the user asked to quit.
func (a *App) Done() bool { return a.quit }

// SetSaver sets the target of Ctrl+S.
func (a *App) SetSaver(s Saver) { a.saver = s }

// SetClipboard sets the Ctrl+V source for every field.
func (a *App) SetClipboard(read func() (string, error)) {
	for _, f := range a.fields() {
		f.ReadClipboard = read
	}
}

// Load replaces the store content and returns the number of records rejected.
func (a *App) Load(records []timeline.Record) int {
	skipped := a.state.Store.Load(records, a.rng)
	a.state.Ctrl.Validate()
	a.state.Dirty = false
	return skipped
}

// Records returns the events in storage order.
func (a *App) Records() []timeline.Record { return a.state.Store.Records() }

// Save writes the store through the saver.
func (a *App) Save() error {
	if a.saver == nil {
		return errors.New("no data file configured")
	}
	if err := a.saver.Save(a.state.Store.Records()); err != nil {
		return err
	}
	a.state.Dirty = false
	return nil
}

func (a *App) fields() []*widgets.TextField {
	return []*widgets.TextField{a.Name, a.Start, a.End, a.Description}
}

// Resize lays the form out for a w×h surface.
func (a *App) Resize(w, h int) {
	a.state.Width, a.state.Height = w, h
	a.ui.Resize(w, h)

	nameW := max(w-labelWidth*3-instantWidth*2-3, minNameWidth)
	x := labelWidth
	a.Name.SetPosition(x, nameRow)
	a.Name.Resize(nameW, 1)
	x += nameW + 1 + labelWidth
	a.Start.SetPosition(x, nameRow)
	a.Start.Resize(instantWidth, 1)
	x += instantWidth + 1 + labelWidth
	a.End.SetPosition(x, nameRow)
	a.End.Resize(instantWidth, 1)

	a.Description.SetPosition(labelWidth, descRow)
	a.Description.Resize(max(w-labelWidth-1, minNameWidth), descRows)
}

// Update consumes one frame of input.
func (a *App) Update(in *core.Input) {
	s := &a.state
	s.Now = in.Now
	if in.Width > 0 && (in.Width != s.Width || in.Height != s.Height) {
		a.Resize(in.Width, in.Height)
	}
	s.PointerX, s.PointerY = in.X, in.Y

	res := a.ui.Update(in)
	for _, k := range res.Keys {
		a.handleKey(k)
	}

	a.updateView(in)
	a.pack()
	a.updatePointer(in, res.PointerHit)
	s.Ctrl.Validate()
	a.updateHover()

	a.flash.Update(in.Now)
	a.status.Update(in.Now)
}

func (a *App) updateView(in *core.Input) {
	s := &a.state
	if in.Wheel != 0 {
		s.View.ZoomWheel(in.Wheel, cellCenter(in.X))
	}
	s.Panning = in.Down(tcell.Button2)
	if s.Panning && !in.JustPressed(tcell.Button2) && in.DX != 0 {
		s.View.Pan(float64(in.DX))
	}
	if a.zoomDrag {
		if in.Down(tcell.Button1) && in.DY != 0 {
			s.View.ZoomContinuous(-float64(in.DY)*zoomRowDelta, a.center())
		}
		if !in.Down(tcell.Button1) {
			a.zoomDrag = false
		}
	}
}

// pack recomputes lanes and bars for this frame's viewport.
func (a *App) pack() {
	s := &a.state
	from, to := s.View.VisibleRange(s.Width)
	margin := timeline.Seconds(from, to)
	visible := timeline.VisibleIn(timeline.AddSeconds(from, -margin), timeline.AddSeconds(to, margin))
	events := s.Store.Events()
	s.Layout = timeline.PackLanes(events, a.settings.MaxLanes, visible)
	s.Bars = s.Ctrl.Geometry.Bars(events, s.Layout, s.View)
}

func (a *App) updatePointer(in *core.Input, uiHit bool) {
	s := &a.state
	ctrl := s.Ctrl
	px, py := cellCenter(in.X), cellCenter(in.Y)

	if in.JustPressed(tcell.Button1) && !uiHit && in.Y >= rulerLabelRow && in.Y < s.Height-1 {
		if s.ZoomMode {
			a.zoomDrag = true
		} else {
			ctrl.PointerDown(px, py, s.Bars)
		}
	}
	if drag, ok := ctrl.Drag(); ok {
		before, _ := s.Store.Get(drag.Target)
		ctrl.PointerMove(px)
		if after, ok := s.Store.Get(drag.Target); ok && (!after.Start.Equal(before.Start) || !after.End.Equal(before.End)) {
			s.Dirty = true
			a.pack()
		}
		if !in.Down(tcell.Button1) {
			ctrl.PointerUp()
		}
	}
}

func (a *App) updateHover() {
	s := &a.state
	s.HasTooltip = false
	s.Hovered = timeline.NoEvent
	if s.Ctrl.Dragging() || s.PointerY < lanesTop {
		return
	}
	px, py := cellCenter(s.PointerX), cellCenter(s.PointerY)
	if bar, ok := timeline.HitTest(s.Bars, px, py); ok {
		s.Hovered = bar.ID
	}
	s.Tooltip, s.HasTooltip = s.Ctrl.Hover(px, py, s.Bars)
}

func (a *App) handleKey(k core.KeyPress) {
	s := &a.state
	switch {
	case isCtrl(k, 'q', tcell.KeyCtrlQ), isCtrl(k, 'c', tcell.KeyCtrlC):
		a.quit = true
		return
	case isCtrl(k, 's', tcell.KeyCtrlS):
		if err := a.Save(); err != nil {
			log.Printf("texeltime: save failed: %v", err)
			a.setError("Save failed: %v", err)
		} else {
			a.setStatus("Saved %d events", s.Store.Len())
		}
		return
	case k.Key == tcell.KeyEnter:
		a.commit()
		return
	}

	if a.ui.Focused() != nil {
		return
	}
	switch {
	case k.Key == tcell.KeyTab:
		a.ui.CycleFocus(k.Mod&tcell.ModShift == 0)
	case k.Key == tcell.KeyBacktab:
		a.ui.CycleFocus(false)
	case k.Key == tcell.KeyEsc:
		s.Ctrl.ClearSelection()
	case k.Key == tcell.KeyDelete:
		a.deleteSelected()
	case k.Key == tcell.KeyLeft:
		s.View.Pan(float64(s.Width) / 10)
	case k.Key == tcell.KeyRight:
		s.View.Pan(-float64(s.Width) / 10)
	case k.IsRune('z'):
		s.ZoomMode = !s.ZoomMode
		a.zoomDrag = false
		if s.ZoomMode {
			a.setStatus("Zoom mode: drag up or down to zoom, z to leave")
		} else {
			a.setStatus("Zoom mode off")
		}
	case k.IsRune('+'), k.IsRune('='):
		s.View.ZoomWheel(1, a.center())
	case k.IsRune('-'):
		s.View.ZoomWheel(-1, a.center())
	case k.IsRune('t'):
		s.View.CenterOn(s.Now, a.center())
	case k.IsRune('n'):
		s.Ctrl.ClearSelection()
		a.ui.Focus(a.Name)
	}
}

func (a *App) commit() {
	s := &a.state
	creating := s.Ctrl.Selected() == timeline.NoEvent
	id, err := s.Ctrl.Commit(s.Now)
	if !creating {
		s.Dirty = true
	}
	switch {
	case errors.Is(err, timeline.ErrStoreFull):
		a.setError("Event store is full (%d events)", s.Store.Cap())
	case errors.Is(err, timeline.ErrInvalidRange):
		a.setError("End must be after start")
	case err != nil:
		a.setError("%v", err)
	default:
		s.Dirty = true
		a.flash.Trigger(id, s.Now)
		e, _ := s.Store.Get(id)
		if creating {
			a.setStatus("Created %q", e.Name)
		} else {
			a.setStatus("Updated %q", e.Name)
		}
	}
}

func (a *App) deleteSelected() {
	s := &a.state
	e, ok := s.Store.Get(s.Ctrl.Selected())
	if !ok {
		return
	}
	if s.Ctrl.DeleteSelected() {
		s.Dirty = true
		a.setStatus("Deleted %q", e.Name)
	}
}

func (a *App) setStatus(format string, args ...any) {
	a.state.Status = fmt.Sprintf(format, args...)
	a.state.StatusIsError = false
	a.status.Trigger(statusKey, a.state.Now)
}

func (a *App) setError(format string, args ...any) {
	a.setStatus(format, args...)
	a.state.StatusIsError = true
}

// StatusIntensity is 1 while a message is fresh and fades to 0.
func (a *App) StatusIntensity() float32 {
	return a.status.Intensity(statusKey, a.state.Now)
}

func (a *App) center() float64 {
	return float64(a.state.Width) / 2
}

// cellCenter maps a cell index to the pixel at its middle.
func cellCenter(i int) float64 { return float64(i) + 0.5 }

func isCtrl(k core.KeyPress, r rune, key tcell.Key) bool {
	if k.Key == key {
		return true
	}
	return k.Key == tcell.KeyRune && k.Mod&tcell.ModCtrl != 0 && (k.Rune == r || k.Rune == r-'a'+'A')
}
