// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: timeline/controller.go
// Summary: Selection, drag and resize state machine plus create/apply/delete.

package timeline

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMinDuration is the shortest range a resize may produce, in seconds.
const DefaultMinDuration = 86400.0

// DefaultEventName is used when the name field is blank on create.
const DefaultEventName = "Untitled"

// TextBinding is an editable text source, typically a text field widget.
type TextBinding interface {
	Text() string
	SetText(string)
}

// Form groups the editors bound to the selected event. Nil members are skipped.
type Form struct {
	Name        TextBinding
	Start       TextBinding
	End         TextBinding
	Description TextBinding
}

// DragSession lives from a press on a bar until the button is released.
type DragSession struct {
	Target EventID
	Mode   DragMode
	// TimeOffset is the anchored edge minus the instant under the pointer at press, in seconds.
	TimeOffset float64
	// OriginalDuration is End-Start at press, in seconds. Only Move uses it.
	OriginalDuration float64
}

// Tooltip is shown while hovering an event that has a description.
type Tooltip struct {
	Text string
	X, Y float64
}

// Controller turns pointer and keyboard commands into store edits.
// States: Idle (drag == nil) and Dragging (drag != nil).
type Controller struct {
	Store       *Store
	View        *Viewport
	Geometry    Geometry
	Form        Form
	MinDuration float64
	Rand        RandInterface

	selected EventID
	drag     *DragSession
}

// NewController wires a controller to its store and viewport.
func NewController(store *Store, view *Viewport, geom Geometry) *Controller {
	return &Controller{
		Store:       store,
		View:        view,
		Geometry:    geom,
		MinDuration: DefaultMinDuration,
	}
}

// Selected returns the selected id or NoEvent.
func (c *Controller) Selected() EventID { return c.selected }

// Drag returns the active drag session, if any.
func (c *Controller) Drag() (DragSession, bool) {
	if c.drag == nil {
		return DragSession{}, false
	}
	return *c.drag, true
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool { return c.drag != nil }

// Select makes id the selection and loads the form from it.
func (c *Controller) Select(id EventID) bool {
	if !c.Store.Contains(id) {
		return false
	}
	c.selected = id
	c.LoadForm()
	return true
}

// ClearSelection drops the selection. An active drag is left alone.
func (c *Controller) ClearSelection() { c.selected = NoEvent }

// Forget clears any reference to id. Called whenever id leaves the store.
func (c *Controller) Forget(id EventID) {
	if c.selected == id {
		c.selected = NoEvent
	}
	if c.drag != nil && c.drag.Target == id {
		c.drag = nil
	}
}

// Validate drops references to ids that are no longer stored.
func (c *Controller) Validate() {
	if c.selected != NoEvent && !c.Store.Contains(c.selected) {
		c.selected = NoEvent
	}
	if c.drag != nil && !c.Store.Contains(c.drag.Target) {
		c.drag = nil
	}
}

// PointerDown handles a primary press at (x, y) against this frame's bars.
// It returns true when the press landed on a bar. Presses during a drag are ignored.
func (c *Controller) PointerDown(x, y float64, bars []Bar) bool {
	if c.drag != nil {
		return false
	}
	bar, ok := HitTest(bars, x, y)
	if !ok {
		c.selected = NoEvent
		return false
	}
	e, ok := c.Store.Get(bar.ID)
	if !ok {
		c.selected = NoEvent
		return false
	}
	c.selected = e.ID
	mode := c.Geometry.Mode(bar, x)
	cursor := c.View.ToInstant(x)
	s := &DragSession{Target: e.ID, Mode: mode}
	switch mode {
	case DragResizeRight:
		s.TimeOffset = Seconds(cursor, e.End)
	case DragMove:
		s.TimeOffset = Seconds(cursor, e.Start)
		s.OriginalDuration = e.DurationSeconds()
	default:
		s.TimeOffset = Seconds(cursor, e.Start)
	}
	c.drag = s
	c.LoadForm()
	return true
}

// PointerMove updates the dragged event for a pointer at x.
func (c *Controller) PointerMove(x float64) {
	if c.drag == nil {
		return
	}
	e, ok := c.Store.Get(c.drag.Target)
	if !ok {
		c.drag = nil
		return
	}
	cursor := c.View.ToInstant(x)
	switch c.drag.Mode {
	case DragMove:
		start := AddSeconds(cursor, c.drag.TimeOffset)
		end := AddSeconds(start, c.drag.OriginalDuration)
		_ = c.Store.SetTimes(e.ID, start, end)
	case DragResizeLeft:
		start := AddSeconds(cursor, c.drag.TimeOffset)
		if Seconds(start, e.End) > c.MinDuration {
			_ = c.Store.SetTimes(e.ID, start, e.End)
		}
	case DragResizeRight:
		end := AddSeconds(cursor, c.drag.TimeOffset)
		if Seconds(e.Start, end) > c.MinDuration {
			_ = c.Store.SetTimes(e.ID, e.Start, end)
		}
	}
}

// PointerUp ends the drag and refreshes the form from the edited event.
func (c *Controller) PointerUp() {
	if c.drag == nil {
		return
	}
	c.drag = nil
	if c.selected != NoEvent {
		c.LoadForm()
	}
}

// Commit creates an event from the form when nothing is selected, otherwise
// applies the form to the selection.
func (c *Controller) Commit(now time.Time) (EventID, error) {
	if c.selected == NoEvent {
		return c.Create(now)
	}
	return c.selected, c.Apply()
}

// Create inserts a new event from the form. Unparsable or inverted dates fall
// back to today at midnight and one year later.
func (c *Controller) Create(now time.Time) (EventID, error) {
	name := strings.TrimSpace(text(c.Form.Name))
	if name == "" {
		name = DefaultEventName
	}
	start, ok := ParseInstant(text(c.Form.Start))
	if !ok {
		start = StartOfDay(now)
	}
	end, ok := ParseInstant(text(c.Form.End))
	if !ok || !end.After(start) {
		end = start.AddDate(1, 0, 0)
	}
	id, err := c.Store.Insert(Event{
		Name:        name,
		Start:       start,
		End:         end,
		Description: strings.TrimSpace(text(c.Form.Description)),
		Color:       RandomColor(c.Rand),
	})
	if err != nil {
		return NoEvent, fmt.Errorf("create event: %w", err)
	}
	c.selected = id
	c.LoadForm()
	return id, nil
}

// Apply writes the form into the selected event. Fields that do not parse keep
// their stored value. An inverted range rejects the whole edit and reloads the
// form.
func (c *Controller) Apply() error {
	e, ok := c.Store.Get(c.selected)
	if !ok {
		c.selected = NoEvent
		return ErrNotFound
	}
	start, ok := ParseInstant(text(c.Form.Start))
	if !ok {
		start = e.Start
	}
	end, ok := ParseInstant(text(c.Form.End))
	if !ok {
		end = e.End
	}
	if !end.After(start) {
		c.LoadForm()
		return ErrInvalidRange
	}
	if name := strings.TrimSpace(text(c.Form.Name)); name != "" {
		_ = c.Store.SetName(e.ID, name)
	}
	if c.Form.Description != nil {
		_ = c.Store.SetDescription(e.ID, strings.TrimSpace(c.Form.Description.Text()))
	}
	err := c.Store.SetTimes(e.ID, start, end)
	c.LoadForm()
	return err
}

// DeleteSelected removes the selected event. It returns false with nothing selected.
func (c *Controller) DeleteSelected() bool {
	id := c.selected
	if id == NoEvent {
		return false
	}
	err := c.Store.Delete(id)
	c.Forget(id)
	return err == nil
}

// LoadForm copies the selected event into the bound editors.
func (c *Controller) LoadForm() {
	e, ok := c.Store.Get(c.selected)
	if !ok {
		return
	}
	set(c.Form.Name, e.Name)
	set(c.Form.Start, FormatInstant(e.Start))
	set(c.Form.End, FormatInstant(e.End))
	set(c.Form.Description, e.Description)
}

// Hover returns the tooltip for the bar under (x, y), if it has a description.
func (c *Controller) Hover(x, y float64, bars []Bar) (Tooltip, bool) {
	bar, ok := HitTest(bars, x, y)
	if !ok {
		return Tooltip{}, false
	}
	e, ok := c.Store.Get(bar.ID)
	if !ok || strings.TrimSpace(e.Description) == "" {
		return Tooltip{}, false
	}
	return Tooltip{Text: e.Description, X: x, Y: bar.Y + bar.H}, true
}

func text(b TextBinding) string {
	if b == nil {
		return ""
	}
	return b.Text()
}

func set(b TextBinding, s string) {
	if b != nil {
		b.SetText(s)
	}
}
