// Package capture turns pointer gestures into strokes on a surface.
package capture

import (
	"github.com/san-kum/digitlive/internal/surface"
)

// Button identifies which pointer button started a gesture.
type Button int

const (
	Primary Button = iota
	Secondary
)

// Session is the live state of one continuous drag.
type Session struct {
	Active bool
	Mode   surface.Mode
	Last   surface.Point
}

// Capture owns the surface and at most one stroke session.
type Capture struct {
	surf    *surface.Surface
	session Session

	// OnSessionStart and OnSessionEnd are called when a drag begins and ends.
	OnSessionStart func()
	OnSessionEnd   func()
}

func New(surf *surface.Surface) *Capture {
	return &Capture{surf: surf}
}

func (c *Capture) Surface() *surface.Surface { return c.surf }

func (c *Capture) Session() Session { return c.session }

// Down starts a session at p. A secondary button erases.
func (c *Capture) Down(p surface.Point, b Button) {
	mode := surface.Draw
	if b == Secondary {
		mode = surface.Erase
	}
	c.session = Session{Active: true, Mode: mode, Last: p}
	if c.OnSessionStart != nil {
		c.OnSessionStart()
	}
}

// Move extends the live stroke to p. Without a session it does nothing.
func (c *Capture) Move(p surface.Point) error {
	if !c.session.Active {
		return nil
	}
	from := c.session.Last
	c.session.Last = p
	return c.surf.Segment(from, p, c.session.Mode)
}

// Up ends the live session.
func (c *Capture) Up() {
	if !c.session.Active {
		return
	}
	c.session = Session{}
	if c.OnSessionEnd != nil {
		c.OnSessionEnd()
	}
}

// Out is treated exactly like Up.
func (c *Capture) Out() { c.Up() }

// Clear wipes the surface. A live session keeps drawing from its last point.
func (c *Capture) Clear() { c.surf.Clear() }

func (c *Capture) HasContent() bool { return !c.surf.IsEmpty() }
