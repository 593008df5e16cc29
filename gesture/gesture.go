// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements common pointer gestures.

Gestures accept low level pointer Events and detect higher level
actions such as clicks and two-finger pinches.
*/
package gesture

import (
	"math"
	"time"

	"github.com/burhanyldz/vector-pen/f32"
	"github.com/burhanyldz/vector-pen/io/key"
	"github.com/burhanyldz/vector-pen/io/pointer"
)

// The duration is somewhat arbitrary.
const doubleClickDuration = 200 * time.Millisecond

// Click detects click gestures in the form
// of ClickEvents.
type Click struct {
	// clickedAt is the timestamp at which
	// the last click occurred.
	clickedAt time.Duration
	// clicks is the number of consecutive clicks.
	clicks int
	// pressed tracks whether the pointer is pressed.
	pressed bool
	// pid is the pointer.ID.
	pid pointer.ID
}

// ClickEvent represent a click action, either a
// KindPress for the beginning of a click or a
// KindClick for a completed click.
type ClickEvent struct {
	Kind      ClickKind
	Position  f32.Point
	Source    pointer.Source
	Modifiers key.Modifiers
	// NumClicks records successive clicks occurring
	// within a short duration of each other.
	NumClicks int
}

type ClickKind uint8

const (
	// KindPress is reported for the first pointer
	// press.
	KindPress ClickKind = iota
	// KindClick is reported when a click action
	// is complete.
	KindClick
	// KindCancel is reported when the gesture is
	// cancelled.
	KindCancel
)

// Pressed reports whether a pointer is pressing.
func (c *Click) Pressed() bool {
	return c.pressed
}

// Update processes a pointer event and reports the click event
// it completes, if any.
func (c *Click) Update(e pointer.Event) (ClickEvent, bool) {
	switch e.Kind {
	case pointer.Release:
		if !c.pressed || c.pid != e.PointerID {
			break
		}
		c.pressed = false
		if e.Time-c.clickedAt < doubleClickDuration {
			c.clicks++
		} else {
			c.clicks = 1
		}
		c.clickedAt = e.Time
		return ClickEvent{
			Kind:      KindClick,
			Position:  e.Position,
			Source:    e.Source,
			Modifiers: e.Modifiers,
			NumClicks: c.clicks,
		}, true
	case pointer.Cancel:
		wasPressed := c.pressed
		c.pressed = false
		c.clicks = 0
		c.clickedAt = 0
		if wasPressed {
			return ClickEvent{Kind: KindCancel}, true
		}
	case pointer.Press:
		if c.pressed {
			break
		}
		if e.Source == pointer.Mouse && !e.Buttons.Contain(pointer.ButtonPrimary) {
			break
		}
		c.pressed = true
		c.pid = e.PointerID
		return ClickEvent{
			Kind:      KindPress,
			Position:  e.Position,
			Source:    e.Source,
			Modifiers: e.Modifiers,
		}, true
	}
	return ClickEvent{}, false
}

// Pinch detects two-finger pinch gestures. It tracks the first
// two touch points by identity; touch points beyond the second
// are ignored, as are events for identities it is not tracking.
type Pinch struct {
	// n is the number of tracked touch points.
	n    int
	pid0 pointer.ID
	pid1 pointer.ID
	pos0 f32.Point
	pos1 f32.Point
}

// PinchEvent reports the state of a pinch: the distance between
// the two touch points and their midpoint, both in the container
// coordinates of the underlying events.
type PinchEvent struct {
	Kind PinchKind
	Dist float32
	Mid  f32.Point
}

type PinchKind uint8

const (
	// KindPinchStart is reported when a second touch point lands.
	KindPinchStart PinchKind = iota
	// KindPinchMove is reported when either tracked touch moves.
	KindPinchMove
	// KindPinchEnd is reported when either tracked touch ends,
	// by release or by cancellation.
	KindPinchEnd
)

// Active reports whether two touch points are currently tracked.
func (p *Pinch) Active() bool {
	return p.n == 2
}

// Update processes a touch event and reports the pinch event it
// causes, if any. Events from non-touch sources are ignored.
func (p *Pinch) Update(e pointer.Event) (PinchEvent, bool) {
	if e.Source != pointer.Touch {
		return PinchEvent{}, false
	}
	switch e.Kind {
	case pointer.Press:
		switch p.n {
		case 0:
			p.pid0 = e.PointerID
			p.pos0 = e.Position
			p.n = 1
		case 1:
			if e.PointerID == p.pid0 {
				p.pos0 = e.Position
				break
			}
			p.pid1 = e.PointerID
			p.pos1 = e.Position
			p.n = 2
			return p.event(KindPinchStart), true
		}
	case pointer.Move, pointer.Drag:
		switch e.PointerID {
		case p.pid0:
			if p.n < 1 {
				break
			}
			p.pos0 = e.Position
		case p.pid1:
			if p.n < 2 {
				break
			}
			p.pos1 = e.Position
		}
		if p.n == 2 && (e.PointerID == p.pid0 || e.PointerID == p.pid1) {
			return p.event(KindPinchMove), true
		}
	case pointer.Release, pointer.Cancel:
		switch {
		case p.n >= 1 && e.PointerID == p.pid0:
			ev := p.event(KindPinchEnd)
			ended := p.n == 2
			// The second touch, if any, becomes the first.
			p.pid0, p.pos0 = p.pid1, p.pos1
			p.n--
			if ended {
				return ev, true
			}
		case p.n == 2 && e.PointerID == p.pid1:
			p.n = 1
			return p.event(KindPinchEnd), true
		}
	}
	return PinchEvent{}, false
}

func (p *Pinch) event(kind PinchKind) PinchEvent {
	d := p.pos1.Sub(p.pos0)
	return PinchEvent{
		Kind: kind,
		Dist: float32(math.Hypot(float64(d.X), float64(d.Y))),
		Mid:  p.pos0.Add(p.pos1).Mul(0.5),
	}
}

func (ck ClickKind) String() string {
	switch ck {
	case KindPress:
		return "KindPress"
	case KindClick:
		return "KindClick"
	case KindCancel:
		return "KindCancel"
	default:
		panic("invalid ClickKind")
	}
}

func (pk PinchKind) String() string {
	switch pk {
	case KindPinchStart:
		return "KindPinchStart"
	case KindPinchMove:
		return "KindPinchMove"
	case KindPinchEnd:
		return "KindPinchEnd"
	default:
		panic("invalid PinchKind")
	}
}
