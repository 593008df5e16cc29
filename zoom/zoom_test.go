// SPDX-License-Identifier: Unlicense OR MIT

package zoom

import (
	"bytes"
	"image/color"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vectorpen "github.com/burhanyldz/vector-pen"
	"github.com/burhanyldz/vector-pen/f32"
	"github.com/burhanyldz/vector-pen/io/key"
	"github.com/burhanyldz/vector-pen/io/pointer"
	"github.com/burhanyldz/vector-pen/svg"
)

func touch(kind pointer.Kind, id pointer.ID, x, y float32, at time.Duration) pointer.Event {
	return pointer.Event{
		Kind:      kind,
		Source:    pointer.Touch,
		PointerID: id,
		Position:  f32.Pt(x, y),
		Time:      at,
	}
}

func newTestView(t *testing.T, opts Options) (*Engine, Handle, *svg.Group) {
	t.Helper()
	container := svg.NewGroup()
	content := svg.NewGroup()
	container.Append(content)
	e := NewEngine(opts)
	h := e.Attach(container)
	require.NotZero(t, h)
	return e, h, content
}

// pinch lands two fingers at the given distance apart around mid,
// spreads them to toDist and lifts them.
func pinch(e *Engine, h Handle, mid f32.Point, fromDist, toDist float32, at time.Duration) {
	e.Pointer(h, touch(pointer.Press, 1, mid.X-fromDist/2, mid.Y, at))
	e.Pointer(h, touch(pointer.Press, 2, mid.X+fromDist/2, mid.Y, at))
	e.Pointer(h, touch(pointer.Move, 2, mid.X+toDist-fromDist/2, mid.Y, at+10*time.Millisecond))
	e.Pointer(h, touch(pointer.Release, 1, mid.X-fromDist/2, mid.Y, at+20*time.Millisecond))
	e.Pointer(h, touch(pointer.Release, 2, mid.X+toDist-fromDist/2, mid.Y, at+20*time.Millisecond))
}

func TestPinchScale(t *testing.T) {
	e, h, content := newTestView(t, Options{DisablePan: true})
	// Distance 100 to 200 doubles the scale.
	pinch(e, h, f32.Pt(100, 50), 100, 200, 0)
	require.InDelta(t, 2.0, e.Scale(h), 1e-6)
	require.Equal(t, f32.Point{}, e.Offset(h))
	require.Equal(t, "translate(0px, 0px) scale(2)", content.Transform())
}

func TestPinchClamped(t *testing.T) {
	e, h, _ := newTestView(t, Options{MaxZoom: 1.5, DisablePan: true})
	pinch(e, h, f32.Pt(100, 50), 100, 200, 0)
	// The applied scale never exceeds the bound mid-pinch.
	require.Equal(t, float32(1.5), e.Scale(h))
}

func TestPinchPanAnchorsMidpoint(t *testing.T) {
	e, h, _ := newTestView(t, Options{})
	at := time.Duration(0)
	e.Pointer(h, touch(pointer.Press, 1, 50, 50, at))
	e.Pointer(h, touch(pointer.Press, 2, 150, 50, at))
	// Both fingers shift right by 30 at constant distance: pure pan.
	e.Pointer(h, touch(pointer.Move, 1, 80, 50, at+10*time.Millisecond))
	e.Pointer(h, touch(pointer.Move, 2, 180, 50, at+10*time.Millisecond))
	require.InDelta(t, 1.0, e.Scale(h), 1e-6)
	require.InDelta(t, 30.0, e.Offset(h).X, 1e-4)
	require.InDelta(t, 0.0, e.Offset(h).Y, 1e-4)
}

func TestPinchStaleIdentityIgnored(t *testing.T) {
	e, h, _ := newTestView(t, Options{DisablePan: true})
	at := time.Duration(0)
	e.Pointer(h, touch(pointer.Press, 1, 50, 50, at))
	e.Pointer(h, touch(pointer.Press, 2, 150, 50, at))
	// A third touch and moves of unknown identities change nothing.
	e.Pointer(h, touch(pointer.Press, 3, 0, 0, at))
	e.Pointer(h, touch(pointer.Move, 9, 500, 500, at))
	require.InDelta(t, 1.0, e.Scale(h), 1e-6)
	e.Pointer(h, touch(pointer.Move, 2, 250, 50, at+10*time.Millisecond))
	require.InDelta(t, 2.0, e.Scale(h), 1e-6)
}

func TestSnapBack(t *testing.T) {
	e, h, _ := newTestView(t, Options{MaxZoom: 2, DisablePan: true})
	var events []TransformEvent
	e.OnTransform(func(ev TransformEvent) { events = append(events, ev) })

	// Raw pinch scale 3 exceeds maxZoom 2.
	pinch(e, h, f32.Pt(100, 50), 100, 300, 0)
	require.Equal(t, float32(2), e.Scale(h))

	// The snap-back starts from the raw overshoot and converges on
	// the bound.
	e.Frame(20 * time.Millisecond)
	require.Equal(t, float32(3), e.Scale(h))
	e.Frame(120 * time.Millisecond)
	mid := e.Scale(h)
	require.Greater(t, mid, float32(2))
	require.Less(t, mid, float32(3))
	e.Frame(220 * time.Millisecond)
	require.Equal(t, float32(2), e.Scale(h))

	// Once settled, further frames do not re-apply.
	n := len(events)
	e.Frame(300 * time.Millisecond)
	require.Len(t, events, n)
}

func TestSnapBackLowerBound(t *testing.T) {
	e, h, _ := newTestView(t, Options{MinZoom: 0.5, DisablePan: true})
	pinch(e, h, f32.Pt(100, 50), 200, 20, 0)
	require.Equal(t, float32(0.5), e.Scale(h))
	e.Frame(20*time.Millisecond + 200*time.Millisecond)
	require.Equal(t, float32(0.5), e.Scale(h))
}

func TestNoSnapBackInBounds(t *testing.T) {
	e, h, _ := newTestView(t, Options{DisablePan: true})
	var events int
	e.OnTransform(func(TransformEvent) { events++ })
	pinch(e, h, f32.Pt(100, 50), 100, 150, 0)
	n := events
	e.Frame(500 * time.Millisecond)
	require.Equal(t, n, events)
}

func TestWheelZoom(t *testing.T) {
	e, h, _ := newTestView(t, Options{DisablePan: true})
	e.Pointer(h, pointer.Event{
		Kind:     pointer.Scroll,
		Source:   pointer.Mouse,
		Position: f32.Pt(0, 0),
		Scroll:   f32.Pt(0, -100),
	})
	require.InDelta(t, 1.2, e.Scale(h), 1e-6)
}

func TestWheelZoomAnchorsCursor(t *testing.T) {
	e, h, _ := newTestView(t, Options{})
	cursor := f32.Pt(100, 60)
	e.Pointer(h, pointer.Event{
		Kind:     pointer.Scroll,
		Source:   pointer.Mouse,
		Position: cursor,
		Scroll:   f32.Pt(0, -100),
	})
	scale := e.Scale(h)
	require.InDelta(t, 1.2, scale, 1e-6)
	// The content point under the cursor stays under the cursor:
	// offset + scale*p == cursor for p == cursor before the zoom.
	off := e.Offset(h)
	require.InDelta(t, cursor.X, off.X+scale*cursor.X, 1e-3)
	require.InDelta(t, cursor.Y, off.Y+scale*cursor.Y, 1e-3)
}

func TestWheelZoomClamped(t *testing.T) {
	e, h, _ := newTestView(t, Options{MaxZoom: 1.1, DisablePan: true})
	for i := 0; i < 10; i++ {
		e.Pointer(h, pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, -100)})
	}
	require.Equal(t, float32(1.1), e.Scale(h))
}

func doubleClick(e *Engine, h Handle, at time.Duration) {
	for i := 0; i < 2; i++ {
		e.Pointer(h, pointer.Event{
			Kind: pointer.Press, Source: pointer.Mouse,
			Buttons: pointer.ButtonPrimary, Time: at,
		})
		e.Pointer(h, pointer.Event{
			Kind: pointer.Release, Source: pointer.Mouse,
			Time: at + 20*time.Millisecond,
		})
		at += 50 * time.Millisecond
	}
}

func TestPresentationToggle(t *testing.T) {
	e, h, content := newTestView(t, Options{DisablePan: true})
	var presentations []bool
	e.OnPresentation(func(ev PresentationEvent) { presentations = append(presentations, ev.Presentation) })

	pinch(e, h, f32.Pt(100, 50), 100, 150, 0)
	require.InDelta(t, 1.5, e.Scale(h), 1e-6)

	doubleClick(e, h, time.Second)
	require.True(t, e.Presentation(h))
	require.Equal(t, float32(1), e.Scale(h))
	require.Equal(t, f32.Point{}, e.Offset(h))
	require.Equal(t, "translate(0px, 0px) scale(1)", content.Transform())

	doubleClick(e, h, 2*time.Second)
	require.False(t, e.Presentation(h))
	require.Equal(t, []bool{true, false}, presentations)
}

func TestPresentationDisabled(t *testing.T) {
	e, h, _ := newTestView(t, Options{DisablePresentation: true})
	doubleClick(e, h, time.Second)
	require.False(t, e.Presentation(h))
}

func TestEscapeExitsPresentationEverywhere(t *testing.T) {
	e := NewEngine(Options{})
	containers := make([]*svg.Group, 3)
	handles := make([]Handle, 3)
	for i := range containers {
		containers[i] = svg.NewGroup()
		containers[i].Append(svg.NewGroup())
		handles[i] = e.Attach(containers[i])
	}
	doubleClick(e, handles[0], time.Second)
	doubleClick(e, handles[2], 2*time.Second)
	require.True(t, e.Presentation(handles[0]))
	require.False(t, e.Presentation(handles[1]))
	require.True(t, e.Presentation(handles[2]))

	e.Key(key.Event{Name: key.NameEscape, State: key.Press})
	for _, h := range handles {
		require.False(t, e.Presentation(h))
	}

	// A release or another key does nothing.
	doubleClick(e, handles[1], 3*time.Second)
	e.Key(key.Event{Name: key.NameEscape, State: key.Release})
	e.Key(key.Event{Name: key.NameTab, State: key.Press})
	require.True(t, e.Presentation(handles[1]))
}

func TestPerContainerIndependence(t *testing.T) {
	e := NewEngine(Options{DisablePan: true})
	c1, c2 := svg.NewGroup(), svg.NewGroup()
	c1.Append(svg.NewGroup())
	c2.Append(svg.NewGroup())
	h1, h2 := e.Attach(c1), e.Attach(c2)

	// Interleaved pinches on two containers do not interfere.
	e.Pointer(h1, touch(pointer.Press, 1, 0, 0, 0))
	e.Pointer(h2, touch(pointer.Press, 1, 0, 0, 0))
	e.Pointer(h1, touch(pointer.Press, 2, 100, 0, 0))
	e.Pointer(h2, touch(pointer.Press, 2, 50, 0, 0))
	e.Pointer(h1, touch(pointer.Move, 2, 200, 0, 0))
	e.Pointer(h2, touch(pointer.Move, 2, 75, 0, 0))
	require.InDelta(t, 2.0, e.Scale(h1), 1e-6)
	require.InDelta(t, 1.5, e.Scale(h2), 1e-6)
}

func TestTransformApplication(t *testing.T) {
	container := svg.NewGroup()
	content := svg.NewGroup()
	r := &svg.Rect{Width: 10, Height: 10, Fill: color.NRGBA{A: 0xff}}
	container.Append(content, r)
	e := NewEngine(Options{DisablePan: true})
	h := e.Attach(container)

	var events []TransformEvent
	l := e.OnTransform(func(ev TransformEvent) { events = append(events, ev) })
	pinch(e, h, f32.Pt(100, 50), 100, 150, 0)

	// Every direct child carries the same transform.
	require.Equal(t, "translate(0px, 0px) scale(1.5)", content.Transform())
	require.Equal(t, "translate(0px, 0px) scale(1.5)", r.Transform())
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	require.Equal(t, TransformEvent{Scale: 1.5}, last)

	// Resize re-applies the transform unchanged.
	n := len(events)
	e.Resize(h)
	require.Len(t, events, n+1)
	require.Equal(t, last, events[n])

	l.Remove()
	e.Resize(h)
	require.Len(t, events, n+1)
	l.Remove() // idempotent

	af := e.Transform(h)
	sx, _, ox, _, sy, oy := af.Elems()
	require.Equal(t, float32(1.5), sx)
	require.Equal(t, float32(1.5), sy)
	require.Equal(t, float32(0), ox)
	require.Equal(t, float32(0), oy)
}

func TestDetach(t *testing.T) {
	container := svg.NewGroup()
	content := svg.NewGroup()
	container.Append(content)
	e := NewEngine(Options{DisablePan: true})
	h := e.Attach(container)
	pinch(e, h, f32.Pt(100, 50), 100, 150, 0)
	require.NotEmpty(t, content.Transform())

	e.Detach(h)
	require.Empty(t, content.Transform())
	// Stale handle operations are silent no-ops.
	require.Zero(t, e.Scale(h))
	e.Pointer(h, touch(pointer.Press, 1, 0, 0, 0))
	e.Resize(h)

	h2 := e.Attach(container)
	require.NotEqual(t, h, h2)
	require.Equal(t, float32(1), e.Scale(h2))
}

func TestAttachWarnsWithoutChildren(t *testing.T) {
	var buf bytes.Buffer
	vectorpen.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer vectorpen.SetLogger(nil)

	e := NewEngine(Options{})
	e.Attach(svg.NewGroup())
	require.Contains(t, buf.String(), "no children to transform")
}

func TestMutatorsApplyToNextGesture(t *testing.T) {
	e, h, _ := newTestView(t, Options{DisablePan: true})
	e.SetMaxZoom(1.2)
	pinch(e, h, f32.Pt(100, 50), 100, 200, 0)
	require.Equal(t, float32(1.2), e.Scale(h))
}
