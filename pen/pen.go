// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pen captures freehand pointer strokes into smoothed vector
paths on attachable overlay surfaces.

An Engine owns one overlay per attached container. While a tool is
active, a pointer press starts a stroke, moves extend it with a live
preview, and the release commits it: pen strokes become permanent
paths, eraser strokes become luminance masks wrapped around all
content drawn before them, so erasing hides without deleting. At
most one pointer draws on a surface at a time; a second concurrent
touch cancels the stroke in flight.

Event delivery and coordinate translation are the host's concern:
it forwards pointer events in container-local coordinates together
with the Handle returned from Attach.
*/
package pen

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/burhanyldz/vector-pen/f32"
	"github.com/burhanyldz/vector-pen/io/event"
	"github.com/burhanyldz/vector-pen/io/pointer"
	"github.com/burhanyldz/vector-pen/svg"
)

// Tool is the active input mode of an Engine.
type Tool uint8

const (
	// ToolNone draws nothing; pointer events pass through.
	ToolNone Tool = iota
	// ToolPen draws visible strokes.
	ToolPen
	// ToolEraser masks out previously drawn content.
	ToolEraser
)

// Options configures an Engine. The zero value of a field selects
// its default.
type Options struct {
	// StrokeWidth is the pen stroke width. Default 2.
	StrokeWidth float32
	// StrokeColor is the pen stroke color. Default black.
	StrokeColor color.NRGBA
	// EraserWidth is the eraser stroke width. Default 40.
	EraserWidth float32
	// MinDistance is the minimum distance between two recorded
	// stroke points. Closer pointer moves are dropped. Default 2.
	MinDistance float32
}

func (o Options) normalize() Options {
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = 2
	}
	if o.StrokeColor == (color.NRGBA{}) {
		o.StrokeColor = color.NRGBA{A: 0xff}
	}
	if o.EraserWidth <= 0 {
		o.EraserWidth = 40
	}
	if o.MinDistance <= 0 {
		o.MinDistance = 2
	}
	return o
}

// StrokeRecord is one committed stroke. Records are immutable; the
// Points snapshot alone reproduces PathData through Smooth.
type StrokeRecord struct {
	ID       uuid.UUID
	Tool     Tool
	PathData string
	Points   []f32.Point
}

// Handle identifies an attached container. The zero Handle is
// invalid; operations on a Handle whose container was detached are
// silent no-ops.
type Handle struct {
	index int
	gen   uint32
}

// Engine is the stroke capture engine. The zero value is not valid;
// use NewEngine.
type Engine struct {
	opts    Options
	tool    Tool
	slots   []surfaceSlot
	handles map[event.Tag]Handle
}

type surfaceSlot struct {
	gen  uint32
	live bool
	s    surfaceState
}

// surfaceState is the per-container record. It is only ever mutated
// through the engine methods handling events for its container.
type surfaceState struct {
	container *svg.Group
	overlay   *svg.SVG
	defs      *svg.Defs
	layer     *svg.Group

	records   []StrokeRecord
	maskDepth int
	maskSeq   int

	// Stroke in flight. owner is the exclusive pointer identity;
	// only its events drive the stroke.
	drawing  bool
	ownerSet bool
	owner    pointer.ID
	points   []f32.Point
	// touches tracks every pointer currently pressed on the
	// container, drawing or not.
	touches map[pointer.ID]bool

	// Stroke configuration captured at stroke start; mutators do
	// not apply retroactively.
	tool        Tool
	minDistance float32

	// preview is the live path, mutated in place on every recorded
	// move. For an eraser stroke it lives inside mask, and wrapper
	// is the group gated by it.
	preview *svg.Path
	wrapper *svg.Group
	mask    *svg.Mask
}

// NewEngine returns an Engine with the given options. Zero option
// fields assume their defaults.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:    opts.normalize(),
		handles: make(map[event.Tag]Handle),
	}
}

// Attach wires container for drawing and returns its Handle. The
// overlay surface is appended to the container; size it with Resize.
// Attaching an already attached container returns the existing
// Handle.
func (e *Engine) Attach(container *svg.Group) Handle {
	if container == nil {
		return Handle{}
	}
	if h, ok := e.handles[container]; ok {
		return h
	}
	overlay := svg.NewSVG(0, 0)
	defs := svg.NewDefs()
	layer := svg.NewGroup()
	overlay.Append(defs, layer)
	container.Append(overlay)

	i := slices.IndexFunc(e.slots, func(sl surfaceSlot) bool { return !sl.live })
	if i < 0 {
		i = len(e.slots)
		e.slots = append(e.slots, surfaceSlot{})
	}
	sl := &e.slots[i]
	sl.gen++
	sl.live = true
	sl.s = surfaceState{
		container: container,
		overlay:   overlay,
		defs:      defs,
		layer:     layer,
		touches:   make(map[pointer.ID]bool),
	}
	h := Handle{index: i, gen: sl.gen}
	e.handles[container] = h
	return h
}

// Detach reverses Attach: the overlay and all recorded strokes of
// the container are dropped and h becomes invalid.
func (e *Engine) Detach(h Handle) {
	s := e.lookup(h)
	if s == nil {
		return
	}
	if s.drawing {
		e.discardStroke(s)
	}
	s.container.Remove(s.overlay)
	delete(e.handles, event.Tag(s.container))
	sl := &e.slots[h.index]
	sl.live = false
	sl.s = surfaceState{}
}

func (e *Engine) lookup(h Handle) *surfaceState {
	if h.gen == 0 || h.index < 0 || h.index >= len(e.slots) {
		return nil
	}
	sl := &e.slots[h.index]
	if !sl.live || sl.gen != h.gen {
		return nil
	}
	return &sl.s
}

// Resize updates the overlay coordinate space to the container's
// current box size. Hosts call it before the next render after any
// size change.
func (e *Engine) Resize(h Handle, width, height float32) {
	s := e.lookup(h)
	if s == nil {
		return
	}
	s.overlay.Width, s.overlay.Height = width, height
}

// ActivateTool selects the drawing tool. Selecting the already
// active tool deactivates drawing instead.
func (e *Engine) ActivateTool(t Tool) {
	if t == e.tool {
		t = ToolNone
	}
	e.setTool(t)
}

// DeactivateTool disables drawing; pointer events pass through
// until a tool is activated again.
func (e *Engine) DeactivateTool() {
	e.setTool(ToolNone)
}

func (e *Engine) setTool(t Tool) {
	e.tool = t
	if t != ToolNone {
		return
	}
	// Deactivation tears down pointer tracking, taking any stroke
	// in flight with it.
	for i := range e.slots {
		if sl := &e.slots[i]; sl.live && sl.s.drawing {
			e.discardStroke(&sl.s)
		}
	}
}

// Tool returns the active tool.
func (e *Engine) Tool() Tool {
	return e.tool
}

// SetColor sets the pen stroke color for subsequent strokes from a
// CSS color value. Unparsable values are ignored.
func (e *Engine) SetColor(c string) {
	if col, ok := svg.ParseColor(c); ok {
		e.opts.StrokeColor = col
	}
}

// SetStrokeWidth sets the pen width for subsequent strokes.
func (e *Engine) SetStrokeWidth(w float32) {
	if w > 0 {
		e.opts.StrokeWidth = w
	}
}

// SetEraserWidth sets the eraser width for subsequent strokes.
func (e *Engine) SetEraserWidth(w float32) {
	if w > 0 {
		e.opts.EraserWidth = w
	}
}

// SetMinDistance sets the point decimation distance for subsequent
// strokes.
func (e *Engine) SetMinDistance(d float32) {
	if d > 0 {
		e.opts.MinDistance = d
	}
}

// Pointer feeds one pointer event for the container identified by h
// into the stroke state machine.
func (e *Engine) Pointer(h Handle, ev pointer.Event) {
	s := e.lookup(h)
	if s == nil {
		return
	}
	switch ev.Kind {
	case pointer.Press:
		e.press(s, ev)
	case pointer.Move, pointer.Drag:
		e.move(s, ev)
	case pointer.Release, pointer.Leave:
		e.finish(s, ev)
	case pointer.Cancel:
		e.cancel(s, ev)
	}
}

func (e *Engine) press(s *surfaceState, ev pointer.Event) {
	others := len(s.touches)
	if s.touches[ev.PointerID] {
		others--
	}
	s.touches[ev.PointerID] = true
	if s.drawing {
		// A second concurrent pointer interrupts the stroke; it
		// never starts one of its own.
		if !s.ownerSet || ev.PointerID != s.owner {
			e.discardStroke(s)
		}
		return
	}
	if e.tool == ToolNone || others > 0 {
		return
	}
	s.drawing = true
	s.ownerSet = true
	s.owner = ev.PointerID
	s.tool = e.tool
	s.minDistance = e.opts.MinDistance
	s.points = append(s.points[:0], ev.Position)
	switch s.tool {
	case ToolPen:
		p := &svg.Path{
			D:                 Smooth(s.points),
			FillNone:          true,
			Stroke:            e.opts.StrokeColor,
			StrokeWidth:       e.opts.StrokeWidth,
			Round:             true,
			PointerEventsNone: true,
		}
		s.layer.Append(p)
		s.preview = p
	case ToolEraser:
		e.beginErase(s)
	}
}

// beginErase wraps the layer's current content in a group gated by
// a fresh mask: a white full-surface rectangle keeps everything
// visible, and the erase path is painted black into the mask to
// punch a transparent hole. Content drawn after the stroke commits
// is appended outside the wrapper and is not affected by it.
func (e *Engine) beginErase(s *surfaceState) {
	s.maskSeq++
	mask := svg.NewMask(fmt.Sprintf("vp-mask-%d", s.maskSeq))
	bg := &svg.Rect{
		Width:  s.overlay.Width,
		Height: s.overlay.Height,
		Fill:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	p := &svg.Path{
		D:           Smooth(s.points),
		FillNone:    true,
		Stroke:      color.NRGBA{A: 0xff},
		StrokeWidth: e.opts.EraserWidth,
		Round:       true,
	}
	mask.Append(bg, p)
	s.defs.Append(mask)

	wrap := svg.NewGroup()
	wrap.MaskID = mask.ID
	wrap.Append(slices.Clone(s.layer.Children())...)
	s.layer.Append(wrap)
	s.preview, s.wrapper, s.mask = p, wrap, mask
}

func (e *Engine) move(s *surfaceState, ev pointer.Event) {
	if !s.drawing || !s.ownerSet || ev.PointerID != s.owner {
		return
	}
	last := s.points[len(s.points)-1]
	d := ev.Position.Sub(last)
	if float32(math.Hypot(float64(d.X), float64(d.Y))) < s.minDistance {
		return
	}
	s.points = append(s.points, ev.Position)
	s.preview.D = Smooth(s.points)
}

func (e *Engine) finish(s *surfaceState, ev pointer.Event) {
	if ev.Kind == pointer.Release {
		delete(s.touches, ev.PointerID)
	}
	if !s.drawing || !s.ownerSet || ev.PointerID != s.owner {
		return
	}
	// The release position is part of the stroke regardless of the
	// decimation distance.
	s.points = append(s.points, ev.Position)
	if len(s.points) >= 2 {
		e.commitStroke(s)
	} else {
		e.discardStroke(s)
	}
}

func (e *Engine) cancel(s *surfaceState, ev pointer.Event) {
	delete(s.touches, ev.PointerID)
	if !s.drawing || !s.ownerSet || ev.PointerID != s.owner {
		return
	}
	e.discardStroke(s)
}

func (e *Engine) commitStroke(s *surfaceState) {
	d := Smooth(s.points)
	s.preview.D = d
	s.records = append(s.records, StrokeRecord{
		ID:       uuid.New(),
		Tool:     s.tool,
		PathData: d,
		Points:   slices.Clone(s.points),
	})
	if s.tool == ToolEraser {
		s.maskDepth++
	}
	e.endStroke(s)
}

func (e *Engine) discardStroke(s *surfaceState) {
	switch s.tool {
	case ToolPen:
		if s.preview != nil {
			s.layer.Remove(s.preview)
		}
	case ToolEraser:
		e.unwrapErase(s)
	}
	e.endStroke(s)
}

// unwrapErase undoes beginErase: the wrapper's children return to
// the layer and the mask resource is removed.
func (e *Engine) unwrapErase(s *surfaceState) {
	if s.wrapper == nil {
		return
	}
	kids := slices.Clone(s.wrapper.Children())
	s.layer.Remove(s.wrapper)
	s.layer.Append(kids...)
	s.defs.Remove(s.mask)
	s.maskSeq--
}

func (e *Engine) endStroke(s *surfaceState) {
	s.drawing = false
	s.ownerSet = false
	s.points = nil
	s.preview = nil
	s.wrapper = nil
	s.mask = nil
}

// Clear removes every stroke and mask of the container, including a
// stroke in flight.
func (e *Engine) Clear(h Handle) {
	s := e.lookup(h)
	if s == nil {
		return
	}
	e.clear(s)
}

// ClearAll clears every attached container.
func (e *Engine) ClearAll() {
	for i := range e.slots {
		if sl := &e.slots[i]; sl.live {
			e.clear(&sl.s)
		}
	}
}

func (e *Engine) clear(s *surfaceState) {
	if s.drawing {
		e.discardStroke(s)
	}
	s.layer.ReplaceChildren()
	s.defs.ReplaceChildren()
	s.records = nil
	s.maskDepth = 0
	s.maskSeq = 0
}

// Records returns a copy of the container's committed strokes.
func (e *Engine) Records(h Handle) []StrokeRecord {
	s := e.lookup(h)
	if s == nil {
		return nil
	}
	recs := slices.Clone(s.records)
	for i := range recs {
		recs[i].Points = slices.Clone(recs[i].Points)
	}
	return recs
}

// MaskDepth returns the number of committed erase strokes of the
// container, equal to its mask nesting depth.
func (e *Engine) MaskDepth(h Handle) int {
	s := e.lookup(h)
	if s == nil {
		return 0
	}
	return s.maskDepth
}

// Overlay returns the container's drawing surface, or nil for an
// invalid handle.
func (e *Engine) Overlay(h Handle) *svg.SVG {
	s := e.lookup(h)
	if s == nil {
		return nil
	}
	return s.overlay
}

func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "ToolNone"
	case ToolPen:
		return "ToolPen"
	case ToolEraser:
		return "ToolEraser"
	default:
		panic("invalid Tool")
	}
}
