// SPDX-License-Identifier: Unlicense OR MIT

/*
Package zoom tracks two-finger pinch and wheel input into a clamped
scale and offset transform for attachable containers.

An Engine keeps one gesture state per attached container. Touch
events feed a pinch tracker deriving scale from the relative
distance of two touch points and, unless panning is disabled, an
offset keeping the pinch midpoint visually anchored. Wheel events
zoom around the cursor. A double click toggles presentation mode,
which resets the view; Escape force-exits presentation everywhere.

A pinch may transiently push the scale beyond its bounds; releasing
it snaps the scale back to the nearest bound with an ease-out
animation stepped by Frame. The transform is applied synchronously
as a translate-then-scale string on every direct child of the
container, and every application notifies the transform listeners.
*/
package zoom

import (
	"fmt"
	"slices"
	"time"

	vectorpen "github.com/burhanyldz/vector-pen"
	"github.com/burhanyldz/vector-pen/anim"
	"github.com/burhanyldz/vector-pen/f32"
	"github.com/burhanyldz/vector-pen/gesture"
	"github.com/burhanyldz/vector-pen/io/event"
	"github.com/burhanyldz/vector-pen/io/key"
	"github.com/burhanyldz/vector-pen/io/pointer"
	"github.com/burhanyldz/vector-pen/svg"
)

// Options configures an Engine. The zero value of a field selects
// its default.
type Options struct {
	// MinZoom and MaxZoom bound the scale. Defaults 0.5 and 3.
	MinZoom float32
	MaxZoom float32
	// SpeedFactor scales wheel deltas. Default 0.002.
	SpeedFactor float32
	// AnimationDuration is the length of the snap-back animation.
	// Default 200ms.
	AnimationDuration time.Duration
	// DisablePan freezes the offset; gestures only change scale.
	DisablePan bool
	// DisablePresentation disables the presentation mode toggle.
	DisablePresentation bool
}

func (o Options) normalize() Options {
	if o.MinZoom <= 0 {
		o.MinZoom = 0.5
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = 3
	}
	if o.SpeedFactor <= 0 {
		o.SpeedFactor = 0.002
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = 200 * time.Millisecond
	}
	return o
}

// TransformEvent reports an applied view transform.
type TransformEvent struct {
	Scale        float32
	OffsetX      float32
	OffsetY      float32
	Presentation bool
}

func (TransformEvent) ImplementsEvent() {}

// PresentationEvent reports a presentation mode change.
type PresentationEvent struct {
	Presentation bool
}

func (PresentationEvent) ImplementsEvent() {}

// Handle identifies an attached container. The zero Handle is
// invalid; operations on a Handle whose container was detached are
// silent no-ops.
type Handle struct {
	index int
	gen   uint32
}

// Engine is the gesture engine. The zero value is not valid; use
// NewEngine.
type Engine struct {
	opts    Options
	slots   []gestureSlot
	handles map[event.Tag]Handle

	transformSubs    map[int]func(TransformEvent)
	presentationSubs map[int]func(PresentationEvent)
	nextSub          int
}

type gestureSlot struct {
	gen  uint32
	live bool
	s    gestureState
}

// gestureState is the per-container record, created at attach with
// scale 1 and zero offset. Pinch tracking is per container, so
// containers can gesture concurrently.
type gestureState struct {
	container *svg.Group

	scale  float32
	offset f32.Point
	// raw is the unclamped pinch scale. The applied scale stays
	// clamped mid-pinch; raw decides the snap-back at gesture end.
	raw float32

	pinch gesture.Pinch
	click gesture.Click
	// Baseline snapshot and touch pair cache of the active pinch.
	baseScale   float32
	baseOffset  f32.Point
	initialDist float32
	initialMid  f32.Point
	// Zoom bounds captured at gesture start.
	minZoom, maxZoom float32

	presentation bool

	snap       anim.Animation
	snapActive bool
}

// NewEngine returns an Engine with the given options. Zero option
// fields assume their defaults.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:             opts.normalize(),
		handles:          make(map[event.Tag]Handle),
		transformSubs:    make(map[int]func(TransformEvent)),
		presentationSubs: make(map[int]func(PresentationEvent)),
	}
}

// Attach wires container for gestures and returns its Handle.
// Attaching an already attached container returns the existing
// Handle. A container without transformable children is accepted
// but has nothing to scale; a warning is logged.
func (e *Engine) Attach(container *svg.Group) Handle {
	if container == nil {
		return Handle{}
	}
	if h, ok := e.handles[container]; ok {
		return h
	}
	if !slices.ContainsFunc(container.Children(), isTransformable) {
		vectorpen.Logger().Warn("zoom: container has no children to transform")
	}
	i := slices.IndexFunc(e.slots, func(sl gestureSlot) bool { return !sl.live })
	if i < 0 {
		i = len(e.slots)
		e.slots = append(e.slots, gestureSlot{})
	}
	sl := &e.slots[i]
	sl.gen++
	sl.live = true
	sl.s = gestureState{
		container: container,
		scale:     1,
		raw:       1,
	}
	h := Handle{index: i, gen: sl.gen}
	e.handles[container] = h
	return h
}

// Detach reverses Attach: the transforms of the container's
// children are cleared and h becomes invalid.
func (e *Engine) Detach(h Handle) {
	s := e.lookup(h)
	if s == nil {
		return
	}
	for _, child := range s.container.Children() {
		if tr, ok := child.(svg.Transformable); ok {
			tr.SetTransform("")
		}
	}
	delete(e.handles, event.Tag(s.container))
	sl := &e.slots[h.index]
	sl.live = false
	sl.s = gestureState{}
}

func (e *Engine) lookup(h Handle) *gestureState {
	if h.gen == 0 || h.index < 0 || h.index >= len(e.slots) {
		return nil
	}
	sl := &e.slots[h.index]
	if !sl.live || sl.gen != h.gen {
		return nil
	}
	return &sl.s
}

func isTransformable(el svg.Element) bool {
	_, ok := el.(svg.Transformable)
	return ok
}

// SetMinZoom sets the lower scale bound for subsequent gestures.
func (e *Engine) SetMinZoom(f float32) {
	if f > 0 {
		e.opts.MinZoom = f
	}
}

// SetMaxZoom sets the upper scale bound for subsequent gestures.
func (e *Engine) SetMaxZoom(f float32) {
	if f > 0 {
		e.opts.MaxZoom = f
	}
}

// Pointer feeds one pointer event for the container identified by h
// into the gesture state machine. Touch events drive pinch
// tracking, scroll events the wheel zoom and mouse clicks the
// presentation toggle.
func (e *Engine) Pointer(h Handle, ev pointer.Event) {
	s := e.lookup(h)
	if s == nil {
		return
	}
	if ev.Kind == pointer.Scroll {
		e.wheel(s, ev)
		return
	}
	if ev.Source == pointer.Touch {
		if pe, ok := s.pinch.Update(ev); ok {
			e.pinchEvent(s, pe, ev.Time)
		}
		return
	}
	if ce, ok := s.click.Update(ev); ok {
		if ce.Kind == gesture.KindClick && ce.NumClicks == 2 {
			e.togglePresentation(s)
		}
	}
}

func (e *Engine) pinchEvent(s *gestureState, pe gesture.PinchEvent, now time.Duration) {
	switch pe.Kind {
	case gesture.KindPinchStart:
		s.baseScale, s.baseOffset = s.scale, s.offset
		s.initialDist, s.initialMid = pe.Dist, pe.Mid
		s.minZoom, s.maxZoom = e.opts.MinZoom, e.opts.MaxZoom
		s.raw = s.scale
	case gesture.KindPinchMove:
		if s.initialDist <= 0 {
			break
		}
		s.raw = s.baseScale * pe.Dist / s.initialDist
		s.scale = clamp(s.raw, s.minZoom, s.maxZoom)
		if !e.opts.DisablePan {
			d := pe.Mid.Sub(s.initialMid)
			s.offset = s.baseOffset.Add(d.Mul(1 / s.scale))
		}
		e.apply(s)
	case gesture.KindPinchEnd:
		if s.raw < s.minZoom || s.raw > s.maxZoom {
			s.snap = anim.Animation{
				Start:     s.raw,
				Target:    clamp(s.raw, s.minZoom, s.maxZoom),
				StartTime: now,
				Duration:  e.opts.AnimationDuration,
				Curve:     anim.EaseOutQuad,
			}
			s.snapActive = true
		}
		s.initialDist = 0
	}
}

func (e *Engine) wheel(s *gestureState, ev pointer.Event) {
	delta := -ev.Scroll.Y * e.opts.SpeedFactor
	old := s.scale
	s.scale = clamp(old*(1+delta), e.opts.MinZoom, e.opts.MaxZoom)
	s.raw = s.scale
	if !e.opts.DisablePan && old > 0 {
		// Keep the cursor position visually anchored.
		r := s.scale / old
		c := ev.Position
		s.offset = f32.Point{
			X: c.X - (c.X-s.offset.X)*r,
			Y: c.Y - (c.Y-s.offset.Y)*r,
		}
	}
	e.apply(s)
}

// Key feeds a key event. An Escape press force-exits presentation
// mode for every container currently in it.
func (e *Engine) Key(ev key.Event) {
	if ev.Name != key.NameEscape || ev.State != key.Press {
		return
	}
	for i := range e.slots {
		if sl := &e.slots[i]; sl.live && sl.s.presentation {
			e.togglePresentation(&sl.s)
		}
	}
}

func (e *Engine) togglePresentation(s *gestureState) {
	if e.opts.DisablePresentation {
		return
	}
	s.presentation = !s.presentation
	s.scale, s.raw = 1, 1
	s.offset = f32.Point{}
	e.apply(s)
	pe := PresentationEvent{Presentation: s.presentation}
	for _, fn := range e.presentationSubs {
		fn(pe)
	}
}

// Resize re-applies the current transform unchanged, so container
// size changes do not lose the zoom state.
func (e *Engine) Resize(h Handle) {
	s := e.lookup(h)
	if s == nil {
		return
	}
	e.apply(s)
}

// Frame steps the snap-back animations to time now, re-applying the
// transform of every container with an active animation. Hosts call
// it from their frame scheduler; tests call it with synthetic
// timestamps.
func (e *Engine) Frame(now time.Duration) {
	for i := range e.slots {
		sl := &e.slots[i]
		if !sl.live || !sl.s.snapActive {
			continue
		}
		s := &sl.s
		s.scale = s.snap.Value(now)
		s.raw = s.scale
		if s.snap.Done(now) {
			s.snapActive = false
		}
		e.apply(s)
	}
}

// apply writes the transform to every direct child of the container
// and notifies the transform listeners.
func (e *Engine) apply(s *gestureState) {
	t := transformString(s.scale, s.offset)
	for _, child := range s.container.Children() {
		if tr, ok := child.(svg.Transformable); ok {
			tr.SetTransform(t)
		}
	}
	ev := TransformEvent{
		Scale:        s.scale,
		OffsetX:      s.offset.X,
		OffsetY:      s.offset.Y,
		Presentation: s.presentation,
	}
	for _, fn := range e.transformSubs {
		fn(ev)
	}
}

func transformString(scale float32, offset f32.Point) string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)",
		svg.FormatFloat(offset.X), svg.FormatFloat(offset.Y), svg.FormatFloat(scale))
}

func clamp(f, lo, hi float32) float32 {
	return min(max(f, lo), hi)
}

// Scale returns the container's current scale, or 0 for an invalid
// handle.
func (e *Engine) Scale(h Handle) float32 {
	s := e.lookup(h)
	if s == nil {
		return 0
	}
	return s.scale
}

// Offset returns the container's current offset.
func (e *Engine) Offset(h Handle) f32.Point {
	s := e.lookup(h)
	if s == nil {
		return f32.Point{}
	}
	return s.offset
}

// Presentation reports whether the container is in presentation
// mode.
func (e *Engine) Presentation(h Handle) bool {
	s := e.lookup(h)
	return s != nil && s.presentation
}

// Transform returns the container's view transform as an affine
// matrix mapping content coordinates to view coordinates.
func (e *Engine) Transform(h Handle) f32.Affine2D {
	s := e.lookup(h)
	if s == nil {
		return f32.Affine2D{}
	}
	return f32.NewAffine2D(
		s.scale, 0, s.offset.X,
		0, s.scale, s.offset.Y,
	)
}

// Listener identifies a registered callback.
type Listener struct {
	remove func()
}

// Remove deregisters the callback. Remove is idempotent.
func (l *Listener) Remove() {
	if l.remove != nil {
		l.remove()
		l.remove = nil
	}
}

// OnTransform registers fn to be called synchronously on every
// applied transform.
func (e *Engine) OnTransform(fn func(TransformEvent)) *Listener {
	id := e.nextSub
	e.nextSub++
	e.transformSubs[id] = fn
	return &Listener{remove: func() { delete(e.transformSubs, id) }}
}

// OnPresentation registers fn to be called on every presentation
// mode change.
func (e *Engine) OnPresentation(fn func(PresentationEvent)) *Listener {
	id := e.nextSub
	e.nextSub++
	e.presentationSubs[id] = fn
	return &Listener{remove: func() { delete(e.presentationSubs, id) }}
}
