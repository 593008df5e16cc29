// SPDX-License-Identifier: Unlicense OR MIT

// Package anim provides pure time-based value animation. An Animation
// is a value of time: callers sample it with explicit timestamps and
// drive frames themselves, so there is no hidden scheduling and tests
// can step it with synthetic clocks.
package anim

import "time"

// Curve maps normalized progress in [0, 1] to an eased fraction.
type Curve func(t float32) float32

// EaseOutQuad decelerates quadratically towards the end of the
// animation: f(t) = t * (2 - t).
func EaseOutQuad(t float32) float32 {
	return t * (2 - t)
}

// Linear applies no easing.
func Linear(t float32) float32 {
	return t
}

// Animation interpolates from Start to Target over Duration, beginning
// at StartTime. Timestamps share the arbitrary base of the event or
// frame clock that drives the animation; only differences matter.
type Animation struct {
	Start  float32
	Target float32
	// StartTime is the timestamp of the first frame.
	StartTime time.Duration
	// Duration of the animation. A non-positive Duration completes
	// immediately.
	Duration time.Duration
	// Curve applied to progress. Nil means EaseOutQuad.
	Curve Curve
}

// Value returns the animated value at time now. Before StartTime it is
// Start; after StartTime+Duration it is Target.
func (a Animation) Value(now time.Duration) float32 {
	if a.Duration <= 0 || now >= a.StartTime+a.Duration {
		return a.Target
	}
	if now <= a.StartTime {
		return a.Start
	}
	progress := float32(now-a.StartTime) / float32(a.Duration)
	curve := a.Curve
	if curve == nil {
		curve = EaseOutQuad
	}
	return a.Start + (a.Target-a.Start)*curve(progress)
}

// Done reports whether the animation has reached Target at time now.
func (a Animation) Done(now time.Duration) bool {
	return now >= a.StartTime+a.Duration
}
