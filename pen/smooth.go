// SPDX-License-Identifier: Unlicense OR MIT

package pen

import (
	"github.com/burhanyldz/vector-pen/f32"
	"github.com/burhanyldz/vector-pen/svg"
)

// Smooth encodes points as a smoothed path: interior points become
// control points of quadratic curves ending at the midpoint towards
// the next point, with a final straight segment to the last point.
// The path starts exactly at points[0] and ends exactly at
// points[len(points)-1].
//
// Smooth is a pure function of its input, so the visual of a stroke
// can be re-derived from its recorded points alone.
func Smooth(points []f32.Point) string {
	var d svg.PathData
	if len(points) == 0 {
		return ""
	}
	d.MoveTo(points[0])
	for i := 1; i+1 < len(points); i++ {
		mid := points[i].Add(points[i+1]).Mul(0.5)
		d.QuadTo(points[i], mid)
	}
	if len(points) >= 2 {
		d.LineTo(points[len(points)-1])
	}
	return d.String()
}
